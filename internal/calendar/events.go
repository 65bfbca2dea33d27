package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	calendar "google.golang.org/api/calendar/v3"

	"github.com/teemow/gapikit/internal/instrumentation"
	"github.com/teemow/gapikit/internal/paginate"
)

// DefaultUpcomingEvents is the number of events ListUpcomingEvents returns
// when no count is given.
const DefaultUpcomingEvents = 10

// MaxUpcomingEvents is the largest page the Calendar API returns.
const MaxUpcomingEvents = 2500

// Event orderings accepted by ListEventsOptions.OrderBy.
const (
	OrderByStartTime = "startTime"
	OrderByUpdated   = "updated"
)

// ListEventsOptions filters ListEvents.
type ListEventsOptions struct {
	// Query is a free text search term.
	Query string `json:"query,omitempty"`

	// TimeZone of the returned times. Defaults to UTC.
	TimeZone string `json:"time_zone,omitempty" validate:"omitempty,timezone"`

	TimeMin time.Time `json:"time_min,omitempty"`
	TimeMax time.Time `json:"time_max,omitempty"`

	// SingleEvents expands recurring events into instances.
	SingleEvents bool `json:"single_events,omitempty"`

	// OrderBy startTime requires SingleEvents.
	OrderBy string `json:"order_by,omitempty" validate:"omitempty,oneof=startTime updated"`

	ShowDeleted bool `json:"show_deleted,omitempty"`
}

func (o ListEventsOptions) validate() error {
	if err := validate.Struct(o); err != nil {
		return err
	}
	if o.OrderBy == OrderByStartTime && !o.SingleEvents {
		return fmt.Errorf("ordering by startTime requires single events")
	}
	if !o.TimeMin.IsZero() && !o.TimeMax.IsZero() && !o.TimeMax.After(o.TimeMin) {
		return fmt.Errorf("time max must be after time min")
	}
	return nil
}

// DeleteEvent deletes an event.
func (c *Client) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	if err := required("event ID", eventID); err != nil {
		return err
	}
	err := c.call(ctx, resourceEvents, instrumentation.OperationDelete, func(ctx context.Context) error {
		return c.svc.Events.Delete(calendarOrPrimary(calendarID), eventID).Context(ctx).Do()
	})
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

// GetEvent returns an event.
func (c *Client) GetEvent(ctx context.Context, calendarID, eventID string) (*calendar.Event, error) {
	if err := required("event ID", eventID); err != nil {
		return nil, err
	}
	var event *calendar.Event
	err := c.call(ctx, resourceEvents, instrumentation.OperationGet, func(ctx context.Context) error {
		var err error
		event, err = c.svc.Events.Get(calendarOrPrimary(calendarID), eventID).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

// ImportEvent adds a private copy of an existing event, identified by its
// iCalUID, to a calendar.
func (c *Client) ImportEvent(ctx context.Context, calendarID string, event *calendar.Event) (*calendar.Event, error) {
	if event == nil {
		return nil, fmt.Errorf("event is required")
	}
	if err := required("event iCalUID", event.ICalUID); err != nil {
		return nil, err
	}
	var imported *calendar.Event
	err := c.call(ctx, resourceEvents, instrumentation.OperationImport, func(ctx context.Context) error {
		var err error
		imported, err = c.svc.Events.Import(calendarOrPrimary(calendarID), event).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to import event: %w", err)
	}
	return imported, nil
}

// InsertEvent creates an event. Conference creation requests are honoured.
func (c *Client) InsertEvent(ctx context.Context, calendarID string, event *calendar.Event) (*calendar.Event, error) {
	if event == nil {
		return nil, fmt.Errorf("event is required")
	}
	var created *calendar.Event
	err := c.call(ctx, resourceEvents, instrumentation.OperationInsert, func(ctx context.Context) error {
		call := c.svc.Events.Insert(calendarOrPrimary(calendarID), event).Context(ctx)
		if event.ConferenceData != nil && event.ConferenceData.CreateRequest != nil {
			call = call.ConferenceDataVersion(1)
		}
		var err error
		created, err = call.Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert event: %w", err)
	}
	return created, nil
}

// InsertRecurringEvent creates event with a single recurrence rule. A rule
// without a property name is treated as an RRULE, so both
// "RRULE:FREQ=WEEKLY" and "FREQ=WEEKLY" are accepted. event is not modified.
func (c *Client) InsertRecurringEvent(ctx context.Context, calendarID string, event *calendar.Event, recurrence string) (*calendar.Event, error) {
	if event == nil {
		return nil, fmt.Errorf("event is required")
	}
	if err := required("recurrence", recurrence); err != nil {
		return nil, err
	}

	recurring := *event
	recurring.Recurrence = []string{normalizeRecurrence(recurrence)}
	return c.InsertEvent(ctx, calendarID, &recurring)
}

func normalizeRecurrence(rule string) string {
	rule = strings.TrimSpace(rule)
	for _, prefix := range []string{"RRULE", "EXRULE", "RDATE", "EXDATE"} {
		if strings.HasPrefix(strings.ToUpper(rule), prefix) {
			return rule
		}
	}
	return "RRULE:" + rule
}

// ListInstances returns every instance of a recurring event.
func (c *Client) ListInstances(ctx context.Context, calendarID, eventID string) ([]*calendar.Event, error) {
	if err := required("event ID", eventID); err != nil {
		return nil, err
	}
	calendarID = calendarOrPrimary(calendarID)

	events, err := list(ctx, c, resourceEvents, instrumentation.OperationInstances,
		func(ctx context.Context, token string) (paginate.Page[*calendar.Event], error) {
			call := c.svc.Events.Instances(calendarID, eventID).Context(ctx)
			if token != "" {
				call = call.PageToken(token)
			}
			resp, err := call.Do()
			if err != nil {
				return paginate.Page[*calendar.Event]{}, err
			}
			return paginate.Page[*calendar.Event]{Items: resp.Items, NextPageToken: resp.NextPageToken}, nil
		})
	if err != nil {
		return nil, fmt.Errorf("failed to list event instances: %w", err)
	}
	return events, nil
}

// ListUpcomingEvents returns the next n events starting from now, with
// recurring events expanded and ordered by start time. n <= 0 means
// DefaultUpcomingEvents and n may not exceed MaxUpcomingEvents. This is a
// single request.
func (c *Client) ListUpcomingEvents(ctx context.Context, calendarID string, n int) ([]*calendar.Event, error) {
	if n <= 0 {
		n = DefaultUpcomingEvents
	}
	if n > MaxUpcomingEvents {
		return nil, fmt.Errorf("at most %d upcoming events can be requested, got %d", MaxUpcomingEvents, n)
	}

	events := []*calendar.Event{}
	err := c.call(ctx, resourceEvents, instrumentation.OperationList, func(ctx context.Context) error {
		resp, err := c.svc.Events.List(calendarOrPrimary(calendarID)).
			TimeMin(c.now().Format(time.RFC3339)).
			MaxResults(int64(n)).
			SingleEvents(true).
			OrderBy(OrderByStartTime).
			Context(ctx).
			Do()
		if err != nil {
			return err
		}
		events = append(events, resp.Items...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming events: %w", err)
	}
	return events, nil
}

// ListTodayEvents returns the events between now and the next midnight in the
// client's time zone.
func (c *Client) ListTodayEvents(ctx context.Context, calendarID string) ([]*calendar.Event, error) {
	now := c.now().In(c.Location())
	y, m, d := now.Date()
	midnight := time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())

	return c.ListEvents(ctx, calendarID, ListEventsOptions{
		TimeZone:     c.timeZone,
		TimeMin:      now,
		TimeMax:      midnight,
		SingleEvents: true,
		OrderBy:      OrderByStartTime,
	})
}

// ListEvents returns every event of a calendar matching opts.
func (c *Client) ListEvents(ctx context.Context, calendarID string, opts ListEventsOptions) ([]*calendar.Event, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.TimeZone == "" {
		opts.TimeZone = "UTC"
	}
	calendarID = calendarOrPrimary(calendarID)

	events, err := list(ctx, c, resourceEvents, instrumentation.OperationList,
		func(ctx context.Context, token string) (paginate.Page[*calendar.Event], error) {
			call := c.svc.Events.List(calendarID).TimeZone(opts.TimeZone).Context(ctx)
			if opts.Query != "" {
				call = call.Q(opts.Query)
			}
			if !opts.TimeMin.IsZero() {
				call = call.TimeMin(opts.TimeMin.Format(time.RFC3339))
			}
			if !opts.TimeMax.IsZero() {
				call = call.TimeMax(opts.TimeMax.Format(time.RFC3339))
			}
			if opts.SingleEvents {
				call = call.SingleEvents(true)
			}
			if opts.OrderBy != "" {
				call = call.OrderBy(opts.OrderBy)
			}
			if opts.ShowDeleted {
				call = call.ShowDeleted(true)
			}
			if token != "" {
				call = call.PageToken(token)
			}
			resp, err := call.Do()
			if err != nil {
				return paginate.Page[*calendar.Event]{}, err
			}
			return paginate.Page[*calendar.Event]{Items: resp.Items, NextPageToken: resp.NextPageToken}, nil
		})
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// MoveEvent moves an event to another calendar, changing its organizer.
func (c *Client) MoveEvent(ctx context.Context, calendarID, eventID, destinationID string) (*calendar.Event, error) {
	if err := required("event ID", eventID); err != nil {
		return nil, err
	}
	if err := required("destination calendar ID", destinationID); err != nil {
		return nil, err
	}
	var moved *calendar.Event
	err := c.call(ctx, resourceEvents, instrumentation.OperationMove, func(ctx context.Context) error {
		var err error
		moved, err = c.svc.Events.Move(calendarOrPrimary(calendarID), eventID, destinationID).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to move event: %w", err)
	}
	return moved, nil
}

// QuickAddEvent creates an event from a text description such as
// "Lunch with Sam tomorrow at noon".
func (c *Client) QuickAddEvent(ctx context.Context, calendarID, text string) (*calendar.Event, error) {
	if err := required("text", strings.TrimSpace(text)); err != nil {
		return nil, err
	}
	var created *calendar.Event
	err := c.call(ctx, resourceEvents, instrumentation.OperationQuickAdd, func(ctx context.Context) error {
		var err error
		created, err = c.svc.Events.QuickAdd(calendarOrPrimary(calendarID), text).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to quick add event: %w", err)
	}
	return created, nil
}

// UpdateEvent replaces an event. Fetch and modify the event before calling
// this; fields left empty are cleared on the server.
func (c *Client) UpdateEvent(ctx context.Context, calendarID, eventID string, event *calendar.Event) (*calendar.Event, error) {
	if err := required("event ID", eventID); err != nil {
		return nil, err
	}
	if event == nil {
		return nil, fmt.Errorf("event is required")
	}
	var updated *calendar.Event
	err := c.call(ctx, resourceEvents, instrumentation.OperationUpdate, func(ctx context.Context) error {
		var err error
		updated, err = c.svc.Events.Update(calendarOrPrimary(calendarID), eventID, event).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return updated, nil
}
