package calendar

import (
	"context"
	"fmt"

	calendar "google.golang.org/api/calendar/v3"

	"github.com/teemow/gapikit/internal/instrumentation"
)

// ClearCalendar deletes all events of a calendar. Only the primary calendar
// can be cleared; an empty ID addresses it.
func (c *Client) ClearCalendar(ctx context.Context, calendarID string) error {
	err := c.call(ctx, resourceCalendars, instrumentation.OperationClear, func(ctx context.Context) error {
		return c.svc.Calendars.Clear(calendarOrPrimary(calendarID)).Context(ctx).Do()
	})
	if err != nil {
		return fmt.Errorf("failed to clear calendar: %w", err)
	}
	return nil
}

// DeleteCalendar deletes a secondary calendar. Use ClearCalendar for the
// primary calendar.
func (c *Client) DeleteCalendar(ctx context.Context, calendarID string) error {
	if err := required("calendar ID", calendarID); err != nil {
		return err
	}
	err := c.call(ctx, resourceCalendars, instrumentation.OperationDelete, func(ctx context.Context) error {
		return c.svc.Calendars.Delete(calendarID).Context(ctx).Do()
	})
	if err != nil {
		return fmt.Errorf("failed to delete calendar: %w", err)
	}
	return nil
}

// GetCalendar returns the metadata of a calendar.
func (c *Client) GetCalendar(ctx context.Context, calendarID string) (*calendar.Calendar, error) {
	var cal *calendar.Calendar
	err := c.call(ctx, resourceCalendars, instrumentation.OperationGet, func(ctx context.Context) error {
		var err error
		cal, err = c.svc.Calendars.Get(calendarOrPrimary(calendarID)).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get calendar: %w", err)
	}
	return cal, nil
}

// InsertCalendar creates a secondary calendar. An empty timeZone uses the
// client's time zone.
func (c *Client) InsertCalendar(ctx context.Context, summary, timeZone string) (*calendar.Calendar, error) {
	if err := required("summary", summary); err != nil {
		return nil, err
	}
	if timeZone == "" {
		timeZone = c.timeZone
	}
	if err := validate.Var("time zone", timeZone, "timezone"); err != nil {
		return nil, err
	}

	var created *calendar.Calendar
	err := c.call(ctx, resourceCalendars, instrumentation.OperationInsert, func(ctx context.Context) error {
		var err error
		created, err = c.svc.Calendars.Insert(&calendar.Calendar{
			Summary:  summary,
			TimeZone: timeZone,
		}).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert calendar: %w", err)
	}
	return created, nil
}

// UpdateCalendar replaces the metadata of a calendar. Fetch and modify the
// calendar before calling this.
func (c *Client) UpdateCalendar(ctx context.Context, calendarID string, cal *calendar.Calendar) (*calendar.Calendar, error) {
	if cal == nil {
		return nil, fmt.Errorf("calendar is required")
	}
	var updated *calendar.Calendar
	err := c.call(ctx, resourceCalendars, instrumentation.OperationUpdate, func(ctx context.Context) error {
		var err error
		updated, err = c.svc.Calendars.Update(calendarOrPrimary(calendarID), cal).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update calendar: %w", err)
	}
	return updated, nil
}
