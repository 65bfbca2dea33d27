package calendar

import (
	"context"
	"fmt"

	calendar "google.golang.org/api/calendar/v3"

	"github.com/teemow/gapikit/internal/instrumentation"
	"github.com/teemow/gapikit/internal/paginate"
)

// DeleteCalendarListEntry removes a calendar from the user's calendar list.
func (c *Client) DeleteCalendarListEntry(ctx context.Context, calendarID string) error {
	if err := required("calendar ID", calendarID); err != nil {
		return err
	}
	err := c.call(ctx, resourceCalendarList, instrumentation.OperationDelete, func(ctx context.Context) error {
		return c.svc.CalendarList.Delete(calendarID).Context(ctx).Do()
	})
	if err != nil {
		return fmt.Errorf("failed to delete calendar list entry: %w", err)
	}
	return nil
}

// GetCalendarListEntry returns an entry of the user's calendar list.
func (c *Client) GetCalendarListEntry(ctx context.Context, calendarID string) (*calendar.CalendarListEntry, error) {
	var entry *calendar.CalendarListEntry
	err := c.call(ctx, resourceCalendarList, instrumentation.OperationGet, func(ctx context.Context) error {
		var err error
		entry, err = c.svc.CalendarList.Get(calendarOrPrimary(calendarID)).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get calendar list entry: %w", err)
	}
	return entry, nil
}

// InsertCalendarListEntry adds an existing calendar to the user's calendar list.
func (c *Client) InsertCalendarListEntry(ctx context.Context, calendarID string) (*calendar.CalendarListEntry, error) {
	if err := required("calendar ID", calendarID); err != nil {
		return nil, err
	}
	var entry *calendar.CalendarListEntry
	err := c.call(ctx, resourceCalendarList, instrumentation.OperationInsert, func(ctx context.Context) error {
		var err error
		entry, err = c.svc.CalendarList.Insert(&calendar.CalendarListEntry{Id: calendarID}).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert calendar list entry: %w", err)
	}
	return entry, nil
}

// ListCalendarList returns every entry of the user's calendar list.
func (c *Client) ListCalendarList(ctx context.Context) ([]*calendar.CalendarListEntry, error) {
	entries, err := list(ctx, c, resourceCalendarList, instrumentation.OperationList,
		func(ctx context.Context, token string) (paginate.Page[*calendar.CalendarListEntry], error) {
			call := c.svc.CalendarList.List().Context(ctx)
			if token != "" {
				call = call.PageToken(token)
			}
			resp, err := call.Do()
			if err != nil {
				return paginate.Page[*calendar.CalendarListEntry]{}, err
			}
			return paginate.Page[*calendar.CalendarListEntry]{Items: resp.Items, NextPageToken: resp.NextPageToken}, nil
		})
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar list: %w", err)
	}
	return entries, nil
}

// UpdateCalendarListEntry replaces an entry of the user's calendar list.
// Fetch and modify the entry before calling this.
func (c *Client) UpdateCalendarListEntry(ctx context.Context, calendarID string, entry *calendar.CalendarListEntry) (*calendar.CalendarListEntry, error) {
	if entry == nil {
		return nil, fmt.Errorf("calendar list entry is required")
	}
	var updated *calendar.CalendarListEntry
	err := c.call(ctx, resourceCalendarList, instrumentation.OperationUpdate, func(ctx context.Context) error {
		var err error
		updated, err = c.svc.CalendarList.Update(calendarOrPrimary(calendarID), entry).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update calendar list entry: %w", err)
	}
	return updated, nil
}
