package calendar

import (
	"context"
	"fmt"

	calendar "google.golang.org/api/calendar/v3"

	"github.com/teemow/gapikit/internal/instrumentation"
	"github.com/teemow/gapikit/internal/paginate"
)

// GetSetting returns a single user setting, e.g. "timezone" or "weekStart".
func (c *Client) GetSetting(ctx context.Context, settingID string) (*calendar.Setting, error) {
	if err := required("setting ID", settingID); err != nil {
		return nil, err
	}
	var setting *calendar.Setting
	err := c.call(ctx, resourceSettings, instrumentation.OperationGet, func(ctx context.Context) error {
		var err error
		setting, err = c.svc.Settings.Get(settingID).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get setting: %w", err)
	}
	return setting, nil
}

// ListSettings returns all user settings of the authenticated user.
func (c *Client) ListSettings(ctx context.Context) ([]*calendar.Setting, error) {
	settings, err := list(ctx, c, resourceSettings, instrumentation.OperationList,
		func(ctx context.Context, token string) (paginate.Page[*calendar.Setting], error) {
			call := c.svc.Settings.List().Context(ctx)
			if token != "" {
				call = call.PageToken(token)
			}
			resp, err := call.Do()
			if err != nil {
				return paginate.Page[*calendar.Setting]{}, err
			}
			return paginate.Page[*calendar.Setting]{Items: resp.Items, NextPageToken: resp.NextPageToken}, nil
		})
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	return settings, nil
}
