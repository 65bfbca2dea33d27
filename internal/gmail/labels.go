package gmail

import (
	"context"
	"fmt"

	gmail "google.golang.org/api/gmail/v1"

	"github.com/teemow/gapikit/internal/instrumentation"
	"github.com/teemow/gapikit/internal/validation"
)

// Label list visibilities.
const (
	LabelShow         = "labelShow"
	LabelShowIfUnread = "labelShowIfUnread"
	LabelHide         = "labelHide"
	MessageListShow   = "show"
	MessageListHide   = "hide"
)

var validate = validation.New("json")

// LabelInput describes the new state of a label.
type LabelInput struct {
	Name                  string `json:"name" validate:"required,max=225"`
	LabelListVisibility   string `json:"label_list_visibility,omitempty" validate:"omitempty,oneof=labelShow labelShowIfUnread labelHide"`
	MessageListVisibility string `json:"message_list_visibility,omitempty" validate:"omitempty,oneof=show hide"`
}

// CreateLabel adds a user label to the mailbox.
func (c *Client) CreateLabel(ctx context.Context, userID, name string) (*gmail.Label, error) {
	if err := validate.Var("name", name, "required,max=225"); err != nil {
		return nil, err
	}
	var label *gmail.Label
	err := c.call(ctx, resourceLabels, instrumentation.OperationInsert, func(ctx context.Context) error {
		var err error
		label, err = c.svc.Users.Labels.Create(c.user(userID), &gmail.Label{Name: name}).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create label: %w", err)
	}
	return label, nil
}

// DeleteLabel removes a label from the mailbox and from every message.
func (c *Client) DeleteLabel(ctx context.Context, userID, labelID string) error {
	if err := required("label ID", labelID); err != nil {
		return err
	}
	err := c.call(ctx, resourceLabels, instrumentation.OperationDelete, func(ctx context.Context) error {
		return c.svc.Users.Labels.Delete(c.user(userID), labelID).Context(ctx).Do()
	})
	if err != nil {
		return fmt.Errorf("failed to delete label: %w", err)
	}
	return nil
}

// ListLabels returns all system and user labels. The endpoint is not paged.
func (c *Client) ListLabels(ctx context.Context, userID string) ([]*gmail.Label, error) {
	labels := []*gmail.Label{}
	err := c.call(ctx, resourceLabels, instrumentation.OperationList, func(ctx context.Context) error {
		resp, err := c.svc.Users.Labels.List(c.user(userID)).Context(ctx).Do()
		if err != nil {
			return err
		}
		labels = append(labels, resp.Labels...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	return labels, nil
}

// UpdateLabel replaces the name and visibilities of a label.
func (c *Client) UpdateLabel(ctx context.Context, userID, labelID string, input LabelInput) (*gmail.Label, error) {
	if err := required("label ID", labelID); err != nil {
		return nil, err
	}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	var label *gmail.Label
	err := c.call(ctx, resourceLabels, instrumentation.OperationUpdate, func(ctx context.Context) error {
		var err error
		label, err = c.svc.Users.Labels.Update(c.user(userID), labelID, &gmail.Label{
			Id:                    labelID,
			Name:                  input.Name,
			LabelListVisibility:   input.LabelListVisibility,
			MessageListVisibility: input.MessageListVisibility,
		}).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update label: %w", err)
	}
	return label, nil
}
