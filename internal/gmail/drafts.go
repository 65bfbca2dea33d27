package gmail

import (
	"context"
	"fmt"

	gmail "google.golang.org/api/gmail/v1"

	"github.com/teemow/gapikit/internal/instrumentation"
	"github.com/teemow/gapikit/internal/paginate"
)

// CreateDraft saves a new draft.
func (c *Client) CreateDraft(ctx context.Context, userID string, payload Payload) (*gmail.Draft, error) {
	msg, err := toAPIMessage(payload)
	if err != nil {
		return nil, err
	}
	var draft *gmail.Draft
	err = c.call(ctx, resourceDrafts, instrumentation.OperationInsert, func(ctx context.Context) error {
		var err error
		draft, err = c.svc.Users.Drafts.Create(c.user(userID), &gmail.Draft{Message: msg}).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create draft: %w", err)
	}
	return draft, nil
}

// DeleteDraft permanently deletes a draft.
func (c *Client) DeleteDraft(ctx context.Context, userID, draftID string) error {
	if err := required("draft ID", draftID); err != nil {
		return err
	}
	err := c.call(ctx, resourceDrafts, instrumentation.OperationDelete, func(ctx context.Context) error {
		return c.svc.Users.Drafts.Delete(c.user(userID), draftID).Context(ctx).Do()
	})
	if err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}

// GetDraft returns a draft with its full message.
func (c *Client) GetDraft(ctx context.Context, userID, draftID string) (*gmail.Draft, error) {
	if err := required("draft ID", draftID); err != nil {
		return nil, err
	}
	var draft *gmail.Draft
	err := c.call(ctx, resourceDrafts, instrumentation.OperationGet, func(ctx context.Context) error {
		var err error
		draft, err = c.svc.Users.Drafts.Get(c.user(userID), draftID).Format("full").Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}
	return draft, nil
}

// ListDrafts returns every draft in the mailbox. Only IDs are populated.
func (c *Client) ListDrafts(ctx context.Context, userID string) ([]*gmail.Draft, error) {
	user := c.user(userID)

	drafts, err := list(ctx, c, resourceDrafts, instrumentation.OperationList,
		func(ctx context.Context, token string) (paginate.Page[*gmail.Draft], error) {
			call := c.svc.Users.Drafts.List(user).Context(ctx)
			if token != "" {
				call = call.PageToken(token)
			}
			resp, err := call.Do()
			if err != nil {
				return paginate.Page[*gmail.Draft]{}, err
			}
			return paginate.Page[*gmail.Draft]{Items: resp.Drafts, NextPageToken: resp.NextPageToken}, nil
		})
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	return drafts, nil
}

// UpdateDraft replaces the message of a draft. When send is set the updated
// draft is sent right away and the returned draft carries the sent message.
func (c *Client) UpdateDraft(ctx context.Context, userID, draftID string, payload Payload, send bool) (*gmail.Draft, error) {
	if err := required("draft ID", draftID); err != nil {
		return nil, err
	}
	msg, err := toAPIMessage(payload)
	if err != nil {
		return nil, err
	}

	var draft *gmail.Draft
	err = c.call(ctx, resourceDrafts, instrumentation.OperationUpdate, func(ctx context.Context) error {
		var err error
		draft, err = c.svc.Users.Drafts.Update(c.user(userID), draftID, &gmail.Draft{Id: draftID, Message: msg}).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update draft: %w", err)
	}
	if !send {
		return draft, nil
	}

	sent, err := c.SendDraft(ctx, userID, draft.Id)
	if err != nil {
		return nil, err
	}
	return &gmail.Draft{Id: draft.Id, Message: sent}, nil
}

// SendDraft sends an existing draft.
func (c *Client) SendDraft(ctx context.Context, userID, draftID string) (*gmail.Message, error) {
	if err := required("draft ID", draftID); err != nil {
		return nil, err
	}
	var sent *gmail.Message
	err := c.call(ctx, resourceDrafts, instrumentation.OperationSend, func(ctx context.Context) error {
		var err error
		sent, err = c.svc.Users.Drafts.Send(c.user(userID), &gmail.Draft{Id: draftID}).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to send draft: %w", err)
	}
	return sent, nil
}

// toAPIMessage encodes payload into a message resource.
func toAPIMessage(payload Payload) (*gmail.Message, error) {
	if payload == nil {
		return nil, fmt.Errorf("message is required")
	}
	raw, err := payload.Raw()
	if err != nil {
		return nil, fmt.Errorf("failed to build message: %w", err)
	}
	msg := &gmail.Message{Raw: raw}
	if m, ok := payload.(*Message); ok {
		msg.ThreadId = m.ThreadID
	}
	return msg, nil
}
