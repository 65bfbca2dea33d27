package gmail

import (
	"context"
	"fmt"
	"strings"

	gmail "google.golang.org/api/gmail/v1"

	"github.com/teemow/gapikit/internal/instrumentation"
	"github.com/teemow/gapikit/internal/paginate"
)

// Message formats accepted by GetMessage.
const (
	FormatFull     = "full"
	FormatMetadata = "metadata"
	FormatMinimal  = "minimal"
	FormatRaw      = "raw"
)

// DeleteMessage permanently deletes a message. It bypasses the trash.
func (c *Client) DeleteMessage(ctx context.Context, userID, messageID string) error {
	if err := required("message ID", messageID); err != nil {
		return err
	}
	err := c.call(ctx, resourceMessages, instrumentation.OperationDelete, func(ctx context.Context) error {
		return c.svc.Users.Messages.Delete(c.user(userID), messageID).Context(ctx).Do()
	})
	if err != nil {
		return fmt.Errorf("failed to delete message %s: %w", messageID, err)
	}
	return nil
}

// GetMessage returns a message in the full format.
func (c *Client) GetMessage(ctx context.Context, userID, messageID string) (*gmail.Message, error) {
	return c.GetMessageFormat(ctx, userID, messageID, FormatFull)
}

// GetMessageFormat returns a message in the given format.
func (c *Client) GetMessageFormat(ctx context.Context, userID, messageID, format string) (*gmail.Message, error) {
	if err := required("message ID", messageID); err != nil {
		return nil, err
	}
	switch format {
	case "":
		format = FormatFull
	case FormatFull, FormatMetadata, FormatMinimal, FormatRaw:
	default:
		return nil, fmt.Errorf("format must be one of [full metadata minimal raw], got %q", format)
	}

	var msg *gmail.Message
	err := c.call(ctx, resourceMessages, instrumentation.OperationGet, func(ctx context.Context) error {
		var err error
		msg, err = c.svc.Users.Messages.Get(c.user(userID), messageID).Format(format).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get message %s: %w", messageID, err)
	}
	return msg, nil
}

// InsertMessage adds a message to the mailbox without sending it, like IMAP
// APPEND.
func (c *Client) InsertMessage(ctx context.Context, userID string, payload Payload, labelIDs ...string) (*gmail.Message, error) {
	msg, err := toAPIMessage(payload)
	if err != nil {
		return nil, err
	}
	msg.LabelIds = labelIDs

	var inserted *gmail.Message
	err = c.call(ctx, resourceMessages, instrumentation.OperationInsert, func(ctx context.Context) error {
		var err error
		inserted, err = c.svc.Users.Messages.Insert(c.user(userID), msg).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert message: %w", err)
	}
	return inserted, nil
}

// ListMessages returns every message matching query, using the same syntax as
// the Gmail search box. Only IDs and thread IDs are populated.
func (c *Client) ListMessages(ctx context.Context, userID, query string) ([]*gmail.Message, error) {
	user := c.user(userID)

	messages, err := list(ctx, c, resourceMessages, instrumentation.OperationList,
		func(ctx context.Context, token string) (paginate.Page[*gmail.Message], error) {
			call := c.svc.Users.Messages.List(user).Context(ctx)
			if query != "" {
				call = call.Q(query)
			}
			if token != "" {
				call = call.PageToken(token)
			}
			resp, err := call.Do()
			if err != nil {
				return paginate.Page[*gmail.Message]{}, err
			}
			return paginate.Page[*gmail.Message]{Items: resp.Messages, NextPageToken: resp.NextPageToken}, nil
		})
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

// ModifyMessage adds and removes labels of a message.
func (c *Client) ModifyMessage(ctx context.Context, userID, messageID string, addLabelIDs, removeLabelIDs []string) (*gmail.Message, error) {
	if err := required("message ID", messageID); err != nil {
		return nil, err
	}
	if len(addLabelIDs) == 0 && len(removeLabelIDs) == 0 {
		return nil, fmt.Errorf("at least one label to add or remove is required")
	}

	var msg *gmail.Message
	err := c.call(ctx, resourceMessages, instrumentation.OperationModify, func(ctx context.Context) error {
		var err error
		msg, err = c.svc.Users.Messages.Modify(c.user(userID), messageID, &gmail.ModifyMessageRequest{
			AddLabelIds:    addLabelIDs,
			RemoveLabelIds: removeLabelIDs,
		}).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to modify message %s: %w", messageID, err)
	}
	return msg, nil
}

// SendMessage sends a message to its recipients.
func (c *Client) SendMessage(ctx context.Context, userID string, payload Payload) (*gmail.Message, error) {
	msg, err := toAPIMessage(payload)
	if err != nil {
		return nil, err
	}
	var sent *gmail.Message
	err = c.call(ctx, resourceMessages, instrumentation.OperationSend, func(ctx context.Context) error {
		var err error
		sent, err = c.svc.Users.Messages.Send(c.user(userID), msg).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to send email: %w", err)
	}
	return sent, nil
}

// HeaderValue returns the first header of a message with the given name,
// compared case-insensitively.
func HeaderValue(msg *gmail.Message, name string) string {
	if msg == nil || msg.Payload == nil {
		return ""
	}
	for _, h := range msg.Payload.Headers {
		if h != nil && strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}
