package gmail

import (
	"context"
	"fmt"
	"strings"

	gmail "google.golang.org/api/gmail/v1"

	"github.com/teemow/gapikit/internal/instrumentation"
)

const (
	// MaxAttachmentSize defines the maximum attachment size in bytes (25MB)
	MaxAttachmentSize = 25 * 1024 * 1024
)

// AttachmentInfo represents an attachment's metadata
type AttachmentInfo struct {
	MessageID    string `json:"message_id"`
	PartID       string `json:"part_id"`
	AttachmentID string `json:"attachment_id,omitempty"`
	Filename     string `json:"filename"`
	MimeType     string `json:"mime_type"`
	Size         int64  `json:"size"`
}

// ListAttachments describes every part of msg that carries a filename.
func ListAttachments(msg *gmail.Message) []AttachmentInfo {
	infos := []AttachmentInfo{}
	if msg == nil {
		return infos
	}
	walkParts(msg.Payload, func(part *gmail.MessagePart) {
		if part.Filename == "" {
			return
		}
		info := AttachmentInfo{
			MessageID: msg.Id,
			PartID:    part.PartId,
			Filename:  part.Filename,
			MimeType:  part.MimeType,
		}
		if part.Body != nil {
			info.AttachmentID = part.Body.AttachmentId
			info.Size = part.Body.Size
		}
		infos = append(infos, info)
	})
	return infos
}

// GetAttachment downloads and decodes the content of an attachment.
func (c *Client) GetAttachment(ctx context.Context, userID, messageID, attachmentID string) ([]byte, error) {
	if err := required("message ID", messageID); err != nil {
		return nil, err
	}
	if err := required("attachment ID", attachmentID); err != nil {
		return nil, err
	}

	var body *gmail.MessagePartBody
	err := c.call(ctx, resourceAttachments, instrumentation.OperationGet, func(ctx context.Context) error {
		var err error
		body, err = c.svc.Users.Messages.Attachments.Get(c.user(userID), messageID, attachmentID).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get attachment %s: %w", attachmentID, err)
	}

	if body.Size > MaxAttachmentSize {
		return nil, fmt.Errorf("attachment size %d exceeds maximum size %d", body.Size, MaxAttachmentSize)
	}

	data, err := DecodeRaw(body.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode attachment data: %w", err)
	}
	return data, nil
}

// GetMessageAttachments returns the content of every part of msg that has a
// filename, in MIME tree order. Parts stored as attachments are downloaded;
// small parts whose data is inline are decoded directly. A message without
// payload, e.g. one returned by ListMessages, is fetched first.
func (c *Client) GetMessageAttachments(ctx context.Context, userID string, msg *gmail.Message) ([]Attachment, error) {
	if msg == nil {
		return nil, fmt.Errorf("message is required")
	}
	if msg.Payload == nil {
		full, err := c.GetMessage(ctx, userID, msg.Id)
		if err != nil {
			return nil, err
		}
		msg = full
	}

	var parts []*gmail.MessagePart
	walkParts(msg.Payload, func(part *gmail.MessagePart) {
		if part.Filename != "" {
			parts = append(parts, part)
		}
	})

	attachments := make([]Attachment, 0, len(parts))
	for _, part := range parts {
		var (
			data []byte
			err  error
		)
		switch {
		case part.Body != nil && part.Body.AttachmentId != "":
			data, err = c.GetAttachment(ctx, userID, msg.Id, part.Body.AttachmentId)
		case part.Body != nil && part.Body.Data != "":
			data, err = DecodeRaw(part.Body.Data)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read attachment %q: %w", part.Filename, err)
		}
		attachments = append(attachments, Attachment{
			Filename: part.Filename,
			MimeType: part.MimeType,
			Data:     data,
		})
	}
	return attachments, nil
}

// MessageBody extracts the first text/plain (or text/html when html is set)
// body of msg.
func MessageBody(msg *gmail.Message, html bool) (string, error) {
	targetMimeType := "text/plain"
	if html {
		targetMimeType = "text/html"
	}

	var body string
	if msg != nil {
		walkParts(msg.Payload, func(part *gmail.MessagePart) {
			if body == "" && part.Filename == "" && part.MimeType == targetMimeType && part.Body != nil {
				body = part.Body.Data
			}
		})
	}
	if body == "" {
		return "", fmt.Errorf("no %s body found in message", targetMimeType)
	}

	decoded, err := DecodeRaw(body)
	if err != nil {
		return "", fmt.Errorf("failed to decode message body: %w", err)
	}
	return string(decoded), nil
}

// walkParts visits part and all of its descendants depth first.
func walkParts(part *gmail.MessagePart, fn func(*gmail.MessagePart)) {
	if part == nil {
		return
	}

	fn(part)

	for _, subpart := range part.Parts {
		walkParts(subpart, fn)
	}
}

// DefaultAttachmentName replaces attachment filenames that are empty or
// name a directory.
const DefaultAttachmentName = "attachment"

// SanitizeFilename sanitizes a filename to prevent path traversal attacks.
// The result is always a plain file name.
func SanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "/", "_")
	filename = strings.ReplaceAll(filename, "\\", "_")
	filename = strings.ReplaceAll(filename, "..", "_")
	if strings.TrimSpace(filename) == "" || filename == "." {
		return DefaultAttachmentName
	}
	return filename
}
