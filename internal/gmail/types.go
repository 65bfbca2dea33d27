package gmail

import (
	"time"

	gmail "google.golang.org/api/gmail/v1"
)

// MessageSummary is a compact view of a message for CLI and tool output.
type MessageSummary struct {
	ID          string           `json:"id"`
	ThreadID    string           `json:"thread_id,omitempty"`
	LabelIDs    []string         `json:"label_ids,omitempty"`
	From        string           `json:"from,omitempty"`
	To          string           `json:"to,omitempty"`
	Subject     string           `json:"subject,omitempty"`
	Date        string           `json:"date,omitempty"`
	Snippet     string           `json:"snippet,omitempty"`
	Received    *time.Time       `json:"received,omitempty"`
	Attachments []AttachmentInfo `json:"attachments,omitempty"`
}

// DraftSummary pairs a draft ID with a summary of its message.
type DraftSummary struct {
	ID      string         `json:"id"`
	Message MessageSummary `json:"message"`
}

// LabelInfo is a compact view of a label.
type LabelInfo struct {
	ID                    string `json:"id"`
	Name                  string `json:"name"`
	Type                  string `json:"type,omitempty"`
	LabelListVisibility   string `json:"label_list_visibility,omitempty"`
	MessageListVisibility string `json:"message_list_visibility,omitempty"`
	MessagesTotal         int64  `json:"messages_total,omitempty"`
	MessagesUnread        int64  `json:"messages_unread,omitempty"`
}

// ToMessageSummary converts an API message. A nil message yields the zero
// value. Messages returned by ListMessages only carry their IDs.
func ToMessageSummary(msg *gmail.Message) MessageSummary {
	if msg == nil {
		return MessageSummary{}
	}
	s := MessageSummary{
		ID:       msg.Id,
		ThreadID: msg.ThreadId,
		LabelIDs: msg.LabelIds,
		From:     HeaderValue(msg, "From"),
		To:       HeaderValue(msg, "To"),
		Subject:  HeaderValue(msg, "Subject"),
		Date:     HeaderValue(msg, "Date"),
		Snippet:  msg.Snippet,
	}
	if msg.InternalDate > 0 {
		received := time.UnixMilli(msg.InternalDate).UTC()
		s.Received = &received
	}
	if attachments := ListAttachments(msg); len(attachments) > 0 {
		s.Attachments = attachments
	}
	return s
}

// ToMessageSummaries converts a list of API messages. The result is never nil.
func ToMessageSummaries(msgs []*gmail.Message) []MessageSummary {
	out := make([]MessageSummary, 0, len(msgs))
	for _, msg := range msgs {
		out = append(out, ToMessageSummary(msg))
	}
	return out
}

// ToDraftSummary converts an API draft. A nil draft yields the zero value.
func ToDraftSummary(draft *gmail.Draft) DraftSummary {
	if draft == nil {
		return DraftSummary{}
	}
	return DraftSummary{ID: draft.Id, Message: ToMessageSummary(draft.Message)}
}

// ToDraftSummaries converts a list of API drafts. The result is never nil.
func ToDraftSummaries(drafts []*gmail.Draft) []DraftSummary {
	out := make([]DraftSummary, 0, len(drafts))
	for _, d := range drafts {
		out = append(out, ToDraftSummary(d))
	}
	return out
}

// ToLabelInfo converts an API label. A nil label yields the zero value.
func ToLabelInfo(label *gmail.Label) LabelInfo {
	if label == nil {
		return LabelInfo{}
	}
	return LabelInfo{
		ID:                    label.Id,
		Name:                  label.Name,
		Type:                  label.Type,
		LabelListVisibility:   label.LabelListVisibility,
		MessageListVisibility: label.MessageListVisibility,
		MessagesTotal:         label.MessagesTotal,
		MessagesUnread:        label.MessagesUnread,
	}
}

// ToLabelInfos converts a list of API labels. The result is never nil.
func ToLabelInfos(labels []*gmail.Label) []LabelInfo {
	out := make([]LabelInfo, 0, len(labels))
	for _, l := range labels {
		out = append(out, ToLabelInfo(l))
	}
	return out
}
