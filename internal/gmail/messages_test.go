package gmail

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"

	"github.com/teemow/gapikit/internal/paginate"
)

func TestListMessages_FollowsTokensWithQuery(t *testing.T) {
	c, api := newTestClient(t, func(w http.ResponseWriter, r recordedRequest) {
		switch r.Query["pageToken"] {
		case "":
			writeJSON(w, `{"messages":[{"id":"m1","threadId":"t1"}],"nextPageToken":"a"}`)
		case "a":
			writeJSON(w, `{"messages":[{"id":"m2","threadId":"t1"},{"id":"m3","threadId":"t2"}],"nextPageToken":"b"}`)
		case "b":
			writeJSON(w, `{"resultSizeEstimate":0}`)
		}
	})

	messages, err := c.ListMessages(context.Background(), "", "from:boss is:unread")
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "m3", messages[2].Id)

	reqs := api.all()
	require.Len(t, reqs, 3)
	for i, token := range []string{"", "a", "b"} {
		assert.Equal(t, token, reqs[i].Query["pageToken"])
		assert.Equal(t, "from:boss is:unread", reqs[i].Query["q"])
		assert.Equal(t, "/gmail/v1/users/me/messages", reqs[i].Path)
	}
}

func TestListMessages_EmptyMailbox(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ recordedRequest) {
		writeJSON(w, `{"resultSizeEstimate":0}`)
	})

	messages, err := c.ListMessages(context.Background(), "", "")
	require.NoError(t, err)
	assert.NotNil(t, messages)
	assert.Empty(t, messages)
}

func TestListMessages_FailureMidway(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r recordedRequest) {
		if r.Query["pageToken"] == "" {
			writeJSON(w, `{"messages":[{"id":"m1"}],"nextPageToken":"a"}`)
			return
		}
		writeNotFound(w)
	})

	messages, err := c.ListMessages(context.Background(), "", "")
	require.Error(t, err)
	assert.Nil(t, messages)

	var apiErr *googleapi.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Code)
}

func TestListMessages_MaxPages(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ recordedRequest) {
		writeJSON(w, `{"messages":[{"id":"m"}],"nextPageToken":"again"}`)
	}, WithMaxPages(3))

	_, err := c.ListMessages(context.Background(), "", "")
	assert.ErrorIs(t, err, paginate.ErrTooManyPages)
}

func TestGetMessageFormat(t *testing.T) {
	c, api := newTestClient(t, func(w http.ResponseWriter, _ recordedRequest) {
		writeJSON(w, `{"id":"m1","snippet":"hello"}`)
	})

	msg, err := c.GetMessage(context.Background(), "", "m1")
	require.NoError(t, err)
	assert.Equal(t, "hello", msg.Snippet)

	_, err = c.GetMessageFormat(context.Background(), "", "m1", FormatMetadata)
	require.NoError(t, err)

	reqs := api.all()
	assert.Equal(t, "full", reqs[0].Query["format"])
	assert.Equal(t, "metadata", reqs[1].Query["format"])

	_, err = c.GetMessageFormat(context.Background(), "", "m1", "everything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "format must be one of")
}

func TestSendMessage_CarriesThreadID(t *testing.T) {
	c, api := newTestClient(t, func(w http.ResponseWriter, _ recordedRequest) {
		writeJSON(w, `{"id":"sent","threadId":"t9"}`)
	})

	sent, err := c.SendMessage(context.Background(), "", &Message{
		To:       []string{"a@example.com"},
		Subject:  "Re: plan",
		Body:     "ok",
		ThreadID: "t9",
	})
	require.NoError(t, err)
	assert.Equal(t, "sent", sent.Id)

	r := api.all()[0]
	assert.Equal(t, "/gmail/v1/users/me/messages/send", r.Path)
	assert.Equal(t, "t9", r.Body["threadId"])
	assert.NotEmpty(t, r.Body["raw"])
}

func TestInsertMessage_WithLabels(t *testing.T) {
	c, api := newTestClient(t, func(w http.ResponseWriter, _ recordedRequest) {
		writeJSON(w, `{"id":"inserted"}`)
	})

	_, err := c.InsertMessage(context.Background(), "", RawMessage("Subject: archived\r\n\r\nold"), "INBOX", "UNREAD")
	require.NoError(t, err)

	r := api.all()[0]
	assert.Equal(t, "/gmail/v1/users/me/messages", r.Path)
	assert.Equal(t, http.MethodPost, r.Method)
	assert.Equal(t, []any{"INBOX", "UNREAD"}, r.Body["labelIds"])
}

func TestModifyMessage(t *testing.T) {
	c, api := newTestClient(t, func(w http.ResponseWriter, _ recordedRequest) {
		writeJSON(w, `{"id":"m1","labelIds":["STARRED"]}`)
	})

	msg, err := c.ModifyMessage(context.Background(), "", "m1", []string{"STARRED"}, []string{"INBOX"})
	require.NoError(t, err)
	assert.Equal(t, []string{"STARRED"}, msg.LabelIds)

	r := api.all()[0]
	assert.Equal(t, "/gmail/v1/users/me/messages/m1/modify", r.Path)
	assert.Equal(t, []any{"STARRED"}, r.Body["addLabelIds"])
	assert.Equal(t, []any{"INBOX"}, r.Body["removeLabelIds"])

	_, err = c.ModifyMessage(context.Background(), "", "m1", nil, nil)
	assert.EqualError(t, err, "at least one label to add or remove is required")
}

func TestDeleteMessage(t *testing.T) {
	c, api := newTestClient(t, func(w http.ResponseWriter, _ recordedRequest) {
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.DeleteMessage(context.Background(), "", "m1"))
	assert.Equal(t, http.MethodDelete, api.all()[0].Method)
	assert.EqualError(t, c.DeleteMessage(context.Background(), "", ""), "message ID is required")
}

func TestHeaderValue(t *testing.T) {
	msg := &gmail.Message{Payload: &gmail.MessagePart{Headers: []*gmail.MessagePartHeader{
		{Name: "Subject", Value: "Hello"},
		nil,
		{Name: "message-id", Value: "<id@example.com>"},
	}}}

	assert.Equal(t, "Hello", HeaderValue(msg, "subject"))
	assert.Equal(t, "<id@example.com>", HeaderValue(msg, "Message-ID"))
	assert.Empty(t, HeaderValue(msg, "From"))
	assert.Empty(t, HeaderValue(nil, "From"))
}
