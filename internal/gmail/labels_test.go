package gmail

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLabel(t *testing.T) {
	c, api := newTestClient(t, func(w http.ResponseWriter, _ recordedRequest) {
		writeJSON(w, `{"id":"Label_1","name":"Receipts","type":"user"}`)
	})

	label, err := c.CreateLabel(context.Background(), "", "Receipts")
	require.NoError(t, err)
	assert.Equal(t, "Label_1", label.Id)

	r := api.all()[0]
	assert.Equal(t, http.MethodPost, r.Method)
	assert.Equal(t, "Receipts", r.Body["name"])

	_, err = c.CreateLabel(context.Background(), "", "")
	assert.EqualError(t, err, "name is required")
	_, err = c.CreateLabel(context.Background(), "", strings.Repeat("x", 226))
	assert.EqualError(t, err, "name must be at most 225")
}

func TestListLabels(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ recordedRequest) {
		writeJSON(w, `{"labels":[{"id":"INBOX","type":"system"},{"id":"Label_1","type":"user"}]}`)
	})

	labels, err := c.ListLabels(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, labels, 2)
	assert.Equal(t, "INBOX", labels[0].Id)
}

func TestListLabels_EmptyIsNotNil(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ recordedRequest) {
		writeJSON(w, `{}`)
	})

	labels, err := c.ListLabels(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, labels)
}

func TestUpdateLabel(t *testing.T) {
	c, api := newTestClient(t, func(w http.ResponseWriter, _ recordedRequest) {
		writeJSON(w, `{"id":"Label_1","name":"Bills"}`)
	})

	label, err := c.UpdateLabel(context.Background(), "", "Label_1", LabelInput{
		Name:                  "Bills",
		LabelListVisibility:   LabelShowIfUnread,
		MessageListVisibility: MessageListHide,
	})
	require.NoError(t, err)
	assert.Equal(t, "Bills", label.Name)

	r := api.all()[0]
	assert.Equal(t, http.MethodPut, r.Method)
	assert.Equal(t, "/gmail/v1/users/me/labels/Label_1", r.Path)
	assert.Equal(t, "Label_1", r.Body["id"])
	assert.Equal(t, "labelShowIfUnread", r.Body["labelListVisibility"])
	assert.Equal(t, "hide", r.Body["messageListVisibility"])
}

func TestUpdateLabel_Validation(t *testing.T) {
	c, _ := newTestClient(t, noAPI(t))

	_, err := c.UpdateLabel(context.Background(), "", "", LabelInput{Name: "x"})
	assert.EqualError(t, err, "label ID is required")

	_, err = c.UpdateLabel(context.Background(), "", "Label_1", LabelInput{Name: "x", LabelListVisibility: "sometimes"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "label_list_visibility must be one of")
}

func TestDeleteLabel(t *testing.T) {
	c, api := newTestClient(t, func(w http.ResponseWriter, _ recordedRequest) {
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.DeleteLabel(context.Background(), "", "Label_1"))
	assert.Equal(t, http.MethodDelete, api.all()[0].Method)
}
