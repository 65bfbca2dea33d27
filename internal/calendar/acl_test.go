package calendar

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"github.com/teemow/gapikit/internal/paginate"
)

func TestListACL_FollowsPageTokens(t *testing.T) {
	c, api := newTestClient(t, pagesByToken(t, map[string]string{
		"":   `{"items":[{"id":"r1","role":"owner"}],"nextPageToken":"t1"}`,
		"t1": `{"nextPageToken":"t2"}`,
		"t2": `{"items":[{"id":"r2","role":"reader"},{"id":"r3","role":"writer"}]}`,
	}))

	rules, err := c.ListACL(context.Background(), "")
	require.NoError(t, err)

	ids := make([]string, 0, len(rules))
	for _, r := range rules {
		ids = append(ids, r.Id)
	}
	assert.Equal(t, []string{"r1", "r2", "r3"}, ids)

	reqs := api.all()
	assert.Equal(t, []string{"", "t1", "t2"}, tokens(reqs))
	for _, r := range reqs {
		assert.True(t, strings.HasSuffix(r.Path, "/calendars/primary/acl"), r.Path)
	}
}

func TestListACL_EmptyCollection(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ recordedRequest) {
		writeJSON(w, `{"kind":"calendar#acl"}`)
	})

	rules, err := c.ListACL(context.Background(), "team@example.com")
	require.NoError(t, err)
	assert.NotNil(t, rules)
	assert.Empty(t, rules)
}

func TestListACL_FailureDiscardsPartialResult(t *testing.T) {
	c, api := newTestClient(t, func(w http.ResponseWriter, r recordedRequest) {
		if r.Query["pageToken"] == "" {
			writeJSON(w, `{"items":[{"id":"r1"}],"nextPageToken":"t1"}`)
			return
		}
		writeNotFound(w)
	})

	rules, err := c.ListACL(context.Background(), "")
	require.Error(t, err)
	assert.Nil(t, rules)
	assert.Contains(t, err.Error(), "failed to list ACL rules")
	assert.Contains(t, err.Error(), "failed to fetch page 2")

	var apiErr *googleapi.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Code)
	assert.Len(t, api.all(), 2)
}

func TestListACL_MaxPages(t *testing.T) {
	c, api := newTestClient(t, func(w http.ResponseWriter, _ recordedRequest) {
		writeJSON(w, `{"items":[{"id":"loop"}],"nextPageToken":"again"}`)
	}, WithMaxPages(2))

	_, err := c.ListACL(context.Background(), "")
	assert.ErrorIs(t, err, paginate.ErrTooManyPages)
	assert.Len(t, api.all(), 2)
}

func TestGetACL(t *testing.T) {
	c, api := newTestClient(t, func(w http.ResponseWriter, _ recordedRequest) {
		writeJSON(w, `{"id":"user:a@example.com","role":"reader","scope":{"type":"user","value":"a@example.com"}}`)
	})

	rule, err := c.GetACL(context.Background(), "", "user:a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "reader", rule.Role)
	assert.Equal(t, "a@example.com", rule.Scope.Value)
	assert.Equal(t, http.MethodGet, api.all()[0].Method)
}

func TestGetACL_NotFound(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ recordedRequest) {
		writeNotFound(w)
	})

	rule, err := c.GetACL(context.Background(), "", "missing")
	require.Error(t, err)
	assert.Nil(t, rule)

	var apiErr *googleapi.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Code)
}

func TestDeleteACL(t *testing.T) {
	c, api := newTestClient(t, func(w http.ResponseWriter, _ recordedRequest) {
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.DeleteACL(context.Background(), "team", "rule-1"))

	reqs := api.all()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodDelete, reqs[0].Method)
	assert.True(t, strings.HasSuffix(reqs[0].Path, "/calendars/team/acl/rule-1"), reqs[0].Path)

	assert.EqualError(t, c.DeleteACL(context.Background(), "team", ""), "rule ID is required")
}

func TestInsertACL(t *testing.T) {
	c, api := newTestClient(t, func(w http.ResponseWriter, _ recordedRequest) {
		writeJSON(w, `{"id":"user:b@example.com","role":"writer"}`)
	})

	rule, err := c.InsertACL(context.Background(), "", ACLInput{
		ScopeType:  ScopeUser,
		ScopeValue: "b@example.com",
		Role:       RoleWriter,
	})
	require.NoError(t, err)
	assert.Equal(t, "user:b@example.com", rule.Id)

	reqs := api.all()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPost, reqs[0].Method)
	assert.Equal(t, "writer", reqs[0].Body["role"])
	assert.Equal(t, map[string]any{"type": "user", "value": "b@example.com"}, reqs[0].Body["scope"])
}

func TestInsertACL_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   ACLInput
		wantErr string
	}{
		{
			name:    "missing scope value",
			input:   ACLInput{ScopeType: ScopeUser, Role: RoleReader},
			wantErr: "scope_value is required",
		},
		{
			name:    "default scope with value",
			input:   ACLInput{ScopeType: ScopeDefault, ScopeValue: "x@example.com", Role: RoleReader},
			wantErr: "scope_value must be empty",
		},
		{
			name:    "unknown scope type",
			input:   ACLInput{ScopeType: "world", ScopeValue: "x", Role: RoleReader},
			wantErr: "scope_type must be one of",
		},
		{
			name:    "unknown role",
			input:   ACLInput{ScopeType: ScopeDomain, ScopeValue: "example.com", Role: "admin"},
			wantErr: "role must be one of",
		},
	}

	c, _ := newTestClient(t, noAPI(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.InsertACL(context.Background(), "", tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestInsertACL_PublicScope(t *testing.T) {
	c, api := newTestClient(t, func(w http.ResponseWriter, _ recordedRequest) {
		writeJSON(w, `{"id":"default","role":"freeBusyReader"}`)
	})

	_, err := c.InsertACL(context.Background(), "", ACLInput{ScopeType: ScopeDefault, Role: RoleFreeBusyReader})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"type": "default"}, api.all()[0].Body["scope"])
}

func TestUpdateACL_FetchesThenUpdatesByReturnedID(t *testing.T) {
	c, api := newTestClient(t, func(w http.ResponseWriter, r recordedRequest) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, `{"id":"canonical-id","role":"reader","scope":{"type":"user","value":"a@example.com"}}`)
		case http.MethodPut:
			writeJSON(w, `{"id":"canonical-id","role":"writer","scope":{"type":"user","value":"a@example.com"}}`)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	rule, err := c.UpdateACL(context.Background(), "", "rule-1", RoleWriter)
	require.NoError(t, err)
	assert.Equal(t, "writer", rule.Role)

	reqs := api.all()
	require.Len(t, reqs, 2)
	assert.True(t, strings.HasSuffix(reqs[0].Path, "/acl/rule-1"), reqs[0].Path)
	assert.Equal(t, http.MethodPut, reqs[1].Method)
	assert.True(t, strings.HasSuffix(reqs[1].Path, "/acl/canonical-id"), reqs[1].Path)
	assert.Equal(t, "writer", reqs[1].Body["role"])
	assert.Equal(t, map[string]any{"type": "user", "value": "a@example.com"}, reqs[1].Body["scope"])
}

func TestUpdateACL_InvalidRoleSkipsRequests(t *testing.T) {
	c, _ := newTestClient(t, noAPI(t))

	_, err := c.UpdateACL(context.Background(), "", "rule-1", "admin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "role must be one of")
}

func TestUpdateACL_GetFailureStops(t *testing.T) {
	c, api := newTestClient(t, func(w http.ResponseWriter, _ recordedRequest) {
		writeNotFound(w)
	})

	_, err := c.UpdateACL(context.Background(), "", "rule-1", RoleReader)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get ACL rule")
	assert.Len(t, api.all(), 1)
}
