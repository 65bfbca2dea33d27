package calendar_tools

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	calendarapi "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/teemow/gapikit/internal/calendar"
	"github.com/teemow/gapikit/internal/config"
	"github.com/teemow/gapikit/internal/google"
	"github.com/teemow/gapikit/internal/server"
)

type apiRequest struct {
	Method string
	Path   string
	Query  map[string][]string
	Body   string
}

type fakeAPI struct {
	mu       sync.Mutex
	requests []apiRequest
}

func (f *fakeAPI) all() []apiRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]apiRequest(nil), f.requests...)
}

// newTestServer registers every calendar tool against a server context whose
// default account uses a client backed by handler.
func newTestServer(t *testing.T, readOnly bool, handler func(w http.ResponseWriter, r apiRequest)) (map[string]mcpserver.ServerTool, *fakeAPI) {
	t.Helper()
	api := &fakeAPI{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		req := apiRequest{Method: r.Method, Path: r.URL.Path, Query: r.URL.Query(), Body: string(body)}
		api.mu.Lock()
		api.requests = append(api.requests, req)
		api.mu.Unlock()
		handler(w, req)
	}))
	t.Cleanup(srv.Close)

	ctx := context.Background()
	svc, err := calendarapi.NewService(ctx, option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	client, err := calendar.NewClient(svc)
	require.NoError(t, err)

	sc, err := server.NewServerContext(ctx, config.Default(),
		server.WithTokenProvider(google.NewFileTokenProvider(t.TempDir())))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })
	sc.SetCalendarClientForAccount(config.DefaultAccount, client)

	s := mcpserver.NewMCPServer("test-server", "1.0.0", mcpserver.WithToolCapabilities(true))
	require.NoError(t, RegisterCalendarTools(s, sc, readOnly))

	tools := make(map[string]mcpserver.ServerTool)
	for _, st := range s.ListTools() {
		tools[st.Tool.Name] = *st
	}
	return tools, api
}

func call(t *testing.T, tools map[string]mcpserver.ServerTool, name string, args map[string]interface{}) (*mcp.CallToolResult, string) {
	t.Helper()
	tool, ok := tools[name]
	require.True(t, ok, "tool %s is not registered", name)
	result, err := tool.Handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return result, text.Text
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, body)
}

func writeNotFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_, _ = io.WriteString(w, `{"error":{"code":404,"message":"Not Found"}}`)
}

func noAPI(t *testing.T) func(http.ResponseWriter, apiRequest) {
	return func(w http.ResponseWriter, r apiRequest) {
		t.Errorf("unexpected request %s %s", r.Method, r.Path)
		writeNotFound(w)
	}
}

var writeTools = []string{
	"calendar_acl_insert", "calendar_acl_update", "calendar_acl_delete",
	"calendar_list_insert_entry", "calendar_list_update_entry", "calendar_list_delete_entry",
	"calendar_create_calendar", "calendar_update_calendar", "calendar_delete_calendar", "calendar_clear_calendar",
	"calendar_create_event", "calendar_quick_add_event", "calendar_update_event", "calendar_move_event",
	"calendar_delete_events", "calendar_import_ics",
}

var readTools = []string{
	"calendar_acl_list", "calendar_acl_get",
	"calendar_list_calendars", "calendar_list_get_entry",
	"calendar_get_calendar",
	"calendar_list_events", "calendar_list_upcoming_events", "calendar_list_today_events",
	"calendar_list_instances", "calendar_get_event", "calendar_export_ics",
	"calendar_list_settings", "calendar_get_setting",
}

func TestRegisterCalendarTools(t *testing.T) {
	tests := []struct {
		name     string
		readOnly bool
		want     []string
	}{
		{name: "read-write mode", readOnly: false, want: append(append([]string{}, readTools...), writeTools...)},
		{name: "read-only mode", readOnly: true, want: readTools},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tools, _ := newTestServer(t, tt.readOnly, noAPI(t))
			names := make([]string, 0, len(tools))
			for name := range tools {
				names = append(names, name)
			}
			assert.ElementsMatch(t, tt.want, names)
		})
	}
}

func TestListEvents_AllPages(t *testing.T) {
	tools, api := newTestServer(t, true, func(w http.ResponseWriter, r apiRequest) {
		if len(r.Query["pageToken"]) == 0 {
			writeJSON(w, `{"items":[{"id":"e1","summary":"One","start":{"dateTime":"2025-01-01T10:00:00Z"},"end":{"dateTime":"2025-01-01T11:00:00Z"}}],"nextPageToken":"p2"}`)
			return
		}
		writeJSON(w, `{"items":[{"id":"e2","summary":"Two","start":{"date":"2025-01-02"},"end":{"date":"2025-01-03"}}]}`)
	})

	result, text := call(t, tools, "calendar_list_events", map[string]interface{}{
		"calendarId": "team@example.com",
		"query":      "standup",
		"timeMin":    "2025-01-01T00:00:00Z",
	})
	require.False(t, result.IsError, text)

	var events []calendar.EventSummary
	require.NoError(t, json.Unmarshal([]byte(text), &events))
	require.Len(t, events, 2)
	assert.Equal(t, "e1", events[0].ID)
	assert.True(t, events[1].AllDay)

	reqs := api.all()
	require.Len(t, reqs, 2)
	assert.Equal(t, "/calendars/team@example.com/events", reqs[0].Path)
	assert.Equal(t, []string{"standup"}, reqs[0].Query["q"])
	assert.Equal(t, []string{"2025-01-01T00:00:00Z"}, reqs[0].Query["timeMin"])
	assert.Equal(t, []string{"p2"}, reqs[1].Query["pageToken"])
}

func TestListEvents_InvalidTime(t *testing.T) {
	tools, _ := newTestServer(t, true, noAPI(t))

	result, text := call(t, tools, "calendar_list_events", map[string]interface{}{"timeMin": "yesterday"})
	assert.True(t, result.IsError)
	assert.Contains(t, text, "timeMin")
}

func TestGetEvent(t *testing.T) {
	t.Run("missing event ID", func(t *testing.T) {
		tools, _ := newTestServer(t, true, noAPI(t))
		result, text := call(t, tools, "calendar_get_event", map[string]interface{}{})
		assert.True(t, result.IsError)
		assert.Equal(t, "eventId is required", text)
	})

	t.Run("not found", func(t *testing.T) {
		tools, _ := newTestServer(t, true, func(w http.ResponseWriter, _ apiRequest) { writeNotFound(w) })
		result, text := call(t, tools, "calendar_get_event", map[string]interface{}{"eventId": "nope"})
		assert.True(t, result.IsError)
		assert.Contains(t, text, "Failed to get event")
	})
}

func TestCreateEvent_Recurring(t *testing.T) {
	tools, api := newTestServer(t, false, func(w http.ResponseWriter, r apiRequest) {
		writeJSON(w, `{"id":"new","summary":"Standup","recurrence":["RRULE:FREQ=DAILY"]}`)
	})

	result, text := call(t, tools, "calendar_create_event", map[string]interface{}{
		"summary":    "Standup",
		"start":      "2025-01-06T09:00:00Z",
		"end":        "2025-01-06T09:15:00Z",
		"attendees":  "a@example.com, b@example.com",
		"recurrence": "FREQ=DAILY",
	})
	require.False(t, result.IsError, text)

	reqs := api.all()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPost, reqs[0].Method)
	var sent calendarapi.Event
	require.NoError(t, json.Unmarshal([]byte(reqs[0].Body), &sent))
	assert.Equal(t, []string{"RRULE:FREQ=DAILY"}, sent.Recurrence)
	assert.Len(t, sent.Attendees, 2)
}

func TestCreateEvent_InvalidInput(t *testing.T) {
	tools, _ := newTestServer(t, false, noAPI(t))

	result, text := call(t, tools, "calendar_create_event", map[string]interface{}{
		"summary": "Backwards",
		"start":   "2025-01-06T10:00:00Z",
		"end":     "2025-01-06T09:00:00Z",
	})
	assert.True(t, result.IsError)
	assert.Contains(t, text, "end must not be before start")
}

func TestUpdateEvent_KeepsUnsetFields(t *testing.T) {
	tools, api := newTestServer(t, false, func(w http.ResponseWriter, r apiRequest) {
		if r.Method == http.MethodGet {
			writeJSON(w, `{"id":"e1","summary":"Old","location":"Room 1","start":{"dateTime":"2025-01-01T10:00:00Z","timeZone":"Europe/Berlin"},"end":{"dateTime":"2025-01-01T11:00:00Z","timeZone":"Europe/Berlin"}}`)
			return
		}
		writeJSON(w, r.Body)
	})

	result, text := call(t, tools, "calendar_update_event", map[string]interface{}{
		"eventId": "e1",
		"summary": "New",
		"end":     "2025-01-01T12:00:00Z",
	})
	require.False(t, result.IsError, text)

	reqs := api.all()
	require.Len(t, reqs, 2)
	assert.Equal(t, http.MethodPut, reqs[1].Method)
	var sent calendarapi.Event
	require.NoError(t, json.Unmarshal([]byte(reqs[1].Body), &sent))
	assert.Equal(t, "New", sent.Summary)
	assert.Equal(t, "Room 1", sent.Location)
	assert.Equal(t, "2025-01-01T12:00:00Z", sent.End.DateTime)
	assert.Equal(t, "Europe/Berlin", sent.End.TimeZone)
}

func TestDeleteEvents_PartialFailure(t *testing.T) {
	tools, api := newTestServer(t, false, func(w http.ResponseWriter, r apiRequest) {
		if strings.HasSuffix(r.Path, "/missing") {
			writeNotFound(w)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	result, text := call(t, tools, "calendar_delete_events", map[string]interface{}{
		"eventIds": `["e1","missing","e2"]`,
	})
	require.False(t, result.IsError, text)

	var br struct {
		Total      int `json:"total"`
		Successful int `json:"successful"`
		Failed     int `json:"failed"`
	}
	require.NoError(t, json.Unmarshal([]byte(text), &br))
	assert.Equal(t, 3, br.Total)
	assert.Equal(t, 2, br.Successful)
	assert.Equal(t, 1, br.Failed)
	assert.Len(t, api.all(), 3)
}

func TestUpdateACL_FetchesRule(t *testing.T) {
	tools, api := newTestServer(t, false, func(w http.ResponseWriter, r apiRequest) {
		writeJSON(w, `{"id":"user:jane@example.com","role":"writer","scope":{"type":"user","value":"jane@example.com"}}`)
	})

	result, text := call(t, tools, "calendar_acl_update", map[string]interface{}{
		"ruleId": "user:jane@example.com",
		"role":   "writer",
	})
	require.False(t, result.IsError, text)

	var info calendar.ACLRuleInfo
	require.NoError(t, json.Unmarshal([]byte(text), &info))
	assert.Equal(t, "writer", info.Role)
	assert.Equal(t, "jane@example.com", info.ScopeValue)

	reqs := api.all()
	require.Len(t, reqs, 2)
	assert.Equal(t, http.MethodGet, reqs[0].Method)
	assert.Equal(t, http.MethodPut, reqs[1].Method)
}

func TestInsertACL_Validation(t *testing.T) {
	tools, _ := newTestServer(t, false, noAPI(t))

	result, text := call(t, tools, "calendar_acl_insert", map[string]interface{}{
		"scopeType": "user",
		"role":      "admin",
	})
	assert.True(t, result.IsError)
	assert.Contains(t, text, "Failed to insert ACL rule")
}

func TestListSettings(t *testing.T) {
	tools, _ := newTestServer(t, true, func(w http.ResponseWriter, _ apiRequest) {
		writeJSON(w, `{"items":[{"id":"timezone","value":"Europe/Berlin"},{"id":"weekStart","value":"1"}]}`)
	})

	result, text := call(t, tools, "calendar_list_settings", nil)
	require.False(t, result.IsError, text)

	var settings map[string]string
	require.NoError(t, json.Unmarshal([]byte(text), &settings))
	assert.Equal(t, map[string]string{"timezone": "Europe/Berlin", "weekStart": "1"}, settings)
}

func TestExportICS(t *testing.T) {
	tools, _ := newTestServer(t, true, func(w http.ResponseWriter, _ apiRequest) {
		writeJSON(w, `{"items":[{"id":"e1","iCalUID":"e1@google.com","summary":"Review","start":{"dateTime":"2025-01-01T10:00:00Z"},"end":{"dateTime":"2025-01-01T11:00:00Z"}}]}`)
	})

	result, text := call(t, tools, "calendar_export_ics", nil)
	require.False(t, result.IsError, text)
	assert.Contains(t, text, "BEGIN:VCALENDAR")
	assert.Contains(t, text, "UID:e1@google.com")
	assert.Contains(t, text, "SUMMARY:Review")
}

func TestMissingTokenForAccount(t *testing.T) {
	tools, _ := newTestServer(t, true, noAPI(t))

	result, text := call(t, tools, "calendar_list_calendars", map[string]interface{}{"account": "work"})
	assert.True(t, result.IsError)
	assert.Contains(t, text, "no Google token")
}
