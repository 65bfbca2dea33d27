package resources

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	calendarapi "google.golang.org/api/calendar/v3"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/teemow/gapikit/internal/calendar"
	"github.com/teemow/gapikit/internal/config"
	"github.com/teemow/gapikit/internal/gmail"
	"github.com/teemow/gapikit/internal/google"
	"github.com/teemow/gapikit/internal/server"
)

func newServerContext(t *testing.T) *server.ServerContext {
	t.Helper()
	sc, err := server.NewServerContext(context.Background(), config.Default(),
		server.WithTokenProvider(google.NewFileTokenProvider(t.TempDir())))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func fakeAPI(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func readRequest(uri string) mcp.ReadResourceRequest {
	var req mcp.ReadResourceRequest
	req.Params.URI = uri
	return req
}

func TestRegisterUserResources(t *testing.T) {
	s := mcpserver.NewMCPServer("test-server", "1.0.0", mcpserver.WithResourceCapabilities(false, false))
	assert.NoError(t, RegisterUserResources(s, newServerContext(t)))
}

func TestCalendarSettingsResource(t *testing.T) {
	srv := fakeAPI(t, `{"items":[{"id":"timezone","value":"Europe/Berlin"},{"id":"format24HourTime","value":"true"}]}`)
	svc, err := calendarapi.NewService(context.Background(), option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	client, err := calendar.NewClient(svc)
	require.NoError(t, err)

	sc := newServerContext(t)
	sc.SetCalendarClientForAccount(config.DefaultAccount, client)

	contents, err := handleCalendarSettings(context.Background(), readRequest(CalendarSettingsURI), sc)
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(*mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, CalendarSettingsURI, text.URI)
	assert.Equal(t, "application/json", text.MIMEType)

	var data struct {
		Account  string            `json:"account"`
		Settings map[string]string `json:"settings"`
	}
	require.NoError(t, json.Unmarshal([]byte(text.Text), &data))
	assert.Equal(t, config.DefaultAccount, data.Account)
	assert.Equal(t, "Europe/Berlin", data.Settings["timezone"])
	assert.Equal(t, "true", data.Settings["format24HourTime"])
}

func TestGmailLabelsResource(t *testing.T) {
	srv := fakeAPI(t, `{"labels":[{"id":"INBOX","name":"INBOX","type":"system"}]}`)
	svc, err := gmailapi.NewService(context.Background(), option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	client, err := gmail.NewClient(svc)
	require.NoError(t, err)

	sc := newServerContext(t)
	sc.SetGmailClientForAccount(config.DefaultAccount, client)

	contents, err := handleGmailLabels(context.Background(), readRequest(GmailLabelsURI), sc)
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(*mcp.TextResourceContents)
	require.True(t, ok)

	var data struct {
		Labels []gmail.LabelInfo `json:"labels"`
	}
	require.NoError(t, json.Unmarshal([]byte(text.Text), &data))
	require.Len(t, data.Labels, 1)
	assert.Equal(t, "INBOX", data.Labels[0].ID)
}

func TestResourcesWithoutToken(t *testing.T) {
	sc := newServerContext(t)

	_, err := handleCalendarSettings(context.Background(), readRequest(CalendarSettingsURI), sc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no Google token")

	_, err = handleGmailLabels(context.Background(), readRequest(GmailLabelsURI), sc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no Google token")
}
