package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/gapikit/internal/gmail"
	"github.com/teemow/gapikit/internal/server"
)

// Resource URIs.
const (
	CalendarSettingsURI = "calendar://settings"
	GmailLabelsURI      = "gmail://labels"
)

// RegisterUserResources registers resources describing the default account.
func RegisterUserResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	settingsResource := mcp.NewResource(
		CalendarSettingsURI,
		"Calendar Settings",
		mcp.WithResourceDescription("Calendar settings of the default account, such as time zone and week start"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(settingsResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleCalendarSettings(ctx, request, sc)
	})

	labelsResource := mcp.NewResource(
		GmailLabelsURI,
		"Gmail Labels",
		mcp.WithResourceDescription("System and user labels of the default account's mailbox"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(labelsResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleGmailLabels(ctx, request, sc)
	})

	return nil
}

func handleCalendarSettings(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	account := sc.DefaultAccount()
	client, err := sc.CalendarClientForAccount(account)
	if err != nil {
		return nil, err
	}

	settings, err := client.ListSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get calendar settings: %w", err)
	}

	values := make(map[string]string, len(settings))
	for _, setting := range settings {
		values[setting.Id] = setting.Value
	}

	return jsonContents(request.Params.URI, map[string]interface{}{
		"account":  account,
		"settings": values,
	})
}

func handleGmailLabels(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	account := sc.DefaultAccount()
	client, err := sc.GmailClientForAccount(account)
	if err != nil {
		return nil, err
	}

	labels, err := client.ListLabels(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to get Gmail labels: %w", err)
	}

	return jsonContents(request.Params.URI, map[string]interface{}{
		"account": account,
		"labels":  gmail.ToLabelInfos(labels),
	})
}

func jsonContents(uri string, data interface{}) ([]mcp.ResourceContents, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resource data: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
