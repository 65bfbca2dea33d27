package calendar_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/gapikit/internal/calendar"
	"github.com/teemow/gapikit/internal/instrumentation"
	"github.com/teemow/gapikit/internal/server"
	"github.com/teemow/gapikit/internal/tools/common"
)

// Options shared by most tools.
var (
	accountOption = mcp.WithString("account",
		mcp.Description("Account name (default: the configured account). Used to manage multiple Google accounts."),
	)
	calendarIDOption = mcp.WithString("calendarId",
		mcp.Description("Calendar ID (default: 'primary')"),
	)
	requiredCalendarIDOption = mcp.WithString("calendarId",
		mcp.Required(),
		mcp.Description("Calendar ID, usually an email address"),
	)
)

// handlerFunc handles a tool call once the account's client is resolved.
type handlerFunc func(ctx context.Context, args map[string]interface{}, client *calendar.Client) (*mcp.CallToolResult, error)

// addTool registers tool with instrumentation. operation is "<resource>.<op>",
// matching the labels used by the calendar client.
func addTool(s *mcpserver.MCPServer, sc *server.ServerContext, tool mcp.Tool, operation string, handler handlerFunc) {
	s.AddTool(tool, common.InstrumentedToolHandlerWithService(tool.Name, instrumentation.ServiceCalendar, operation, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			client, err := common.CalendarClient(sc, args)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return handler(ctx, args, client)
		}))
}

// RegisterCalendarTools registers all Calendar-related tools with the MCP server.
// Tools that modify data are skipped when readOnly is set.
func RegisterCalendarTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if err := RegisterACLTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register ACL tools: %w", err)
	}

	if err := RegisterCalendarListTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register calendar list tools: %w", err)
	}

	if err := RegisterCalendarsTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register calendars tools: %w", err)
	}

	if err := RegisterEventTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register event tools: %w", err)
	}

	if err := RegisterSettingsTools(s, sc); err != nil {
		return fmt.Errorf("failed to register settings tools: %w", err)
	}

	return nil
}
