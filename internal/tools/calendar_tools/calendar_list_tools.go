package calendar_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/gapikit/internal/calendar"
	"github.com/teemow/gapikit/internal/server"
	"github.com/teemow/gapikit/internal/tools/common"
)

// RegisterCalendarListTools registers tools for the user's calendar list,
// i.e. the calendars shown in the user's UI.
func RegisterCalendarListTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	listTool := mcp.NewTool("calendar_list_calendars",
		mcp.WithDescription("List all calendars on the user's calendar list"),
		accountOption,
	)
	addTool(s, sc, listTool, "calendar_list.list", handleListCalendarList)

	getTool := mcp.NewTool("calendar_list_get_entry",
		mcp.WithDescription("Get a calendar from the user's calendar list"),
		accountOption,
		requiredCalendarIDOption,
	)
	addTool(s, sc, getTool, "calendar_list.get", handleGetCalendarListEntry)

	if readOnly {
		return nil
	}

	insertTool := mcp.NewTool("calendar_list_insert_entry",
		mcp.WithDescription("Add an existing calendar to the user's calendar list"),
		accountOption,
		requiredCalendarIDOption,
	)
	addTool(s, sc, insertTool, "calendar_list.insert", handleInsertCalendarListEntry)

	updateTool := mcp.NewTool("calendar_list_update_entry",
		mcp.WithDescription("Change how a calendar appears on the user's calendar list"),
		accountOption,
		requiredCalendarIDOption,
		mcp.WithString("summaryOverride",
			mcp.Description("Name shown instead of the calendar's own summary"),
		),
		mcp.WithString("colorId",
			mcp.Description("Color ID from the calendar color palette"),
		),
		mcp.WithBoolean("hidden",
			mcp.Description("Hide the calendar from the list"),
		),
		mcp.WithBoolean("selected",
			mcp.Description("Show the calendar's events in the UI"),
		),
	)
	addTool(s, sc, updateTool, "calendar_list.update", handleUpdateCalendarListEntry)

	deleteTool := mcp.NewTool("calendar_list_delete_entry",
		mcp.WithDescription("Remove a calendar from the user's calendar list"),
		accountOption,
		requiredCalendarIDOption,
	)
	addTool(s, sc, deleteTool, "calendar_list.delete", handleDeleteCalendarListEntry)

	return nil
}

func handleListCalendarList(ctx context.Context, _ map[string]interface{}, client *calendar.Client) (*mcp.CallToolResult, error) {
	entries, err := client.ListCalendarList(ctx)
	if err != nil {
		return common.ErrorResult("list calendars", err), nil
	}

	infos := make([]calendar.CalendarInfo, 0, len(entries))
	for _, entry := range entries {
		infos = append(infos, calendar.ToCalendarInfo(entry))
	}
	return common.JSONResult(infos)
}

func handleGetCalendarListEntry(ctx context.Context, args map[string]interface{}, client *calendar.Client) (*mcp.CallToolResult, error) {
	calendarID, err := common.RequiredString(args, "calendarId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	entry, err := client.GetCalendarListEntry(ctx, calendarID)
	if err != nil {
		return common.ErrorResult("get calendar list entry", err), nil
	}
	return common.JSONResult(calendar.ToCalendarInfo(entry))
}

func handleInsertCalendarListEntry(ctx context.Context, args map[string]interface{}, client *calendar.Client) (*mcp.CallToolResult, error) {
	calendarID, err := common.RequiredString(args, "calendarId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	entry, err := client.InsertCalendarListEntry(ctx, calendarID)
	if err != nil {
		return common.ErrorResult("insert calendar list entry", err), nil
	}
	return common.JSONResult(calendar.ToCalendarInfo(entry))
}

func handleUpdateCalendarListEntry(ctx context.Context, args map[string]interface{}, client *calendar.Client) (*mcp.CallToolResult, error) {
	calendarID, err := common.RequiredString(args, "calendarId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	entry, err := client.GetCalendarListEntry(ctx, calendarID)
	if err != nil {
		return common.ErrorResult("get calendar list entry", err), nil
	}
	if v := common.StringArg(args, "summaryOverride"); v != "" {
		entry.SummaryOverride = v
	}
	if v := common.StringArg(args, "colorId"); v != "" {
		entry.ColorId = v
	}
	if v := common.OptionalBool(args, "hidden"); v != nil {
		entry.Hidden = *v
		entry.ForceSendFields = append(entry.ForceSendFields, "Hidden")
	}
	if v := common.OptionalBool(args, "selected"); v != nil {
		entry.Selected = *v
		entry.ForceSendFields = append(entry.ForceSendFields, "Selected")
	}

	updated, err := client.UpdateCalendarListEntry(ctx, calendarID, entry)
	if err != nil {
		return common.ErrorResult("update calendar list entry", err), nil
	}
	return common.JSONResult(calendar.ToCalendarInfo(updated))
}

func handleDeleteCalendarListEntry(ctx context.Context, args map[string]interface{}, client *calendar.Client) (*mcp.CallToolResult, error) {
	calendarID, err := common.RequiredString(args, "calendarId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := client.DeleteCalendarListEntry(ctx, calendarID); err != nil {
		return common.ErrorResult("delete calendar list entry", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Removed calendar %s from the calendar list", calendarID)), nil
}
