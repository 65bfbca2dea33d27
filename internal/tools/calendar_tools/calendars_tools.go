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

// RegisterCalendarsTools registers tools that manage calendars themselves.
func RegisterCalendarsTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	getTool := mcp.NewTool("calendar_get_calendar",
		mcp.WithDescription("Get the metadata of a calendar"),
		accountOption,
		calendarIDOption,
	)
	addTool(s, sc, getTool, "calendars.get", handleGetCalendar)

	if readOnly {
		return nil
	}

	createTool := mcp.NewTool("calendar_create_calendar",
		mcp.WithDescription("Create a secondary calendar"),
		accountOption,
		mcp.WithString("summary",
			mcp.Required(),
			mcp.Description("Calendar title"),
		),
		mcp.WithString("timeZone",
			mcp.Description("IANA time zone (default: the configured time zone)"),
		),
	)
	addTool(s, sc, createTool, "calendars.insert", handleCreateCalendar)

	updateTool := mcp.NewTool("calendar_update_calendar",
		mcp.WithDescription("Update the metadata of a calendar"),
		accountOption,
		calendarIDOption,
		mcp.WithString("summary",
			mcp.Description("New calendar title"),
		),
		mcp.WithString("description",
			mcp.Description("New calendar description"),
		),
		mcp.WithString("location",
			mcp.Description("New geographic location"),
		),
		mcp.WithString("timeZone",
			mcp.Description("New IANA time zone"),
		),
	)
	addTool(s, sc, updateTool, "calendars.update", handleUpdateCalendar)

	deleteTool := mcp.NewTool("calendar_delete_calendar",
		mcp.WithDescription("Delete a secondary calendar. Use calendar_clear_calendar for the primary calendar."),
		accountOption,
		requiredCalendarIDOption,
	)
	addTool(s, sc, deleteTool, "calendars.delete", handleDeleteCalendar)

	clearTool := mcp.NewTool("calendar_clear_calendar",
		mcp.WithDescription("Delete all events of a calendar"),
		accountOption,
		calendarIDOption,
	)
	addTool(s, sc, clearTool, "calendars.clear", handleClearCalendar)

	return nil
}

// RegisterSettingsTools registers the read-only user settings tools.
func RegisterSettingsTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listTool := mcp.NewTool("calendar_list_settings",
		mcp.WithDescription("List the user's calendar settings"),
		accountOption,
	)
	addTool(s, sc, listTool, "settings.list", handleListSettings)

	getTool := mcp.NewTool("calendar_get_setting",
		mcp.WithDescription("Get one calendar setting, e.g. 'timezone' or 'weekStart'"),
		accountOption,
		mcp.WithString("settingId",
			mcp.Required(),
			mcp.Description("Setting ID"),
		),
	)
	addTool(s, sc, getTool, "settings.get", handleGetSetting)

	return nil
}

func handleGetCalendar(ctx context.Context, args map[string]interface{}, client *calendar.Client) (*mcp.CallToolResult, error) {
	cal, err := client.GetCalendar(ctx, common.StringArg(args, "calendarId"))
	if err != nil {
		return common.ErrorResult("get calendar", err), nil
	}
	return common.JSONResult(calendar.CalendarInfoFromCalendar(cal))
}

func handleCreateCalendar(ctx context.Context, args map[string]interface{}, client *calendar.Client) (*mcp.CallToolResult, error) {
	cal, err := client.InsertCalendar(ctx, common.StringArg(args, "summary"), common.StringArg(args, "timeZone"))
	if err != nil {
		return common.ErrorResult("create calendar", err), nil
	}
	return common.JSONResult(calendar.CalendarInfoFromCalendar(cal))
}

func handleUpdateCalendar(ctx context.Context, args map[string]interface{}, client *calendar.Client) (*mcp.CallToolResult, error) {
	calendarID := common.StringArg(args, "calendarId")

	cal, err := client.GetCalendar(ctx, calendarID)
	if err != nil {
		return common.ErrorResult("get calendar", err), nil
	}
	if v := common.StringArg(args, "summary"); v != "" {
		cal.Summary = v
	}
	if v := common.StringArg(args, "description"); v != "" {
		cal.Description = v
	}
	if v := common.StringArg(args, "location"); v != "" {
		cal.Location = v
	}
	if v := common.StringArg(args, "timeZone"); v != "" {
		cal.TimeZone = v
	}

	updated, err := client.UpdateCalendar(ctx, calendarID, cal)
	if err != nil {
		return common.ErrorResult("update calendar", err), nil
	}
	return common.JSONResult(calendar.CalendarInfoFromCalendar(updated))
}

func handleDeleteCalendar(ctx context.Context, args map[string]interface{}, client *calendar.Client) (*mcp.CallToolResult, error) {
	calendarID, err := common.RequiredString(args, "calendarId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := client.DeleteCalendar(ctx, calendarID); err != nil {
		return common.ErrorResult("delete calendar", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted calendar %s", calendarID)), nil
}

func handleClearCalendar(ctx context.Context, args map[string]interface{}, client *calendar.Client) (*mcp.CallToolResult, error) {
	calendarID := common.StringArg(args, "calendarId")
	if err := client.ClearCalendar(ctx, calendarID); err != nil {
		return common.ErrorResult("clear calendar", err), nil
	}
	if calendarID == "" {
		calendarID = calendar.PrimaryCalendarID
	}
	return mcp.NewToolResultText(fmt.Sprintf("Cleared all events of calendar %s", calendarID)), nil
}

func handleListSettings(ctx context.Context, _ map[string]interface{}, client *calendar.Client) (*mcp.CallToolResult, error) {
	settings, err := client.ListSettings(ctx)
	if err != nil {
		return common.ErrorResult("list settings", err), nil
	}

	values := make(map[string]string, len(settings))
	for _, s := range settings {
		values[s.Id] = s.Value
	}
	return common.JSONResult(values)
}

func handleGetSetting(ctx context.Context, args map[string]interface{}, client *calendar.Client) (*mcp.CallToolResult, error) {
	settingID, err := common.RequiredString(args, "settingId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	setting, err := client.GetSetting(ctx, settingID)
	if err != nil {
		return common.ErrorResult("get setting", err), nil
	}
	return common.JSONResult(map[string]string{setting.Id: setting.Value})
}
