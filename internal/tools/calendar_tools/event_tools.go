package calendar_tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	calendarapi "google.golang.org/api/calendar/v3"

	"github.com/teemow/gapikit/internal/calendar"
	"github.com/teemow/gapikit/internal/server"
	"github.com/teemow/gapikit/internal/tools/batch"
	"github.com/teemow/gapikit/internal/tools/common"
)

// RegisterEventTools registers event-related tools with the MCP server
func RegisterEventTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	listEventsTool := mcp.NewTool("calendar_list_events",
		mcp.WithDescription("List or search calendar events. All pages are fetched."),
		accountOption,
		calendarIDOption,
		mcp.WithString("query",
			mcp.Description("Free text search terms"),
		),
		mcp.WithString("timeMin",
			mcp.Description("Lower bound for event end times (RFC3339, e.g. '2025-01-01T00:00:00Z')"),
		),
		mcp.WithString("timeMax",
			mcp.Description("Upper bound for event start times (RFC3339)"),
		),
		mcp.WithString("timeZone",
			mcp.Description("Time zone of the returned times (default: UTC)"),
		),
		mcp.WithBoolean("singleEvents",
			mcp.Description("Expand recurring events into their instances"),
		),
		mcp.WithString("orderBy",
			mcp.Description("'startTime' (requires singleEvents) or 'updated'"),
		),
		mcp.WithBoolean("showDeleted",
			mcp.Description("Include cancelled events"),
		),
	)
	addTool(s, sc, listEventsTool, "events.list", handleListEvents)

	upcomingTool := mcp.NewTool("calendar_list_upcoming_events",
		mcp.WithDescription("List the next events starting from now, ordered by start time"),
		accountOption,
		calendarIDOption,
		mcp.WithNumber("maxResults",
			mcp.Description("Number of events to return (default: 10)"),
		),
	)
	addTool(s, sc, upcomingTool, "events.list", handleListUpcomingEvents)

	todayTool := mcp.NewTool("calendar_list_today_events",
		mcp.WithDescription("List the remaining events of today in the configured time zone"),
		accountOption,
		calendarIDOption,
	)
	addTool(s, sc, todayTool, "events.list", handleListTodayEvents)

	instancesTool := mcp.NewTool("calendar_list_instances",
		mcp.WithDescription("List the instances of a recurring event"),
		accountOption,
		calendarIDOption,
		mcp.WithString("eventId",
			mcp.Required(),
			mcp.Description("ID of the recurring event"),
		),
	)
	addTool(s, sc, instancesTool, "events.instances", handleListInstances)

	getEventTool := mcp.NewTool("calendar_get_event",
		mcp.WithDescription("Get details of a specific calendar event"),
		accountOption,
		calendarIDOption,
		mcp.WithString("eventId",
			mcp.Required(),
			mcp.Description("The ID of the event to retrieve"),
		),
	)
	addTool(s, sc, getEventTool, "events.get", handleGetEvent)

	exportTool := mcp.NewTool("calendar_export_ics",
		mcp.WithDescription("Export calendar events as iCalendar (.ics) text"),
		accountOption,
		calendarIDOption,
		mcp.WithString("query",
			mcp.Description("Free text search terms"),
		),
		mcp.WithString("timeMin",
			mcp.Description("Lower bound for event end times (RFC3339)"),
		),
		mcp.WithString("timeMax",
			mcp.Description("Upper bound for event start times (RFC3339)"),
		),
	)
	addTool(s, sc, exportTool, "events.list", handleExportICS)

	// Register write tools only if not in read-only mode
	if readOnly {
		return nil
	}

	createEventTool := mcp.NewTool("calendar_create_event",
		mcp.WithDescription("Create a new calendar event (supports recurrence and Google Meet)"),
		accountOption,
		calendarIDOption,
		mcp.WithString("summary",
			mcp.Required(),
			mcp.Description("Event title/summary"),
		),
		mcp.WithString("description",
			mcp.Description("Event description"),
		),
		mcp.WithString("location",
			mcp.Description("Event location"),
		),
		mcp.WithString("start",
			mcp.Required(),
			mcp.Description("Start time (RFC3339 format, e.g., '2025-01-15T14:00:00Z')"),
		),
		mcp.WithString("end",
			mcp.Required(),
			mcp.Description("End time (RFC3339 format, e.g., '2025-01-15T15:00:00Z')"),
		),
		mcp.WithString("timeZone",
			mcp.Description("Time zone (e.g., 'America/New_York'). Defaults to UTC."),
		),
		mcp.WithString("attendees",
			mcp.Description("Comma-separated list of attendee email addresses"),
		),
		mcp.WithString("recurrence",
			mcp.Description("Recurrence rule (e.g., 'RRULE:FREQ=WEEKLY;BYDAY=MO,WE,FR')"),
		),
		mcp.WithBoolean("allDay",
			mcp.Description("Create as all-day event (ignores time portion of start/end)"),
		),
		mcp.WithBoolean("addGoogleMeet",
			mcp.Description("Automatically add a Google Meet link to the event"),
		),
	)
	addTool(s, sc, createEventTool, "events.insert", handleCreateEvent)

	quickAddTool := mcp.NewTool("calendar_quick_add_event",
		mcp.WithDescription("Create an event from a text description like 'Lunch with Sam tomorrow at noon'"),
		accountOption,
		calendarIDOption,
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Text describing the event"),
		),
	)
	addTool(s, sc, quickAddTool, "events.quick_add", handleQuickAddEvent)

	updateEventTool := mcp.NewTool("calendar_update_event",
		mcp.WithDescription("Update an existing calendar event. Omitted fields keep their value."),
		accountOption,
		calendarIDOption,
		mcp.WithString("eventId",
			mcp.Required(),
			mcp.Description("The ID of the event to update"),
		),
		mcp.WithString("summary",
			mcp.Description("New event title/summary"),
		),
		mcp.WithString("description",
			mcp.Description("New event description"),
		),
		mcp.WithString("location",
			mcp.Description("New event location"),
		),
		mcp.WithString("start",
			mcp.Description("New start time (RFC3339 format)"),
		),
		mcp.WithString("end",
			mcp.Description("New end time (RFC3339 format)"),
		),
		mcp.WithString("timeZone",
			mcp.Description("Time zone (e.g., 'America/New_York')"),
		),
		mcp.WithString("attendees",
			mcp.Description("New comma-separated list of attendee email addresses"),
		),
	)
	addTool(s, sc, updateEventTool, "events.update", handleUpdateEvent)

	moveEventTool := mcp.NewTool("calendar_move_event",
		mcp.WithDescription("Move an event to another calendar"),
		accountOption,
		calendarIDOption,
		mcp.WithString("eventId",
			mcp.Required(),
			mcp.Description("The ID of the event to move"),
		),
		mcp.WithString("destinationCalendarId",
			mcp.Required(),
			mcp.Description("Calendar ID the event is moved to"),
		),
	)
	addTool(s, sc, moveEventTool, "events.move", handleMoveEvent)

	deleteEventsTool := mcp.NewTool("calendar_delete_events",
		mcp.WithDescription("Delete one or more calendar events"),
		accountOption,
		calendarIDOption,
		mcp.WithString("eventIds",
			mcp.Required(),
			mcp.Description("Event ID, or a JSON array of event IDs"),
		),
	)
	addTool(s, sc, deleteEventsTool, "events.delete", handleDeleteEvents)

	importTool := mcp.NewTool("calendar_import_ics",
		mcp.WithDescription("Import the events of iCalendar (.ics) text as private copies"),
		accountOption,
		calendarIDOption,
		mcp.WithString("ics",
			mcp.Required(),
			mcp.Description("iCalendar data containing one or more VEVENTs with a UID"),
		),
	)
	addTool(s, sc, importTool, "events.import", handleImportICS)

	return nil
}

func listOptions(args map[string]interface{}) (calendar.ListEventsOptions, error) {
	timeMin, err := common.TimeArg(args, "timeMin")
	if err != nil {
		return calendar.ListEventsOptions{}, err
	}
	timeMax, err := common.TimeArg(args, "timeMax")
	if err != nil {
		return calendar.ListEventsOptions{}, err
	}
	return calendar.ListEventsOptions{
		Query:        common.StringArg(args, "query"),
		TimeZone:     common.StringArg(args, "timeZone"),
		TimeMin:      timeMin,
		TimeMax:      timeMax,
		SingleEvents: common.BoolArg(args, "singleEvents"),
		OrderBy:      common.StringArg(args, "orderBy"),
		ShowDeleted:  common.BoolArg(args, "showDeleted"),
	}, nil
}

func eventsResult(events []*calendarapi.Event) (*mcp.CallToolResult, error) {
	return common.JSONResult(calendar.ToEventSummaries(events))
}

func handleListEvents(ctx context.Context, args map[string]interface{}, client *calendar.Client) (*mcp.CallToolResult, error) {
	opts, err := listOptions(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	events, err := client.ListEvents(ctx, common.StringArg(args, "calendarId"), opts)
	if err != nil {
		return common.ErrorResult("list events", err), nil
	}
	return eventsResult(events)
}

func handleListUpcomingEvents(ctx context.Context, args map[string]interface{}, client *calendar.Client) (*mcp.CallToolResult, error) {
	n := common.IntArg(args, "maxResults", calendar.DefaultUpcomingEvents)

	events, err := client.ListUpcomingEvents(ctx, common.StringArg(args, "calendarId"), n)
	if err != nil {
		return common.ErrorResult("list upcoming events", err), nil
	}
	return eventsResult(events)
}

func handleListTodayEvents(ctx context.Context, args map[string]interface{}, client *calendar.Client) (*mcp.CallToolResult, error) {
	events, err := client.ListTodayEvents(ctx, common.StringArg(args, "calendarId"))
	if err != nil {
		return common.ErrorResult("list today's events", err), nil
	}
	return eventsResult(events)
}

func handleListInstances(ctx context.Context, args map[string]interface{}, client *calendar.Client) (*mcp.CallToolResult, error) {
	eventID, err := common.RequiredString(args, "eventId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	events, err := client.ListInstances(ctx, common.StringArg(args, "calendarId"), eventID)
	if err != nil {
		return common.ErrorResult("list event instances", err), nil
	}
	return eventsResult(events)
}

func handleGetEvent(ctx context.Context, args map[string]interface{}, client *calendar.Client) (*mcp.CallToolResult, error) {
	eventID, err := common.RequiredString(args, "eventId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	event, err := client.GetEvent(ctx, common.StringArg(args, "calendarId"), eventID)
	if err != nil {
		return common.ErrorResult("get event", err), nil
	}
	return common.JSONResult(calendar.ToEventSummary(event))
}

func handleCreateEvent(ctx context.Context, args map[string]interface{}, client *calendar.Client) (*mcp.CallToolResult, error) {
	start, err := common.TimeArg(args, "start")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	end, err := common.TimeArg(args, "end")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	attendees, err := common.StringListArg(args, "attendees")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	event, err := calendar.BuildEvent(calendar.EventInput{
		Summary:       common.StringArg(args, "summary"),
		Description:   common.StringArg(args, "description"),
		Location:      common.StringArg(args, "location"),
		Start:         start,
		End:           end,
		AllDay:        common.BoolArg(args, "allDay"),
		TimeZone:      common.StringArg(args, "timeZone"),
		Attendees:     attendees,
		AddConference: common.BoolArg(args, "addGoogleMeet"),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid event: %v", err)), nil
	}

	calendarID := common.StringArg(args, "calendarId")
	var created *calendarapi.Event
	if rule := common.StringArg(args, "recurrence"); rule != "" {
		created, err = client.InsertRecurringEvent(ctx, calendarID, event, rule)
	} else {
		created, err = client.InsertEvent(ctx, calendarID, event)
	}
	if err != nil {
		return common.ErrorResult("create event", err), nil
	}
	return common.JSONResult(calendar.ToEventSummary(created))
}

func handleQuickAddEvent(ctx context.Context, args map[string]interface{}, client *calendar.Client) (*mcp.CallToolResult, error) {
	event, err := client.QuickAddEvent(ctx, common.StringArg(args, "calendarId"), common.StringArg(args, "text"))
	if err != nil {
		return common.ErrorResult("quick add event", err), nil
	}
	return common.JSONResult(calendar.ToEventSummary(event))
}

func handleUpdateEvent(ctx context.Context, args map[string]interface{}, client *calendar.Client) (*mcp.CallToolResult, error) {
	eventID, err := common.RequiredString(args, "eventId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	start, err := common.TimeArg(args, "start")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	end, err := common.TimeArg(args, "end")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	attendees, err := common.StringListArg(args, "attendees")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	calendarID := common.StringArg(args, "calendarId")
	event, err := client.GetEvent(ctx, calendarID, eventID)
	if err != nil {
		return common.ErrorResult("get event", err), nil
	}

	if v := common.StringArg(args, "summary"); v != "" {
		event.Summary = v
	}
	if v := common.StringArg(args, "description"); v != "" {
		event.Description = v
	}
	if v := common.StringArg(args, "location"); v != "" {
		event.Location = v
	}
	tz := common.StringArg(args, "timeZone")
	if !start.IsZero() {
		event.Start = patchDateTime(event.Start, start, tz)
	}
	if !end.IsZero() {
		event.End = patchDateTime(event.End, end, tz)
	}
	if attendees != nil {
		event.Attendees = nil
		for _, email := range attendees {
			event.Attendees = append(event.Attendees, &calendarapi.EventAttendee{Email: email})
		}
	}

	updated, err := client.UpdateEvent(ctx, calendarID, eventID, event)
	if err != nil {
		return common.ErrorResult("update event", err), nil
	}
	return common.JSONResult(calendar.ToEventSummary(updated))
}

// patchDateTime sets t on an event time, keeping the all-day or timed form
// of the original.
func patchDateTime(orig *calendarapi.EventDateTime, t time.Time, tz string) *calendarapi.EventDateTime {
	if orig != nil && orig.Date != "" {
		return &calendarapi.EventDateTime{Date: t.Format("2006-01-02")}
	}
	if tz == "" && orig != nil {
		tz = orig.TimeZone
	}
	return &calendarapi.EventDateTime{DateTime: t.Format(time.RFC3339), TimeZone: tz}
}

func handleMoveEvent(ctx context.Context, args map[string]interface{}, client *calendar.Client) (*mcp.CallToolResult, error) {
	eventID, err := common.RequiredString(args, "eventId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	destination, err := common.RequiredString(args, "destinationCalendarId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	moved, err := client.MoveEvent(ctx, common.StringArg(args, "calendarId"), eventID, destination)
	if err != nil {
		return common.ErrorResult("move event", err), nil
	}
	return common.JSONResult(calendar.ToEventSummary(moved))
}

func handleDeleteEvents(ctx context.Context, args map[string]interface{}, client *calendar.Client) (*mcp.CallToolResult, error) {
	eventIDs, err := batch.ParseStringOrArray(args["eventIds"], "eventIds")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	calendarID := common.StringArg(args, "calendarId")
	results := batch.ProcessBatch(ctx, eventIDs, func(ctx context.Context, id string) (string, error) {
		if err := client.DeleteEvent(ctx, calendarID, id); err != nil {
			return "", err
		}
		return "deleted", nil
	})
	return mcp.NewToolResultText(batch.FormatResults(results)), nil
}

func handleImportICS(ctx context.Context, args map[string]interface{}, client *calendar.Client) (*mcp.CallToolResult, error) {
	data, err := common.RequiredString(args, "ics")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	imported, err := client.ImportICS(ctx, common.StringArg(args, "calendarId"), strings.NewReader(data))
	if err != nil {
		msg := fmt.Sprintf("Failed to import events: %v", err)
		if len(imported) > 0 {
			msg += fmt.Sprintf(" (%d events were imported before the failure)", len(imported))
		}
		return mcp.NewToolResultError(msg), nil
	}
	return eventsResult(imported)
}

func handleExportICS(ctx context.Context, args map[string]interface{}, client *calendar.Client) (*mcp.CallToolResult, error) {
	opts, err := listOptions(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var buf strings.Builder
	if err := client.ExportICS(ctx, common.StringArg(args, "calendarId"), opts, &buf); err != nil {
		return common.ErrorResult("export events", err), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}
