// Package calendar_tools provides MCP (Model Context Protocol) tools for Google Calendar operations.
//
// Every calendar helper of the calendar package is exposed as a tool:
//
//   - ACL: calendar_acl_list, calendar_acl_get, calendar_acl_insert, calendar_acl_update, calendar_acl_delete
//   - Calendar list: calendar_list_calendars, calendar_list_get_entry, calendar_list_insert_entry,
//     calendar_list_update_entry, calendar_list_delete_entry
//   - Calendars: calendar_get_calendar, calendar_create_calendar, calendar_update_calendar,
//     calendar_delete_calendar, calendar_clear_calendar
//   - Events: calendar_list_events, calendar_list_upcoming_events, calendar_list_today_events,
//     calendar_list_instances, calendar_get_event, calendar_create_event, calendar_quick_add_event,
//     calendar_update_event, calendar_move_event, calendar_delete_events
//   - iCalendar: calendar_import_ics, calendar_export_ics
//   - Settings: calendar_list_settings, calendar_get_setting
//
// Tools that modify data are not registered in read-only mode. Results are
// JSON documents built from the summary types of the calendar package.
package calendar_tools
