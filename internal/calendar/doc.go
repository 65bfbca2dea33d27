// Package calendar provides thin helpers over the Google Calendar v3 API.
//
// A Client wraps an injected *calendar.Service and exposes one method per API
// operation for ACL rules, the calendar list, calendars, events and settings.
// List helpers follow continuation tokens until the collection is complete
// and return every item in server order. If any page fails, they return the
// error and no partial result.
//
// Every call is traced, counted and logged at debug level.
//
// ParseICS and EncodeICS convert between API events and iCalendar data, so
// events can be imported from and exported to .ics files.
//
// Example usage:
//
//	svc, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
//	if err != nil {
//	    return err
//	}
//	client, err := gcal.NewClient(svc, gcal.WithTimeZone("Europe/Berlin"))
//	if err != nil {
//	    return err
//	}
//
//	rules, err := client.ListACL(ctx, "primary")
package calendar
