package google

import (
	calendar "google.golang.org/api/calendar/v3"
	gmail "google.golang.org/api/gmail/v1"
)

// DefaultOAuthScopes cover every Calendar and Gmail helper, including
// permanent message deletion which needs the full mail scope.
var DefaultOAuthScopes = []string{
	calendar.CalendarScope,
	gmail.MailGoogleComScope,
}
