package calendar

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	calendar "google.golang.org/api/calendar/v3"
)

const dateLayout = "2006-01-02"

// EventInput is the flat description of an event used by the CLI and the MCP
// tools. BuildEvent turns it into an API event.
type EventInput struct {
	Summary     string    `json:"summary" validate:"required"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Start       time.Time `json:"start" validate:"required"`
	End         time.Time `json:"end" validate:"required"`

	// AllDay uses only the date parts of Start and End.
	AllDay bool `json:"all_day,omitempty"`

	// TimeZone for timed events. Defaults to UTC.
	TimeZone string `json:"time_zone,omitempty" validate:"omitempty,timezone"`

	Attendees []string `json:"attendees,omitempty" validate:"dive,email"`

	// AddConference requests a Google Meet link.
	AddConference bool `json:"add_conference,omitempty"`
}

// BuildEvent validates input and converts it into an API event.
func BuildEvent(input EventInput) (*calendar.Event, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	if input.End.Before(input.Start) {
		return nil, fmt.Errorf("end must not be before start")
	}

	event := &calendar.Event{
		Summary:     input.Summary,
		Description: input.Description,
		Location:    input.Location,
	}

	if input.AllDay {
		event.Start = &calendar.EventDateTime{Date: input.Start.Format(dateLayout)}
		event.End = &calendar.EventDateTime{Date: input.End.Format(dateLayout)}
	} else {
		tz := input.TimeZone
		if tz == "" {
			tz = "UTC"
		}
		event.Start = &calendar.EventDateTime{DateTime: input.Start.Format(time.RFC3339), TimeZone: tz}
		event.End = &calendar.EventDateTime{DateTime: input.End.Format(time.RFC3339), TimeZone: tz}
	}

	for _, email := range input.Attendees {
		event.Attendees = append(event.Attendees, &calendar.EventAttendee{Email: email})
	}

	if input.AddConference {
		event.ConferenceData = &calendar.ConferenceData{
			CreateRequest: &calendar.CreateConferenceRequest{
				RequestId: uuid.NewString(),
				ConferenceSolutionKey: &calendar.ConferenceSolutionKey{
					Type: "hangoutsMeet",
				},
			},
		}
	}

	return event, nil
}

// EventSummary is a compact view of an event.
type EventSummary struct {
	ID          string         `json:"id"`
	Summary     string         `json:"summary,omitempty"`
	Description string         `json:"description,omitempty"`
	Location    string         `json:"location,omitempty"`
	Start       time.Time      `json:"start"`
	End         time.Time      `json:"end"`
	AllDay      bool           `json:"all_day,omitempty"`
	Status      string         `json:"status,omitempty"`
	Organizer   string         `json:"organizer,omitempty"`
	Recurrence  []string       `json:"recurrence,omitempty"`
	RecurringID string         `json:"recurring_event_id,omitempty"`
	Attendees   []AttendeeInfo `json:"attendees,omitempty"`
	MeetLink    string         `json:"meet_link,omitempty"`
	HTMLLink    string         `json:"html_link,omitempty"`
}

// AttendeeInfo describes one event attendee.
type AttendeeInfo struct {
	Email          string `json:"email"`
	DisplayName    string `json:"display_name,omitempty"`
	ResponseStatus string `json:"response_status,omitempty"`
	Optional       bool   `json:"optional,omitempty"`
	Organizer      bool   `json:"organizer,omitempty"`
}

// CalendarInfo is a compact view of a calendar or calendar list entry.
type CalendarInfo struct {
	ID          string `json:"id"`
	Summary     string `json:"summary"`
	Description string `json:"description,omitempty"`
	TimeZone    string `json:"time_zone,omitempty"`
	Primary     bool   `json:"primary,omitempty"`
	AccessRole  string `json:"access_role,omitempty"`
}

// ACLRuleInfo is a compact view of an access control rule.
type ACLRuleInfo struct {
	ID         string `json:"id"`
	Role       string `json:"role"`
	ScopeType  string `json:"scope_type,omitempty"`
	ScopeValue string `json:"scope_value,omitempty"`
}

// ToEventSummary converts an API event. A nil event yields the zero value.
func ToEventSummary(event *calendar.Event) EventSummary {
	if event == nil {
		return EventSummary{}
	}

	summary := EventSummary{
		ID:          event.Id,
		Summary:     event.Summary,
		Description: event.Description,
		Location:    event.Location,
		Status:      event.Status,
		Recurrence:  event.Recurrence,
		RecurringID: event.RecurringEventId,
		HTMLLink:    event.HtmlLink,
	}
	summary.Start, summary.AllDay = parseEventTime(event.Start)
	summary.End, _ = parseEventTime(event.End)

	if event.Organizer != nil {
		summary.Organizer = event.Organizer.Email
	}
	for _, att := range event.Attendees {
		if att == nil {
			continue
		}
		summary.Attendees = append(summary.Attendees, AttendeeInfo{
			Email:          att.Email,
			DisplayName:    att.DisplayName,
			ResponseStatus: att.ResponseStatus,
			Optional:       att.Optional,
			Organizer:      att.Organizer,
		})
	}
	if event.ConferenceData != nil {
		for _, ep := range event.ConferenceData.EntryPoints {
			if ep != nil && ep.EntryPointType == "video" {
				summary.MeetLink = ep.Uri
				break
			}
		}
	}
	return summary
}

// ToEventSummaries converts a list of events, preserving order.
func ToEventSummaries(events []*calendar.Event) []EventSummary {
	out := make([]EventSummary, 0, len(events))
	for _, e := range events {
		out = append(out, ToEventSummary(e))
	}
	return out
}

func parseEventTime(edt *calendar.EventDateTime) (time.Time, bool) {
	if edt == nil {
		return time.Time{}, false
	}
	if edt.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, edt.DateTime); err == nil {
			return t, false
		}
	}
	if edt.Date != "" {
		if t, err := time.Parse(dateLayout, edt.Date); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ToCalendarInfo converts a calendar list entry. A nil entry yields the zero value.
func ToCalendarInfo(entry *calendar.CalendarListEntry) CalendarInfo {
	if entry == nil {
		return CalendarInfo{}
	}
	return CalendarInfo{
		ID:          entry.Id,
		Summary:     entry.Summary,
		Description: entry.Description,
		TimeZone:    entry.TimeZone,
		Primary:     entry.Primary,
		AccessRole:  entry.AccessRole,
	}
}

// CalendarInfoFromCalendar converts calendar metadata. A nil calendar yields
// the zero value.
func CalendarInfoFromCalendar(cal *calendar.Calendar) CalendarInfo {
	if cal == nil {
		return CalendarInfo{}
	}
	return CalendarInfo{
		ID:          cal.Id,
		Summary:     cal.Summary,
		Description: cal.Description,
		TimeZone:    cal.TimeZone,
	}
}

// ToACLRuleInfo converts an access control rule. A nil rule yields the zero value.
func ToACLRuleInfo(rule *calendar.AclRule) ACLRuleInfo {
	if rule == nil {
		return ACLRuleInfo{}
	}
	info := ACLRuleInfo{ID: rule.Id, Role: rule.Role}
	if rule.Scope != nil {
		info.ScopeType = rule.Scope.Type
		info.ScopeValue = rule.Scope.Value
	}
	return info
}
