package calendar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/emersion/go-ical"
	calendar "google.golang.org/api/calendar/v3"
)

const productID = "-//gapikit//calendar export//EN"

const icalDateLayout = "20060102"

// recurrenceProps are the iCalendar properties carried in Event.Recurrence.
var recurrenceProps = []string{ical.PropRecurrenceRule, "EXRULE", "RDATE", "EXDATE"}

// ParseICS reads every VEVENT of an iCalendar stream. The returned events
// carry their iCalUID and are ready for ImportEvent.
func ParseICS(r io.Reader) ([]*calendar.Event, error) {
	dec := ical.NewDecoder(r)

	events := []*calendar.Event{}
	for {
		cal, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse iCalendar data: %w", err)
		}
		for _, ev := range cal.Events() {
			event, err := fromICalEvent(ev)
			if err != nil {
				return nil, err
			}
			events = append(events, event)
		}
	}
	return events, nil
}

func fromICalEvent(ev ical.Event) (*calendar.Event, error) {
	comp := ev.Component
	uid := propText(comp.Props, ical.PropUID)
	if uid == "" {
		return nil, fmt.Errorf("event without UID")
	}

	event := &calendar.Event{
		ICalUID:     uid,
		Summary:     propText(comp.Props, ical.PropSummary),
		Description: propText(comp.Props, ical.PropDescription),
		Location:    propText(comp.Props, ical.PropLocation),
		Status:      strings.ToLower(propText(comp.Props, ical.PropStatus)),
	}

	var err error
	if event.Start, err = eventDateTime(comp.Props, ical.PropDateTimeStart); err != nil {
		return nil, fmt.Errorf("event %s: %w", uid, err)
	}
	if event.End, err = eventDateTime(comp.Props, ical.PropDateTimeEnd); err != nil {
		return nil, fmt.Errorf("event %s: %w", uid, err)
	}
	if event.End == nil {
		if event.End, err = derivedEnd(ev, event.Start); err != nil {
			return nil, fmt.Errorf("event %s: %w", uid, err)
		}
	}

	for _, name := range recurrenceProps {
		for _, prop := range comp.Props[name] {
			event.Recurrence = append(event.Recurrence, contentLine(prop))
		}
	}
	return event, nil
}

func propText(props ical.Props, name string) string {
	prop := props.Get(name)
	if prop == nil {
		return ""
	}
	text, err := prop.Text()
	if err != nil {
		return prop.Value
	}
	return text
}

func eventDateTime(props ical.Props, name string) (*calendar.EventDateTime, error) {
	prop := props.Get(name)
	if prop == nil {
		if name == ical.PropDateTimeStart {
			return nil, fmt.Errorf("%s is required", name)
		}
		return nil, nil
	}

	t, err := prop.DateTime(time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	if prop.ValueType() == ical.ValueDate {
		return &calendar.EventDateTime{Date: t.Format(dateLayout)}, nil
	}

	edt := &calendar.EventDateTime{DateTime: t.Format(time.RFC3339)}
	if tzid := prop.Params.Get(ical.ParamTimezoneID); tzid != "" {
		edt.TimeZone = tzid
	}
	return edt, nil
}

// derivedEnd computes the end of an event without DTEND: DTSTART plus
// DURATION, or one day after an all-day start, or the start itself.
func derivedEnd(ev ical.Event, start *calendar.EventDateTime) (*calendar.EventDateTime, error) {
	t, err := ev.DateTimeEnd(time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ical.PropDuration, err)
	}
	if start.Date != "" {
		return &calendar.EventDateTime{Date: t.Format(dateLayout)}, nil
	}
	return &calendar.EventDateTime{DateTime: t.Format(time.RFC3339), TimeZone: start.TimeZone}, nil
}

// contentLine renders prop as "NAME;PARAM=VALUE:value", the form Google uses
// for recurrence lines.
func contentLine(prop ical.Prop) string {
	var b strings.Builder
	b.WriteString(prop.Name)

	keys := make([]string, 0, len(prop.Params))
	for k := range prop.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, ";%s=%s", k, strings.Join(prop.Params[k], ","))
	}

	b.WriteString(":")
	b.WriteString(prop.Value)
	return b.String()
}

// parseContentLine is the inverse of contentLine.
func parseContentLine(line string) (ical.Prop, error) {
	head, value, ok := strings.Cut(line, ":")
	if !ok {
		return ical.Prop{}, fmt.Errorf("invalid recurrence line %q", line)
	}
	parts := strings.Split(head, ";")
	prop := ical.NewProp(strings.ToUpper(parts[0]))
	for _, param := range parts[1:] {
		k, v, ok := strings.Cut(param, "=")
		if !ok {
			return ical.Prop{}, fmt.Errorf("invalid recurrence parameter %q", param)
		}
		prop.Params.Set(strings.ToUpper(k), v)
	}
	prop.Value = value
	return *prop, nil
}

// EncodeICS writes events as a single iCalendar object. Events without an
// iCalUID get one derived from their ID.
func EncodeICS(w io.Writer, events []*calendar.Event) error {
	return encodeICS(w, events, time.Now().UTC())
}

func encodeICS(w io.Writer, events []*calendar.Event, stamp time.Time) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	for _, event := range events {
		if event == nil {
			continue
		}
		comp, err := toICalEvent(event, stamp)
		if err != nil {
			return err
		}
		cal.Children = append(cal.Children, comp)
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("failed to encode iCalendar data: %w", err)
	}
	return nil
}

func toICalEvent(event *calendar.Event, stamp time.Time) (*ical.Component, error) {
	uid := event.ICalUID
	if uid == "" {
		if event.Id == "" {
			return nil, fmt.Errorf("event has neither iCalUID nor ID")
		}
		uid = event.Id + "@google.com"
	}

	ev := ical.NewEvent()
	ev.Props.SetText(ical.PropUID, uid)
	ev.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
	setText(ev.Props, ical.PropSummary, event.Summary)
	setText(ev.Props, ical.PropDescription, event.Description)
	setText(ev.Props, ical.PropLocation, event.Location)
	setText(ev.Props, ical.PropStatus, strings.ToUpper(event.Status))

	if err := setDateTime(ev.Props, ical.PropDateTimeStart, event.Start); err != nil {
		return nil, fmt.Errorf("event %s: %w", uid, err)
	}
	if err := setDateTime(ev.Props, ical.PropDateTimeEnd, event.End); err != nil {
		return nil, fmt.Errorf("event %s: %w", uid, err)
	}

	for _, line := range event.Recurrence {
		prop, err := parseContentLine(line)
		if err != nil {
			return nil, fmt.Errorf("event %s: %w", uid, err)
		}
		ev.Props.Add(&prop)
	}
	return ev.Component, nil
}

func setText(props ical.Props, name, value string) {
	if value != "" {
		props.SetText(name, value)
	}
}

func setDateTime(props ical.Props, name string, edt *calendar.EventDateTime) error {
	if edt == nil {
		return nil
	}
	if edt.Date != "" {
		t, err := time.Parse(dateLayout, edt.Date)
		if err != nil {
			return fmt.Errorf("invalid %s date: %w", name, err)
		}
		prop := ical.NewProp(name)
		prop.Params.Set(ical.ParamValue, string(ical.ValueDate))
		prop.Value = t.Format(icalDateLayout)
		props.Set(prop)
		return nil
	}
	if edt.DateTime == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, edt.DateTime)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	// Keep the wall clock of recurring events stable across DST changes.
	if edt.TimeZone != "" {
		if loc, err := time.LoadLocation(edt.TimeZone); err == nil {
			props.SetDateTime(name, t.In(loc))
			return nil
		}
	}
	props.SetDateTime(name, t.UTC())
	return nil
}

// ImportICS imports every event of an iCalendar stream into a calendar. It
// stops at the first failure and returns the events imported so far along
// with the error.
func (c *Client) ImportICS(ctx context.Context, calendarID string, r io.Reader) ([]*calendar.Event, error) {
	events, err := ParseICS(r)
	if err != nil {
		return nil, err
	}

	imported := make([]*calendar.Event, 0, len(events))
	for _, event := range events {
		ev, err := c.ImportEvent(ctx, calendarID, event)
		if err != nil {
			return imported, fmt.Errorf("event %s: %w", event.ICalUID, err)
		}
		imported = append(imported, ev)
	}
	return imported, nil
}

// ExportICS writes the events of a calendar matching opts as iCalendar data.
func (c *Client) ExportICS(ctx context.Context, calendarID string, opts ListEventsOptions, w io.Writer) error {
	events, err := c.ListEvents(ctx, calendarID, opts)
	if err != nil {
		return err
	}
	return EncodeICS(w, events)
}
