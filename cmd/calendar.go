package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	calendarapi "google.golang.org/api/calendar/v3"

	"github.com/teemow/gapikit/internal/calendar"
)

var calendarID string

func newCalendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Google Calendar operations",
		Long: `Run Google Calendar operations and print the result as JSON.

List operations return every page of the collection.`,
	}
	cmd.PersistentFlags().StringVar(&calendarID, "calendar", "primary", "Calendar ID")

	cmd.AddCommand(newACLCmd())
	cmd.AddCommand(newCalendarListCmd())
	cmd.AddCommand(newCalendarsCmd())
	cmd.AddCommand(newEventsCmd())
	cmd.AddCommand(newSettingsCmd())
	return cmd
}

// calendarRun adapts fn into a cobra RunE with a ready client.
func calendarRun(fn func(cmd *cobra.Command, c *calendar.Client, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c, err := newCalendarClient(cmd)
		if err != nil {
			return err
		}
		return fn(cmd, c, args)
	}
}

func newACLCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "acl", Short: "Access control rules of a calendar"}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all access control rules",
		Args:  cobra.NoArgs,
		RunE: calendarRun(func(cmd *cobra.Command, c *calendar.Client, _ []string) error {
			rules, err := c.ListACL(cmd.Context(), calendarID)
			if err != nil {
				return err
			}
			infos := make([]calendar.ACLRuleInfo, 0, len(rules))
			for _, r := range rules {
				infos = append(infos, calendar.ToACLRuleInfo(r))
			}
			return printJSON(cmd, infos)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <rule-id>",
		Short: "Show an access control rule",
		Args:  cobra.ExactArgs(1),
		RunE: calendarRun(func(cmd *cobra.Command, c *calendar.Client, args []string) error {
			rule, err := c.GetACL(cmd.Context(), calendarID, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, calendar.ToACLRuleInfo(rule))
		}),
	})

	var input calendar.ACLInput
	insert := &cobra.Command{
		Use:   "insert",
		Short: "Grant access to a calendar",
		Args:  cobra.NoArgs,
		RunE: calendarRun(func(cmd *cobra.Command, c *calendar.Client, _ []string) error {
			rule, err := c.InsertACL(cmd.Context(), calendarID, input)
			if err != nil {
				return err
			}
			return printJSON(cmd, calendar.ToACLRuleInfo(rule))
		}),
	}
	insert.Flags().StringVar(&input.ScopeType, "scope-type", "user", "Scope type: default, user, group or domain")
	insert.Flags().StringVar(&input.ScopeValue, "scope-value", "", "Email address or domain of the grantee")
	insert.Flags().StringVar(&input.Role, "role", "reader", "Role: none, freeBusyReader, reader, writer or owner")
	cmd.AddCommand(insert)

	var role string
	update := &cobra.Command{
		Use:   "update <rule-id>",
		Short: "Change the role of an access control rule",
		Args:  cobra.ExactArgs(1),
		RunE: calendarRun(func(cmd *cobra.Command, c *calendar.Client, args []string) error {
			rule, err := c.UpdateACL(cmd.Context(), calendarID, args[0], role)
			if err != nil {
				return err
			}
			return printJSON(cmd, calendar.ToACLRuleInfo(rule))
		}),
	}
	update.Flags().StringVar(&role, "role", "", "New role")
	_ = update.MarkFlagRequired("role")
	cmd.AddCommand(update)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <rule-id>",
		Short: "Delete an access control rule",
		Args:  cobra.ExactArgs(1),
		RunE: calendarRun(func(cmd *cobra.Command, c *calendar.Client, args []string) error {
			if err := c.DeleteACL(cmd.Context(), calendarID, args[0]); err != nil {
				return err
			}
			return printDone(cmd, "Deleted rule %s", args[0])
		}),
	})

	return cmd
}

func newCalendarListCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "calendarlist", Short: "Calendars on the user's calendar list"}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all calendars on the calendar list",
		Args:  cobra.NoArgs,
		RunE: calendarRun(func(cmd *cobra.Command, c *calendar.Client, _ []string) error {
			entries, err := c.ListCalendarList(cmd.Context())
			if err != nil {
				return err
			}
			infos := make([]calendar.CalendarInfo, 0, len(entries))
			for _, e := range entries {
				infos = append(infos, calendar.ToCalendarInfo(e))
			}
			return printJSON(cmd, infos)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <calendar-id>",
		Short: "Show a calendar list entry",
		Args:  cobra.ExactArgs(1),
		RunE: calendarRun(func(cmd *cobra.Command, c *calendar.Client, args []string) error {
			entry, err := c.GetCalendarListEntry(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, entry)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "insert <calendar-id>",
		Short: "Add an existing calendar to the calendar list",
		Args:  cobra.ExactArgs(1),
		RunE: calendarRun(func(cmd *cobra.Command, c *calendar.Client, args []string) error {
			entry, err := c.InsertCalendarListEntry(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, calendar.ToCalendarInfo(entry))
		}),
	})

	var (
		summaryOverride string
		colorID         string
		hidden          bool
	)
	update := &cobra.Command{
		Use:   "update <calendar-id>",
		Short: "Change how a calendar appears on the calendar list",
		Args:  cobra.ExactArgs(1),
		RunE: calendarRun(func(cmd *cobra.Command, c *calendar.Client, args []string) error {
			entry, err := c.GetCalendarListEntry(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("summary-override") {
				entry.SummaryOverride = summaryOverride
			}
			if cmd.Flags().Changed("color-id") {
				entry.ColorId = colorID
			}
			if cmd.Flags().Changed("hidden") {
				entry.Hidden = hidden
				entry.ForceSendFields = append(entry.ForceSendFields, "Hidden")
			}
			updated, err := c.UpdateCalendarListEntry(cmd.Context(), args[0], entry)
			if err != nil {
				return err
			}
			return printJSON(cmd, updated)
		}),
	}
	update.Flags().StringVar(&summaryOverride, "summary-override", "", "Name shown instead of the calendar summary")
	update.Flags().StringVar(&colorID, "color-id", "", "Color of the calendar")
	update.Flags().BoolVar(&hidden, "hidden", false, "Hide the calendar from the list")
	cmd.AddCommand(update)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <calendar-id>",
		Short: "Remove a calendar from the calendar list",
		Args:  cobra.ExactArgs(1),
		RunE: calendarRun(func(cmd *cobra.Command, c *calendar.Client, args []string) error {
			if err := c.DeleteCalendarListEntry(cmd.Context(), args[0]); err != nil {
				return err
			}
			return printDone(cmd, "Removed %s from the calendar list", args[0])
		}),
	})

	return cmd
}

func newCalendarsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "calendars", Short: "Secondary calendars (uses --calendar)"}

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Show calendar metadata",
		Args:  cobra.NoArgs,
		RunE: calendarRun(func(cmd *cobra.Command, c *calendar.Client, _ []string) error {
			cal, err := c.GetCalendar(cmd.Context(), calendarID)
			if err != nil {
				return err
			}
			return printJSON(cmd, calendar.CalendarInfoFromCalendar(cal))
		}),
	})

	var timeZone string
	create := &cobra.Command{
		Use:   "create <summary>",
		Short: "Create a secondary calendar",
		Args:  cobra.ExactArgs(1),
		RunE: calendarRun(func(cmd *cobra.Command, c *calendar.Client, args []string) error {
			cal, err := c.InsertCalendar(cmd.Context(), args[0], timeZone)
			if err != nil {
				return err
			}
			return printJSON(cmd, calendar.CalendarInfoFromCalendar(cal))
		}),
	}
	create.Flags().StringVar(&timeZone, "time-zone", "", "IANA time zone (default: from config)")
	cmd.AddCommand(create)

	var summary, description, location string
	update := &cobra.Command{
		Use:   "update",
		Short: "Change calendar metadata",
		Args:  cobra.NoArgs,
		RunE: calendarRun(func(cmd *cobra.Command, c *calendar.Client, _ []string) error {
			cal, err := c.GetCalendar(cmd.Context(), calendarID)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("summary") {
				cal.Summary = summary
			}
			if cmd.Flags().Changed("description") {
				cal.Description = description
			}
			if cmd.Flags().Changed("location") {
				cal.Location = location
			}
			if cmd.Flags().Changed("time-zone") {
				cal.TimeZone = timeZone
			}
			updated, err := c.UpdateCalendar(cmd.Context(), calendarID, cal)
			if err != nil {
				return err
			}
			return printJSON(cmd, calendar.CalendarInfoFromCalendar(updated))
		}),
	}
	update.Flags().StringVar(&summary, "summary", "", "Title of the calendar")
	update.Flags().StringVar(&description, "description", "", "Description of the calendar")
	update.Flags().StringVar(&location, "location", "", "Geographic location of the calendar")
	update.Flags().StringVar(&timeZone, "time-zone", "", "IANA time zone")
	cmd.AddCommand(update)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete",
		Short: "Delete a secondary calendar",
		Args:  cobra.NoArgs,
		RunE: calendarRun(func(cmd *cobra.Command, c *calendar.Client, _ []string) error {
			if err := c.DeleteCalendar(cmd.Context(), calendarID); err != nil {
				return err
			}
			return printDone(cmd, "Deleted calendar %s", calendarID)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all events of a calendar",
		Args:  cobra.NoArgs,
		RunE: calendarRun(func(cmd *cobra.Command, c *calendar.Client, _ []string) error {
			if err := c.ClearCalendar(cmd.Context(), calendarID); err != nil {
				return err
			}
			return printDone(cmd, "Cleared calendar %s", calendarID)
		}),
	})

	return cmd
}

// listFlags binds the ListEvents filter flags.
type listFlags struct {
	query, timeZone, from, to, orderBy string
	singleEvents, showDeleted          bool
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.query, "query", "q", "", "Free text search")
	cmd.Flags().StringVar(&f.timeZone, "time-zone", "", "Time zone of the returned times (default: UTC)")
	cmd.Flags().StringVar(&f.from, "from", "", "Lower bound of event end time (RFC3339 or YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "Upper bound of event start time (RFC3339 or YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.orderBy, "order-by", "", "startTime or updated")
	cmd.Flags().BoolVar(&f.singleEvents, "single-events", false, "Expand recurring events into instances")
	cmd.Flags().BoolVar(&f.showDeleted, "show-deleted", false, "Include cancelled events")
}

func (f *listFlags) options() (calendar.ListEventsOptions, error) {
	opts := calendar.ListEventsOptions{
		Query:        f.query,
		TimeZone:     f.timeZone,
		OrderBy:      f.orderBy,
		SingleEvents: f.singleEvents,
		ShowDeleted:  f.showDeleted,
	}
	var err error
	if f.from != "" {
		if opts.TimeMin, err = parseTimeFlag("from", f.from); err != nil {
			return opts, err
		}
	}
	if f.to != "" {
		if opts.TimeMax, err = parseTimeFlag("to", f.to); err != nil {
			return opts, err
		}
	}
	return opts, nil
}

// parseTimeFlag accepts RFC3339 or a plain date in the configured time zone.
func parseTimeFlag(name, value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, cfg.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s %q: expected RFC3339 or YYYY-MM-DD", name, value)
	}
	return t, nil
}

func newEventsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "events", Short: "Events of a calendar (uses --calendar)"}

	var lf listFlags
	list := &cobra.Command{
		Use:   "list",
		Short: "List all matching events",
		Args:  cobra.NoArgs,
		RunE: calendarRun(func(cmd *cobra.Command, c *calendar.Client, _ []string) error {
			opts, err := lf.options()
			if err != nil {
				return err
			}
			events, err := c.ListEvents(cmd.Context(), calendarID, opts)
			if err != nil {
				return err
			}
			return printJSON(cmd, calendar.ToEventSummaries(events))
		}),
	}
	lf.register(list)
	cmd.AddCommand(list)

	var n int
	upcoming := &cobra.Command{
		Use:   "upcoming",
		Short: "List the next events starting from now",
		Args:  cobra.NoArgs,
		RunE: calendarRun(func(cmd *cobra.Command, c *calendar.Client, _ []string) error {
			events, err := c.ListUpcomingEvents(cmd.Context(), calendarID, n)
			if err != nil {
				return err
			}
			return printJSON(cmd, calendar.ToEventSummaries(events))
		}),
	}
	upcoming.Flags().IntVarP(&n, "max", "n", 10, "Number of events")
	cmd.AddCommand(upcoming)

	cmd.AddCommand(&cobra.Command{
		Use:   "today",
		Short: "List the remaining events of today",
		Args:  cobra.NoArgs,
		RunE: calendarRun(func(cmd *cobra.Command, c *calendar.Client, _ []string) error {
			events, err := c.ListTodayEvents(cmd.Context(), calendarID)
			if err != nil {
				return err
			}
			return printJSON(cmd, calendar.ToEventSummaries(events))
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "instances <event-id>",
		Short: "List all instances of a recurring event",
		Args:  cobra.ExactArgs(1),
		RunE: calendarRun(func(cmd *cobra.Command, c *calendar.Client, args []string) error {
			events, err := c.ListInstances(cmd.Context(), calendarID, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, calendar.ToEventSummaries(events))
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <event-id>",
		Short: "Show an event",
		Args:  cobra.ExactArgs(1),
		RunE: calendarRun(func(cmd *cobra.Command, c *calendar.Client, args []string) error {
			event, err := c.GetEvent(cmd.Context(), calendarID, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, calendar.ToEventSummary(event))
		}),
	})

	cmd.AddCommand(newEventCreateCmd())
	cmd.AddCommand(newEventUpdateCmd())

	cmd.AddCommand(&cobra.Command{
		Use:   "quick-add <text>",
		Short: "Create an event from a text like 'Lunch with Ada tomorrow 12pm'",
		Args:  cobra.ExactArgs(1),
		RunE: calendarRun(func(cmd *cobra.Command, c *calendar.Client, args []string) error {
			event, err := c.QuickAddEvent(cmd.Context(), calendarID, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, calendar.ToEventSummary(event))
		}),
	})

	var destination string
	move := &cobra.Command{
		Use:   "move <event-id>",
		Short: "Move an event to another calendar",
		Args:  cobra.ExactArgs(1),
		RunE: calendarRun(func(cmd *cobra.Command, c *calendar.Client, args []string) error {
			event, err := c.MoveEvent(cmd.Context(), calendarID, args[0], destination)
			if err != nil {
				return err
			}
			return printJSON(cmd, calendar.ToEventSummary(event))
		}),
	}
	move.Flags().StringVar(&destination, "to", "", "Destination calendar ID")
	_ = move.MarkFlagRequired("to")
	cmd.AddCommand(move)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <event-id>",
		Short: "Delete an event",
		Args:  cobra.ExactArgs(1),
		RunE: calendarRun(func(cmd *cobra.Command, c *calendar.Client, args []string) error {
			if err := c.DeleteEvent(cmd.Context(), calendarID, args[0]); err != nil {
				return err
			}
			return printDone(cmd, "Deleted event %s", args[0])
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "import <file.ics>",
		Short: "Import the events of an iCalendar file as private copies",
		Args:  cobra.ExactArgs(1),
		RunE: calendarRun(func(cmd *cobra.Command, c *calendar.Client, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			events, err := c.ImportICS(cmd.Context(), calendarID, f)
			if err != nil {
				return fmt.Errorf("imported %d events before failing: %w", len(events), err)
			}
			return printJSON(cmd, calendar.ToEventSummaries(events))
		}),
	})

	var ef listFlags
	var output string
	export := &cobra.Command{
		Use:   "export",
		Short: "Write matching events as iCalendar data",
		Args:  cobra.NoArgs,
		RunE: calendarRun(func(cmd *cobra.Command, c *calendar.Client, _ []string) error {
			opts, err := ef.options()
			if err != nil {
				return err
			}
			if output == "" {
				return c.ExportICS(cmd.Context(), calendarID, opts, cmd.OutOrStdout())
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := c.ExportICS(cmd.Context(), calendarID, opts, f); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		}),
	}
	ef.register(export)
	export.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	cmd.AddCommand(export)

	return cmd
}

// eventFlags binds the flags shared by event create and update.
type eventFlags struct {
	summary, description, location string
	start, end, timeZone           string
	attendees                      string
	allDay, meet                   bool
}

func (f *eventFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.summary, "summary", "", "Title of the event")
	cmd.Flags().StringVar(&f.description, "description", "", "Description")
	cmd.Flags().StringVar(&f.location, "location", "", "Location")
	cmd.Flags().StringVar(&f.start, "start", "", "Start (RFC3339 or YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.end, "end", "", "End (RFC3339 or YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.timeZone, "time-zone", "", "IANA time zone of a timed event")
	cmd.Flags().StringVar(&f.attendees, "attendees", "", "Comma-separated attendee emails")
	cmd.Flags().BoolVar(&f.allDay, "all-day", false, "Create an all-day event")
	cmd.Flags().BoolVar(&f.meet, "meet", false, "Add a Google Meet link")
}

func (f *eventFlags) input() (calendar.EventInput, error) {
	in := calendar.EventInput{
		Summary:       f.summary,
		Description:   f.description,
		Location:      f.location,
		AllDay:        f.allDay,
		TimeZone:      f.timeZone,
		Attendees:     parseCommaSeparatedList(f.attendees),
		AddConference: f.meet,
	}
	var err error
	if in.Start, err = parseTimeFlag("start", f.start); err != nil {
		return in, err
	}
	if in.End, err = parseTimeFlag("end", f.end); err != nil {
		return in, err
	}
	return in, nil
}

func newEventCreateCmd() *cobra.Command {
	var (
		ef         eventFlags
		recurrence string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an event",
		Args:  cobra.NoArgs,
		RunE: calendarRun(func(cmd *cobra.Command, c *calendar.Client, _ []string) error {
			in, err := ef.input()
			if err != nil {
				return err
			}
			event, err := calendar.BuildEvent(in)
			if err != nil {
				return err
			}

			var created *calendarapi.Event
			if recurrence != "" {
				created, err = c.InsertRecurringEvent(cmd.Context(), calendarID, event, recurrence)
			} else {
				created, err = c.InsertEvent(cmd.Context(), calendarID, event)
			}
			if err != nil {
				return err
			}
			return printJSON(cmd, calendar.ToEventSummary(created))
		}),
	}
	ef.register(cmd)
	cmd.Flags().StringVar(&recurrence, "recurrence", "", "Recurrence rule, e.g. FREQ=WEEKLY;COUNT=4")
	_ = cmd.MarkFlagRequired("summary")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func newEventUpdateCmd() *cobra.Command {
	var ef eventFlags
	cmd := &cobra.Command{
		Use:   "update <event-id>",
		Short: "Change fields of an event, keeping the others",
		Args:  cobra.ExactArgs(1),
		RunE: calendarRun(func(cmd *cobra.Command, c *calendar.Client, args []string) error {
			event, err := c.GetEvent(cmd.Context(), calendarID, args[0])
			if err != nil {
				return err
			}
			changed := cmd.Flags().Changed
			if changed("summary") {
				event.Summary = ef.summary
			}
			if changed("description") {
				event.Description = ef.description
			}
			if changed("location") {
				event.Location = ef.location
			}
			if changed("start") {
				if event.Start, err = eventTime(ef, "start", ef.start, event.Start); err != nil {
					return err
				}
			}
			if changed("end") {
				if event.End, err = eventTime(ef, "end", ef.end, event.End); err != nil {
					return err
				}
			}
			if changed("attendees") {
				event.Attendees = nil
				for _, email := range parseCommaSeparatedList(ef.attendees) {
					event.Attendees = append(event.Attendees, &calendarapi.EventAttendee{Email: email})
				}
			}

			updated, err := c.UpdateEvent(cmd.Context(), calendarID, args[0], event)
			if err != nil {
				return err
			}
			return printJSON(cmd, calendar.ToEventSummary(updated))
		}),
	}
	ef.register(cmd)
	return cmd
}

// eventTime converts a start or end flag, keeping the all-day or timed form
// of the existing value unless --all-day is given.
func eventTime(ef eventFlags, name, value string, current *calendarapi.EventDateTime) (*calendarapi.EventDateTime, error) {
	t, err := parseTimeFlag(name, value)
	if err != nil {
		return nil, err
	}
	allDay := ef.allDay || (current != nil && current.Date != "")
	if allDay {
		return &calendarapi.EventDateTime{Date: t.Format("2006-01-02")}, nil
	}
	tz := ef.timeZone
	if tz == "" && current != nil {
		tz = current.TimeZone
	}
	return &calendarapi.EventDateTime{DateTime: t.Format(time.RFC3339), TimeZone: tz}, nil
}

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "settings", Short: "User settings"}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all user settings",
		Args:  cobra.NoArgs,
		RunE: calendarRun(func(cmd *cobra.Command, c *calendar.Client, _ []string) error {
			settings, err := c.ListSettings(cmd.Context())
			if err != nil {
				return err
			}
			out := make(map[string]string, len(settings))
			for _, s := range settings {
				out[s.Id] = s.Value
			}
			return printJSON(cmd, out)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <setting-id>",
		Short: "Show a user setting",
		Args:  cobra.ExactArgs(1),
		RunE: calendarRun(func(cmd *cobra.Command, c *calendar.Client, args []string) error {
			s, err := c.GetSetting(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]string{s.Id: s.Value})
		}),
	})

	return cmd
}
