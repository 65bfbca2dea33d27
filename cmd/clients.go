package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teemow/gapikit/internal/calendar"
	"github.com/teemow/gapikit/internal/gmail"
	"github.com/teemow/gapikit/internal/google"
	"github.com/teemow/gapikit/internal/logging"
)

func tokenProvider() *google.FileTokenProvider {
	dir := cfg.TokenDir
	if dir == "" {
		dir = google.DefaultTokenDir()
	}
	return google.NewFileTokenProvider(dir)
}

func newCalendarClient(cmd *cobra.Command) (*calendar.Client, error) {
	if err := cfg.ValidateCredentials(); err != nil {
		return nil, err
	}
	conf, err := google.OAuthConfig(cfg.ClientID, cfg.ClientSecret)
	if err != nil {
		return nil, err
	}
	return calendar.NewClientForAccount(cmd.Context(), conf, tokenProvider(), cfg.Account,
		calendar.WithTimeZone(cfg.DefaultTimeZone),
		calendar.WithMaxPages(cfg.MaxPages),
		calendar.WithLogger(logging.WithAccount(logger, cfg.Account)),
	)
}

func newGmailClient(cmd *cobra.Command) (*gmail.Client, error) {
	if err := cfg.ValidateCredentials(); err != nil {
		return nil, err
	}
	conf, err := google.OAuthConfig(cfg.ClientID, cfg.ClientSecret)
	if err != nil {
		return nil, err
	}
	return gmail.NewClientForAccount(cmd.Context(), conf, tokenProvider(), cfg.Account,
		gmail.WithUserID(cfg.UserID),
		gmail.WithMaxPages(cfg.MaxPages),
		gmail.WithLogger(logging.WithAccount(logger, cfg.Account)),
	)
}

// printJSON writes v as indented JSON to the command output.
func printJSON(cmd *cobra.Command, v interface{}) error {
	return writeJSON(cmd.OutOrStdout(), v)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

// printDone reports a successful operation that returns no resource.
func printDone(cmd *cobra.Command, format string, args ...interface{}) error {
	_, err := fmt.Fprintf(cmd.OutOrStdout(), format+"\n", args...)
	return err
}

// parseCommaSeparatedList parses a comma-separated string into a slice of strings.
// Empty strings and whitespace-only entries are filtered out.
func parseCommaSeparatedList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
