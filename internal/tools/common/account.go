package common

import (
	"github.com/teemow/gapikit/internal/calendar"
	"github.com/teemow/gapikit/internal/gmail"
	"github.com/teemow/gapikit/internal/server"
)

// GetAccountFromArgs extracts the account name from request arguments.
//
// Priority order:
//  1. Explicit "account" argument in request
//  2. defaultAccount
func GetAccountFromArgs(args map[string]interface{}, defaultAccount string) string {
	if accountVal, ok := args["account"].(string); ok && accountVal != "" {
		return accountVal
	}
	return defaultAccount
}

// CalendarClient returns the Calendar client for the account named in args.
func CalendarClient(sc *server.ServerContext, args map[string]interface{}) (*calendar.Client, error) {
	return sc.CalendarClientForAccount(GetAccountFromArgs(args, sc.DefaultAccount()))
}

// GmailClient returns the Gmail client for the account named in args.
func GmailClient(sc *server.ServerContext, args map[string]interface{}) (*gmail.Client, error) {
	return sc.GmailClientForAccount(GetAccountFromArgs(args, sc.DefaultAccount()))
}
