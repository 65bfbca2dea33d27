// Package cmd implements the command-line interface for gapikit.
//
// This package provides the following commands:
//   - auth: Import and inspect stored Google tokens
//   - calendar: Run Google Calendar operations (acl, calendarlist, calendars, events, settings)
//   - gmail: Run Gmail operations (drafts, messages, attachments, labels)
//   - serve: Start the MCP server to provide tools for AI assistants
//   - version: Display version information
//   - generate-docs: Generate markdown documentation for all MCP tools
//
// Configuration is read from the file given with --config, ./gapikit.toml or
// the user config directory, then overridden by environment variables and flags.
package cmd
