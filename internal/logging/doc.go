// Package logging provides structured logging utilities for gapikit.
//
// All packages log through log/slog. This package builds the root logger from
// configuration and keeps attribute names consistent between the CLI, the MCP
// server and the Google API clients.
//
// Usage:
//
//	logger := logging.WithService(slog.Default(), "calendar")
//	logger.Debug("page received", logging.Page(2), logging.Items(50))
//
// Gmail user IDs are frequently email addresses. Log them through User, which
// hashes anything that looks like an address, and never log tokens directly.
package logging
