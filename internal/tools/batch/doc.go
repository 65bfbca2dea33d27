// Package batch provides helpers for MCP tools that accept several IDs in one
// call, such as gmail_delete_messages and calendar_delete_events.
//
// This package includes helpers for:
//   - Parsing parameters that accept both single values and arrays
//   - Running an operation per ID while collecting partial failures
//   - Formatting batch results in a consistent structure
package batch
