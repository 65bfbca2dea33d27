// Package resources provides MCP resources for the configured account.
// Resources are read-only data sources that MCP clients can fetch without a
// tool call, such as calendar settings and the mailbox labels.
package resources
