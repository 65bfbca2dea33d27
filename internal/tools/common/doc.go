// Package common provides shared utilities for MCP tool implementations:
// account resolution, argument parsing, JSON results and the instrumented
// handler wrapper used by every tool.
package common
