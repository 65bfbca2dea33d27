// Package google_tools provides MCP tools about Google account credentials.
//
// Tokens are provisioned outside the server with `gapikit auth import`. The
// google_auth_status tool lets an assistant find out which accounts can be
// used before calling Calendar or Gmail tools.
package google_tools
