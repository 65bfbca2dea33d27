// Package google manages OAuth2 credentials for the Google Calendar and Gmail
// APIs.
//
// Tokens are stored per account as JSON-encoded oauth2.Token files. They are
// provisioned outside of gapikit (for example with an OAuth playground or an
// existing client) and imported with "gapikit auth import". Access tokens that
// are refreshed while a client is in use are written back to the same file.
package google
