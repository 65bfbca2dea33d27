// Package server provides the MCP server context and the HTTP side services
// that run next to the stdio MCP server.
//
// # Key Components
//
// ServerContext manages Google API clients with lazy initialization and caching.
// It keeps one Calendar client and one Gmail client per account, built from the
// OAuth client credentials in the config and the tokens of a TokenProvider
// (by default a FileTokenProvider reading the configured token directory).
// It also carries the instrumentation provider, the tool audit logger and the
// read-only flag consulted when tools are registered.
//
// MetricsServer exposes the Prometheus registry of the instrumentation provider
// on /metrics. HealthChecker adds /healthz, /readyz and /healthz/detailed to the
// same listener. Readiness fails while no token is stored for the default
// account.
package server
