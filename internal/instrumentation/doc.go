// Package instrumentation provides OpenTelemetry metrics and tracing for gapikit.
//
// Metrics:
//
//   - google_api_operations_total / google_api_operation_duration_seconds:
//     one observation per helper call, by service, operation and status
//   - google_api_pages_total / google_api_page_items_total: one observation per
//     page retrieved by a paginated list helper
//   - http_requests_total / http_request_duration_seconds: outgoing HTTP
//     requests to Google endpoints, by method, host and status code
//   - mcp_tool_invocations_total / mcp_tool_duration_seconds: MCP tool calls
//   - google_token_refresh_total: OAuth2 token refreshes, by result
//
// Spans are created for every helper call (google.<service>.<operation>) and
// every MCP tool call (tool.<name>).
//
// Configuration comes from environment variables (see DefaultConfig) and the
// [instrumentation] table of the gapikit configuration file:
//
//   - INSTRUMENTATION_ENABLED (default: true)
//   - METRICS_EXPORTER: prometheus, otlp or stdout (default: prometheus)
//   - TRACING_EXPORTER: otlp, stdout or none (default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT, OTEL_EXPORTER_OTLP_INSECURE
//   - OTEL_TRACES_SAMPLER_ARG (default: 0.1)
//
// Example:
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	provider.Metrics().RecordGoogleAPIOperation(ctx, instrumentation.ServiceCalendar,
//		instrumentation.OperationList, instrumentation.StatusSuccess, time.Since(start))
package instrumentation
