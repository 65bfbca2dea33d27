package instrumentation

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	attrMethod    = "method"
	attrHost      = "host"
	attrStatus    = "status"
	attrOperation = "operation"
	attrService   = "service"
	attrResult    = "result"
	attrTool      = "tool"
	attrAccount   = "account"
)

// Metrics records gapikit metrics. The zero value is a no-op recorder, and so
// is a nil *Metrics.
type Metrics struct {
	httpRequestsTotal   metric.Int64Counter
	httpRequestDuration metric.Float64Histogram

	googleAPIOperationsTotal   metric.Int64Counter
	googleAPIOperationDuration metric.Float64Histogram
	googleAPIPagesTotal        metric.Int64Counter
	googleAPIPageItemsTotal    metric.Int64Counter

	toolInvocationsTotal metric.Int64Counter
	toolDuration         metric.Float64Histogram

	tokenRefreshTotal metric.Int64Counter

	detailedLabels bool
}

var apiDurationBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0}

// NewMetrics creates all instruments on meter.
func NewMetrics(meter metric.Meter, detailedLabels bool) (*Metrics, error) {
	m := &Metrics{detailedLabels: detailedLabels}

	var err error
	counter := func(name, desc, unit string) metric.Int64Counter {
		if err != nil {
			return nil
		}
		var c metric.Int64Counter
		c, err = meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit(unit))
		if err != nil {
			err = fmt.Errorf("failed to create %s counter: %w", name, err)
		}
		return c
	}
	histogram := func(name, desc string, buckets []float64) metric.Float64Histogram {
		if err != nil {
			return nil
		}
		var h metric.Float64Histogram
		h, err = meter.Float64Histogram(name,
			metric.WithDescription(desc),
			metric.WithUnit("s"),
			metric.WithExplicitBucketBoundaries(buckets...),
		)
		if err != nil {
			err = fmt.Errorf("failed to create %s histogram: %w", name, err)
		}
		return h
	}

	m.httpRequestsTotal = counter("http_requests_total", "Total number of outgoing HTTP requests to Google APIs", "{request}")
	m.httpRequestDuration = histogram("http_request_duration_seconds", "Outgoing HTTP request duration in seconds",
		[]float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0})

	m.googleAPIOperationsTotal = counter("google_api_operations_total", "Total number of Google API helper operations", "{operation}")
	m.googleAPIOperationDuration = histogram("google_api_operation_duration_seconds", "Google API helper operation duration in seconds", apiDurationBuckets)
	m.googleAPIPagesTotal = counter("google_api_pages_total", "Total number of pages retrieved by paginated list operations", "{page}")
	m.googleAPIPageItemsTotal = counter("google_api_page_items_total", "Total number of items retrieved by paginated list operations", "{item}")

	m.toolInvocationsTotal = counter("mcp_tool_invocations_total", "Total number of MCP tool invocations", "{invocation}")
	m.toolDuration = histogram("mcp_tool_duration_seconds", "MCP tool execution duration in seconds", apiDurationBuckets)

	m.tokenRefreshTotal = counter("google_token_refresh_total", "Total number of OAuth2 token refreshes", "{refresh}")

	if err != nil {
		return nil, err
	}
	return m, nil
}

// RecordHTTPRequest records one outgoing HTTP request. statusCode 0 means the
// request failed before a response was received.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, host string, statusCode int, duration time.Duration) {
	if m == nil || m.httpRequestsTotal == nil || m.httpRequestDuration == nil {
		return
	}

	status := strconv.Itoa(statusCode)
	if statusCode == 0 {
		status = StatusError
	}
	attrs := metric.WithAttributes(
		attribute.String(attrMethod, method),
		attribute.String(attrHost, host),
		attribute.String(attrStatus, status),
	)
	m.httpRequestsTotal.Add(ctx, 1, attrs)
	m.httpRequestDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordGoogleAPIOperation records one helper call, e.g. ("calendar", "list",
// "success"). For paginated helpers the duration covers all pages.
func (m *Metrics) RecordGoogleAPIOperation(ctx context.Context, service, operation, status string, duration time.Duration) {
	if m == nil || m.googleAPIOperationsTotal == nil || m.googleAPIOperationDuration == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(attrService, service),
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	)
	m.googleAPIOperationsTotal.Add(ctx, 1, attrs)
	m.googleAPIOperationDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordPage records one page retrieved by a paginated list operation.
func (m *Metrics) RecordPage(ctx context.Context, service, operation string, items int) {
	if m == nil || m.googleAPIPagesTotal == nil || m.googleAPIPageItemsTotal == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(attrService, service),
		attribute.String(attrOperation, operation),
	)
	m.googleAPIPagesTotal.Add(ctx, 1, attrs)
	m.googleAPIPageItemsTotal.Add(ctx, int64(items), attrs)
}

// RecordToolInvocation records an MCP tool call. The account label is only
// attached when detailed labels are enabled.
func (m *Metrics) RecordToolInvocation(ctx context.Context, toolName, status, account string, duration time.Duration) {
	if m == nil || m.toolInvocationsTotal == nil || m.toolDuration == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrTool, toolName),
		attribute.String(attrStatus, status),
	}
	if m.detailedLabels && account != "" {
		attrs = append(attrs, attribute.String(attrAccount, account))
	}

	m.toolInvocationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.toolDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordTokenRefresh records an OAuth2 token refresh with the given result.
func (m *Metrics) RecordTokenRefresh(ctx context.Context, result string) {
	if m == nil || m.tokenRefreshTotal == nil {
		return
	}
	m.tokenRefreshTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrResult, result)))
}
