package instrumentation

import (
	"context"
	"log/slog"
	"time"

	"github.com/teemow/gapikit/internal/logging"
)

// ToolInvocation captures one MCP tool call for the audit log.
type ToolInvocation struct {
	Tool      string
	Account   string
	Service   string
	Operation string

	// Target is the Gmail user ID or calendar ID the call operated on. It may
	// be an email address and is hashed unless PII logging is enabled.
	Target string

	StartTime time.Time
	Duration  time.Duration
	Success   bool
	Error     string

	TraceID string
	SpanID  string
}

// NewToolInvocation starts timing an invocation of tool.
func NewToolInvocation(tool string) *ToolInvocation {
	return &ToolInvocation{
		Tool:      tool,
		StartTime: time.Now(),
	}
}

func (ti *ToolInvocation) WithAccount(account string) *ToolInvocation {
	ti.Account = account
	return ti
}

func (ti *ToolInvocation) WithService(service, operation string) *ToolInvocation {
	ti.Service = service
	ti.Operation = operation
	return ti
}

func (ti *ToolInvocation) WithTarget(target string) *ToolInvocation {
	ti.Target = target
	return ti
}

// WithSpanContext copies the trace and span IDs from the span in ctx.
func (ti *ToolInvocation) WithSpanContext(ctx context.Context) *ToolInvocation {
	ti.TraceID = GetTraceID(ctx)
	ti.SpanID = GetSpanID(ctx)
	return ti
}

// Complete stops timing. A non-nil err marks the invocation failed.
func (ti *ToolInvocation) Complete(err error) *ToolInvocation {
	ti.Duration = time.Since(ti.StartTime)
	ti.Success = err == nil
	if err != nil {
		ti.Error = err.Error()
	}
	return ti
}

// Status returns StatusSuccess or StatusError.
func (ti *ToolInvocation) Status() string {
	if ti.Success {
		return StatusSuccess
	}
	return StatusError
}

func (ti *ToolInvocation) attrs(includePII bool) []any {
	target := ti.Target
	if !includePII {
		target = logging.AnonymizeEmail(target)
	}

	attrs := []any{
		logging.Tool(ti.Tool),
		slog.Duration(logging.KeyDuration, ti.Duration),
		logging.Status(ti.Status()),
	}
	if ti.Account != "" {
		attrs = append(attrs, logging.Account(ti.Account))
	}
	if ti.Service != "" {
		attrs = append(attrs, logging.Service(ti.Service), logging.Operation(ti.Operation))
	}
	if target != "" {
		attrs = append(attrs, slog.String("target", target))
	}
	if ti.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", ti.TraceID), slog.String("span_id", ti.SpanID))
	}
	if ti.Error != "" {
		attrs = append(attrs, slog.String(logging.KeyError, ti.Error))
	}
	return attrs
}

// AuditLogger writes one structured record per MCP tool call.
type AuditLogger struct {
	logger *slog.Logger
	config AuditLoggingConfig
}

// NewAuditLogger creates an AuditLogger. A nil logger uses slog.Default().
func NewAuditLogger(logger *slog.Logger, config AuditLoggingConfig) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{
		logger: logger.With(slog.String("component", "audit")),
		config: config,
	}
}

// LogToolInvocation logs ti at info level on success and warn level on failure.
func (al *AuditLogger) LogToolInvocation(ti *ToolInvocation) {
	if al == nil || !al.config.Enabled {
		return
	}

	args := ti.attrs(al.config.IncludePII)
	if ti.Success {
		al.logger.Info("tool_executed", args...)
	} else {
		al.logger.Warn("tool_failed", args...)
	}
}
