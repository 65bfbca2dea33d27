package instrumentation

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newBufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

func TestAuditLogger_Success(t *testing.T) {
	logger, buf := newBufferLogger()
	al := NewAuditLogger(logger, AuditLoggingConfig{Enabled: true})

	ti := NewToolInvocation("calendar_list_acl").
		WithAccount("work").
		WithService(ServiceCalendar, OperationList).
		WithTarget("team@example.com").
		Complete(nil)
	al.LogToolInvocation(ti)

	out := buf.String()
	assert.Contains(t, out, "tool_executed")
	assert.Contains(t, out, "tool=calendar_list_acl")
	assert.Contains(t, out, "account=work")
	assert.Contains(t, out, "status=success")
	assert.NotContains(t, out, "team@example.com")
	assert.Contains(t, out, "target=user:")
}

func TestAuditLogger_FailureWithPII(t *testing.T) {
	logger, buf := newBufferLogger()
	al := NewAuditLogger(logger, AuditLoggingConfig{Enabled: true, IncludePII: true})

	ti := NewToolInvocation("gmail_send_message").
		WithTarget("jane@example.com").
		Complete(errors.New("invalid recipient"))
	al.LogToolInvocation(ti)

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "tool_failed")
	assert.Contains(t, out, "jane@example.com")
	assert.Contains(t, out, "invalid recipient")
	assert.Equal(t, StatusError, ti.Status())
}

func TestAuditLogger_Disabled(t *testing.T) {
	logger, buf := newBufferLogger()
	al := NewAuditLogger(logger, AuditLoggingConfig{Enabled: false})

	al.LogToolInvocation(NewToolInvocation("x").Complete(nil))
	assert.Empty(t, buf.String())

	var nilLogger *AuditLogger
	nilLogger.LogToolInvocation(NewToolInvocation("x").Complete(nil))
}
