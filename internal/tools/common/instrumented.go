package common

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"go.opentelemetry.io/otel/attribute"

	"github.com/teemow/gapikit/internal/instrumentation"
	"github.com/teemow/gapikit/internal/server"
)

// ToolHandler is the signature of an MCP tool handler.
type ToolHandler = func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// targetArgs are the arguments naming the calendar or mailbox a tool acts on,
// in lookup order.
var targetArgs = []string{"calendarId", "userId"}

// InstrumentedToolHandlerWithService wraps a tool handler with a span, metrics
// and audit logging. The Google API calls made by the handler are recorded by
// the clients themselves; this wrapper covers the tool invocation as a whole.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandlerWithService("my_tool", "gmail", "messages.list", sc, handler))
func InstrumentedToolHandlerWithService(
	toolName string,
	serviceName string,
	operation string,
	sc *server.ServerContext,
	handler ToolHandler,
) ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		account := GetAccountFromArgs(args, sc.DefaultAccount())

		ctx, span := instrumentation.StartToolSpan(ctx, toolName,
			attribute.String(instrumentation.SpanAttrService, serviceName),
			attribute.String(instrumentation.SpanAttrOperation, operation),
			attribute.String(instrumentation.SpanAttrAccount, account),
		)
		defer span.End()

		start := time.Now()
		invocation := instrumentation.NewToolInvocation(toolName).
			WithSpanContext(ctx).
			WithService(serviceName, operation).
			WithAccount(account)
		for _, key := range targetArgs {
			if target := StringArg(args, key); target != "" {
				invocation.WithTarget(target)
				break
			}
		}

		// Call the actual handler
		result, err := handler(ctx, request)
		duration := time.Since(start)

		// Tool errors reported in the result count as failures too.
		status := instrumentation.StatusSuccess
		switch {
		case err != nil:
			status = instrumentation.StatusError
			invocation.Complete(err)
			instrumentation.SetSpanError(span, err)
		case result != nil && result.IsError:
			status = instrumentation.StatusError
			invocation.Complete(errToolResult)
			instrumentation.SetSpanError(span, errToolResult)
		default:
			invocation.Complete(nil)
			instrumentation.SetSpanSuccess(span)
		}

		if metrics := sc.Metrics(); metrics != nil {
			metrics.RecordToolInvocation(ctx, toolName, status, account, duration)
		}
		if auditLogger := sc.AuditLogger(); auditLogger != nil {
			auditLogger.LogToolInvocation(invocation)
		}

		return result, err
	}
}
