package gmail_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/gapikit/internal/gmail"
	"github.com/teemow/gapikit/internal/instrumentation"
	"github.com/teemow/gapikit/internal/server"
	"github.com/teemow/gapikit/internal/tools/common"
)

var accountOption = mcp.WithString("account",
	mcp.Description("Account name (default: the configured account). Used to manage multiple Google accounts."),
)

// handlerFunc handles a tool call once the account's client is resolved.
type handlerFunc func(ctx context.Context, args map[string]interface{}, client *gmail.Client) (*mcp.CallToolResult, error)

// addTool registers tool with instrumentation. operation is "<resource>.<op>",
// matching the labels used by the Gmail client.
func addTool(s *mcpserver.MCPServer, sc *server.ServerContext, tool mcp.Tool, operation string, handler handlerFunc) {
	s.AddTool(tool, common.InstrumentedToolHandlerWithService(tool.Name, instrumentation.ServiceGmail, operation, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()
			client, err := common.GmailClient(sc, args)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return handler(ctx, args, client)
		}))
}

// RegisterGmailTools registers all Gmail-related tools with the MCP server.
// Tools that send or modify mail are skipped when readOnly is set.
func RegisterGmailTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if err := RegisterDraftTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register draft tools: %w", err)
	}

	if err := RegisterMessageTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register message tools: %w", err)
	}

	// Attachment tools only read
	if err := RegisterAttachmentTools(s, sc); err != nil {
		return fmt.Errorf("failed to register attachment tools: %w", err)
	}

	if err := RegisterLabelTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register label tools: %w", err)
	}

	return nil
}

// composeOptions are the arguments describing a new email.
func composeOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("to",
			mcp.Required(),
			mcp.Description("Comma-separated list of recipient email addresses"),
		),
		mcp.WithString("cc",
			mcp.Description("Comma-separated list of CC recipients"),
		),
		mcp.WithString("bcc",
			mcp.Description("Comma-separated list of BCC recipients"),
		),
		mcp.WithString("subject",
			mcp.Required(),
			mcp.Description("Email subject"),
		),
		mcp.WithString("body",
			mcp.Required(),
			mcp.Description("Email body content"),
		),
		mcp.WithBoolean("isHTML",
			mcp.Description("Whether the body is HTML (default: false)"),
		),
		mcp.WithString("from",
			mcp.Description("Sender address (default: the authenticated user)"),
		),
		mcp.WithString("inReplyTo",
			mcp.Description("Message-ID header of the message being replied to"),
		),
		mcp.WithString("references",
			mcp.Description("References header for threading"),
		),
		mcp.WithString("threadId",
			mcp.Description("Gmail thread ID the message belongs to"),
		),
	}
}

// messageFromArgs builds a message from the compose arguments.
func messageFromArgs(args map[string]interface{}) (*gmail.Message, error) {
	to, err := common.StringListArg(args, "to")
	if err != nil {
		return nil, err
	}
	if len(to) == 0 {
		return nil, fmt.Errorf("to is required")
	}
	cc, err := common.StringListArg(args, "cc")
	if err != nil {
		return nil, err
	}
	bcc, err := common.StringListArg(args, "bcc")
	if err != nil {
		return nil, err
	}
	subject, err := common.RequiredString(args, "subject")
	if err != nil {
		return nil, err
	}
	body, err := common.RequiredString(args, "body")
	if err != nil {
		return nil, err
	}

	return &gmail.Message{
		From:       common.StringArg(args, "from"),
		To:         to,
		Cc:         cc,
		Bcc:        bcc,
		Subject:    subject,
		Body:       body,
		IsHTML:     common.BoolArg(args, "isHTML"),
		InReplyTo:  common.StringArg(args, "inReplyTo"),
		References: common.StringArg(args, "references"),
		ThreadID:   common.StringArg(args, "threadId"),
	}, nil
}

var userIDOption = mcp.WithString("userId",
	mcp.Description("Mailbox to operate on (default: the configured user, usually 'me')"),
)
