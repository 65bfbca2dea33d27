package gmail_tools

import (
	"context"
	"encoding/base64"
	"fmt"
	"unicode/utf8"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/gapikit/internal/gmail"
	"github.com/teemow/gapikit/internal/server"
	"github.com/teemow/gapikit/internal/tools/common"
)

// RegisterAttachmentTools registers attachment-related tools with the MCP server
func RegisterAttachmentTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listAttachmentsTool := mcp.NewTool("gmail_list_attachments",
		mcp.WithDescription("List all attachments in a Gmail message, including nested parts"),
		accountOption,
		userIDOption,
		mcp.WithString("messageId",
			mcp.Required(),
			mcp.Description("The ID of the Gmail message"),
		),
	)
	addTool(s, sc, listAttachmentsTool, "messages.get", handleListAttachments)

	getAttachmentTool := mcp.NewTool("gmail_get_attachment",
		mcp.WithDescription("Get the content of an attachment"),
		accountOption,
		userIDOption,
		mcp.WithString("messageId",
			mcp.Required(),
			mcp.Description("The ID of the Gmail message"),
		),
		mcp.WithString("attachmentId",
			mcp.Required(),
			mcp.Description("The ID of the attachment"),
		),
		mcp.WithString("encoding",
			mcp.Description("Encoding format: 'base64' (default) or 'text'"),
		),
	)
	addTool(s, sc, getAttachmentTool, "attachments.get", handleGetAttachment)

	getMessageBodyTool := mcp.NewTool("gmail_get_message_body",
		mcp.WithDescription("Extract the text or HTML body from a Gmail message"),
		accountOption,
		userIDOption,
		mcp.WithString("messageId",
			mcp.Required(),
			mcp.Description("The ID of the Gmail message"),
		),
		mcp.WithString("format",
			mcp.Description("Body format: 'text' (default) or 'html'"),
		),
	)
	addTool(s, sc, getMessageBodyTool, "messages.get", handleGetMessageBody)

	return nil
}

type attachmentOutput struct {
	gmail.AttachmentInfo
	SizeHuman string `json:"size_human"`
}

func handleListAttachments(ctx context.Context, args map[string]interface{}, client *gmail.Client) (*mcp.CallToolResult, error) {
	messageID, err := common.RequiredString(args, "messageId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	msg, err := client.GetMessage(ctx, common.StringArg(args, "userId"), messageID)
	if err != nil {
		return common.ErrorResult("list attachments", err), nil
	}

	attachments := gmail.ListAttachments(msg)
	if len(attachments) == 0 {
		return mcp.NewToolResultText("No attachments found in message"), nil
	}

	outputs := make([]attachmentOutput, len(attachments))
	for i, att := range attachments {
		outputs[i] = attachmentOutput{AttachmentInfo: att, SizeHuman: formatSize(att.Size)}
	}
	return common.JSONResult(outputs)
}

func handleGetAttachment(ctx context.Context, args map[string]interface{}, client *gmail.Client) (*mcp.CallToolResult, error) {
	messageID, err := common.RequiredString(args, "messageId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	attachmentID, err := common.RequiredString(args, "attachmentId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	encoding := common.StringArg(args, "encoding")
	if encoding == "" {
		encoding = "base64"
	}
	if encoding != "base64" && encoding != "text" {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid encoding '%s', must be 'base64' or 'text'", encoding)), nil
	}

	data, err := client.GetAttachment(ctx, common.StringArg(args, "userId"), messageID, attachmentID)
	if err != nil {
		return common.ErrorResult("get attachment", err), nil
	}

	if encoding == "text" {
		if !utf8.Valid(data) {
			return mcp.NewToolResultError("attachment is not valid UTF-8 text, use encoding 'base64'"), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Attachment content (text, %d bytes):\n%s", len(data), data)), nil
	}
	encoded := base64.StdEncoding.EncodeToString(data)
	return mcp.NewToolResultText(fmt.Sprintf("Attachment content (base64, %d bytes):\n%s", len(data), encoded)), nil
}

func handleGetMessageBody(ctx context.Context, args map[string]interface{}, client *gmail.Client) (*mcp.CallToolResult, error) {
	messageID, err := common.RequiredString(args, "messageId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	format := common.StringArg(args, "format")
	if format == "" {
		format = "text"
	}
	if format != "text" && format != "html" {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid format '%s', must be 'text' or 'html'", format)), nil
	}

	msg, err := client.GetMessage(ctx, common.StringArg(args, "userId"), messageID)
	if err != nil {
		return common.ErrorResult("get message", err), nil
	}

	body, err := gmail.MessageBody(msg, format == "html")
	if err != nil {
		return common.ErrorResult("get message body", err), nil
	}
	return mcp.NewToolResultText(body), nil
}

// formatSize formats a byte size into human-readable format
func formatSize(bytes int64) string {
	const (
		KB = 1024
		MB = 1024 * KB
		GB = 1024 * MB
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d bytes", bytes)
	}
}
