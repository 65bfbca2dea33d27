package gmail_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/gapikit/internal/gmail"
	"github.com/teemow/gapikit/internal/server"
	"github.com/teemow/gapikit/internal/tools/batch"
	"github.com/teemow/gapikit/internal/tools/common"
)

// RegisterMessageTools registers message-related tools with the MCP server
func RegisterMessageTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	listTool := mcp.NewTool("gmail_list_messages",
		mcp.WithDescription("List the IDs of all messages matching a Gmail search query. All pages are fetched."),
		accountOption,
		userIDOption,
		mcp.WithString("query",
			mcp.Description("Gmail search query (e.g., 'in:inbox', 'from:user@example.com'). Empty lists all messages."),
		),
	)
	addTool(s, sc, listTool, "messages.list", handleListMessages)

	getTool := mcp.NewTool("gmail_get_message",
		mcp.WithDescription("Get a message with its headers, labels and attachment list"),
		accountOption,
		userIDOption,
		mcp.WithString("messageId",
			mcp.Required(),
			mcp.Description("The ID of the Gmail message"),
		),
		mcp.WithString("format",
			mcp.Description("'full' (default), 'metadata' or 'minimal'"),
		),
	)
	addTool(s, sc, getTool, "messages.get", handleGetMessage)

	if readOnly {
		return nil
	}

	sendTool := mcp.NewTool("gmail_send_message",
		append([]mcp.ToolOption{
			mcp.WithDescription("Send an email"),
			accountOption,
			userIDOption,
		}, composeOptions()...)...,
	)
	addTool(s, sc, sendTool, "messages.send", handleSendMessage)

	insertTool := mcp.NewTool("gmail_insert_message",
		append([]mcp.ToolOption{
			mcp.WithDescription("Add an email to the mailbox without sending it"),
			accountOption,
			userIDOption,
			mcp.WithString("labelIds",
				mcp.Description("Comma-separated label IDs for the inserted message (e.g. 'INBOX,UNREAD')"),
			),
		}, composeOptions()...)...,
	)
	addTool(s, sc, insertTool, "messages.insert", handleInsertMessage)

	modifyTool := mcp.NewTool("gmail_modify_messages",
		mcp.WithDescription("Add or remove labels on one or more messages"),
		accountOption,
		userIDOption,
		mcp.WithString("messageIds",
			mcp.Required(),
			mcp.Description("Message ID, or a JSON array of message IDs"),
		),
		mcp.WithString("addLabelIds",
			mcp.Description("Comma-separated label IDs to add"),
		),
		mcp.WithString("removeLabelIds",
			mcp.Description("Comma-separated label IDs to remove (e.g. 'INBOX' to archive)"),
		),
	)
	addTool(s, sc, modifyTool, "messages.modify", handleModifyMessages)

	deleteTool := mcp.NewTool("gmail_delete_messages",
		mcp.WithDescription("Permanently delete one or more messages. This bypasses the trash and cannot be undone."),
		accountOption,
		userIDOption,
		mcp.WithString("messageIds",
			mcp.Required(),
			mcp.Description("Message ID, or a JSON array of message IDs"),
		),
	)
	addTool(s, sc, deleteTool, "messages.delete", handleDeleteMessages)

	return nil
}

func handleListMessages(ctx context.Context, args map[string]interface{}, client *gmail.Client) (*mcp.CallToolResult, error) {
	msgs, err := client.ListMessages(ctx, common.StringArg(args, "userId"), common.StringArg(args, "query"))
	if err != nil {
		return common.ErrorResult("list messages", err), nil
	}
	return common.JSONResult(gmail.ToMessageSummaries(msgs))
}

func handleGetMessage(ctx context.Context, args map[string]interface{}, client *gmail.Client) (*mcp.CallToolResult, error) {
	messageID, err := common.RequiredString(args, "messageId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	format := common.StringArg(args, "format")
	if format == gmail.FormatRaw {
		return mcp.NewToolResultError("format 'raw' is not supported, use 'full', 'metadata' or 'minimal'"), nil
	}

	msg, err := client.GetMessageFormat(ctx, common.StringArg(args, "userId"), messageID, format)
	if err != nil {
		return common.ErrorResult("get message", err), nil
	}
	return common.JSONResult(gmail.ToMessageSummary(msg))
}

func handleSendMessage(ctx context.Context, args map[string]interface{}, client *gmail.Client) (*mcp.CallToolResult, error) {
	msg, err := messageFromArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sent, err := client.SendMessage(ctx, common.StringArg(args, "userId"), msg)
	if err != nil {
		return common.ErrorResult("send email", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Email sent successfully. Message ID: %s", sent.Id)), nil
}

func handleInsertMessage(ctx context.Context, args map[string]interface{}, client *gmail.Client) (*mcp.CallToolResult, error) {
	msg, err := messageFromArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	labelIDs, err := common.StringListArg(args, "labelIds")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	inserted, err := client.InsertMessage(ctx, common.StringArg(args, "userId"), msg, labelIDs...)
	if err != nil {
		return common.ErrorResult("insert message", err), nil
	}
	return common.JSONResult(gmail.ToMessageSummary(inserted))
}

func handleModifyMessages(ctx context.Context, args map[string]interface{}, client *gmail.Client) (*mcp.CallToolResult, error) {
	messageIDs, err := batch.ParseStringOrArray(args["messageIds"], "messageIds")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	add, err := common.StringListArg(args, "addLabelIds")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	remove, err := common.StringListArg(args, "removeLabelIds")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(add) == 0 && len(remove) == 0 {
		return mcp.NewToolResultError("at least one of addLabelIds or removeLabelIds is required"), nil
	}

	userID := common.StringArg(args, "userId")
	results := batch.ProcessBatch(ctx, messageIDs, func(ctx context.Context, id string) (string, error) {
		if _, err := client.ModifyMessage(ctx, userID, id, add, remove); err != nil {
			return "", err
		}
		return "labels updated", nil
	})
	return mcp.NewToolResultText(batch.FormatResults(results)), nil
}

func handleDeleteMessages(ctx context.Context, args map[string]interface{}, client *gmail.Client) (*mcp.CallToolResult, error) {
	messageIDs, err := batch.ParseStringOrArray(args["messageIds"], "messageIds")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	userID := common.StringArg(args, "userId")
	results := batch.ProcessBatch(ctx, messageIDs, func(ctx context.Context, id string) (string, error) {
		if err := client.DeleteMessage(ctx, userID, id); err != nil {
			return "", err
		}
		return "deleted", nil
	})
	return mcp.NewToolResultText(batch.FormatResults(results)), nil
}
