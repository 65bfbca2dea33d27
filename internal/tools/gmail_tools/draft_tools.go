package gmail_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/gapikit/internal/gmail"
	"github.com/teemow/gapikit/internal/server"
	"github.com/teemow/gapikit/internal/tools/common"
)

// RegisterDraftTools registers draft-related tools with the MCP server
func RegisterDraftTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	listTool := mcp.NewTool("gmail_list_drafts",
		mcp.WithDescription("List all drafts in the mailbox"),
		accountOption,
		userIDOption,
	)
	addTool(s, sc, listTool, "drafts.list", handleListDrafts)

	getTool := mcp.NewTool("gmail_get_draft",
		mcp.WithDescription("Get a draft with its message headers and attachments"),
		accountOption,
		userIDOption,
		mcp.WithString("draftId",
			mcp.Required(),
			mcp.Description("The ID of the draft"),
		),
	)
	addTool(s, sc, getTool, "drafts.get", handleGetDraft)

	if readOnly {
		return nil
	}

	createTool := mcp.NewTool("gmail_create_draft",
		append([]mcp.ToolOption{
			mcp.WithDescription("Save a new email as a draft"),
			accountOption,
			userIDOption,
		}, composeOptions()...)...,
	)
	addTool(s, sc, createTool, "drafts.insert", handleCreateDraft)

	updateTool := mcp.NewTool("gmail_update_draft",
		append([]mcp.ToolOption{
			mcp.WithDescription("Replace the message of a draft, optionally sending it afterwards"),
			accountOption,
			userIDOption,
			mcp.WithString("draftId",
				mcp.Required(),
				mcp.Description("The ID of the draft to replace"),
			),
			mcp.WithBoolean("send",
				mcp.Description("Send the draft after updating it (default: false)"),
			),
		}, composeOptions()...)...,
	)
	addTool(s, sc, updateTool, "drafts.update", handleUpdateDraft)

	sendTool := mcp.NewTool("gmail_send_draft",
		mcp.WithDescription("Send an existing draft"),
		accountOption,
		userIDOption,
		mcp.WithString("draftId",
			mcp.Required(),
			mcp.Description("The ID of the draft to send"),
		),
	)
	addTool(s, sc, sendTool, "drafts.send", handleSendDraft)

	deleteTool := mcp.NewTool("gmail_delete_draft",
		mcp.WithDescription("Permanently delete a draft"),
		accountOption,
		userIDOption,
		mcp.WithString("draftId",
			mcp.Required(),
			mcp.Description("The ID of the draft to delete"),
		),
	)
	addTool(s, sc, deleteTool, "drafts.delete", handleDeleteDraft)

	return nil
}

func handleListDrafts(ctx context.Context, args map[string]interface{}, client *gmail.Client) (*mcp.CallToolResult, error) {
	drafts, err := client.ListDrafts(ctx, common.StringArg(args, "userId"))
	if err != nil {
		return common.ErrorResult("list drafts", err), nil
	}
	return common.JSONResult(gmail.ToDraftSummaries(drafts))
}

func handleGetDraft(ctx context.Context, args map[string]interface{}, client *gmail.Client) (*mcp.CallToolResult, error) {
	draftID, err := common.RequiredString(args, "draftId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	draft, err := client.GetDraft(ctx, common.StringArg(args, "userId"), draftID)
	if err != nil {
		return common.ErrorResult("get draft", err), nil
	}
	return common.JSONResult(gmail.ToDraftSummary(draft))
}

func handleCreateDraft(ctx context.Context, args map[string]interface{}, client *gmail.Client) (*mcp.CallToolResult, error) {
	msg, err := messageFromArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	draft, err := client.CreateDraft(ctx, common.StringArg(args, "userId"), msg)
	if err != nil {
		return common.ErrorResult("create draft", err), nil
	}
	return common.JSONResult(gmail.ToDraftSummary(draft))
}

func handleUpdateDraft(ctx context.Context, args map[string]interface{}, client *gmail.Client) (*mcp.CallToolResult, error) {
	draftID, err := common.RequiredString(args, "draftId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	msg, err := messageFromArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	draft, err := client.UpdateDraft(ctx, common.StringArg(args, "userId"), draftID, msg, common.BoolArg(args, "send"))
	if err != nil {
		return common.ErrorResult("update draft", err), nil
	}
	return common.JSONResult(gmail.ToDraftSummary(draft))
}

func handleSendDraft(ctx context.Context, args map[string]interface{}, client *gmail.Client) (*mcp.CallToolResult, error) {
	draftID, err := common.RequiredString(args, "draftId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sent, err := client.SendDraft(ctx, common.StringArg(args, "userId"), draftID)
	if err != nil {
		return common.ErrorResult("send draft", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Draft %s sent as message %s", draftID, sent.Id)), nil
}

func handleDeleteDraft(ctx context.Context, args map[string]interface{}, client *gmail.Client) (*mcp.CallToolResult, error) {
	draftID, err := common.RequiredString(args, "draftId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := client.DeleteDraft(ctx, common.StringArg(args, "userId"), draftID); err != nil {
		return common.ErrorResult("delete draft", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted draft %s", draftID)), nil
}
