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

// RegisterLabelTools registers label-related tools with the MCP server
func RegisterLabelTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	listTool := mcp.NewTool("gmail_list_labels",
		mcp.WithDescription("List all system and user labels with their IDs"),
		accountOption,
		userIDOption,
	)
	addTool(s, sc, listTool, "labels.list", handleListLabels)

	if readOnly {
		return nil
	}

	createTool := mcp.NewTool("gmail_create_label",
		mcp.WithDescription("Create a user label"),
		accountOption,
		userIDOption,
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Label name. Use '/' to nest labels, e.g. 'Projects/Alpha'."),
		),
	)
	addTool(s, sc, createTool, "labels.insert", handleCreateLabel)

	updateTool := mcp.NewTool("gmail_update_label",
		mcp.WithDescription("Rename a label or change its visibility"),
		accountOption,
		userIDOption,
		mcp.WithString("labelId",
			mcp.Required(),
			mcp.Description("The ID of the label"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("New label name"),
		),
		mcp.WithString("labelListVisibility",
			mcp.Description("'labelShow', 'labelShowIfUnread' or 'labelHide'"),
		),
		mcp.WithString("messageListVisibility",
			mcp.Description("'show' or 'hide'"),
		),
	)
	addTool(s, sc, updateTool, "labels.update", handleUpdateLabel)

	deleteTool := mcp.NewTool("gmail_delete_label",
		mcp.WithDescription("Delete a user label. Messages keep existing but lose the label."),
		accountOption,
		userIDOption,
		mcp.WithString("labelId",
			mcp.Required(),
			mcp.Description("The ID of the label"),
		),
	)
	addTool(s, sc, deleteTool, "labels.delete", handleDeleteLabel)

	return nil
}

func handleListLabels(ctx context.Context, args map[string]interface{}, client *gmail.Client) (*mcp.CallToolResult, error) {
	labels, err := client.ListLabels(ctx, common.StringArg(args, "userId"))
	if err != nil {
		return common.ErrorResult("list labels", err), nil
	}
	return common.JSONResult(gmail.ToLabelInfos(labels))
}

func handleCreateLabel(ctx context.Context, args map[string]interface{}, client *gmail.Client) (*mcp.CallToolResult, error) {
	label, err := client.CreateLabel(ctx, common.StringArg(args, "userId"), common.StringArg(args, "name"))
	if err != nil {
		return common.ErrorResult("create label", err), nil
	}
	return common.JSONResult(gmail.ToLabelInfo(label))
}

func handleUpdateLabel(ctx context.Context, args map[string]interface{}, client *gmail.Client) (*mcp.CallToolResult, error) {
	labelID, err := common.RequiredString(args, "labelId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	label, err := client.UpdateLabel(ctx, common.StringArg(args, "userId"), labelID, gmail.LabelInput{
		Name:                  common.StringArg(args, "name"),
		LabelListVisibility:   common.StringArg(args, "labelListVisibility"),
		MessageListVisibility: common.StringArg(args, "messageListVisibility"),
	})
	if err != nil {
		return common.ErrorResult("update label", err), nil
	}
	return common.JSONResult(gmail.ToLabelInfo(label))
}

func handleDeleteLabel(ctx context.Context, args map[string]interface{}, client *gmail.Client) (*mcp.CallToolResult, error) {
	labelID, err := common.RequiredString(args, "labelId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := client.DeleteLabel(ctx, common.StringArg(args, "userId"), labelID); err != nil {
		return common.ErrorResult("delete label", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted label %s", labelID)), nil
}
