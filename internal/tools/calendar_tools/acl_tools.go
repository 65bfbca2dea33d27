package calendar_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/gapikit/internal/calendar"
	"github.com/teemow/gapikit/internal/server"
	"github.com/teemow/gapikit/internal/tools/common"
)

// RegisterACLTools registers access control tools with the MCP server
func RegisterACLTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	listTool := mcp.NewTool("calendar_acl_list",
		mcp.WithDescription("List the access control rules of a calendar"),
		accountOption,
		calendarIDOption,
	)
	addTool(s, sc, listTool, "acl.list", handleListACL)

	getTool := mcp.NewTool("calendar_acl_get",
		mcp.WithDescription("Get one access control rule of a calendar"),
		accountOption,
		calendarIDOption,
		mcp.WithString("ruleId",
			mcp.Required(),
			mcp.Description("ACL rule ID, e.g. 'user:jane@example.com'"),
		),
	)
	addTool(s, sc, getTool, "acl.get", handleGetACL)

	if readOnly {
		return nil
	}

	insertTool := mcp.NewTool("calendar_acl_insert",
		mcp.WithDescription("Share a calendar by creating an access control rule"),
		accountOption,
		calendarIDOption,
		mcp.WithString("scopeType",
			mcp.Required(),
			mcp.Description("Scope type: 'default' (public), 'user', 'group' or 'domain'"),
		),
		mcp.WithString("scopeValue",
			mcp.Description("Email address or domain name. Must be empty for the 'default' scope."),
		),
		mcp.WithString("role",
			mcp.Required(),
			mcp.Description("Role: 'none', 'freeBusyReader', 'reader', 'writer' or 'owner'"),
		),
	)
	addTool(s, sc, insertTool, "acl.insert", handleInsertACL)

	updateTool := mcp.NewTool("calendar_acl_update",
		mcp.WithDescription("Change the role of an access control rule"),
		accountOption,
		calendarIDOption,
		mcp.WithString("ruleId",
			mcp.Required(),
			mcp.Description("ACL rule ID"),
		),
		mcp.WithString("role",
			mcp.Required(),
			mcp.Description("New role: 'none', 'freeBusyReader', 'reader', 'writer' or 'owner'"),
		),
	)
	addTool(s, sc, updateTool, "acl.update", handleUpdateACL)

	deleteTool := mcp.NewTool("calendar_acl_delete",
		mcp.WithDescription("Delete an access control rule"),
		accountOption,
		calendarIDOption,
		mcp.WithString("ruleId",
			mcp.Required(),
			mcp.Description("ACL rule ID"),
		),
	)
	addTool(s, sc, deleteTool, "acl.delete", handleDeleteACL)

	return nil
}

func handleListACL(ctx context.Context, args map[string]interface{}, client *calendar.Client) (*mcp.CallToolResult, error) {
	rules, err := client.ListACL(ctx, common.StringArg(args, "calendarId"))
	if err != nil {
		return common.ErrorResult("list ACL rules", err), nil
	}

	infos := make([]calendar.ACLRuleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, calendar.ToACLRuleInfo(rule))
	}
	return common.JSONResult(infos)
}

func handleGetACL(ctx context.Context, args map[string]interface{}, client *calendar.Client) (*mcp.CallToolResult, error) {
	ruleID, err := common.RequiredString(args, "ruleId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rule, err := client.GetACL(ctx, common.StringArg(args, "calendarId"), ruleID)
	if err != nil {
		return common.ErrorResult("get ACL rule", err), nil
	}
	return common.JSONResult(calendar.ToACLRuleInfo(rule))
}

func handleInsertACL(ctx context.Context, args map[string]interface{}, client *calendar.Client) (*mcp.CallToolResult, error) {
	input := calendar.ACLInput{
		ScopeType:  common.StringArg(args, "scopeType"),
		ScopeValue: common.StringArg(args, "scopeValue"),
		Role:       common.StringArg(args, "role"),
	}

	rule, err := client.InsertACL(ctx, common.StringArg(args, "calendarId"), input)
	if err != nil {
		return common.ErrorResult("insert ACL rule", err), nil
	}
	return common.JSONResult(calendar.ToACLRuleInfo(rule))
}

func handleUpdateACL(ctx context.Context, args map[string]interface{}, client *calendar.Client) (*mcp.CallToolResult, error) {
	ruleID, err := common.RequiredString(args, "ruleId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rule, err := client.UpdateACL(ctx, common.StringArg(args, "calendarId"), ruleID, common.StringArg(args, "role"))
	if err != nil {
		return common.ErrorResult("update ACL rule", err), nil
	}
	return common.JSONResult(calendar.ToACLRuleInfo(rule))
}

func handleDeleteACL(ctx context.Context, args map[string]interface{}, client *calendar.Client) (*mcp.CallToolResult, error) {
	ruleID, err := common.RequiredString(args, "ruleId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := client.DeleteACL(ctx, common.StringArg(args, "calendarId"), ruleID); err != nil {
		return common.ErrorResult("delete ACL rule", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted ACL rule %s", ruleID)), nil
}
