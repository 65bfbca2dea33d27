package google_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/gapikit/internal/google"
	"github.com/teemow/gapikit/internal/instrumentation"
	"github.com/teemow/gapikit/internal/server"
	"github.com/teemow/gapikit/internal/tools/common"
)

// AuthStatus reports whether an account can be used.
type AuthStatus struct {
	Account        string `json:"account"`
	Default        bool   `json:"default"`
	TokenAvailable bool   `json:"token_available"`
	Hint           string `json:"hint,omitempty"`
}

// RegisterGoogleTools registers the credential tools with the MCP server
func RegisterGoogleTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	authStatusTool := mcp.NewTool("google_auth_status",
		mcp.WithDescription("Check whether a Google token is available for an account"),
		mcp.WithString("account",
			mcp.Description("Account name (default: the configured account). Used to manage multiple Google accounts."),
		),
	)

	s.AddTool(authStatusTool, common.InstrumentedToolHandlerWithService(
		"google_auth_status", instrumentation.ServiceAuth, "token.status", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleAuthStatus(ctx, request, sc)
		}))

	return nil
}

func handleAuthStatus(_ context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	account := common.GetAccountFromArgs(request.GetArguments(), sc.DefaultAccount())
	if err := google.ValidateAccountName(account); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	status := AuthStatus{
		Account:        account,
		Default:        account == sc.DefaultAccount(),
		TokenAvailable: sc.HasToken(account),
	}
	if !status.TokenAvailable {
		status.Hint = fmt.Sprintf("run 'gapikit auth import --account %s' with a token file to authorize this account", account)
	}
	return common.JSONResult(status)
}
