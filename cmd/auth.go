package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/teemow/gapikit/internal/google"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage stored Google tokens",
		Long: `Manage the OAuth2 tokens gapikit uses to call Google APIs.

Tokens are obtained outside of gapikit, for example with the OAuth playground
or another tool, and imported here. One token is stored per account name.`,
	}

	cmd.AddCommand(newAuthImportCmd())
	cmd.AddCommand(newAuthStatusCmd())
	return cmd
}

func newAuthImportCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Store a token for an account",
		Long: `Store a token for the account selected with --account.

The token is read from --file, or from stdin when the file is "-". It may be an
oauth2 token in JSON or the legacy "<access token> <refresh token>" form.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthImport(cmd, file)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "Token file, or - for stdin")
	return cmd
}

func runAuthImport(cmd *cobra.Command, file string) error {
	var (
		data []byte
		err  error
	)
	if file == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return fmt.Errorf("failed to read token: %w", err)
	}

	token, err := google.ParseToken(data)
	if err != nil {
		return fmt.Errorf("failed to parse token: %w", err)
	}

	provider := tokenProvider()
	if err := provider.SaveTokenForAccount(cfg.Account, token); err != nil {
		return err
	}
	path, _ := provider.TokenPath(cfg.Account)
	logger.Info("imported token", "account", cfg.Account, "path", path)
	return printDone(cmd, "Stored token for account %s", cfg.Account)
}

// accountStatus is one line of 'auth status'.
type accountStatus struct {
	Account string `json:"account"`
	Default bool   `json:"default"`
	Path    string `json:"path"`
}

func newAuthStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List accounts with a stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			provider := tokenProvider()
			accounts, err := provider.ListAccounts()
			if err != nil {
				return err
			}

			statuses := make([]accountStatus, 0, len(accounts))
			for _, account := range accounts {
				path, err := provider.TokenPath(account)
				if err != nil {
					return err
				}
				statuses = append(statuses, accountStatus{
					Account: account,
					Default: account == cfg.Account,
					Path:    path,
				})
			}
			if !provider.HasTokenForAccount(cfg.Account) {
				logger.Warn("no token for the selected account", "account", cfg.Account)
			}
			return printJSON(cmd, statuses)
		},
	}
}
