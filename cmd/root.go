package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/teemow/gapikit/internal/config"
	"github.com/teemow/gapikit/internal/logging"
)

// rootCmd represents the base command for the gapikit application
var rootCmd = &cobra.Command{
	Use:   "gapikit",
	Short: "Helpers for the Google Calendar and Gmail APIs",
	Long: `gapikit wraps the Google Calendar and Gmail APIs. Every paged list
operation returns the complete collection.

It can run as:
  - A CLI that prints JSON (calendar, gmail)
  - An MCP (Model Context Protocol) server for AI assistants (serve)`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// version will be set by main
var version = "dev"

var (
	configPath    string
	flagAccount   string
	flagLogLevel  string
	flagLogFormat string

	cfg    config.Config
	logger *slog.Logger = slog.Default()
)

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "gapikit version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Path to the TOML config file")
	pf.StringVar(&flagAccount, "account", "", "Google account name (default: from config or 'default')")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFormat, "log-format", "", "Log format: text or json")

	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newCalendarCmd())
	rootCmd.AddCommand(newGmailCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
}

// setup loads the config and builds the logger before any subcommand runs.
// Flags win over environment variables, which win over the file.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := loadConfig(configPath, flagAccount, flagLogLevel, flagLogFormat)
	if err != nil {
		return err
	}

	l, err := logging.NewLogger(loaded.LogLevel, loaded.LogFormat, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	cfg = loaded
	logger = l
	slog.SetDefault(l)

	if cfg.Path != "" {
		logger.Debug("loaded config", "path", cfg.Path)
	}
	return nil
}

func loadConfig(path, account, logLevel, logFormat string) (config.Config, error) {
	c, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if account != "" {
		c.Account = account
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	if logFormat != "" {
		c.LogFormat = logFormat
	}
	if err := c.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return c, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of gapikit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "gapikit version %s\n", version)
			return err
		},
	}
}
