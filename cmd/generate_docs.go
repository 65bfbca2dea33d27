package cmd

import (
	"context"
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/gapikit/internal/server"
)

func newGenerateDocsCmd() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "generate-docs",
		Short: "Generate MCP tool documentation",
		Long: `Generate markdown documentation for all available MCP tools.
The tools are registered exactly as 'gapikit serve' does, with write tools
included, and their definitions are rendered as markdown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			markdown, err := generateDocs()
			if err != nil {
				return err
			}
			if outputFile == "" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), markdown)
				return err
			}
			if err := os.WriteFile(outputFile, []byte(markdown), 0o644); err != nil {
				return fmt.Errorf("failed to write documentation: %w", err)
			}
			logger.Info("documentation generated", "path", outputFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func generateDocs() (string, error) {
	// No tool is called, so neither credentials nor tokens are needed.
	serverContext, err := server.NewServerContext(context.Background(), cfg, server.WithLogger(logger))
	if err != nil {
		return "", fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() {
		_ = serverContext.Shutdown()
	}()

	mcpSrv := newMCPServer()
	if err := registerAllTools(mcpSrv, serverContext, false); err != nil {
		return "", err
	}

	registered := mcpSrv.ListTools()
	tools := make([]mcp.Tool, 0, len(registered))
	for _, t := range registered {
		tools = append(tools, t.Tool)
	}
	return generateToolsMarkdown(tools), nil
}

func generateToolsMarkdown(tools []mcp.Tool) string {
	var sb strings.Builder

	sb.WriteString("# MCP Tools Reference\n\n")
	sb.WriteString("This document lists all tools available when running `gapikit serve`.\n\n")
	sb.WriteString("**Note:** This documentation is automatically generated from the tool definitions. ")
	sb.WriteString("Tools that modify data are not registered with `--read-only`.\n\n")

	toolsByCategory := groupToolsByCategory(tools)

	sb.WriteString("## Table of Contents\n\n")
	categories := make([]string, 0, len(toolsByCategory))
	for category := range toolsByCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		anchor := strings.ToLower(strings.ReplaceAll(category, " ", "-"))
		sb.WriteString(fmt.Sprintf("- [%s](#%s)\n", category, anchor))
	}
	sb.WriteString("\n")

	sb.WriteString("## Accounts\n\n")
	sb.WriteString("Every Google tool accepts an optional `account` argument naming the stored token to use. ")
	sb.WriteString("Without it the account from the configuration is used. ")
	sb.WriteString("List operations always return the complete collection, following every result page.\n\n")

	for _, category := range categories {
		categoryTools := toolsByCategory[category]
		sort.Slice(categoryTools, func(i, j int) bool {
			return categoryTools[i].Name < categoryTools[j].Name
		})

		sb.WriteString(fmt.Sprintf("## %s\n\n", category))
		for _, tool := range categoryTools {
			sb.WriteString(generateToolMarkdown(tool))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func groupToolsByCategory(tools []mcp.Tool) map[string][]mcp.Tool {
	categories := make(map[string][]mcp.Tool)
	for _, tool := range tools {
		category := getCategoryFromToolName(tool.Name)
		categories[category] = append(categories[category], tool)
	}
	return categories
}

func getCategoryFromToolName(name string) string {
	prefix, _, _ := strings.Cut(name, "_")
	switch prefix {
	case "gmail":
		return "Gmail Tools"
	case "calendar":
		return "Google Calendar Tools"
	case "google":
		return "Account Tools"
	default:
		return "Other"
	}
}

func generateToolMarkdown(tool mcp.Tool) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("### %s\n\n", tool.Name))
	if tool.Description != "" {
		sb.WriteString(fmt.Sprintf("%s\n\n", tool.Description))
	}

	props := tool.InputSchema.Properties
	if len(props) == 0 {
		return sb.String()
	}

	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	// Required arguments first, each group alphabetically.
	sort.Slice(names, func(i, j int) bool {
		ri := slices.Contains(tool.InputSchema.Required, names[i])
		rj := slices.Contains(tool.InputSchema.Required, names[j])
		if ri != rj {
			return ri
		}
		return names[i] < names[j]
	})

	sb.WriteString("| Argument | Type | Required | Description |\n")
	sb.WriteString("|---|---|---|---|\n")
	for _, name := range names {
		prop, ok := props[name].(map[string]interface{})
		if !ok {
			continue
		}
		required := "no"
		if slices.Contains(tool.InputSchema.Required, name) {
			required = "yes"
		}
		desc, _ := prop["description"].(string)
		sb.WriteString(fmt.Sprintf("| `%s` | %s | %s | %s |\n", name, propertyType(prop), required, strings.ReplaceAll(desc, "|", "\\|")))
	}
	sb.WriteString("\n")

	return sb.String()
}

func propertyType(prop map[string]interface{}) string {
	t, ok := prop["type"].(string)
	if !ok {
		return "any"
	}
	if t == "array" {
		if items, ok := prop["items"].(map[string]interface{}); ok {
			if it, ok := items["type"].(string); ok {
				return it + "[]"
			}
		}
	}
	return t
}
