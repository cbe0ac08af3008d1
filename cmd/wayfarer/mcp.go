package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/wayfarer/internal/cli"
	"github.com/aretw0/wayfarer/internal/logging"
	"github.com/aretw0/wayfarer/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the wizard as an MCP Server, so agents can plan a trip through tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("transport") {
			cfg.MCP.Transport, _ = cmd.Flags().GetString("transport")
		}
		if cmd.Flags().Changed("port") {
			cfg.MCP.Port, _ = cmd.Flags().GetInt("port")
		}

		// Logs go to stderr so they never corrupt JSON-RPC on stdout.
		level := cfg.SlogLevel()
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			level = slog.LevelDebug
		}
		logger := logging.NewJSONTo(os.Stderr, level)
		slog.SetDefault(logger)

		sc := cli.NewSignalContext(context.Background())
		defer sc.Cancel()

		rt, err := cli.Build(sc, cfg, logger, nil)
		if err != nil {
			return err
		}
		defer rt.Close()

		srv := mcp.NewServer(rt.Planner, mcp.WithLogger(logger))

		switch cfg.MCP.Transport {
		case "stdio":
			logger.Info("Starting Wayfarer MCP Server (Stdio)...")
			return srv.ServeStdio()
		case "sse":
			logger.Info("Starting Wayfarer MCP Server (SSE)", "port", cfg.MCP.Port)
			if err := srv.ServeSSE(sc, cfg.MCP.Port); err != nil {
				return err
			}
			logger.Info("MCP Server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", cfg.MCP.Transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8081, "Port to listen on (only for SSE)")
}
