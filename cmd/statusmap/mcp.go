package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/statusmap/internal/cli"
	"github.com/aretw0/statusmap/pkg/adapters/mcp"
	"github.com/aretw0/statusmap/pkg/registry"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp [DEFINITION...]",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the loaded status maps to AI agents as MCP tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		slog.SetDefault(logger)

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		path, _ := cmd.Flags().GetString("file")
		sources := append(append([]string{path}, cfg.Sources...), args...)

		reg := registry.New(registry.WithLogger(logger))
		for _, source := range sources {
			m, err := cli.LoadMap(ctx, source, mapOptions(cfg, logger)...)
			if err != nil {
				return err
			}
			if err := reg.Register(m); err != nil {
				return fmt.Errorf("failed to register %s: %w", source, err)
			}
		}

		srv := mcp.NewServer(reg, mcp.WithLogger(logger))

		transport, _ := cmd.Flags().GetString("transport")
		switch transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			logger.Info("Starting statusmap MCP Server (Stdio)")
			return srv.ServeStdio()
		case "sse":
			addr, _ := cmd.Flags().GetString("addr")
			baseURL, _ := cmd.Flags().GetString("base-url")
			if baseURL == "" {
				baseURL = "http://localhost" + addr
			}
			return srv.ServeSSE(ctx, addr, baseURL)
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().String("addr", ":8081", "Address to listen on (only for SSE)")
	mcpCmd.Flags().String("base-url", "", "Public base URL announced to SSE clients")
}
