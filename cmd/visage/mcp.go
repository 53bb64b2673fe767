package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mengchil/visage"
	"github.com/mengchil/visage/internal/cli"
	"github.com/mengchil/visage/pkg/adapters/mcp"
	"github.com/mengchil/visage/pkg/runner"
)

// mcpCmd exposes the engine over MCP while the frame loop runs in the
// background. Stdio is the default transport so stdout stays clean.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server (stdio by default)",
	Long: `Exposes set_expression, set_params, get_snapshot and list_presets as
MCP tools. The synthesis loop keeps running while the server is up, so
get_snapshot always returns a live frame.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		sse, _ := cmd.Flags().GetBool("sse")
		port, _ := cmd.Flags().GetInt("port")

		logger := cli.CreateLogger(cfg.LogLevel)
		host, err := cli.NewHost(cfg, logger)
		if err != nil {
			fmt.Printf("Error initializing engine: %v\n", err)
			os.Exit(1)
		}
		defer host.Close()

		sc := cli.NewSignalContext(context.Background())
		defer sc.Cancel()

		// background frame loop, no HTTP surface in MCP mode
		go func() {
			_ = host.Engine.Run(sc, runner.WithLogger(logger), runner.WithFPS(cfg.FPS))
		}()
		if host.Remote != nil {
			host.Remote.Start()
		}

		server := mcp.NewServer(host.Engine, host.Engine.Presets(), visage.Version)
		if sse {
			if err := server.ServeSSE(sc, port); err != nil {
				fmt.Printf("MCP server error: %v\n", err)
				os.Exit(1)
			}
			return
		}
		if err := server.ServeStdio(); err != nil {
			fmt.Printf("MCP server error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().Bool("sse", false, "Serve over SSE instead of stdio")
	mcpCmd.Flags().IntP("port", "p", 8421, "Port for SSE mode")
	mcpCmd.Flags().String("catalog", "", "YAML preset catalog path (overrides VISAGE_CATALOG)")
	mcpCmd.Flags().String("remote", "", "Remote authority websocket URL (overrides VISAGE_REMOTE_URL)")
	mcpCmd.Flags().Int("fps", 0, "Frame rate (overrides VISAGE_FPS)")
}
