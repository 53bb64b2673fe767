package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mengchil/visage/internal/cli"
	"github.com/mengchil/visage/internal/config"
	"github.com/mengchil/visage/internal/presentation/tui"
	"github.com/mengchil/visage/pkg/domain"
)

// runCmd starts the full host: frame loop, HTTP surface and, when
// configured, the remote channel.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the synthesis loop with the HTTP control surface",
	Long: `Starts the engine at the configured frame rate, serves the control API
and snapshot stream, and follows the remote expression feed when
VISAGE_REMOTE_URL is set.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		quiet, _ := cmd.Flags().GetBool("quiet")
		preview, _ := cmd.Flags().GetBool("preview")
		if !quiet {
			tui.PrintBanner()
		}

		logger := cli.CreateLogger(cfg.LogLevel)
		host, err := cli.NewHost(cfg, logger)
		if err != nil {
			fmt.Printf("Error initializing engine: %v\n", err)
			os.Exit(1)
		}
		if preview {
			host.ExtraPublishers = append(host.ExtraPublishers, &previewPublisher{every: cfg.FPS / 4})
		}

		sc := cli.NewSignalContext(context.Background())
		defer sc.Cancel()

		if err := host.Run(sc); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("listen", "", "HTTP listen address (overrides VISAGE_LISTEN)")
	runCmd.Flags().String("catalog", "", "YAML preset catalog path (overrides VISAGE_CATALOG)")
	runCmd.Flags().String("remote", "", "Remote authority websocket URL (overrides VISAGE_REMOTE_URL)")
	runCmd.Flags().Int("fps", 0, "Frame rate (overrides VISAGE_FPS)")
	runCmd.Flags().BoolP("quiet", "q", false, "Suppress the banner")
	runCmd.Flags().Bool("preview", false, "Draw a terminal face preview while running")
}

// loadConfig reads the environment and applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	if v, _ := cmd.Flags().GetString("listen"); v != "" {
		cfg.Listen = v
	}
	if v, _ := cmd.Flags().GetString("catalog"); v != "" {
		cfg.Catalog = v
	}
	if v, _ := cmd.Flags().GetString("remote"); v != "" {
		cfg.RemoteURL = v
	}
	if v, _ := cmd.Flags().GetInt("fps"); v > 0 {
		cfg.FPS = v
	}
	if v, _ := cmd.Root().PersistentFlags().GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	return cfg, cfg.Validate()
}

// previewPublisher redraws a tiny terminal face every few frames.
type previewPublisher struct {
	every int
	count int
}

func (p *previewPublisher) Publish(ctx context.Context, snap domain.Snapshot) error {
	p.count++
	if p.every > 0 && p.count%p.every != 0 {
		return nil
	}
	// save cursor, draw over the previous face, restore
	fmt.Print("\0337", tui.RenderFace(snap), "\0338")
	return nil
}

func (p *previewPublisher) Close() error {
	fmt.Print("\n\n")
	return nil
}
