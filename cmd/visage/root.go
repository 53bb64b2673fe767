package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "visage",
	Short: "Visage is a real-time expression synthesis engine for avatar faces",
	Long: `Visage animates an avatar face: smooth transitions between expression
presets, per-preset motion rules and an autonomous liveness layer, driven
at a fixed frame rate and exposed over HTTP, websocket and MCP.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides VISAGE_LOG_LEVEL)")
}
