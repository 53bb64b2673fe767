package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mengchil/visage"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of visage",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("visage version %s\n", strings.TrimSpace(visage.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
