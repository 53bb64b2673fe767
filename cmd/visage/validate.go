package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mengchil/visage/pkg/adapters/file"
)

// validateCmd checks a catalog file without starting anything.
var validateCmd = &cobra.Command{
	Use:   "validate <catalog.yaml>",
	Short: "Check a preset catalog for consistency",
	Long: `Parses the catalog and reports every problem at once: malformed trees,
bad colors, motion rules without a base channel, duplicate ids.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		reg, err := file.LoadCatalog(args[0])
		if err != nil {
			fmt.Printf("Validation failed:\n%v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Catalog is valid! %d presets: %v\n", len(reg.IDs()), reg.IDs())
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
