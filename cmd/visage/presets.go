package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mengchil/visage/internal/presentation/tui"
	"github.com/mengchil/visage/pkg/adapters/file"
	"github.com/mengchil/visage/pkg/domain"
	"github.com/mengchil/visage/pkg/ports"
	"github.com/mengchil/visage/pkg/presets"
)

// presetsCmd lists the expression catalog as a styled table.
var presetsCmd = &cobra.Command{
	Use:   "presets [catalog.yaml]",
	Short: "List the expression presets",
	Long:  `Lists the built-in catalog, or the presets of a given YAML catalog file.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		source, err := loadPresetSource(args)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		render := tui.NewRenderer()
		out, err := render(catalogMarkdown(source.List()))
		if err != nil {
			// glamour failed; plain text still works
			out = catalogMarkdown(source.List())
		}
		fmt.Print(out)
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}

func loadPresetSource(args []string) (ports.PresetSource, error) {
	if len(args) > 0 {
		return file.LoadCatalog(args[0])
	}
	return presets.Registry()
}

func catalogMarkdown(list []domain.Preset) string {
	var b strings.Builder
	b.WriteString("# Expression Catalog\n\n")
	b.WriteString("| ID | Label | Color | Motion |\n")
	b.WriteString("|----|-------|-------|--------|\n")
	for _, p := range list {
		motion := "static"
		if len(p.Motion) > 0 {
			motion = "animated"
			if _, ok := p.Motion.SharedJitter(); ok {
				motion = "animated, jitter"
			}
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", p.ID, p.Label, p.Color, motion)
	}
	return b.String()
}
