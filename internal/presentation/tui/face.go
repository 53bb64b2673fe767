package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"

	"github.com/mengchil/visage/pkg/domain"
)

// RenderFace draws a snapshot as a tiny terminal face, tinted with the
// preset color. Meant for the console preview, not for real rendering.
func RenderFace(snap domain.Snapshot) string {
	left, _ := snap.Params.NumberAt(domain.PathEyeLeftOpenness)
	right, _ := snap.Params.NumberAt(domain.PathEyeRightOpenness)
	curve, _ := snap.Params.NumberAt(domain.PathMouthCurve)

	face := fmt.Sprintf("  %s   %s  \n   %s   ", eye(left), eye(right), mouth(curve))

	p := termenv.ColorProfile()
	tinted := make([]string, 0, 2)
	for _, line := range strings.Split(face, "\n") {
		tinted = append(tinted, termenv.String(line).Foreground(p.Color(snap.Color)).String())
	}
	return strings.Join(tinted, "\n")
}

func eye(openness float64) string {
	switch {
	case openness <= 0.05:
		return "_"
	case openness < 0.4:
		return "-"
	case openness < 0.75:
		return "o"
	default:
		return "O"
	}
}

func mouth(curve float64) string {
	switch {
	case curve > 2:
		return `\_/`
	case curve < -2:
		return `/‾\`
	default:
		return "---"
	}
}
