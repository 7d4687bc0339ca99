// Package overlay draws boxes over a rendered view.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Center places box in the middle of a width x height area and draws it
// over base.
func Center(base, box string, width, height int) string {
	placed := lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
	return Compose(base, placed, width)
}

// Compose overlays content on top of a base view. On each overlay line
// the span between the first and last non-space column replaces the base.
// Styled text is handled correctly.
func Compose(base, overlay string, width int) string {
	baseLines := strings.Split(base, "\n")
	overlayLines := strings.Split(overlay, "\n")

	for i, overlayLine := range overlayLines {
		if i >= len(baseLines) {
			break
		}

		plainOverlay := ansi.Strip(overlayLine)
		trimmed := strings.TrimRight(plainOverlay, " ")
		if strings.TrimSpace(trimmed) == "" {
			continue
		}

		startCol := len(trimmed) - len(strings.TrimLeft(trimmed, " "))
		endCol := startCol + ansi.StringWidth(trimmed[startCol:])

		baseLine := baseLines[i]
		if w := ansi.StringWidth(baseLine); w < width {
			baseLine += strings.Repeat(" ", width-w)
		}

		result := ansi.Cut(baseLine, 0, startCol) + ansi.Cut(overlayLine, startCol, endCol)
		if endCol < width {
			result += ansi.Cut(baseLine, endCol, width)
		}
		baseLines[i] = result
	}

	return strings.Join(baseLines, "\n")
}
