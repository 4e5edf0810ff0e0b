// Package overlay composites modal panes (the editor's help, history, and
// link prompts) over a rendered base view without clearing the screen.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position anchors the overlay within the viewport.
type Position int

const (
	// Center anchors the overlay mid-viewport, the default for prompts.
	Center Position = iota
	// Top anchors at the top edge, horizontally centered.
	Top
	// Bottom anchors at the bottom edge, horizontally centered.
	Bottom
)

// Config describes the viewport the overlay composites into.
type Config struct {
	// Width and Height are the full viewport dimensions.
	Width  int
	Height int
	// Position anchors the overlay.
	Position Position
	// PadX and PadY inset the overlay from the anchored edges; Center
	// ignores both.
	PadX int
	PadY int
}

// Place splices fg over bg line by line. All slicing is ANSI-aware so
// styled runs on either side of the overlay survive intact.
func Place(cfg Config, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")

	for len(bgLines) < cfg.Height {
		bgLines = append(bgLines, strings.Repeat(" ", cfg.Width))
	}

	fgHeight := len(fgLines)
	fgWidth := lipgloss.Width(fg)

	startX, startY := calculatePosition(cfg, fgWidth, fgHeight)

	for i, fgLine := range fgLines {
		bgY := startY + i
		if bgY >= len(bgLines) {
			break
		}

		bgLine := bgLines[bgY]
		fgLineWidth := ansi.StringWidth(fgLine)

		leftPart := ansi.Truncate(bgLine, startX, "")

		// A background line shorter than the overlay origin pads out.
		leftWidth := ansi.StringWidth(leftPart)
		if leftWidth < startX {
			leftPart += strings.Repeat(" ", startX-leftWidth)
		}

		endX := startX + fgLineWidth
		bgWidth := ansi.StringWidth(bgLine)
		var rightPart string
		if endX < bgWidth {
			rightPart = ansi.TruncateLeft(bgLine, endX, "")
		}

		bgLines[bgY] = leftPart + fgLine + rightPart
	}

	return strings.Join(bgLines, "\n")
}

// calculatePosition resolves the overlay's top-left corner, clamped to
// the viewport.
func calculatePosition(cfg Config, fgWidth, fgHeight int) (x, y int) {
	switch cfg.Position {
	case Top:
		x = (cfg.Width - fgWidth) / 2
		y = cfg.PadY
	case Bottom:
		x = (cfg.Width - fgWidth) / 2
		y = cfg.Height - fgHeight - cfg.PadY
	default: // Center
		x = (cfg.Width - fgWidth) / 2
		y = (cfg.Height - fgHeight) / 2
	}

	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return x, y
}
