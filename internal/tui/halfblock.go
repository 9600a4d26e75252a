package tui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// upperHalfBlock shows the top pixel as foreground and the bottom pixel as
// background, so one terminal cell covers two image rows.
const upperHalfBlock = "▀"

// renderHalfBlocks converts img into lines of half-block cells. Runs of cells
// with the same color pair share one style. An odd last row is paired with
// the background of the row above.
func renderHalfBlocks(img *image.RGBA) string {
	b := img.Bounds()
	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		var (
			run            int
			runTop, runBot lipgloss.Color
		)
		flush := func() {
			if run == 0 {
				return
			}
			style := lipgloss.NewStyle().Foreground(runTop).Background(runBot)
			sb.WriteString(style.Render(strings.Repeat(upperHalfBlock, run)))
			run = 0
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			top := hexColor(img.RGBAAt(x, y))
			bot := top
			if y+1 < b.Max.Y {
				bot = hexColor(img.RGBAAt(x, y+1))
			}
			if run > 0 && (top != runTop || bot != runBot) {
				flush()
			}
			runTop, runBot = top, bot
			run++
		}
		flush()
		if y+2 < b.Max.Y {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func hexColor(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B))
}
