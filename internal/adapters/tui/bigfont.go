package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// glyphHeight is the number of rows every glyph occupies.
const glyphHeight = 3

// glyphs maps digits and the colon to half-block art three rows tall.
var glyphs = map[rune][glyphHeight]string{
	'0': {"█▀█", "█ █", "▀▀▀"},
	'1': {"▀█ ", " █ ", "▀▀▀"},
	'2': {"▀▀█", "█▀▀", "▀▀▀"},
	'3': {"▀▀█", " ▀█", "▀▀▀"},
	'4': {"█ █", "▀▀█", "  ▀"},
	'5': {"█▀▀", "▀▀█", "▀▀▀"},
	'6': {"█▀▀", "█▀█", "▀▀▀"},
	'7': {"▀▀█", "  █", "  ▀"},
	'8': {"█▀█", "█▀█", "▀▀▀"},
	'9': {"█▀█", "▀▀█", "▀▀▀"},
	':': {"▄", " ", "▀"},
}

// bigFontMinWidth is the narrowest terminal that gets the large clock.
const bigFontMinWidth = 40

// renderBigTime renders an MM:SS string as large glyphs. Narrow terminals
// get a single bold line instead.
func renderBigTime(timeStr string, color lipgloss.Color, width int) string {
	style := lipgloss.NewStyle().Bold(true).Foreground(color)
	if width < bigFontMinWidth {
		return style.Render(timeStr)
	}

	var rows [glyphHeight]strings.Builder
	for i, ch := range timeStr {
		g, ok := glyphs[ch]
		if !ok {
			continue
		}
		for r := range rows {
			if i > 0 {
				rows[r].WriteString(" ")
			}
			rows[r].WriteString(g[r])
		}
	}

	lines := make([]string, glyphHeight)
	for r := range rows {
		lines[r] = style.Render(rows[r].String())
	}
	return strings.Join(lines, "\n")
}
