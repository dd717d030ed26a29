package components

import (
	"strings"

	"dayspend/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	style := lipgloss.NewStyle().Foreground(color)

	var buf strings.Builder
	buf.Grow(len(values) * 4) // UTF-8 block chars are up to 3 bytes
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		buf.WriteRune(blocks[idx])
	}

	return style.Render(buf.String())
}

// HBarRow is one labeled row in a horizontal bar list.
type HBarRow struct {
	Label  string
	Value  float64
	Amount string // pre-formatted value shown after the bar
}

// HBarList renders horizontal bars scaled to the largest value.
// totalWidth is the full row width including label and amount columns.
func HBarList(rows []HBarRow, totalWidth int) string {
	if len(rows) == 0 {
		return ""
	}
	t := theme.Active

	labelW := 0
	amountW := 0
	peak := 0.0
	for _, r := range rows {
		if w := lipgloss.Width(r.Label); w > labelW {
			labelW = w
		}
		if w := lipgloss.Width(r.Amount); w > amountW {
			amountW = w
		}
		if r.Value > peak {
			peak = r.Value
		}
	}
	if peak == 0 {
		peak = 1
	}

	barW := totalWidth - labelW - amountW - 4
	if barW < 5 {
		barW = 5
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	barStyle := lipgloss.NewStyle().Foreground(t.Blue)
	amountStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

	var b strings.Builder
	for i, r := range rows {
		filled := int(r.Value / peak * float64(barW))
		if filled < 1 && r.Value > 0 {
			filled = 1
		}
		if filled > barW {
			filled = barW
		}
		b.WriteString(labelStyle.Render(padRight(r.Label, labelW)))
		b.WriteString("  ")
		b.WriteString(barStyle.Render(strings.Repeat("█", filled)))
		b.WriteString(strings.Repeat(" ", barW-filled))
		b.WriteString("  ")
		b.WriteString(amountStyle.Render(padLeft(r.Amount, amountW)))
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func padRight(s string, w int) string {
	if n := w - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

func padLeft(s string, w int) string {
	if n := w - lipgloss.Width(s); n > 0 {
		return strings.Repeat(" ", n) + s
	}
	return s
}
