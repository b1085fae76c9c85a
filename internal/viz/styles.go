package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Styles struct {
	Title  lipgloss.Style
	Header lipgloss.Style
	Cell   lipgloss.Style
	Muted  lipgloss.Style
	Warn   lipgloss.Style
	Border lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(t.Primary).MarginBottom(1),
		Header: lipgloss.NewStyle().Bold(true).Foreground(t.Secondary).Padding(0, 1),
		Cell:   lipgloss.NewStyle().Foreground(t.Text).Padding(0, 1),
		Muted:  lipgloss.NewStyle().Foreground(t.Muted).Padding(0, 1),
		Warn:   lipgloss.NewStyle().Foreground(t.Warning).Padding(0, 1),
		Border: lipgloss.NewStyle().Foreground(t.Muted),
	}
}

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders values as one bar character per column, sampling
// evenly when there are more values than width.
func Sparkline(values []float64, width int) string {
	if width <= 0 {
		return ""
	}
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	n := min(width, len(values))
	var b strings.Builder
	for i := 0; i < n; i++ {
		v := values[i*len(values)/n]
		idx := int((v - lo) * float64(len(sparkChars)-1) / rng)
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteRune(sparkChars[idx])
	}
	return b.String()
}
