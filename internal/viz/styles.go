// Package viz renders terminal summaries of recombination runs.
package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/recomb/internal/analysis"
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ccff"))

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 2)

	Label = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888899"))

	Value = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ff88"))

	Warn = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ffaa00"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))
)

// SummaryPanel renders the standard diagnostics of a finished run.
func SummaryPanel(model string, nz int, sum analysis.Summary, warnings []string) string {
	var b strings.Builder
	b.WriteString(Title.Render("recombination history: "+model) + "\n")
	row(&b, "grid points", fmt.Sprintf("%d", nz))
	row(&b, "z(xe=0.5)", fmt.Sprintf("%.1f", sum.ZRecombination))
	row(&b, "tau(z<1100)", fmt.Sprintf("%.5f", sum.TauToZ1100))
	row(&b, "freeze-out xe", fmt.Sprintf("%.3e", sum.FreezeOutXe))
	row(&b, "Tm(z=0)", fmt.Sprintf("%.3f K", sum.TmFinal))
	for _, w := range warnings {
		b.WriteString(Warn.Render("warning: "+w) + "\n")
	}
	return Panel.Render(strings.TrimRight(b.String(), "\n"))
}

func row(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "%s %s\n", Label.Render(fmt.Sprintf("%-14s", label)), Value.Render(value))
}

// Sparkline renders values as a one-line mini chart, sampled to width.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / rng
		idx := int(norm * float64(len(chars)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(chars) {
			idx = len(chars) - 1
		}
		b.WriteRune(chars[idx])
	}
	return b.String()
}

// ProgressBar renders completion as a fixed-width bar.
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return Value.Render(strings.Repeat("█", filled)) + Subtle.Render(strings.Repeat("░", width-filled))
}
