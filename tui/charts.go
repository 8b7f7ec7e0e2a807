package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline characters ordered by magnitude
var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// withBg applies a background color to a style when bg is non-empty.
func withBg(s lipgloss.Style, bg lipgloss.Color) lipgloss.Style {
	if bg != "" {
		return s.Background(bg)
	}
	return s
}

// renderHBar renders a single-color horizontal bar.
// Returns: "████░░░░" with value/maxValue proportion filled.
func (t theme) renderHBar(value, maxValue, width int, fg lipgloss.Color) string {
	if maxValue <= 0 || width <= 0 {
		return ""
	}
	if value < 0 {
		value = 0
	}
	if value > maxValue {
		value = maxValue
	}

	filled := value * width / maxValue
	if filled == 0 && value > 0 {
		filled = 1
	}
	empty := width - filled

	var b strings.Builder
	if filled > 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(fg).Render(strings.Repeat("█", filled)))
	}
	if empty > 0 {
		b.WriteString(t.barEmpty.Render(strings.Repeat("░", empty)))
	}
	return b.String()
}

// renderStackedBar renders a stacked bar with three segments: staged,
// modified and untracked counts, each proportional to its share.
// Optional bgColor applies a background to each segment for consistent
// row backgrounds.
func (t theme) renderStackedBar(staged, modified, untracked, width int, bgColor ...lipgloss.Color) string {
	var bg lipgloss.Color
	if len(bgColor) > 0 {
		bg = bgColor[0]
	}

	total := staged + modified + untracked
	if total == 0 || width <= 0 {
		return withBg(t.barEmpty, bg).Render(strings.Repeat("░", width))
	}

	stagedW := staged * width / total
	modifiedW := modified * width / total
	untrackedW := untracked * width / total

	// Distribute remainder to largest segment
	remainder := width - stagedW - modifiedW - untrackedW
	if staged >= modified && staged >= untracked {
		stagedW += remainder
	} else if modified >= untracked {
		modifiedW += remainder
	} else {
		untrackedW += remainder
	}

	var b strings.Builder
	if stagedW > 0 {
		b.WriteString(withBg(t.clean, bg).Render(strings.Repeat("█", stagedW)))
	}
	if modifiedW > 0 {
		b.WriteString(withBg(t.dirty, bg).Render(strings.Repeat("█", modifiedW)))
	}
	if untrackedW > 0 {
		b.WriteString(withBg(t.dim, bg).Render(strings.Repeat("█", untrackedW)))
	}

	return b.String()
}

// renderSparkline renders values as block chars ▁▂▃▄▅▆▇█ scaled to the
// largest value.
func (t theme) renderSparkline(values []int) string {
	if len(values) == 0 {
		return ""
	}

	maxVal := 0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}

	var b strings.Builder
	style := lipgloss.NewStyle().Foreground(t.colorAccent)

	for _, v := range values {
		if maxVal == 0 || v == 0 {
			b.WriteString(t.barEmpty.Render("▁"))
		} else {
			idx := v * (len(sparkChars) - 1) / maxVal
			b.WriteString(style.Render(string(sparkChars[idx])))
		}
	}
	return b.String()
}
