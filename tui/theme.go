package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// theme bundles one color scheme's palette with the styles derived
// from it. Everything rendered goes through a theme so switching
// schemes is a single construction in NewModel.
type theme struct {
	colorClean  lipgloss.Color
	colorDirty  lipgloss.Color
	colorDanger lipgloss.Color
	colorAccent lipgloss.Color
	colorFg     lipgloss.Color
	colorDim    lipgloss.Color
	colorEmpty  lipgloss.Color
	colorSelBg  lipgloss.Color
	colorSelFg  lipgloss.Color
	colorHdr    lipgloss.Color

	title     lipgloss.Style
	dim       lipgloss.Style
	repoName  lipgloss.Style
	branch    lipgloss.Style
	ahead     lipgloss.Style
	behind    lipgloss.Style
	clean     lipgloss.Style
	dirty     lipgloss.Style
	conflict  lipgloss.Style
	barEmpty  lipgloss.Style
	tableHdr  lipgloss.Style
	key       lipgloss.Style
	activeKey lipgloss.Style
}

// newTheme builds the named scheme, falling back to the default
// palette for unknown names. Config validation keeps the set closed.
func newTheme(name string) theme {
	// ANSI 256 palette of the default scheme
	t := theme{
		colorClean:  lipgloss.Color("71"),
		colorDirty:  lipgloss.Color("179"),
		colorDanger: lipgloss.Color("167"),
		colorAccent: lipgloss.Color("73"),
		colorFg:     lipgloss.Color("253"),
		colorDim:    lipgloss.Color("242"),
		colorEmpty:  lipgloss.Color("238"),
		colorSelBg:  lipgloss.Color("238"),
		colorSelFg:  lipgloss.Color("255"),
		colorHdr:    lipgloss.Color("245"),
	}

	switch name {
	case "dark":
		t.colorClean = lipgloss.Color("35")
		t.colorDirty = lipgloss.Color("214")
		t.colorDanger = lipgloss.Color("196")
		t.colorAccent = lipgloss.Color("39")
		t.colorFg = lipgloss.Color("252")
		t.colorDim = lipgloss.Color("240")
		t.colorEmpty = lipgloss.Color("236")
		t.colorSelBg = lipgloss.Color("236")
		t.colorSelFg = lipgloss.Color("231")
		t.colorHdr = lipgloss.Color("244")
	case "light":
		t.colorClean = lipgloss.Color("28")
		t.colorDirty = lipgloss.Color("130")
		t.colorDanger = lipgloss.Color("124")
		t.colorAccent = lipgloss.Color("25")
		t.colorFg = lipgloss.Color("235")
		t.colorDim = lipgloss.Color("246")
		t.colorEmpty = lipgloss.Color("253")
		t.colorSelBg = lipgloss.Color("253")
		t.colorSelFg = lipgloss.Color("232")
		t.colorHdr = lipgloss.Color("240")
	}

	t.title = lipgloss.NewStyle().Bold(true).Foreground(t.colorAccent)
	t.dim = lipgloss.NewStyle().Foreground(t.colorDim)
	t.repoName = lipgloss.NewStyle().Foreground(t.colorFg).Bold(true)
	t.branch = lipgloss.NewStyle().Foreground(t.colorAccent)
	t.ahead = lipgloss.NewStyle().Foreground(t.colorDirty)
	t.behind = lipgloss.NewStyle().Foreground(t.colorDanger)
	t.clean = lipgloss.NewStyle().Foreground(t.colorClean)
	t.dirty = lipgloss.NewStyle().Foreground(t.colorDirty)
	t.conflict = lipgloss.NewStyle().Foreground(t.colorDanger).Bold(true)
	t.barEmpty = lipgloss.NewStyle().Foreground(t.colorEmpty)
	t.tableHdr = lipgloss.NewStyle().Foreground(t.colorHdr).Bold(true)
	t.key = lipgloss.NewStyle().Foreground(t.colorAccent).Bold(true)
	t.activeKey = lipgloss.NewStyle().Foreground(t.colorAccent).Bold(true).Underline(true)

	return t
}

// statusStyle maps a one-word status to its style.
func (t theme) statusStyle(word string) lipgloss.Style {
	switch word {
	case "conflict":
		return t.conflict
	case "dirty":
		return t.dirty
	case "unpushed":
		return t.ahead
	case "unpulled":
		return t.behind
	default:
		return t.clean
	}
}

// Braille spinner frames
var spinnerFrames = []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

// Unicode icons
const (
	iconClean    = "○"
	iconDirty    = "●"
	iconConflict = "⚠"
	iconError    = "!"
	iconBranch   = "⟫"
	iconAhead    = "↑"
	iconBehind   = "↓"
	iconBolt     = "⚡"
)

func (t theme) renderSpinner(frame int) string {
	f := spinnerFrames[frame%len(spinnerFrames)]
	return lipgloss.NewStyle().Foreground(t.colorAccent).Render(f)
}

func truncateWithEllipsis(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth == 1 {
		return "…"
	}
	return ansi.Truncate(s, maxWidth, "…")
}

func padRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
