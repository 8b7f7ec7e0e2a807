package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jackchuka/reponest/internal/model"
)

func (m *Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	if m.showHelp {
		sections = append(sections, m.renderHelp())
		return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top,
			strings.Join(sections, "\n"))
	}

	if m.mode == viewDetail {
		sections = append(sections, m.renderDetail())
	} else {
		sections = append(sections, m.renderList())
	}
	sections = append(sections, m.renderFooter())

	return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top,
		strings.Join(sections, "\n"))
}

func (m *Model) renderHeader() string {
	title := m.theme.title.Render("reponest")

	var activity string
	switch {
	case m.scanning:
		activity = "  " + m.theme.renderSpinner(m.frame) + " Scanning..."
	case m.work != nil && !m.work.IsComplete():
		activity = fmt.Sprintf("  %s Reading %d/%d...",
			m.theme.renderSpinner(m.frame), m.work.Completed(), m.work.Pending())
	}

	// Dim label + bold colored number per count
	c := m.counts
	bold := lipgloss.NewStyle().Bold(true)
	stats := m.theme.dim.Render("repos ") +
		bold.Foreground(m.theme.colorSelFg).Render(fmt.Sprintf("%d", c.Total))
	if c.Dirty > 0 {
		stats += "  " + m.theme.dim.Render("dirty ") +
			bold.Foreground(m.theme.colorDirty).Render(fmt.Sprintf("%d", c.Dirty))
	}
	if c.Unpushed > 0 {
		stats += "  " + m.theme.dim.Render("ahead ") +
			bold.Foreground(m.theme.colorAccent).Render(fmt.Sprintf("%d", c.Unpushed))
	}
	if c.Conflict > 0 {
		stats += "  " + m.theme.dim.Render("conflict ") +
			bold.Foreground(m.theme.colorDanger).Render(fmt.Sprintf("%d", c.Conflict))
	}
	if c.Errors > 0 {
		stats += "  " + m.theme.dim.Render("errors ") +
			bold.Foreground(m.theme.colorDanger).Render(fmt.Sprintf("%d", c.Errors))
	}

	left := title + activity
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(stats)
	if gap < 1 {
		gap = 1
	}

	line := left + strings.Repeat(" ", gap) + stats
	sep := m.theme.dim.Render(strings.Repeat("─", m.width))

	return line + "\n" + sep
}

// --- List view ---

func (m *Model) renderList() string {
	visRows := m.visibleRows()
	tableHeight := visRows + 1 // +1 for header

	if len(m.visible) == 0 {
		msg := "No repos found"
		if m.scanning {
			msg = "Scanning..."
		} else if len(m.repos) > 0 {
			msg = "All repos filtered out"
		}
		content := "\n " + m.theme.dim.Render(msg)
		lines := strings.Split(content, "\n")
		for len(lines) < tableHeight {
			lines = append(lines, "")
		}
		return strings.Join(lines, "\n")
	}

	cols := computeColumns(m.width)

	hdr := " " +
		m.theme.tableHdr.Render(padRight("REPO", cols.repo)) +
		m.theme.tableHdr.Render(padRight("BRANCH", cols.branch)) +
		m.theme.tableHdr.Render(padRight("SYNC", cols.sync)) +
		m.theme.tableHdr.Render(padRight("CHANGES", cols.changes)) +
		m.theme.tableHdr.Render(padRight("LAST COMMIT", cols.last))

	// Keep cursor in view
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+visRows {
		m.scrollOffset = m.cursor - visRows + 1
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}

	end := m.scrollOffset + visRows
	if end > len(m.visible) {
		end = len(m.visible)
	}

	lines := []string{hdr}
	for i := m.scrollOffset; i < end; i++ {
		lines = append(lines, m.renderRow(m.visible[i], cols, i == m.cursor))
	}

	// Pad so the footer stays at the bottom
	for len(lines) < tableHeight {
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

type columnWidths struct {
	repo    int
	branch  int
	sync    int
	changes int
	last    int
}

func computeColumns(width int) columnWidths {
	usable := width - 2 // leading space + margin
	if usable < 40 {
		usable = 40
	}

	c := columnWidths{
		repo:    usable * 26 / 100,
		branch:  usable * 16 / 100,
		sync:    usable * 10 / 100,
		changes: usable * 20 / 100,
	}

	if c.repo < 10 {
		c.repo = 10
	}
	if c.branch < 8 {
		c.branch = 8
	}
	if c.sync < 8 {
		c.sync = 8
	}
	if c.changes < 10 {
		c.changes = 10
	}
	c.last = usable - c.repo - c.branch - c.sync - c.changes
	if c.last < 10 {
		c.last = 10
	}

	return c
}

// rowRenderer holds the per-row styling state shared across cells.
type rowRenderer struct {
	th      theme
	bg      func(lipgloss.Style) lipgloss.Style
	rowBg   lipgloss.Style
	bgColor lipgloss.Color // empty when no row background
}

func (m *Model) newRowRenderer(selected bool) rowRenderer {
	var bgColor lipgloss.Color
	if selected {
		bgColor = m.theme.colorSelBg
	}
	bg := func(base lipgloss.Style) lipgloss.Style {
		if selected {
			return base.Background(m.theme.colorSelBg)
		}
		return base
	}
	return rowRenderer{
		th:      m.theme,
		bg:      bg,
		rowBg:   bg(lipgloss.NewStyle()),
		bgColor: bgColor,
	}
}

func (m *Model) renderRow(info model.Info, cols columnWidths, selected bool) string {
	r := m.newRowRenderer(selected)

	line := r.rowBg.Render(" ") +
		r.repoCell(info, cols.repo, selected) +
		r.branchCell(info, cols.branch) +
		r.syncCell(info, cols.sync) +
		r.changesCell(info, cols.changes) +
		r.lastCell(info, cols.last)

	return r.rowBg.Width(m.width).Render(line)
}

func (r rowRenderer) repoCell(info model.Info, width int, selected bool) string {
	var dot string
	switch {
	case info.Err != nil:
		dot = r.bg(r.th.conflict).Render(iconError)
	case info.Conflicts > 0 || info.HasSpecialState():
		dot = r.bg(r.th.conflict).Render(iconConflict)
	case info.Dirty:
		dot = r.bg(r.th.dirty).Render(iconDirty)
	default:
		dot = r.bg(r.th.clean).Render(iconClean)
	}

	nameStyle := r.bg(r.th.repoName)
	if selected {
		nameStyle = nameStyle.Foreground(r.th.colorSelFg)
	}
	name := truncateWithEllipsis(info.Name, width-3)
	return r.rowBg.Width(width).Render(dot + r.rowBg.Render(" ") + nameStyle.Render(name))
}

func (r rowRenderer) branchCell(info model.Info, width int) string {
	if info.Err != nil {
		return r.bg(r.th.dim).Width(width).Render("─")
	}
	return r.bg(r.th.branch).Width(width).Render(truncateWithEllipsis(info.Branch, width-1))
}

func (r rowRenderer) syncCell(info model.Info, width int) string {
	var content string
	switch {
	case info.Err != nil:
		content = r.bg(r.th.dim).Render("─")
	case info.HasSpecialState():
		content = r.bg(r.th.conflict).Render(strings.ToUpper(info.Special))
	default:
		if info.Ahead > 0 {
			content += r.bg(r.th.ahead).Render(fmt.Sprintf("%s%d", iconAhead, info.Ahead))
		}
		if info.Behind > 0 {
			if content != "" {
				content += r.rowBg.Render(" ")
			}
			content += r.bg(r.th.behind).Render(fmt.Sprintf("%s%d", iconBehind, info.Behind))
		}
		if content == "" {
			content = r.bg(r.th.dim).Render("──")
		}
	}
	return r.rowBg.Width(width).Render(content)
}

func (r rowRenderer) changesCell(info model.Info, width int) string {
	if info.Err != nil {
		return r.bg(r.th.dim).Width(width).Render("─")
	}

	barW := width - 5
	if barW < 3 {
		barW = 3
	}
	total := info.Staged + info.Modified + info.Untracked
	bar := r.th.renderStackedBar(info.Staged, info.Modified, info.Untracked, barW, r.bgColor)
	content := bar + r.rowBg.Render(" ") + r.bg(r.th.dim).Render(fmt.Sprintf("%d", total))
	return r.rowBg.Width(width).Render(content)
}

func (r rowRenderer) lastCell(info model.Info, width int) string {
	text := info.LastCommit
	if info.Err != nil {
		text = info.Err.Error()
	}
	return r.bg(r.th.dim).Width(width).Render(truncateWithEllipsis(text, width-1))
}

// --- Detail view ---

func (m *Model) renderDetail() string {
	height := m.visibleRows() + 1
	sel, ok := m.selected()
	if !ok {
		return padLines(m.theme.dim.Render(" No selection"), m.width, height)
	}

	innerW := m.width - 2
	var lines []string

	lines = append(lines, m.theme.repoName.Render(" "+sel.Name))
	lines = append(lines, m.theme.dim.Render(" "+sel.Path))
	lines = append(lines, "")

	if sel.Err != nil {
		lines = append(lines, m.theme.conflict.Render(" "+iconError+" "+sel.Err.Error()))
		return padLines(strings.Join(lines, "\n"), m.width, height)
	}

	branchLine := " " + m.theme.branch.Render(iconBranch+" "+sel.Branch)
	if sel.HasSpecialState() {
		branchLine += "  " + m.theme.conflict.Render(iconBolt+" "+strings.ToUpper(sel.Special))
	}
	lines = append(lines, branchLine)

	if sel.RemoteURL != "" {
		lines = append(lines, m.theme.dim.Render(" remote: "+truncateWithEllipsis(sel.RemoteURL, innerW-9)))
	}
	if sel.LastCommit != "" {
		last := sel.LastCommit
		if sel.LastAuthor != "" {
			last += " (" + sel.LastAuthor + ")"
		}
		lines = append(lines, m.theme.dim.Render(" last: "+truncateWithEllipsis(last, innerW-7)))
	}
	if sel.StashCount > 0 {
		lines = append(lines, m.theme.dim.Render(fmt.Sprintf(" stashes: %d", sel.StashCount)))
	}
	lines = append(lines, "")

	if sel.Ahead > 0 || sel.Behind > 0 {
		maxSync := sel.Ahead
		if sel.Behind > maxSync {
			maxSync = sel.Behind
		}
		barW := 20
		lines = append(lines, m.theme.tableHdr.Render(" SYNC"))
		lines = append(lines, " "+m.theme.ahead.Render(fmt.Sprintf("%s%-4d", iconAhead, sel.Ahead))+
			m.theme.renderHBar(sel.Ahead, maxSync, barW, m.theme.colorDirty))
		lines = append(lines, " "+m.theme.behind.Render(fmt.Sprintf("%s%-4d", iconBehind, sel.Behind))+
			m.theme.renderHBar(sel.Behind, maxSync, barW, m.theme.colorDanger))
		lines = append(lines, "")
	}

	if sel.Staged+sel.Modified+sel.Untracked+sel.Conflicts > 0 {
		lines = append(lines, m.theme.tableHdr.Render(" FILE CHANGES"))
		barW := innerW - 4
		if barW > 40 {
			barW = 40
		}
		if barW < 4 {
			barW = 4
		}
		lines = append(lines, " "+m.theme.renderStackedBar(sel.Staged, sel.Modified, sel.Untracked, barW))
		if sel.Conflicts > 0 {
			lines = append(lines, m.theme.conflict.Render(fmt.Sprintf("  conflicts: %d", sel.Conflicts)))
		}
		if sel.Staged > 0 {
			lines = append(lines, m.theme.clean.Render(fmt.Sprintf("  staged:    %d", sel.Staged)))
		}
		if sel.Modified > 0 {
			lines = append(lines, m.theme.dirty.Render(fmt.Sprintf("  modified:  %d", sel.Modified)))
		}
		if sel.Untracked > 0 {
			lines = append(lines, m.theme.dim.Render(fmt.Sprintf("  untracked: %d", sel.Untracked)))
		}
		lines = append(lines, "")

		const maxFiles = 12
		for i, ch := range sel.Changes {
			if i >= maxFiles {
				lines = append(lines, m.theme.dim.Render(fmt.Sprintf("  ...and %d more", len(sel.Changes)-maxFiles)))
				break
			}
			lines = append(lines, "  "+m.changeStyle(ch.Status).Render(changeMarker(ch.Status))+
				" "+m.theme.dim.Render(truncateWithEllipsis(ch.Path, innerW-6)))
		}
		if len(sel.Changes) > 0 {
			lines = append(lines, "")
		}
	}

	if len(sel.Activity) > 0 {
		totalCommits := 0
		for _, n := range sel.Activity {
			totalCommits += n
		}
		lines = append(lines, m.theme.tableHdr.Render(" ACTIVITY (7d)"))
		lines = append(lines, " "+m.theme.renderSparkline(sel.Activity))
		lines = append(lines, m.theme.dim.Render(fmt.Sprintf("  %d commits this week", totalCommits)))
	}

	return padLines(strings.Join(lines, "\n"), m.width, height)
}

func (m *Model) changeStyle(s model.FileStatus) lipgloss.Style {
	switch s {
	case model.StatusConflicted:
		return m.theme.conflict
	case model.StatusStaged:
		return m.theme.clean
	case model.StatusModified:
		return m.theme.dirty
	default:
		return m.theme.dim
	}
}

func changeMarker(s model.FileStatus) string {
	switch s {
	case model.StatusConflicted:
		return "!"
	case model.StatusStaged:
		return "+"
	case model.StatusModified:
		return "~"
	default:
		return "?"
	}
}

// --- Footer & help ---

func (m *Model) renderFooter() string {
	sep := m.theme.dim.Render(strings.Repeat("─", m.width))

	var parts []string
	if m.mode == viewDetail {
		parts = append(parts, m.theme.key.Render("esc")+" back")
		parts = append(parts, m.theme.key.Render("j/k")+" select")
	} else {
		parts = append(parts, m.theme.key.Render("enter")+" details")
		parts = append(parts, m.theme.key.Render("r")+" rescan")
		if m.showClean {
			parts = append(parts, m.theme.key.Render("c")+" hide clean")
		} else {
			parts = append(parts, m.theme.activeKey.Render("c clean hidden"))
		}
	}
	parts = append(parts, m.theme.key.Render("o")+" cd")
	parts = append(parts, m.theme.key.Render("?")+" help")
	parts = append(parts, m.theme.key.Render("q")+" quit")

	return sep + "\n " + truncateWithEllipsis(strings.Join(parts, "  "), m.width-2)
}

func (m *Model) renderHelp() string {
	content := m.keys.helpText()

	box := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(m.theme.colorAccent).
		Padding(1, 2).
		Width(44).
		Render(m.theme.title.Render("HELP") + "\n\n" + content + "\n\n" +
			m.theme.dim.Render("press any key to close"))

	availH := m.height - 4
	if availH < 10 {
		availH = 10
	}
	return lipgloss.Place(m.width, availH, lipgloss.Center, lipgloss.Center, box)
}

func padLines(content string, width, height int) string {
	lines := strings.Split(content, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		w := lipgloss.Width(line)
		if w < width {
			lines[i] = line + strings.Repeat(" ", width-w)
		}
	}
	return strings.Join(lines, "\n")
}
