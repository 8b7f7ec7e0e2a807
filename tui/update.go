package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jackchuka/reponest/internal/log"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case scanDoneMsg:
		m.scanning = false
		log.InfoLog.Printf("scan found %d repositories", len(msg.paths))

		m.prune(msg.paths)
		m.refresh()

		if len(msg.paths) == 0 {
			// A sealed worker with nothing queued never completes, so
			// drop it instead of polling forever.
			m.work.Shutdown()
			m.work = nil
			return m, nil
		}

		for _, p := range msg.paths {
			if err := m.work.Submit(p); err != nil {
				log.WarningLog.Printf("submit %s: %v", p, err)
				continue
			}
			if m.watcher != nil {
				_ = m.watcher.Watch(p)
			}
		}
		m.work.FinishSubmitting()
		return m, m.ensureTick()

	case pollTickMsg:
		m.frame++

		// Completion is checked before the drain: results buffered by
		// then are all picked up below, so none are stranded when the
		// tick loop stops.
		done := m.work == nil || m.work.IsComplete()
		if m.work != nil {
			if results := m.work.PollResults(); len(results) > 0 {
				for _, info := range results {
					m.upsert(info)
				}
				m.refresh()
			}
		}

		if m.scanning || !done {
			return m, m.pollTick()
		}
		m.ticking = false
		return m, nil

	case repoChangedMsg:
		log.DebugLog.Printf("change detected in %s", msg.info.Path)
		m.upsert(msg.info)
		m.refresh()
		return m, m.listenForChanges()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key closes the help overlay
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	// Navigation
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Top):
		m.cursor = 0

	case key.Matches(msg, m.keys.Bottom):
		if len(m.visible) > 0 {
			m.cursor = len(m.visible) - 1
		}

	// Views
	case key.Matches(msg, m.keys.Details):
		if _, ok := m.selected(); ok {
			m.mode = viewDetail
		}

	case key.Matches(msg, m.keys.Back):
		m.mode = viewList

	// Actions
	case key.Matches(msg, m.keys.Cd):
		if sel, ok := m.selected(); ok {
			m.cdPath = sel.Path
			return m, tea.Quit
		}

	case key.Matches(msg, m.keys.Rescan):
		return m, tea.Batch(m.startScan(), m.ensureTick())

	case key.Matches(msg, m.keys.ToggleClean):
		m.showClean = !m.showClean
		m.buildRows()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	}

	return m, nil
}

func (m *Model) visibleRows() int {
	// header(2) + table header(1) + footer(2) = 5
	avail := m.height - 5
	if avail < 1 {
		avail = 1
	}
	return avail
}
