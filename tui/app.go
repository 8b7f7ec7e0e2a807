package tui

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jackchuka/reponest/internal/config"
	"github.com/jackchuka/reponest/internal/model"
	"github.com/jackchuka/reponest/internal/scanner"
	"github.com/jackchuka/reponest/internal/status"
	"github.com/jackchuka/reponest/internal/watcher"
	"github.com/jackchuka/reponest/internal/worker"
)

// Options carries per-invocation switches that do not belong in the
// config file.
type Options struct {
	CwdFile      string
	OnlyDirty    bool
	OnlyConflict bool
}

type viewMode int

const (
	viewList viewMode = iota
	viewDetail
)

type countSummary struct {
	Total    int
	Dirty    int
	Conflict int
	Unpushed int
	Errors   int
}

type Model struct {
	cfg  *config.Config
	opts Options

	theme theme
	keys  keyMap

	// repos is the canonical merged list, sorted by path and deduped
	// through index. visible is what the filters leave of it.
	repos   []model.Info
	index   map[string]int
	visible []model.Info
	counts  countSummary

	cursor        int
	scrollOffset  int
	width, height int

	mode      viewMode
	showClean bool
	showHelp  bool

	scanning bool
	frame    int
	ticking  bool

	reader      status.Reader
	work        *worker.Worker[string, model.Info]
	watcher     watcher.RepoWatcher
	watchCancel context.CancelFunc

	cdPath string
}

func NewModel(cfg *config.Config, opts Options) *Model {
	reader := status.NewReader()
	return &Model{
		cfg:       cfg,
		opts:      opts,
		theme:     newTheme(cfg.Theme),
		keys:      newKeyMap(),
		index:     make(map[string]int),
		showClean: cfg.ShowClean,
		reader:    reader,
		watcher:   watcher.NewPoller(reader, cfg.RefreshInterval),
	}
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.startScan(), m.ensureTick()}
	if m.watcher != nil {
		cmds = append(cmds, m.startWatcher())
	}
	return tea.Batch(cmds...)
}

type scanDoneMsg struct{ paths []string }
type pollTickMsg struct{}
type repoChangedMsg struct{ info model.Info }

// startScan shuts down any in-flight worker, builds a fresh one and
// kicks off the directory walk. Results of the old worker are
// discarded wholesale; the new scan re-reads everything.
func (m *Model) startScan() tea.Cmd {
	m.scanning = true

	if m.work != nil {
		m.work.Shutdown()
	}
	reader := m.reader
	m.work = worker.New(func(path string) model.Info {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return reader.Read(ctx, path)
	})

	walker := scanner.NewWalker(scanner.Config{
		MaxDepth: m.cfg.MaxDepth,
		Exclude:  m.cfg.Exclude,
	})
	roots := m.cfg.ScanPaths

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		return scanDoneMsg{paths: walker.ScanMany(ctx, roots)}
	}
}

func (m *Model) pollTick() tea.Cmd {
	m.ticking = true
	return tea.Tick(m.cfg.RefreshInterval, func(time.Time) tea.Msg {
		return pollTickMsg{}
	})
}

func (m *Model) ensureTick() tea.Cmd {
	if m.ticking {
		return nil
	}
	return m.pollTick()
}

func (m *Model) startWatcher() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.watchCancel = cancel
	go m.watcher.Run(ctx)
	return m.listenForChanges()
}

func (m *Model) listenForChanges() tea.Cmd {
	return func() tea.Msg {
		if m.watcher == nil {
			return nil
		}
		event, ok := <-m.watcher.Events()
		if !ok {
			return nil
		}
		return repoChangedMsg{info: event.Info}
	}
}

// upsert merges one result into the repo list, replacing any previous
// read of the same path.
func (m *Model) upsert(info model.Info) {
	if i, ok := m.index[info.Path]; ok {
		m.repos[i] = info
		return
	}
	m.repos = append(m.repos, info)
	m.index[info.Path] = len(m.repos) - 1
}

// prune drops repos whose path is absent from the latest scan, so a
// rescan clears out moved or deleted checkouts. Surviving entries keep
// their last status until the re-read lands.
func (m *Model) prune(paths []string) {
	keep := make(map[string]bool, len(paths))
	for _, p := range paths {
		keep[p] = true
	}

	kept := m.repos[:0]
	for _, r := range m.repos {
		if keep[r.Path] {
			kept = append(kept, r)
			continue
		}
		if m.watcher != nil {
			m.watcher.Unwatch(r.Path)
		}
	}
	m.repos = kept

	m.index = make(map[string]int, len(kept))
	for i := range kept {
		m.index[kept[i].Path] = i
	}
}

func (m *Model) refresh() {
	model.SortByPath(m.repos)
	for i := range m.repos {
		m.index[m.repos[i].Path] = i
	}
	m.computeCounts()
	m.buildRows()
}

func (m *Model) computeCounts() {
	c := countSummary{}
	for _, r := range m.repos {
		c.Total++
		if r.Err != nil {
			c.Errors++
			continue
		}
		if r.Dirty {
			c.Dirty++
		}
		if r.Conflicts > 0 {
			c.Conflict++
		}
		if r.Ahead > 0 {
			c.Unpushed++
		}
	}
	m.counts = c
}

func (m *Model) buildRows() {
	visible := make([]model.Info, 0, len(m.repos))
	for _, r := range m.repos {
		if m.includes(r) {
			visible = append(visible, r)
		}
	}
	m.visible = visible

	// Clamp cursor
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// includes applies the command-line filters and the clean toggle.
// Failed reads always stay visible so problems are not silently
// hidden.
func (m *Model) includes(r model.Info) bool {
	if r.Err != nil {
		return true
	}
	if m.opts.OnlyDirty && !r.Dirty {
		return false
	}
	if m.opts.OnlyConflict && r.Conflicts == 0 {
		return false
	}
	if !m.showClean && r.StatusWord() == "clean" && !r.HasSpecialState() {
		return false
	}
	return true
}

func (m *Model) selected() (model.Info, bool) {
	if len(m.visible) == 0 || m.cursor >= len(m.visible) {
		return model.Info{}, false
	}
	return m.visible[m.cursor], true
}

func Run(cfg *config.Config, opts Options) error {
	m := NewModel(cfg, opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	result, err := p.Run()

	// Cleanup
	if m.watchCancel != nil {
		m.watchCancel()
	}
	if m.watcher != nil {
		_ = m.watcher.Close()
	}
	if m.work != nil {
		m.work.Shutdown()
	}

	if err != nil {
		return err
	}

	// cd action
	if mdl, ok := result.(*Model); ok && mdl.cdPath != "" {
		if opts.CwdFile != "" {
			if err := os.WriteFile(opts.CwdFile, []byte(mdl.cdPath+"\n"), 0644); err != nil {
				return fmt.Errorf("writing cwd file: %w", err)
			}
			return nil
		}
		fmt.Println(mdl.cdPath)
	}

	return nil
}
