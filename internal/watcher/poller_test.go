package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/jackchuka/reponest/internal/status"
)

func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit() error = %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "test.txt"), []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := wt.Add("test.txt"); err != nil {
		t.Fatal(err)
	}
	if _, err := wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@test.com", When: time.Now()},
	}); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	return dir
}

func TestNewPoller_MinimumInterval(t *testing.T) {
	tests := []struct {
		name         string
		interval     time.Duration
		wantInterval time.Duration
	}{
		{"below minimum clamps to 1s", 100 * time.Millisecond, time.Second},
		{"zero clamps to 1s", 0, time.Second},
		{"exact 1s preserved", time.Second, time.Second},
		{"above minimum preserved", 5 * time.Second, 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPoller(status.NewReader(), tt.interval)
			if p.interval != tt.wantInterval {
				t.Errorf("interval = %v, want %v", p.interval, tt.wantInterval)
			}
		})
	}
}

func TestPoller_Events(t *testing.T) {
	p := NewPoller(status.NewReader(), time.Second)
	ch := p.Events()
	if ch == nil {
		t.Error("Events() returned nil channel")
	}
}

func TestPoller_WatchAndUnwatch(t *testing.T) {
	dir := initRepo(t)
	p := NewPoller(status.NewReader(), time.Second)

	if err := p.Watch(dir); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	p.mu.RLock()
	_, exists := p.repos[dir]
	p.mu.RUnlock()
	if !exists {
		t.Error("repo should be registered after Watch()")
	}

	p.Unwatch(dir)
	p.mu.RLock()
	_, exists = p.repos[dir]
	p.mu.RUnlock()
	if exists {
		t.Error("repo should be removed after Unwatch()")
	}
}

func TestPoller_WatchDuplicate(t *testing.T) {
	dir := initRepo(t)
	p := NewPoller(status.NewReader(), time.Second)

	if err := p.Watch(dir); err != nil {
		t.Fatalf("first Watch() error = %v", err)
	}
	if err := p.Watch(dir); err != nil {
		t.Fatalf("second Watch() error = %v", err)
	}

	p.mu.RLock()
	count := len(p.repos)
	p.mu.RUnlock()

	if count != 1 {
		t.Errorf("repos count = %d after duplicate Watch, want 1", count)
	}
}

func TestPoller_RunCancellation(t *testing.T) {
	p := NewPoller(status.NewReader(), time.Second)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
		// Run returned after cancellation
	case <-time.After(3 * time.Second):
		t.Fatal("Run() did not return after context cancellation")
	}
}

func TestPoller_DetectsChanges(t *testing.T) {
	dir := initRepo(t)

	p := NewPoller(status.NewReader(), time.Second)
	if err := p.Watch(dir); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	// Modify the tracked file to change the extracted state
	if err := os.WriteFile(filepath.Join(dir, "test.txt"), []byte("hello world"), 0644); err != nil {
		t.Fatal(err)
	}

	// Trigger a poll manually
	p.poll(context.Background())

	select {
	case ev := <-p.events:
		if ev.RepoPath != dir {
			t.Errorf("event RepoPath = %q, want %q", ev.RepoPath, dir)
		}
		if ev.Info.Modified != 1 {
			t.Errorf("event Info.Modified = %d, want 1", ev.Info.Modified)
		}
		if !ev.Info.Dirty {
			t.Error("event Info.Dirty = false, want true")
		}
	default:
		t.Error("expected a change event after modifying a tracked file")
	}
}

func TestPoller_NoEventWhenUnchanged(t *testing.T) {
	dir := initRepo(t)

	p := NewPoller(status.NewReader(), time.Second)
	if err := p.Watch(dir); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	// Poll without making changes
	p.poll(context.Background())

	select {
	case ev := <-p.events:
		t.Errorf("unexpected event: %+v", ev)
	default:
		// No event expected
	}
}

func TestPoller_SkipsFailedReads(t *testing.T) {
	plain := t.TempDir() // not a repository

	p := NewPoller(status.NewReader(), time.Second)
	if err := p.Watch(plain); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	p.poll(context.Background())

	select {
	case ev := <-p.events:
		t.Errorf("unexpected event for an unreadable path: %+v", ev)
	default:
	}
}

func TestPoller_Close(t *testing.T) {
	p := NewPoller(status.NewReader(), time.Second)
	if err := p.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	// Reading from closed channel should return zero value immediately
	_, ok := <-p.events
	if ok {
		t.Error("expected channel to be closed")
	}
}
