// internal/status/codes_test.go
package status

import (
	"reflect"
	"testing"

	git "github.com/go-git/go-git/v5"

	"github.com/jackchuka/reponest/internal/model"
)

func TestApplyStatus(t *testing.T) {
	st := git.Status{
		"conflict.txt": {Staging: git.UpdatedButUnmerged, Worktree: git.UpdatedButUnmerged},
		"staged.txt":   {Staging: git.Added, Worktree: git.Unmodified},
		"both.txt":     {Staging: git.Modified, Worktree: git.Modified},
		"edited.txt":   {Staging: git.Unmodified, Worktree: git.Modified},
		"stray.txt":    {Staging: git.Untracked, Worktree: git.Untracked},
		"clean.txt":    {Staging: git.Unmodified, Worktree: git.Unmodified},
	}

	var info model.Info
	applyStatus(&info, st)

	if info.Conflicts != 1 {
		t.Errorf("Conflicts = %d, want 1", info.Conflicts)
	}
	// A file staged and then edited again counts once, as staged.
	if info.Staged != 2 {
		t.Errorf("Staged = %d, want 2", info.Staged)
	}
	if info.Modified != 1 {
		t.Errorf("Modified = %d, want 1", info.Modified)
	}
	if info.Untracked != 1 {
		t.Errorf("Untracked = %d, want 1", info.Untracked)
	}
	if !info.Dirty {
		t.Error("Dirty = false, want true")
	}

	want := []model.FileChange{
		{Path: "both.txt", Status: model.StatusStaged},
		{Path: "conflict.txt", Status: model.StatusConflicted},
		{Path: "edited.txt", Status: model.StatusModified},
		{Path: "staged.txt", Status: model.StatusStaged},
		{Path: "stray.txt", Status: model.StatusUntracked},
	}
	if !reflect.DeepEqual(info.Changes, want) {
		t.Errorf("Changes = %v, want %v", info.Changes, want)
	}
}

func TestApplyStatus_Clean(t *testing.T) {
	var info model.Info
	applyStatus(&info, git.Status{})

	if info.Dirty {
		t.Error("Dirty = true for an empty status")
	}
	if len(info.Changes) != 0 {
		t.Errorf("Changes = %v, want none", info.Changes)
	}
}
