// internal/status/codes.go
package status

import (
	"sort"

	git "github.com/go-git/go-git/v5"

	"github.com/jackchuka/reponest/internal/model"
)

// applyStatus folds a working-tree status into counts and per-file
// changes. Each path lands in exactly one bucket: conflicted wins, then
// staged, then modified, then untracked. Changes are sorted by path so
// output is stable across runs.
func applyStatus(info *model.Info, st git.Status) {
	for path, fs := range st {
		switch {
		case fs.Staging == git.UpdatedButUnmerged || fs.Worktree == git.UpdatedButUnmerged:
			info.Conflicts++
			info.Changes = append(info.Changes, model.FileChange{Path: path, Status: model.StatusConflicted})
		case stagedCode(fs.Staging):
			info.Staged++
			info.Changes = append(info.Changes, model.FileChange{Path: path, Status: model.StatusStaged})
		case modifiedCode(fs.Worktree):
			info.Modified++
			info.Changes = append(info.Changes, model.FileChange{Path: path, Status: model.StatusModified})
		case fs.Worktree == git.Untracked:
			info.Untracked++
			info.Changes = append(info.Changes, model.FileChange{Path: path, Status: model.StatusUntracked})
		}
	}

	sort.Slice(info.Changes, func(a, b int) bool {
		return info.Changes[a].Path < info.Changes[b].Path
	})
	info.Dirty = len(info.Changes) > 0
}

func stagedCode(c git.StatusCode) bool {
	switch c {
	case git.Added, git.Modified, git.Deleted, git.Renamed, git.Copied:
		return true
	}
	return false
}

func modifiedCode(c git.StatusCode) bool {
	switch c {
	case git.Modified, git.Deleted, git.Renamed, git.Copied:
		return true
	}
	return false
}
