// internal/model/repo.go
package model

import (
	"path/filepath"
	"sort"
)

type Repo struct {
	Path string `json:"path"` // absolute path to the repo root
	Name string `json:"name"` // display name, last path element
}

func NewRepo(path string) Repo {
	return Repo{Path: path, Name: filepath.Base(path)}
}

// FileStatus classifies one entry of a repository's working state.
type FileStatus string

const (
	StatusStaged     FileStatus = "staged"
	StatusModified   FileStatus = "modified"
	StatusUntracked  FileStatus = "untracked"
	StatusConflicted FileStatus = "conflicted"
)

type FileChange struct {
	Path   string     `json:"path"`
	Status FileStatus `json:"status"`
}

// In-progress operation labels carried in Info.Special.
const (
	SpecialMerge      = "merge"
	SpecialRebase     = "rebase"
	SpecialCherryPick = "cherry-pick"
	SpecialRevert     = "revert"
	SpecialBisect     = "bisect"
)

// Info is the full extracted state of one repository. When extraction
// fails Err is set and the remaining fields are zero.
type Info struct {
	Repo

	Branch string `json:"branch"` // "?" when HEAD is unborn or detached
	Ahead  int    `json:"ahead"`
	Behind int    `json:"behind"`

	Dirty     bool `json:"dirty"`
	Staged    int  `json:"staged"`
	Modified  int  `json:"modified"`
	Untracked int  `json:"untracked"`
	Conflicts int  `json:"conflicts"`

	RemoteURL  string `json:"remote_url,omitempty"`
	LastCommit string `json:"last_commit,omitempty"` // summary line of HEAD
	LastAuthor string `json:"last_author,omitempty"`
	StashCount int    `json:"stash_count"`
	Special    string `json:"special,omitempty"` // merge, rebase, ...

	// Activity holds commits per day, oldest first, most recent day
	// last.
	Activity []int `json:"activity,omitempty"`

	Changes []FileChange `json:"changes,omitempty"`

	Err error `json:"-"`
}

// StatusWord reduces the state to one word for list output and TUI
// badges. Precedence: conflict, dirty, unpushed, unpulled, clean.
func (i Info) StatusWord() string {
	switch {
	case i.Conflicts > 0:
		return "conflict"
	case i.Dirty:
		return "dirty"
	case i.Ahead > 0:
		return "unpushed"
	case i.Behind > 0:
		return "unpulled"
	default:
		return "clean"
	}
}

// HasSpecialState reports whether an operation such as a merge or
// rebase is in progress.
func (i Info) HasSpecialState() bool {
	return i.Special != ""
}

func SortByPath(infos []Info) {
	sort.Slice(infos, func(a, b int) bool {
		return infos[a].Path < infos[b].Path
	})
}
