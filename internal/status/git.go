// internal/status/git.go
package status

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	git "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/jackchuka/reponest/internal/model"
)

// activityDays is the window of the per-day commit counts in
// Info.Activity.
const activityDays = 7

// GitReader reads repository state in-process, without shelling out to
// a git binary.
type GitReader struct{}

func NewReader() *GitReader {
	return &GitReader{}
}

// Read extracts the full state of the repository at path. Opening and
// working-tree status are fatal: on failure the Info carries only the
// path and the error. Everything after that is best-effort; a missing
// remote, unborn HEAD or absent stash log just leaves its fields zero.
func (r *GitReader) Read(ctx context.Context, path string) model.Info {
	fail := func(err error) model.Info {
		return model.Info{Repo: model.NewRepo(path), Err: err}
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	repo, err := git.PlainOpen(path)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return fail(fmt.Errorf("%s: %w", path, ErrNotRepository))
		}
		return fail(fmt.Errorf("opening %s: %w", path, err))
	}

	info := model.Info{Repo: model.NewRepo(path)}

	// "?" covers detached and unborn HEADs alike.
	info.Branch = "?"
	var head *plumbing.Reference
	if h, err := repo.Head(); err == nil {
		head = h
		if h.Name().IsBranch() {
			info.Branch = h.Name().Short()
		}
	}

	wt, err := repo.Worktree()
	if err != nil {
		return fail(fmt.Errorf("worktree of %s: %w", path, err))
	}
	st, err := wt.Status()
	if err != nil {
		return fail(fmt.Errorf("status of %s: %w", path, err))
	}
	applyStatus(&info, st)

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	r.applySync(repo, head, &info)
	if head != nil {
		applyCommit(repo, head, &info)
		info.Activity = commitActivity(repo, head)
	}

	gitDir := resolveGitDir(path)
	info.StashCount = stashCount(gitDir)
	info.Special = specialState(gitDir)

	return info
}

// applySync resolves the repository's remote and, for a tracked branch,
// the ahead/behind counts against its remote-tracking ref.
func (r *GitReader) applySync(repo *git.Repository, head *plumbing.Reference, info *model.Info) {
	cfg, err := repo.Config()
	if err != nil {
		return
	}

	remoteName := resolveRemote(cfg, info.Branch)
	if remoteName == "" {
		return
	}
	if rc, ok := cfg.Remotes[remoteName]; ok && len(rc.URLs) > 0 {
		info.RemoteURL = rc.URLs[0]
	}

	if head == nil || !head.Name().IsBranch() {
		return
	}

	// The upstream branch may be named differently from the local one.
	mergeName := info.Branch
	if b, ok := cfg.Branches[info.Branch]; ok && b.Merge != "" {
		mergeName = b.Merge.Short()
	}

	upstream, err := repo.Reference(plumbing.NewRemoteReferenceName(remoteName, mergeName), true)
	if err != nil {
		return // nothing tracked yet, ahead/behind stay 0
	}

	local, err := repo.CommitObject(head.Hash())
	if err != nil {
		return
	}
	remote, err := repo.CommitObject(upstream.Hash())
	if err != nil {
		return
	}

	if ahead, behind, err := aheadBehind(local, remote); err == nil {
		info.Ahead, info.Behind = ahead, behind
	}
}

// resolveRemote picks the remote to report against: the branch's
// configured remote, then origin, then the first remote alphabetically.
func resolveRemote(cfg *gitconfig.Config, branch string) string {
	if b, ok := cfg.Branches[branch]; ok && b.Remote != "" {
		return b.Remote
	}
	if _, ok := cfg.Remotes[git.DefaultRemoteName]; ok {
		return git.DefaultRemoteName
	}

	names := make([]string, 0, len(cfg.Remotes))
	for name := range cfg.Remotes {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) > 0 {
		return names[0]
	}
	return ""
}

// aheadBehind counts the commits each tip has that the other lacks,
// walking from both tips and stopping at their merge base.
func aheadBehind(local, remote *object.Commit) (int, int, error) {
	if local.Hash == remote.Hash {
		return 0, 0, nil
	}

	bases, err := local.MergeBase(remote)
	if err != nil {
		return 0, 0, err
	}
	stop := make([]plumbing.Hash, 0, len(bases))
	for _, b := range bases {
		stop = append(stop, b.Hash)
	}

	ahead, err := countExclusive(local, stop)
	if err != nil {
		return 0, 0, err
	}
	behind, err := countExclusive(remote, stop)
	if err != nil {
		return 0, 0, err
	}
	return ahead, behind, nil
}

func countExclusive(from *object.Commit, stop []plumbing.Hash) (int, error) {
	count := 0
	iter := object.NewCommitPreorderIter(from, nil, stop)
	err := iter.ForEach(func(*object.Commit) error {
		count++
		return nil
	})
	return count, err
}

func applyCommit(repo *git.Repository, head *plumbing.Reference, info *model.Info) {
	c, err := repo.CommitObject(head.Hash())
	if err != nil {
		return
	}
	info.LastCommit = summaryLine(c.Message)
	info.LastAuthor = c.Author.Name
}

// commitActivity buckets recent commits per day, oldest day first. The
// walk stops at the first commit older than the window, which is close
// enough for a dashboard sparkline.
func commitActivity(repo *git.Repository, head *plumbing.Reference) []int {
	c, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil
	}

	now := time.Now()
	windowStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -(activityDays - 1))

	days := make([]int, activityDays)
	iter := object.NewCommitPreorderIter(c, nil, nil)
	_ = iter.ForEach(func(commit *object.Commit) error {
		when := commit.Committer.When
		if when.Before(windowStart) {
			return storer.ErrStop
		}
		idx := int(when.Sub(windowStart).Hours() / 24)
		if idx >= activityDays {
			idx = activityDays - 1
		}
		days[idx]++
		return nil
	})
	return days
}

// resolveGitDir locates the actual git directory for a repository,
// following the gitdir pointer of a linked worktree's .git file.
func resolveGitDir(repoPath string) string {
	gitPath := filepath.Join(repoPath, ".git")

	fi, err := os.Stat(gitPath)
	if err != nil || fi.IsDir() {
		return gitPath
	}

	content, err := os.ReadFile(gitPath)
	if err != nil {
		return gitPath
	}
	line := strings.TrimSpace(string(content))
	if !strings.HasPrefix(line, "gitdir:") {
		return gitPath
	}

	dir := strings.TrimSpace(strings.TrimPrefix(line, "gitdir:"))
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(repoPath, dir)
	}
	return dir
}

// stashCount counts stash entries by reading the stash reflog; there is
// no in-process stash API.
func stashCount(gitDir string) int {
	data, err := os.ReadFile(filepath.Join(gitDir, "logs", "refs", "stash"))
	if err != nil {
		return 0
	}
	return countLines(string(data))
}

// specialState reports the in-progress operation, if any. Checked in
// the order git itself would surface them.
func specialState(gitDir string) string {
	if _, err := os.Stat(filepath.Join(gitDir, "MERGE_HEAD")); err == nil {
		return model.SpecialMerge
	}
	for _, p := range []string{"rebase-merge", "rebase-apply"} {
		if _, err := os.Stat(filepath.Join(gitDir, p)); err == nil {
			return model.SpecialRebase
		}
	}
	if _, err := os.Stat(filepath.Join(gitDir, "CHERRY_PICK_HEAD")); err == nil {
		return model.SpecialCherryPick
	}
	if _, err := os.Stat(filepath.Join(gitDir, "REVERT_HEAD")); err == nil {
		return model.SpecialRevert
	}
	if _, err := os.Stat(filepath.Join(gitDir, "BISECT_LOG")); err == nil {
		return model.SpecialBisect
	}
	return ""
}

func summaryLine(message string) string {
	line, _, _ := strings.Cut(message, "\n")
	return strings.TrimSpace(line)
}

func countLines(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}
