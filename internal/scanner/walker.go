// internal/scanner/walker.go
package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jackchuka/reponest/internal/log"
)

const gitDirName = ".git"

// Walker finds git repositories by recursive directory traversal. A
// directory is a repository root when it contains a subdirectory named
// .git; the walk keeps descending past it, so repositories nested under
// other repositories are found too. A .git file, as in a linked
// worktree, is not a marker.
type Walker struct {
	cfg Config
}

func NewWalker(cfg Config) *Walker {
	return &Walker{cfg: cfg}
}

// Scan walks root and returns every repository path found, in discovery
// order. A root that cannot be listed is an error; unreadable
// directories further down only prune their own subtree.
func (w *Walker) Scan(ctx context.Context, root string) ([]string, error) {
	var repos []string
	if err := w.walk(ctx, root, 0, &repos); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return repos, nil
}

// ScanMany scans each root concurrently and concatenates the results in
// the order the roots were given. Overlapping roots can report the same
// repository twice; callers that care deduplicate. A root that fails to
// scan contributes nothing and never aborts the other roots.
func (w *Walker) ScanMany(ctx context.Context, roots []string) []string {
	found := make([][]string, len(roots))

	var wg sync.WaitGroup
	for i, root := range roots {
		wg.Add(1)
		go func(i int, root string) {
			defer wg.Done()
			paths, err := w.Scan(ctx, root)
			if err != nil {
				log.WarningLog.Printf("scan %s: %v", root, err)
				return
			}
			found[i] = paths
		}(i, root)
	}
	wg.Wait()

	var repos []string
	for i := range roots {
		repos = append(repos, found[i]...)
	}
	return repos
}

func (w *Walker) walk(ctx context.Context, dir string, depth int, repos *[]string) error {
	if w.cfg.MaxDepth > 0 && depth >= w.cfg.MaxDepth {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", dir, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()

		// The marker check runs before exclusion: .git is itself a
		// dotted name.
		if name == gitDirName {
			*repos = append(*repos, dir)
			continue
		}
		if w.excluded(name) {
			continue
		}

		// Errors below the top level prune that subtree only.
		_ = w.walk(ctx, filepath.Join(dir, name), depth+1, repos)
	}
	return nil
}
