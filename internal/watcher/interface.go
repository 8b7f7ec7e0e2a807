// internal/watcher/interface.go

// Package watcher detects repository state changes by periodic
// re-reads.
package watcher

import "context"

type RepoWatcher interface {
	Events() <-chan Event
	Watch(repoPath string) error
	Unwatch(repoPath string)
	Run(ctx context.Context)
	Close() error
}
