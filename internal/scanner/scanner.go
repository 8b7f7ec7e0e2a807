// internal/scanner/scanner.go
package scanner

import "context"

// Config controls a scan. The zero value walks without a depth limit
// and without exclusions.
type Config struct {
	// MaxDepth is how many directory levels below each root get their
	// entries listed. 0 means unlimited. A repository is reported when
	// the listing of its parent reaches the .git entry, so MaxDepth 1
	// can only ever report the root itself.
	MaxDepth int

	// Exclude holds directory-name patterns that are never descended
	// into. Patterns support a single * wildcard (prefix, suffix, or
	// both); a pattern with two or more stars only matches literally.
	// Names starting with a dot are always skipped regardless of this
	// list.
	Exclude []string
}

type Scanner interface {
	Scan(ctx context.Context, root string) ([]string, error)
	ScanMany(ctx context.Context, roots []string) []string
}
