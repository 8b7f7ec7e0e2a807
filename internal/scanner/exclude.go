// internal/scanner/exclude.go
package scanner

import "strings"

// excluded reports whether a directory name should be skipped: dotted
// names always, configured patterns otherwise.
func (w *Walker) excluded(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	for _, pattern := range w.cfg.Exclude {
		if matchWildcard(pattern, name) {
			return true
		}
	}
	return false
}

// matchWildcard matches a name against a pattern containing at most one
// * wildcard. Patterns with two or more stars fall back to a literal
// comparison.
func matchWildcard(pattern, name string) bool {
	if !strings.Contains(pattern, "*") {
		return pattern == name
	}

	parts := strings.Split(pattern, "*")
	if len(parts) != 2 {
		return pattern == name
	}

	prefix, suffix := parts[0], parts[1]
	switch {
	case prefix == "" && suffix == "":
		return true
	case prefix == "":
		return strings.HasSuffix(name, suffix)
	case suffix == "":
		return strings.HasPrefix(name, prefix)
	default:
		return len(name) >= len(prefix)+len(suffix) &&
			strings.HasPrefix(name, prefix) &&
			strings.HasSuffix(name, suffix)
	}
}
