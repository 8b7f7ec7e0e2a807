// internal/scanner/exclude_test.go
package scanner

import "testing"

func TestMatchWildcard(t *testing.T) {
	tests := []struct {
		pattern string
		name    string
		want    bool
	}{
		{"node_modules", "node_modules", true},
		{"node_modules", "node_modules2", false},
		{"cache*", "cache", true},
		{"cache*", "cachedir", true},
		{"cache*", "mycache", false},
		{"*cache", "cache", true},
		{"*cache", "mycache", true},
		{"*cache", "cachedir", false},
		{"foo*bar", "foobar", true},
		{"foo*bar", "fooxbar", true},
		{"foo*bar", "fobar", false},
		{"foo*bar", "fooba", false},
		{"*", "anything", true},
		{"*", "", true},
		// Multiple stars only match the literal pattern text.
		{"a*b*c", "abc", false},
		{"a*b*c", "a*b*c", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.name, func(t *testing.T) {
			if got := matchWildcard(tt.pattern, tt.name); got != tt.want {
				t.Errorf("matchWildcard(%q, %q) = %v, want %v", tt.pattern, tt.name, got, tt.want)
			}
		})
	}
}

func TestExcluded(t *testing.T) {
	w := NewWalker(Config{Exclude: []string{"target", "*logs"}})

	tests := []struct {
		name string
		want bool
	}{
		{"src", false},
		{"target", true},
		{"buildlogs", true},
		{".hidden", true},
		{".config", true},
		{"visible", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.excluded(tt.name); got != tt.want {
				t.Errorf("excluded(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
