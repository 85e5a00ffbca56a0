package walker

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExcludes are directory names never descended into. They hold
// dependencies, build output or tool state rather than project sources.
var DefaultExcludes = []string{
	".git",
	".next",
	".turbo",
	".vercel",
	".archmap",
	"node_modules",
	"bower_components",
	"vendor",
	"coverage",
	"dist",
	"build",
	"out",
	"target",
	"__pycache__",
	".venv",
}

func shouldExcludeDir(name string) bool {
	for _, excl := range DefaultExcludes {
		if strings.EqualFold(name, excl) {
			return true
		}
	}
	return false
}

// MatchesInclude reports whether relPath matches an include pattern. An
// empty list includes everything.
func MatchesInclude(relPath string, patterns []string) bool {
	return len(patterns) == 0 || matchesAny(relPath, patterns)
}

// MatchesExclude reports whether relPath matches an exclude pattern. An
// empty list excludes nothing.
func MatchesExclude(relPath string, patterns []string) bool {
	return len(patterns) > 0 && matchesAny(relPath, patterns)
}

// matchesAny tries each pattern against the full slash path and then the
// basename, so "*.ts" matches at any depth.
func matchesAny(relPath string, patterns []string) bool {
	p := filepath.ToSlash(relPath)
	base := path.Base(p)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if ok, err := doublestar.Match(pattern, p); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}
