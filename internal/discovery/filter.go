package discovery

import (
	"path/filepath"
	"strings"

	"classenum/internal/domain"
)

// Filter filters classes by simple name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName filters classes by simple name using wildcard matching.
// Supports patterns like "*Service" or "*Payment*"; a pattern without
// wildcards matches any name containing it.
func (f *Filter) FilterByName(classes []*domain.ClassHandle, pattern string) []*domain.ClassHandle {
	if pattern == "" {
		return classes
	}

	var filtered []*domain.ClassHandle
	for _, class := range classes {
		if MatchName(class.SimpleName(), pattern) {
			filtered = append(filtered, class)
		}
	}
	return filtered
}

// FilterPackages filters dotted package names with the same rules as FilterByName
func (f *Filter) FilterPackages(packages []string, pattern string) []string {
	if pattern == "" {
		return packages
	}

	var filtered []string
	for _, pkg := range packages {
		if MatchName(pkg, pattern) {
			filtered = append(filtered, pkg)
		}
	}
	return filtered
}

// MatchName reports whether name matches pattern
func MatchName(name, pattern string) bool {
	// filepath.Match supports * and ? wildcards
	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	if !strings.ContainsAny(pattern, "*?") {
		return strings.Contains(name, pattern)
	}

	// Looser match for patterns like "*User*Test": every non-empty part in order
	if !strings.Contains(pattern, "*") || strings.Contains(pattern, "?") {
		return false
	}
	rest := name
	matchedAny := false
	for _, part := range strings.Split(pattern, "*") {
		if part == "" {
			continue
		}
		idx := strings.Index(rest, part)
		if idx < 0 {
			return false
		}
		rest = rest[idx+len(part):]
		matchedAny = true
	}
	return matchedAny
}
