// Package classpath maps package paths onto locations on a class search path.
package classpath

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"classenum/internal/logging"
)

var (
	// ErrNotFound is returned when no root contains the requested path
	ErrNotFound = errors.New("no resource for path")
	// ErrNoRoots is returned by a SearchPath without any roots
	ErrNoRoots = errors.New("search path is empty")
)

// Resolver maps a slash-separated relative path to a location
type Resolver interface {
	Resolve(relPath string) (Location, error)
}

// Location is a resolved resource. Directory locations can be listed through fs.ReadDir.
type Location interface {
	fs.FS
	Path() string
	IsDir() bool
}

// dirLocation is a location on the local filesystem
type dirLocation struct {
	fs.FS
	path  string
	isDir bool
}

func (l *dirLocation) Path() string { return l.path }
func (l *dirLocation) IsDir() bool  { return l.isDir }

// SearchPath is an ordered list of root directories
type SearchPath struct {
	roots []string
}

// New creates a SearchPath over roots. Empty entries are dropped.
func New(roots ...string) *SearchPath {
	sp := &SearchPath{}
	for _, root := range roots {
		if root = strings.TrimSpace(root); root != "" {
			sp.roots = append(sp.roots, filepath.Clean(root))
		}
	}
	return sp
}

// Parse builds a SearchPath from a CLASSPATH-style list.
// Archive entries are skipped since only directory layouts are supported.
// An empty list means the current directory.
func Parse(list string) *SearchPath {
	var roots []string
	for _, entry := range filepath.SplitList(list) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if isArchive(entry) {
			logging.Debug("skipping archive classpath entry", "entry", entry)
			continue
		}
		roots = append(roots, entry)
	}
	if len(roots) == 0 && strings.TrimSpace(list) == "" {
		roots = []string{"."}
	}
	return New(roots...)
}

// FromEnv builds a SearchPath from the CLASSPATH environment variable
func FromEnv() *SearchPath {
	return Parse(os.Getenv("CLASSPATH"))
}

// Roots returns a copy of the roots in search order
func (sp *SearchPath) Roots() []string {
	if sp == nil {
		return nil
	}
	out := make([]string, len(sp.roots))
	copy(out, sp.roots)
	return out
}

// Resolve returns the first root-relative location that exists
func (sp *SearchPath) Resolve(relPath string) (Location, error) {
	if sp == nil || len(sp.roots) == 0 {
		return nil, ErrNoRoots
	}

	rel := filepath.FromSlash(relPath)
	for _, root := range sp.roots {
		full := filepath.Join(root, rel)
		info, err := os.Stat(full)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
				continue
			}
			return nil, fmt.Errorf("stat %s: %w", full, err)
		}

		logging.Debug("resolved path", "path", relPath, "location", full)
		return &dirLocation{FS: os.DirFS(full), path: full, isDir: info.IsDir()}, nil
	}
	return nil, fmt.Errorf("%w %s", ErrNotFound, relPath)
}

// Open opens the first file matching relPath on the search path.
// The returned string is the full path of the opened file.
func (sp *SearchPath) Open(relPath string) (*os.File, string, error) {
	if sp == nil || len(sp.roots) == 0 {
		return nil, "", ErrNoRoots
	}

	rel := filepath.FromSlash(relPath)
	for _, root := range sp.roots {
		full := filepath.Join(root, rel)
		f, err := os.Open(full)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
				continue
			}
			return nil, "", err
		}
		return f, full, nil
	}
	return nil, "", fmt.Errorf("%w %s", ErrNotFound, relPath)
}

func isArchive(entry string) bool {
	ext := strings.ToLower(filepath.Ext(entry))
	return ext == ".jar" || ext == ".zip"
}
