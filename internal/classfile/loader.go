package classfile

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"classenum/internal/classpath"
	"classenum/internal/domain"
	"classenum/internal/logging"
)

// DefaultCacheSize is the number of handles a ClasspathLoader keeps
const DefaultCacheSize = 4096

// Loader resolves a fully-qualified class name to a loaded handle
type Loader interface {
	Load(name string) (*domain.ClassHandle, error)
}

// ClasspathLoader loads classes from the roots of a search path.
// Loaded handles are cached by name, so repeated loads return the same handle.
type ClasspathLoader struct {
	path  *classpath.SearchPath
	cache *lru.Cache[string, *domain.ClassHandle]
}

// NewClasspathLoader creates a loader over path with the default cache size
func NewClasspathLoader(path *classpath.SearchPath) (*ClasspathLoader, error) {
	return NewClasspathLoaderSize(path, DefaultCacheSize)
}

// NewClasspathLoaderSize creates a loader over path caching up to size handles
func NewClasspathLoaderSize(path *classpath.SearchPath, size int) (*ClasspathLoader, error) {
	cache, err := lru.New[string, *domain.ClassHandle](size)
	if err != nil {
		return nil, fmt.Errorf("create class cache: %w", err)
	}
	return &ClasspathLoader{path: path, cache: cache}, nil
}

// Load reads and verifies the class file for name
func (l *ClasspathLoader) Load(name string) (*domain.ClassHandle, error) {
	if handle, ok := l.cache.Get(name); ok {
		return handle, nil
	}

	f, path, err := l.path.Open(domain.PackagePath(name) + domain.ClassSuffix)
	if err != nil {
		return nil, fmt.Errorf("class %s not found: %w", name, err)
	}
	defer f.Close()

	header, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("read class %s from %s: %w", name, path, err)
	}
	if header.ThisClass != name {
		return nil, fmt.Errorf("class file %s declares %s, expected %s", path, header.ThisClass, name)
	}

	handle := &domain.ClassHandle{
		Name:         name,
		Path:         path,
		MajorVersion: header.MajorVersion,
		MinorVersion: header.MinorVersion,
		AccessFlags:  header.AccessFlags,
		SuperName:    header.SuperClass,
		Interfaces:   header.Interfaces,
	}

	// A concurrent load of the same name may have won; keep the first handle
	if prev, ok, _ := l.cache.PeekOrAdd(name, handle); ok {
		return prev, nil
	}
	logging.Debug("loaded class", "name", name, "path", path, "major", header.MajorVersion)
	return handle, nil
}

// Len returns the number of cached handles
func (l *ClasspathLoader) Len() int {
	return l.cache.Len()
}
