package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"classenum/internal/domain"
	"classenum/internal/logging"
)

// PackageScanner finds package directories that contain class files
type PackageScanner struct {
	skipDirs map[string]bool
}

// NewPackageScanner creates a new PackageScanner with the given directories to skip
func NewPackageScanner(skipDirs []string) *PackageScanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &PackageScanner{skipDirs: skipMap}
}

// Scan returns the sorted names of all packages under root holding at least one class
func (s *PackageScanner) Scan(root string) ([]string, error) {
	// Clean and validate the root path
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("classpath root does not exist: %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("classpath root is not a directory: %s", root)
	}

	found := make(map[string]bool)
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			name := d.Name()
			// Skip hidden directories (starting with .)
			if strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if s.skipDirs[name] {
				return filepath.SkipDir
			}
			return nil
		}

		if !domain.IsClassEntry(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(root, filepath.Dir(path))
		if err != nil || rel == "." {
			// Classes in the unnamed package cannot be enumerated
			return nil
		}
		pkg := strings.ReplaceAll(filepath.ToSlash(rel), "/", ".")
		if domain.ValidPackageName(pkg) {
			found[pkg] = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	packages := make([]string, 0, len(found))
	for pkg := range found {
		packages = append(packages, pkg)
	}
	sort.Strings(packages)
	return packages, nil
}

// ScanAll scans every root and merges the results. A package present in
// several roots is reported once. Missing roots are skipped, as they are
// when resolving a single package.
func (s *PackageScanner) ScanAll(roots []string) ([]string, error) {
	seen := make(map[string]bool)
	packages := []string{}
	for _, root := range roots {
		found, err := s.Scan(root)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logging.Warn("skipping missing classpath root", "root", root)
				continue
			}
			return nil, err
		}
		for _, pkg := range found {
			if !seen[pkg] {
				seen[pkg] = true
				packages = append(packages, pkg)
			}
		}
	}
	sort.Strings(packages)
	return packages, nil
}
