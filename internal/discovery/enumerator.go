package discovery

import (
	"errors"
	"io/fs"

	"classenum/internal/classfile"
	"classenum/internal/classpath"
	"classenum/internal/domain"
	"classenum/internal/logging"
)

// Enumerator lists the classes that live directly in a package directory
type Enumerator struct {
	resolver classpath.Resolver
	loader   classfile.Loader
}

// NewEnumerator creates an Enumerator resolving packages with resolver and classes with loader
func NewEnumerator(resolver classpath.Resolver, loader classfile.Loader) *Enumerator {
	return &Enumerator{resolver: resolver, loader: loader}
}

// Enumerate returns every class in the package, in directory listing order.
// Subpackages are not descended into. Any failure, including a single class
// that cannot be loaded, aborts the call with a *domain.ResolutionError.
func (e *Enumerator) Enumerate(packageName string) ([]*domain.ClassHandle, error) {
	if e.resolver == nil {
		return nil, domain.NewResolutionError(packageName, "can't get resource resolver", nil)
	}
	if e.loader == nil {
		return nil, domain.NewResolutionError(packageName, "can't get class loader", nil)
	}
	if !domain.ValidPackageName(packageName) {
		return nil, domain.NewResolutionError(packageName, "invalid package name", nil)
	}

	location, err := e.resolve(packageName)
	if err != nil {
		return nil, err
	}

	entries, err := fs.ReadDir(location, ".")
	if err != nil {
		return nil, domain.NewResolutionError(packageName, "can't list "+location.Path(), err)
	}

	classes := make([]*domain.ClassHandle, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !domain.IsClassEntry(entry.Name()) {
			continue
		}

		name := domain.QualifiedName(packageName, entry.Name())
		handle, err := e.loader.Load(name)
		if err != nil {
			// The entry came from the listing, so this means inconsistent build output
			return nil, domain.NewResolutionError(packageName, "can't load class "+name, err)
		}
		classes = append(classes, handle)
	}

	logging.Debug("enumerated package", "package", packageName, "classes", len(classes), "entries", len(entries))
	return classes, nil
}

func (e *Enumerator) resolve(packageName string) (classpath.Location, error) {
	path := domain.PackagePath(packageName)

	location, err := e.resolver.Resolve(path)
	if err != nil {
		switch {
		case errors.Is(err, classpath.ErrNoRoots):
			return nil, domain.NewResolutionError(packageName, "can't get resource resolver", err)
		case errors.Is(err, classpath.ErrNotFound):
			return nil, domain.NewResolutionError(packageName, "no resource for "+path, err)
		default:
			return nil, domain.NewResolutionError(packageName, "can't resolve "+path, err)
		}
	}
	if location == nil {
		return nil, domain.NewResolutionError(packageName, "no resource for "+path, nil)
	}
	if !location.IsDir() {
		return nil, domain.NewResolutionError(packageName, "does not appear to be a valid package directory", nil)
	}
	return location, nil
}
