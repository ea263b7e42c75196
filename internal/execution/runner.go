package execution

import (
	"time"

	"classenum/internal/domain"
)

// PackageEnumerator is the part of discovery.Enumerator the runner needs
type PackageEnumerator interface {
	Enumerate(packageName string) ([]*domain.ClassHandle, error)
}

// Runner enumerates a single package
type Runner struct {
	enumerator PackageEnumerator
}

// NewRunner creates a new Runner
func NewRunner(enumerator PackageEnumerator) *Runner {
	return &Runner{enumerator: enumerator}
}

// Run enumerates one package and records how long it took
func (r *Runner) Run(pkg string) domain.PackageResult {
	start := time.Now()
	classes, err := r.enumerator.Enumerate(pkg)

	result := domain.PackageResult{
		Package:  pkg,
		Classes:  classes,
		Err:      err,
		Duration: time.Since(start),
	}
	if err != nil {
		result.Error = err.Error()
	}
	return result
}
