package execution

import (
	"context"
	"time"

	"classenum/internal/domain"
)

// Executor enumerates packages and returns one result per package
type Executor interface {
	Execute(ctx context.Context, packages []string) ([]domain.PackageResult, time.Duration, error)
}

// Progress receives completion counts while packages are enumerated
type Progress interface {
	Update(successCount, failCount int)
	Finish()
}
