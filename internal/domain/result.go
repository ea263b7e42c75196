package domain

import "time"

// PackageResult represents the outcome of enumerating a single package
type PackageResult struct {
	Package  string         `json:"package"`
	Classes  []*ClassHandle `json:"classes"`
	Error    string         `json:"error,omitempty"` // Set when the enumeration failed
	Duration time.Duration  `json:"duration"`
	Err      error          `json:"-"`
}

// Success reports whether the package was enumerated without error
func (r PackageResult) Success() bool {
	return r.Err == nil && r.Error == ""
}

// IndexMeta contains metadata about a scan
type IndexMeta struct {
	TotalPackages   int      `json:"total_packages"`
	FailedPackages  int      `json:"failed_packages"`
	TotalClasses    int      `json:"total_classes"`
	Duration        string   `json:"duration"`
	DurationSeconds float64  `json:"duration_seconds"`
	Workers         int      `json:"workers"`
	Timestamp       string   `json:"timestamp"`
	Classpath       []string `json:"classpath"`
}

// Index is the complete output structure of a scan
type Index struct {
	Meta     IndexMeta       `json:"meta"`
	Packages []PackageResult `json:"packages"`
}

// NewIndex builds an Index with metadata computed from results
func NewIndex(results []PackageResult, duration time.Duration, workers int, classpath []string) *Index {
	meta := IndexMeta{
		TotalPackages:   len(results),
		Duration:        duration.String(),
		DurationSeconds: duration.Seconds(),
		Workers:         workers,
		Timestamp:       time.Now().Format(time.RFC3339),
		Classpath:       classpath,
	}
	for i := range results {
		if results[i].Err != nil && results[i].Error == "" {
			results[i].Error = results[i].Err.Error()
		}
		if !results[i].Success() {
			meta.FailedPackages++
		}
		meta.TotalClasses += len(results[i].Classes)
	}
	return &Index{Meta: meta, Packages: results}
}
