package cli

import "classenum/internal/config"

// Flags holds command-line flags
type Flags struct {
	Processors int
	Classpath  string
	NameFilter string
	Details    bool
	FailFast   bool
	Store      string
	Verbose    bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Processors: f.Processors,
		Classpath:  f.Classpath,
		NameFilter: f.NameFilter,
		Details:    f.Details,
		FailFast:   f.FailFast,
		Store:      f.Store,
		Verbose:    f.Verbose,
	}
}
