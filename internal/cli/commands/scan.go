package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"classenum/internal/config"
	"classenum/internal/discovery"
	"classenum/internal/domain"
	"classenum/internal/execution"
	"classenum/internal/logging"
	"classenum/internal/ui"
)

// ScanCommand handles the scan command
type ScanCommand struct {
	config       *config.Config
	scanner      *discovery.PackageScanner
	filter       *discovery.Filter
	formatter    *ui.Formatter
	showProgress bool
}

// NewScanCommand creates a new ScanCommand
func NewScanCommand(
	cfg *config.Config,
	scanner *discovery.PackageScanner,
	filter *discovery.Filter,
	formatter *ui.Formatter,
) *ScanCommand {
	return &ScanCommand{
		config:       cfg,
		scanner:      scanner,
		filter:       filter,
		formatter:    formatter,
		showProgress: true,
	}
}

// Execute runs the command
func (sc *ScanCommand) Execute(cmd *cobra.Command, args []string) error {
	enumerator, sp, err := newEnumerator(sc.config)
	if err != nil {
		return err
	}

	// Discover packages unless they were named
	packages := args
	if len(packages) == 0 {
		packages, err = sc.scanner.ScanAll(sp.Roots())
		if err != nil {
			return err
		}
		packages = sc.filter.FilterPackages(packages, sc.config.Flags.NameFilter)
	}

	if len(packages) == 0 {
		color.Yellow("No packages to enumerate")
		return nil
	}

	pool := execution.NewWorkerPool(sc.config.Processors, execution.NewRunner(enumerator))
	if sc.showProgress {
		pool.SetProgress(ui.NewProgressBar(len(packages)))
	}

	results, duration, err := pool.ExecuteWithOptions(cmd.Context(), packages, sc.config.Flags.FailFast)
	if err != nil {
		return err
	}

	index := domain.NewIndex(results, duration, sc.config.Processors, sp.Roots())

	st, release, err := openStorage(sc.config)
	if err != nil {
		return err
	}
	defer release()
	if err := st.Save(index); err != nil {
		return fmt.Errorf("failed to save index: %w", err)
	}
	logging.Info("saved index", "store", sc.config.Flags.Store, "packages", index.Meta.TotalPackages, "classes", index.Meta.TotalClasses)

	sc.formatter.PrintIndexStats(index)
	if index.Meta.FailedPackages > 0 {
		for _, r := range index.Packages {
			if r.Error != "" {
				logging.Error("package failed", "package", r.Package, "err", r.Error)
			}
		}
		return fmt.Errorf("%d package(s) failed", index.Meta.FailedPackages)
	}
	return nil
}
