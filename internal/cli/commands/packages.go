package commands

import (
	"github.com/spf13/cobra"

	"classenum/internal/config"
	"classenum/internal/discovery"
	"classenum/internal/ui"
)

// PackagesCommand handles the packages command
type PackagesCommand struct {
	config    *config.Config
	scanner   *discovery.PackageScanner
	filter    *discovery.Filter
	formatter *ui.Formatter
}

// NewPackagesCommand creates a new PackagesCommand
func NewPackagesCommand(
	cfg *config.Config,
	scanner *discovery.PackageScanner,
	filter *discovery.Filter,
	formatter *ui.Formatter,
) *PackagesCommand {
	return &PackagesCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		formatter: formatter,
	}
}

// Execute runs the command
func (pc *PackagesCommand) Execute(cmd *cobra.Command, args []string) error {
	packages, err := pc.scanner.ScanAll(pc.config.SearchPath().Roots())
	if err != nil {
		return err
	}

	packages = pc.filter.FilterPackages(packages, pc.config.Flags.NameFilter)
	pc.formatter.PrintPackages(packages)
	return nil
}
