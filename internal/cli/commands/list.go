package commands

import (
	"github.com/spf13/cobra"

	"classenum/internal/config"
	"classenum/internal/discovery"
	"classenum/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	filter    *discovery.Filter
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(cfg *config.Config, filter *discovery.Filter, formatter *ui.Formatter) *ListCommand {
	return &ListCommand{
		config:    cfg,
		filter:    filter,
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	enumerator, _, err := newEnumerator(lc.config)
	if err != nil {
		return err
	}

	pkg := args[0]
	classes, err := enumerator.Enumerate(pkg)
	if err != nil {
		return err
	}

	classes = lc.filter.FilterByName(classes, lc.config.Flags.NameFilter)
	lc.formatter.PrintClassList(pkg, classes, lc.config.Flags.Details)
	return nil
}
