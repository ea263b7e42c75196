package commands

import (
	"github.com/spf13/cobra"

	"classenum/internal/config"
	"classenum/internal/ui"
)

// BrowseCommand handles the browse command
type BrowseCommand struct {
	config *config.Config
	viewer ui.Viewer
}

// NewBrowseCommand creates a new BrowseCommand
func NewBrowseCommand(cfg *config.Config, viewer ui.Viewer) *BrowseCommand {
	return &BrowseCommand{
		config: cfg,
		viewer: viewer,
	}
}

// Execute runs the command
func (bc *BrowseCommand) Execute(cmd *cobra.Command, args []string) error {
	st, release, err := openStorage(bc.config)
	if err != nil {
		return err
	}
	defer release()

	index, err := st.Load()
	if err != nil {
		return err
	}

	return bc.viewer.View(index)
}
