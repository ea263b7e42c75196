package commands

import (
	"io"

	"github.com/spf13/cobra"

	"classenum/internal/classfile"
	"classenum/internal/classpath"
	"classenum/internal/cli"
	"classenum/internal/config"
	"classenum/internal/discovery"
	"classenum/internal/logging"
	"classenum/internal/storage"
	"classenum/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	List     *ListCommand
	Packages *PackagesCommand
	Scan     *ScanCommand
	Browse   *BrowseCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	return newCommands(cfg, ui.NewFormatter())
}

func newCommands(cfg *config.Config, formatter *ui.Formatter) *Commands {
	filter := discovery.NewFilter()
	scanner := discovery.NewPackageScanner(cfg.PathsToIgnore)
	browser := ui.NewClassBrowser()

	return &Commands{
		List:     NewListCommand(cfg, filter, formatter),
		Packages: NewPackagesCommand(cfg, scanner, filter, formatter),
		Scan:     NewScanCommand(cfg, scanner, filter, formatter),
		Browse:   NewBrowseCommand(cfg, browser),
	}
}

// newEnumerator builds the search path and loader for the configured classpath.
// It runs after flag parsing since --classpath decides the search path.
func newEnumerator(cfg *config.Config) (*discovery.Enumerator, *classpath.SearchPath, error) {
	sp := cfg.SearchPath()
	loader, err := classfile.NewClasspathLoader(sp)
	if err != nil {
		return nil, nil, err
	}
	logging.Debug("search path", "roots", sp.Roots())
	return discovery.NewEnumerator(sp, loader), sp, nil
}

// openStorage opens the configured index backend and returns a func releasing it
func openStorage(cfg *config.Config) (storage.Storage, func(), error) {
	st, err := storage.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	release := func() {
		if closer, ok := st.(io.Closer); ok {
			_ = closer.Close()
		}
	}
	return st, release, nil
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	rootCmd.PersistentFlags().StringVarP(&flags.Classpath, "classpath", "c", "", "Class search path (defaults to $CLASSPATH, then the current directory)")
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Update config with flags after parsing
		cfg.Apply(flags.ToConfigFlags())
		logging.Setup(flags.Verbose)
		cfg.LoadEnv()
		return cfg.Validate()
	}

	// List command
	listCmd := &cobra.Command{
		Use:   "list <package>",
		Short: "List the classes of a package",
		Long:  "Resolve a package on the class search path and list the classes directly inside it",
		Args:  cobra.ExactArgs(1),
		RunE:  c.List.Execute,
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter classes by simple name (supports wildcards, e.g., '*Service' or '*Payment*')")
	listCmd.Flags().BoolVarP(&flags.Details, "details", "d", false, "Show kind, Java release and super class")
	rootCmd.AddCommand(listCmd)

	// Packages command
	packagesCmd := &cobra.Command{
		Use:   "packages",
		Short: "List packages on the search path",
		Long:  "Walk every search path root and list the packages that contain classes",
		Args:  cobra.NoArgs,
		RunE:  c.Packages.Execute,
	}
	packagesCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter packages by name pattern (supports wildcards, e.g., 'com.example.*')")
	rootCmd.AddCommand(packagesCmd)

	// Scan command
	scanCmd := &cobra.Command{
		Use:   "scan [package...]",
		Short: "Enumerate packages in parallel and save the index",
		Long:  "Enumerate the given packages, or every package on the search path, using parallel workers",
		RunE:  c.Scan.Execute,
	}
	scanCmd.Flags().IntVarP(&flags.Processors, "processors", "p", config.DefaultProcessors, "Number of workers to use")
	scanCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter discovered packages by name pattern")
	scanCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop on first package failure")
	scanCmd.Flags().StringVar(&flags.Store, "store", config.DefaultStore, "Index backend: json or sql (sql reads CLASSENUM_DB_DRIVER and CLASSENUM_DB_DSN)")
	rootCmd.AddCommand(scanCmd)

	// Browse command
	browseCmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the last saved index interactively",
		Long:  "Display the packages and classes of the last scan in an interactive viewer",
		Args:  cobra.NoArgs,
		RunE:  c.Browse.Execute,
	}
	browseCmd.Flags().StringVar(&flags.Store, "store", config.DefaultStore, "Index backend: json or sql")
	rootCmd.AddCommand(browseCmd)
}
