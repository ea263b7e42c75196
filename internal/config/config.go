package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"classenum/internal/classpath"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string

	// Execution settings
	Processors int

	// Paths to ignore when scanning for packages
	PathsToIgnore []string

	// Index database settings, read from the environment
	DBDriver string
	DBDSN    string

	// Command flags
	Flags Flags
}

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

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:    DefaultProjectPath,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		Processors:     DefaultProcessors,
		DBDriver:       DefaultDBDriver,
		Flags:          Flags{Processors: DefaultProcessors, Store: DefaultStore},
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// Load creates a config and applies flags
func Load(flags Flags) *Config {
	cfg := New()
	cfg.Apply(flags)
	return cfg
}

// Apply applies parsed command-line flags to the config
func (c *Config) Apply(flags Flags) {
	c.Flags = flags
	if flags.Processors > 0 {
		c.Processors = flags.Processors
	}
	if c.Flags.Store == "" {
		c.Flags.Store = DefaultStore
	}
}

// LoadEnv reads the project .env file, if any, then the index database settings.
// Variables already set in the environment take precedence over the file.
func (c *Config) LoadEnv() {
	envPath := filepath.Join(c.ProjectPath, ".env")
	if err := godotenv.Load(envPath); err != nil {
		// .env file might not exist, that's okay - use environment variables
		_ = err
	}

	if driver := strings.TrimSpace(os.Getenv("CLASSENUM_DB_DRIVER")); driver != "" {
		c.DBDriver = driver
	}
	c.DBDSN = strings.TrimSpace(os.Getenv("CLASSENUM_DB_DSN"))
}

// SearchPath returns the class search path: the --classpath flag if set,
// otherwise the CLASSPATH environment variable, otherwise the current directory
func (c *Config) SearchPath() *classpath.SearchPath {
	if c.Flags.Classpath != "" {
		return classpath.Parse(c.Flags.Classpath)
	}
	return classpath.FromEnv()
}

// GetOutputPath returns the full path to the output JSON file.
// Resolves to an absolute path so scan and browse always use the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// Validate checks settings that cannot be fixed with a default
func (c *Config) Validate() error {
	switch c.Flags.Store {
	case StoreJSON:
	case StoreSQL:
		if c.DBDSN == "" {
			return fmt.Errorf("sql store requires CLASSENUM_DB_DSN")
		}
		if c.DBDriver != "mysql" && c.DBDriver != "pgx" {
			return fmt.Errorf("unsupported database driver %q (use mysql or pgx)", c.DBDriver)
		}
	default:
		return fmt.Errorf("unknown store %q (use %s or %s)", c.Flags.Store, StoreJSON, StoreSQL)
	}
	return nil
}
