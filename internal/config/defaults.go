package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "class-index.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = "storage"
	// DefaultProcessors is the default number of workers used by scan
	DefaultProcessors = 4
	// DefaultStore is the default index backend
	DefaultStore = StoreJSON
	// DefaultDBDriver is the default SQL driver for the sql store
	DefaultDBDriver = "mysql"
)

// Index backends
const (
	StoreJSON = "json"
	StoreSQL  = "sql"
)

// DefaultPathsToIgnore are the directories skipped when scanning for packages
var DefaultPathsToIgnore = []string{
	"META-INF",
	"WEB-INF",
}
