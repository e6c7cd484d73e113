// Package am loads phi's configuration from defaults, TOML files and PHI_*
// environment variables.
package am

// Config represents the phi configuration
type Config struct {
	Compute ComputeConfig `mapstructure:"compute" toml:"compute" yaml:"compute" json:"compute"`
	Cache   CacheConfig   `mapstructure:"cache" toml:"cache" yaml:"cache" json:"cache"`
	Log     LogConfig     `mapstructure:"log" toml:"log" yaml:"log" json:"log"`
}

// ComputeConfig configures the Φ search
type ComputeConfig struct {
	PartitionType         string `mapstructure:"partition_type" toml:"partition_type" yaml:"partition_type" json:"partition_type"`                                     // ALL, BI or TRI (default: TRI)
	SystemCuts            string `mapstructure:"system_cuts" toml:"system_cuts" yaml:"system_cuts" json:"system_cuts"`                                                 // only CONCEPT_STYLE is supported
	ParallelCutEvaluation bool   `mapstructure:"parallel_cut_evaluation" toml:"parallel_cut_evaluation" yaml:"parallel_cut_evaluation" json:"parallel_cut_evaluation"` // fan cuts out to a worker pool
	Workers               int    `mapstructure:"workers" toml:"workers" yaml:"workers" json:"workers"`                                                                 // 0 = size from available CPUs
	Precision             int    `mapstructure:"precision" toml:"precision" yaml:"precision" json:"precision"`                                                         // decimal places phi is rounded to, at most MaxPrecision
}

// CacheConfig configures the memoization of search results
type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled" toml:"enabled" yaml:"enabled" json:"enabled"`
	Backend string `mapstructure:"backend" toml:"backend" yaml:"backend" json:"backend"` // memory or sqlite
	Path    string `mapstructure:"path" toml:"path" yaml:"path" json:"path"`             // SQLite file for the sqlite backend
}

// LogConfig configures logging output
type LogConfig struct {
	JSON bool `mapstructure:"json" toml:"json" yaml:"json" json:"json"`
}

// System cut modes
const (
	SystemCutsConceptStyle = "CONCEPT_STYLE"
	SystemCutsWhole        = "WHOLE_SYSTEM"
)

// Cache backends
const (
	CacheBackendMemory = "memory"
	CacheBackendSQLite = "sqlite"
)

// File system constants
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)

// ConfigFileName is the name searched for in the project tree, ~/.phi and /etc/phi.
const ConfigFileName = "phi.toml"
