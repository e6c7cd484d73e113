package am

import (
	"fmt"

	"github.com/spf13/viper"
)

// Default values
const (
	DefaultPartitionType = "TRI"
	DefaultCachePath     = "phi_cache.db"

	// MaxPrecision is the finest decimal precision phi distinguishes.
	// Results are compared and hashed at this many places.
	MaxPrecision     = 6
	DefaultPrecision = MaxPrecision
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Compute defaults
	v.SetDefault("compute.partition_type", DefaultPartitionType)
	v.SetDefault("compute.system_cuts", SystemCutsConceptStyle)
	v.SetDefault("compute.parallel_cut_evaluation", false)
	v.SetDefault("compute.workers", 0) // auto
	v.SetDefault("compute.precision", DefaultPrecision)

	// Cache defaults
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.backend", CacheBackendMemory)
	v.SetDefault("cache.path", DefaultCachePath)

	v.SetDefault("log.json", false)
}

// BindEnvVars binds settings whose env names do not follow the PHI_<SECTION>_<KEY> pattern
func BindEnvVars(v *viper.Viper) {
	v.BindEnv("compute.parallel_cut_evaluation", "PHI_COMPUTE_PARALLEL_CUT_EVALUATION", "PHI_PARALLEL")
	v.BindEnv("cache.path", "PHI_CACHE_PATH", "PHI_DB_PATH")
}

// Default returns a Config holding only the default values
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	if err != nil {
		// Defaults always unmarshal.
		panic(err)
	}
	return cfg
}

// GetCachePath returns the configured cache path
func (c *Config) GetCachePath() string {
	if c.Cache.Path == "" {
		return DefaultCachePath
	}
	return c.Cache.Path
}

// GetPrecision returns the rounding precision, falling back to the default
func (c *Config) GetPrecision() int {
	if c.Compute.Precision == 0 {
		return DefaultPrecision
	}
	return c.Compute.Precision
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Compute: {PartitionType: %s, Parallel: %t, Workers: %d}, Cache: {Backend: %s, Enabled: %t}}",
		c.Compute.PartitionType, c.Compute.ParallelCutEvaluation, c.Compute.Workers, c.Cache.Backend, c.Cache.Enabled)
}
