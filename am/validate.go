package am

import (
	"github.com/teranos/phi/errors"
	"github.com/teranos/phi/partition"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if _, err := partition.Get(c.Compute.PartitionType); err != nil {
		return errors.Wrap(err, "compute.partition_type")
	}

	switch c.Compute.SystemCuts {
	case SystemCutsConceptStyle:
	case SystemCutsWhole:
		return errors.WithHint(
			errors.NewUnsupportedError("compute.system_cuts %s is not implemented", SystemCutsWhole),
			"set compute.system_cuts = \"CONCEPT_STYLE\"")
	default:
		return errors.NewInvalidRequestError("compute.system_cuts must be %s, got %q", SystemCutsConceptStyle, c.Compute.SystemCuts)
	}

	// Workers: 0 = auto, negative = invalid
	if c.Compute.Workers < 0 {
		return errors.NewInvalidRequestError("compute.workers must be >= 0, got %d", c.Compute.Workers)
	}

	if c.Compute.Precision < 1 || c.Compute.Precision > MaxPrecision {
		return errors.WithHintf(
			errors.NewInvalidRequestError("compute.precision must be between 1 and %d, got %d", MaxPrecision, c.Compute.Precision),
			"results are compared at %d decimal places; finer rounding is not distinguished", MaxPrecision)
	}

	switch c.Cache.Backend {
	case CacheBackendMemory, CacheBackendSQLite:
	default:
		return errors.NewInvalidRequestError("cache.backend must be %s or %s, got %q", CacheBackendMemory, CacheBackendSQLite, c.Cache.Backend)
	}

	return nil
}
