package compute

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
)

// defaultWorkers sizes the cut pool to the physical core count, falling
// back to the logical CPUs visible to the runtime.
func defaultWorkers() int {
	if n, err := cpu.Counts(false); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// resolveWorkers returns configured, or the default size when it is 0.
func resolveWorkers(configured int) int {
	if configured > 0 {
		return configured
	}
	return max(defaultWorkers(), 1)
}
