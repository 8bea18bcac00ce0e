// Package hostinfo reports coarse host resources for health output.
package hostinfo

import (
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	"profanityd/pkg/types"
)

// Collect returns CPU and memory figures, or nil when memory stats are unavailable.
func Collect() *types.HostStatus {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return nil
	}
	cpus, err := cpu.Counts(true)
	if err != nil || cpus <= 0 {
		cpus = runtime.NumCPU()
	}
	return &types.HostStatus{
		CPUs:           cpus,
		MemTotalMB:     vm.Total / (1024 * 1024),
		MemUsedPercent: vm.UsedPercent,
	}
}
