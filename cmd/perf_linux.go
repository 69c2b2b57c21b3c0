//go:build linux

package cmd

import (
	"fmt"

	perf "github.com/hodgesds/perf-utils"
)

// runCounted wraps the run in a hardware cycle counter when the kernel
// exposes the perf subsystem, falling back to an uncounted run when not.
func runCounted(run func()) {
	pv, err := perf.CPUCycles(func() error {
		run()
		return nil
	})
	if err != nil {
		fmt.Printf("hardware counters unavailable: %s\n", err.Error())
		run()
		return
	}
	fmt.Printf("[%d]\t= CPU cycles (counter running %d of %d ns)\n",
		pv.Value, pv.TimeRunning, pv.TimeEnabled)
}
