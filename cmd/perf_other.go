//go:build !linux

package cmd

import "fmt"

func runCounted(run func()) {
	fmt.Println("hardware counters are only available on linux")
	run()
}
