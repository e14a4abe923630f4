package main

import "runtime"

// resolveWorkers determines the number of templates processed in parallel.
// Priority: explicit flag or env > GOMAXPROCS-based calculation.
func resolveWorkers(n int) int {
	if n > 0 {
		return n
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers.
	available := runtime.GOMAXPROCS(0)

	// Minimum 1, maximum 16
	if available < 1 {
		return 1
	}
	if available > 16 {
		return 16
	}
	return available
}
