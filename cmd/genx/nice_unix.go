//go:build unix

package main

import (
	"golang.org/x/sys/unix"
)

// NICE_POLITE is the lowest scheduling priority.
const NICE_POLITE = 19

// nice yields the processor to every other program.
func nice() error {
	return unix.Setpriority(unix.PRIO_PROCESS, 0, NICE_POLITE)
}
