//go:build !tinygo && linux

package hal

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/unix"
)

// PinToCore locks the calling goroutine to its OS thread and binds that
// thread to the given CPU. The goroutine must not return to a pool afterwards.
func PinToCore(core int) error {
	runtime.LockOSThread()
	if core < 0 || core >= runtime.NumCPU() {
		return fmt.Errorf("pin to core %d: only %d cpus", core, runtime.NumCPU())
	}
	var set unix.CPUSet
	set.Zero()
	set.Set(core)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("pin to core %d: %w", core, err)
	}
	return nil
}
