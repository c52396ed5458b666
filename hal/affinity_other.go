//go:build !tinygo && !linux

package hal

import "runtime"

// PinToCore locks the calling goroutine to its OS thread. Binding the
// thread to a CPU is not supported on this platform.
func PinToCore(core int) error {
	_ = core
	runtime.LockOSThread()
	return ErrNotImplemented
}
