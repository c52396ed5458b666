package pipeline

import "strconv"

// Metrics is the render stage's private timing state, in milliseconds.
type Metrics struct {
	lastTick   uint64
	lastUpdate uint64
}

// FPS converts the time since the last drawn frame to frames per second.
// A zero delta yields 0.
func FPS(delta uint64) uint64 {
	if delta == 0 {
		return 0
	}
	return 1000 / delta
}

// Observe records a tick at now and returns the frame rate since the last
// drawn frame and the milliseconds since the previous tick.
func (m *Metrics) Observe(now uint64) (fps, sps uint64) {
	fps = FPS(now - m.lastUpdate)
	sps = now - m.lastTick
	m.lastTick = now
	return fps, sps
}

// Commit marks now as the time of the last drawn frame.
func (m *Metrics) Commit(now uint64) {
	m.lastUpdate = now
}

// AppendOverlayText appends "FPS:<fps>, sps:<sps>" to dst.
func AppendOverlayText(dst []byte, fps, sps uint64) []byte {
	dst = append(dst, "FPS:"...)
	dst = strconv.AppendUint(dst, fps, 10)
	dst = append(dst, ", sps:"...)
	dst = strconv.AppendUint(dst, sps, 10)
	return dst
}
