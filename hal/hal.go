package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a minimal output pin abstraction.
type LED interface {
	High()
	Low()
}

var (
	ErrNotImplemented = errors.New("not implemented")

	// ErrBusFault is returned by injected bus failures.
	ErrBusFault = errors.New("bus fault")

	// ErrDone is returned by a step function to stop a host runner cleanly.
	ErrDone = errors.New("done")
)

// Bus is the panel transport: it writes w*h RGB565 pixels, row-major and in
// panel byte order (big-endian in memory), to the rectangle at (x, y). It
// returns once the transfer has completed.
type Bus interface {
	WriteRegion(x, y, w, h int16, pixels []uint16) error
}

// Clock provides monotonic milliseconds since an arbitrary epoch.
type Clock interface {
	Millis() uint64
}

// HAL provides the only contact point between the pipeline and the outside world.
type HAL interface {
	Logger() Logger
	LED() LED
	Bus() Bus
	Clock() Clock
}
