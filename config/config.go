// Package config holds the panel geometry fixed at build time and the
// runtime knobs of the host runner.
package config

import (
	"errors"
	"fmt"

	"tinygo.org/x/drivers"
)

// Panel geometry after rotation. The framebuffer size is fixed at compile
// time; changing it means rebuilding.
const (
	Width  = 320
	Height = 240

	// BufferLen is the number of RGB565 pixels in one framebuffer.
	BufferLen = Width * Height
)

// Rotation is the ST7789 orientation that yields a Width x Height landscape view.
const Rotation = drivers.Rotation270

// Device wiring (Raspberry Pi Pico 2, SPI0). Two full frames need 300 KiB
// of SRAM, more than the RP2040 has.
const (
	SPIFrequency = 62_500_000

	PinSCK = 18
	PinSDO = 19
	PinSDI = 16
	PinCS  = 17
	PinDC  = 20
	PinRST = 21
	PinBL  = 22

	UARTBaudRate = 115200
)

// Cores the two stages are bound to.
const (
	RenderCore  = 0
	DisplayCore = 1
)

// Config controls the host runner. The device build uses Default().
type Config struct {
	// Headless runs without a window.
	Headless bool
	// Frames stops the headless runner after N flushed frames (0 = run forever).
	Frames uint64
	// StatsInterval is the stats log period in milliseconds (0 disables).
	StatsInterval int
	// HeartbeatInterval is the LED toggle period in milliseconds (0 disables).
	HeartbeatInterval int
	// FailEvery makes every Nth bus write fail (0 disables).
	FailEvery uint64
	// Snapshot is a PNG path written with the last panel contents on headless exit.
	Snapshot string
	// Scale is the host window zoom factor.
	Scale int
	// PinCores binds the two stages to separate CPU cores where supported.
	PinCores bool
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		StatsInterval:     5000,
		HeartbeatInterval: 500,
		Scale:             2,
		PinCores:          true,
	}
}

var ErrInvalid = errors.New("invalid config")

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.StatsInterval < 0 {
		return fmt.Errorf("%w: stats interval %d < 0", ErrInvalid, c.StatsInterval)
	}
	if c.HeartbeatInterval < 0 {
		return fmt.Errorf("%w: heartbeat interval %d < 0", ErrInvalid, c.HeartbeatInterval)
	}
	if c.Scale < 1 || c.Scale > 8 {
		return fmt.Errorf("%w: scale %d not in [1, 8]", ErrInvalid, c.Scale)
	}
	if c.Snapshot != "" && !c.Headless {
		return fmt.Errorf("%w: snapshot requires headless mode", ErrInvalid)
	}
	return nil
}
