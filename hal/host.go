//go:build !tinygo

package hal

import (
	"log/slog"
	"os"
	"sync"

	"duofb/config"
)

type hostHAL struct {
	logger *hostLogger
	led    *hostLED
	panel  *hostPanel
	bus    Bus
	clock  *monoClock
}

// New returns a host HAL implementation.
func New() HAL {
	return NewWithConfig(config.Default())
}

// NewWithConfig returns a host HAL with fault injection set from cfg.
func NewWithConfig(cfg config.Config) HAL {
	return newHost(cfg, slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

func newHost(cfg config.Config, log *slog.Logger) *hostHAL {
	logger := &hostLogger{log: log}
	panel := newHostPanel(config.Width, config.Height)
	var bus Bus = panel
	if cfg.FailEvery > 0 {
		bus = NewFlakyBus(panel, cfg.FailEvery)
	}
	return &hostHAL{
		logger: logger,
		led:    &hostLED{logger: logger},
		panel:  panel,
		bus:    bus,
		clock:  newMonoClock(),
	}
}

func (h *hostHAL) Logger() Logger { return h.logger }
func (h *hostHAL) LED() LED       { return h.led }
func (h *hostHAL) Bus() Bus       { return h.bus }
func (h *hostHAL) Clock() Clock   { return h.clock }

type hostLogger struct {
	log *slog.Logger
}

func (l *hostLogger) WriteLineString(s string) {
	l.log.Info(s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.log.Info(string(b))
}

type hostLED struct {
	mu     sync.Mutex
	on     bool
	logger *hostLogger
}

func (l *hostLED) High() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = true
	l.logger.log.Debug("led", "state", "HIGH")
}

func (l *hostLED) Low() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = false
	l.logger.log.Debug("led", "state", "LOW")
}

func (l *hostLED) isOn() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.on
}
