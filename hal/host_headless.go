//go:build !tinygo

package hal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"duofb/config"

	"github.com/fogleman/gg"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	// Hz is how often the step function is polled.
	Hz int
	// Snapshot is a PNG path written with the panel contents on return.
	Snapshot string
}

// RunHeadless runs the pipeline without opening a window, polling step at
// cfg.Hz until it returns an error or ctx ends. ErrDone yields nil.
func RunHeadless(ctx context.Context, cfg config.Config, newApp func(HAL) func() error, hc HeadlessConfig) error {
	h := NewWithConfig(cfg).(*hostHAL)
	return runHeadless(ctx, h, newApp, hc)
}

func runHeadless(ctx context.Context, h *hostHAL, newApp func(HAL) func() error, hc HeadlessConfig) (err error) {
	if hc.Hz <= 0 {
		hc.Hz = 60
	}
	step := newApp(h)

	d := time.Second / time.Duration(hc.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", hc.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	defer func() {
		if hc.Snapshot == "" {
			return
		}
		if serr := gg.SavePNG(hc.Snapshot, h.panel.image()); serr != nil && err == nil {
			err = fmt.Errorf("snapshot: %w", serr)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if step == nil {
				continue
			}
			if err := step(); err != nil {
				if errors.Is(err, ErrDone) {
					return nil
				}
				return err
			}
		}
	}
}
