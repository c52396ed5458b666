package app

import (
	"image"
	"image/color"
	"strings"
	"sync"

	"duofb/config"
	"duofb/framebuffer"
	"duofb/gfx"
	"duofb/hal"
	"duofb/kernel"
	"duofb/pipeline"

	"golang.org/x/image/colornames"
)

const bannerHeight = 24

// guardedBus serializes panel writes so the fatal banner cannot interleave
// with a flush, and refuses frame writes once the banner is up.
type guardedBus struct {
	mu     sync.Mutex
	bus    hal.Bus
	frozen bool
}

func newGuardedBus(bus hal.Bus) *guardedBus {
	return &guardedBus{bus: bus}
}

func (b *guardedBus) WriteRegion(x, y, w, h int16, pixels []uint16) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.frozen {
		return pipeline.ErrBusHalted
	}
	return b.bus.WriteRegion(x, y, w, h, pixels)
}

// freeze writes the final region and ignores every later frame.
func (b *guardedBus) freeze(x, y, w, h int16, pixels []uint16) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frozen = true
	return b.bus.WriteRegion(x, y, w, h, pixels)
}

func installFatalHandler(h hal.HAL, bus *guardedBus) {
	kernel.SetFatalHandler(fatalScreen(h, bus))
}

// fatalScreen logs the error with its stack and paints a banner over the
// middle of the panel. bus may be nil.
func fatalScreen(h hal.HAL, bus *guardedBus) func(kernel.FatalInfo) {
	return func(info kernel.FatalInfo) {
		if l := h.Logger(); l != nil {
			l.WriteLineString("duofb fatal: " + errString(info.Err))
			for _, line := range strings.Split(string(info.Stack), "\n") {
				if line == "" {
					continue
				}
				l.WriteLineString(line)
			}
		}
		if bus == nil {
			return
		}

		s := newStrip(config.Width, bannerHeight)
		_ = gfx.Clear(s, colornames.Darkred)
		_ = gfx.Text(s, "FATAL: "+errString(info.Err), image.Pt(4, 16), gfx.TextStyle{Color: colornames.White})
		y := int16((config.Height - bannerHeight) / 2)
		if err := bus.freeze(0, y, s.w, s.h, s.pix); err != nil {
			if l := h.Logger(); l != nil {
				l.WriteLineString("duofb fatal: banner: " + err.Error())
			}
		}
	}
}

func errString(err error) string {
	if err == nil {
		return "<nil>"
	}
	return err.Error()
}

// strip is a small RGB565 surface for the fatal banner.
type strip struct {
	w, h int16
	pix  []uint16
}

func newStrip(w, h int16) *strip {
	return &strip{w: w, h: h, pix: make([]uint16, int(w)*int(h))}
}

func (s *strip) Size() (x, y int16) { return s.w, s.h }

func (s *strip) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return
	}
	s.pix[int(y)*int(s.w)+int(x)] = framebuffer.RGB565(c)
}

func (s *strip) Display() error { return nil }
