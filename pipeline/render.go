package pipeline

import (
	"errors"
	"image"
	"image/color"

	"duofb/framebuffer"
	"duofb/gfx"

	"golang.org/x/image/colornames"
)

// Clock returns monotonic milliseconds since an arbitrary epoch.
type Clock interface {
	Millis() uint64
}

// Logger receives one report per line.
type Logger interface {
	WriteLineString(s string)
}

// Overlay positions and colours the telemetry overlay.
type Overlay struct {
	Background color.RGBA
	Box        image.Rectangle
	BoxStyle   gfx.Style
	Anchor     image.Point
	Text       gfx.TextStyle
}

// DefaultOverlay is a framed box in the top-left corner.
func DefaultOverlay() Overlay {
	return Overlay{
		Background: colornames.Black,
		Box:        image.Rect(8, 8, 168, 28),
		BoxStyle: gfx.Style{
			Fill:        colornames.Midnightblue,
			Stroke:      colornames.Lightsteelblue,
			StrokeWidth: 1,
		},
		Anchor: image.Pt(14, 22),
		Text: gfx.TextStyle{
			Font:  gfx.DefaultFont,
			Color: colornames.White,
		},
	}
}

// RenderStage paints the overlay into free buffers and queues them for
// display. It never blocks.
type RenderStage struct {
	p       *Pipeline
	clock   Clock
	log     Logger
	overlay Overlay
	metrics Metrics
	text    [40]byte
}

// NewRenderStage builds the render stage. log may be nil.
func NewRenderStage(p *Pipeline, clock Clock, log Logger, overlay Overlay) (*RenderStage, error) {
	if p == nil || clock == nil {
		return nil, errors.New("render: nil pipeline or clock")
	}
	if !p.Primed() {
		return nil, ErrNotPrimed
	}
	return &RenderStage{p: p, clock: clock, log: log, overlay: overlay}, nil
}

// Step runs one tick. It implements kernel.Task; the only error it returns
// wraps ErrInvariant.
func (r *RenderStage) Step() error {
	_, err := r.Tick()
	return err
}

// Tick draws one frame if a free buffer is available and reports whether it did.
func (r *RenderStage) Tick() (bool, error) {
	now := r.clock.Millis()
	fps, sps := r.metrics.Observe(now)

	lease, ok, err := r.p.tryAcquire()
	if err != nil {
		return false, err
	}
	if !ok {
		r.p.stats.skipped.Add(1)
		return false, nil
	}

	r.metrics.Commit(now)
	fb, err := lease.Framebuffer()
	if err != nil {
		return false, err
	}
	if err := r.paint(fb, fps, sps); err != nil {
		r.p.stats.drawErrors.Add(1)
		if r.log != nil {
			r.log.WriteLineString("render: draw: " + err.Error())
		}
	}

	if err := r.p.submit(&lease); err != nil {
		return false, err
	}
	r.p.stats.rendered.Add(1)
	return true, nil
}

func (r *RenderStage) paint(fb *framebuffer.Framebuffer, fps, sps uint64) error {
	ov := &r.overlay
	if err := gfx.Clear(fb, ov.Background); err != nil {
		return err
	}
	if err := gfx.Rectangle(fb, ov.Box, ov.BoxStyle); err != nil {
		return err
	}
	text := AppendOverlayText(r.text[:0], fps, sps)
	return gfx.Text(fb, string(text), ov.Anchor, ov.Text)
}
