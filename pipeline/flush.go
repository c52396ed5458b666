package pipeline

import "errors"

// Bus writes a contiguous run of RGB565 pixels to a w x h region of the
// panel starting at (x, y). It returns once the transfer has completed.
type Bus interface {
	WriteRegion(x, y, w, h int16, pixels []uint16) error
}

// FlushStage writes ready buffers to the bus and recycles them.
type FlushStage struct {
	p   *Pipeline
	bus Bus
	log Logger
}

// NewFlushStage builds the display-flush stage. log may be nil.
func NewFlushStage(p *Pipeline, bus Bus, log Logger) (*FlushStage, error) {
	if p == nil || bus == nil {
		return nil, errors.New("flush: nil pipeline or bus")
	}
	if !p.Primed() {
		return nil, ErrNotPrimed
	}
	return &FlushStage{p: p, bus: bus, log: log}, nil
}

// Step waits for one ready buffer, writes it out and recycles it.
//
// A bus failure is reported and counted, and the buffer is recycled anyway;
// the panel keeps showing the last good frame. A halted bus drops the frame
// uncounted. The only error Step returns wraps ErrInvariant.
func (f *FlushStage) Step() error {
	lease, err := f.p.wait()
	if err != nil {
		return err
	}
	fb, err := lease.Framebuffer()
	if err != nil {
		return err
	}

	err = f.bus.WriteRegion(0, 0, fb.Width(), fb.Height(), fb.Pixels())
	switch {
	case errors.Is(err, ErrBusHalted):
	case err != nil:
		f.p.stats.busErrors.Add(1)
		if f.log != nil {
			f.log.WriteLineString("flush: bus write: " + err.Error())
		}
	default:
		f.p.stats.flushed.Add(1)
	}

	return f.p.recycle(&lease)
}

// Run flushes forever. It returns only on an invariant violation.
func (f *FlushStage) Run() error {
	for {
		if err := f.Step(); err != nil {
			return err
		}
	}
}
