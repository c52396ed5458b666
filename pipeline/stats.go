package pipeline

import "sync/atomic"

// Stats tracks frame production and delivery.
type Stats struct {
	Rendered   uint64
	Skipped    uint64
	Flushed    uint64
	BusErrors  uint64
	DrawErrors uint64
}

type counters struct {
	rendered   atomic.Uint64
	skipped    atomic.Uint64
	flushed    atomic.Uint64
	busErrors  atomic.Uint64
	drawErrors atomic.Uint64
}

// Stats returns a snapshot of the pipeline counters.
func (p *Pipeline) Stats() Stats {
	return Stats{
		Rendered:   p.stats.rendered.Load(),
		Skipped:    p.stats.skipped.Load(),
		Flushed:    p.stats.flushed.Load(),
		BusErrors:  p.stats.busErrors.Load(),
		DrawErrors: p.stats.drawErrors.Load(),
	}
}
