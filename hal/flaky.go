package hal

import (
	"fmt"
	"sync/atomic"
)

// FlakyBus fails every Nth write to the wrapped bus with ErrBusFault.
type FlakyBus struct {
	bus   Bus
	every uint64
	n     atomic.Uint64
}

// NewFlakyBus wraps bus. every == 0 passes everything through.
func NewFlakyBus(bus Bus, every uint64) *FlakyBus {
	return &FlakyBus{bus: bus, every: every}
}

func (b *FlakyBus) WriteRegion(x, y, w, h int16, pixels []uint16) error {
	n := b.n.Add(1)
	if b.every > 0 && n%b.every == 0 {
		return fmt.Errorf("write %d: %w", n, ErrBusFault)
	}
	return b.bus.WriteRegion(x, y, w, h, pixels)
}
