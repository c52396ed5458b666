package pipeline

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	ms uint64
}

func (c *fakeClock) Millis() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ms
}

func (c *fakeClock) set(ms uint64) {
	c.mu.Lock()
	c.ms = ms
	c.mu.Unlock()
}

func (c *fakeClock) advance(ms uint64) {
	c.mu.Lock()
	c.ms += ms
	c.mu.Unlock()
}

var errBusNACK = errors.New("bus: NACK")

type write struct {
	x, y, w, h int16
	first      *uint16
	n          int
	sum        uint32
}

type recBus struct {
	mu       sync.Mutex
	writes   []write
	failNext int
	halted   bool
}

func (b *recBus) WriteRegion(x, y, w, h int16, pixels []uint16) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.halted {
		return ErrBusHalted
	}
	if b.failNext > 0 {
		b.failNext--
		return errBusNACK
	}
	sum := uint32(2166136261)
	for _, p := range pixels {
		sum ^= uint32(p)
		sum *= 16777619
	}
	b.writes = append(b.writes, write{x: x, y: y, w: w, h: h, first: &pixels[0], n: len(pixels), sum: sum})
	return nil
}

func (b *recBus) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.writes)
}

type recLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recLogger) WriteLineString(s string) {
	l.mu.Lock()
	l.lines = append(l.lines, s)
	l.mu.Unlock()
}

func (l *recLogger) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

type rig struct {
	p      *Pipeline
	clock  *fakeClock
	bus    *recBus
	log    *recLogger
	render *RenderStage
	flush  *FlushStage
}

func newRig(t *testing.T) *rig {
	t.Helper()
	r := &rig{
		p:     New(),
		clock: &fakeClock{},
		bus:   &recBus{},
		log:   &recLogger{},
	}
	require.NoError(t, r.p.Prime())

	var err error
	r.render, err = NewRenderStage(r.p, r.clock, r.log, DefaultOverlay())
	require.NoError(t, err)
	r.flush, err = NewFlushStage(r.p, r.bus, r.log)
	require.NoError(t, err)
	return r
}

func (r *rig) requireConserved(t *testing.T) {
	t.Helper()
	require.Equal(t, Buffers, r.p.Census().Total(), "census %+v", r.p.Census())
}
