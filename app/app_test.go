package app

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"duofb/config"
	"duofb/framebuffer"
	"duofb/hal"
	"duofb/kernel"
	"duofb/pipeline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"
)

type recLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recLogger) WriteLineString(s string) {
	l.mu.Lock()
	l.lines = append(l.lines, s)
	l.mu.Unlock()
}

func (l *recLogger) WriteLineBytes(b []byte) { l.WriteLineString(string(b)) }

func (l *recLogger) has(prefix string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range l.lines {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

type recLED struct {
	mu      sync.Mutex
	toggles []bool
}

func (l *recLED) High() { l.mu.Lock(); l.toggles = append(l.toggles, true); l.mu.Unlock() }
func (l *recLED) Low()  { l.mu.Lock(); l.toggles = append(l.toggles, false); l.mu.Unlock() }

type recBus struct {
	mu      sync.Mutex
	writes  int
	banners int
	last    []uint16
	lastY   int16
	fail    error
}

func (b *recBus) WriteRegion(x, y, w, h int16, pixels []uint16) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fail != nil {
		return b.fail
	}
	b.writes++
	if h == bannerHeight {
		b.banners++
	}
	b.lastY = y
	b.last = append(b.last[:0], pixels[:int(w)*int(h)]...)
	return nil
}

type stepClock struct {
	mu sync.Mutex
	ms uint64
}

func (c *stepClock) Millis() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ms++
	return c.ms
}

type testHAL struct {
	log   *recLogger
	led   *recLED
	bus   *recBus
	clock hal.Clock
}

func newTestHAL() *testHAL {
	return &testHAL{log: &recLogger{}, led: &recLED{}, bus: &recBus{}, clock: &stepClock{}}
}

func (h *testHAL) Logger() hal.Logger { return h.log }
func (h *testHAL) LED() hal.LED       { return h.led }
func (h *testHAL) Bus() hal.Bus       { return h.bus }
func (h *testHAL) Clock() hal.Clock   { return h.clock }

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Headless = true
	cfg.PinCores = false
	cfg.StatsInterval = 50
	cfg.HeartbeatInterval = 20
	return cfg
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestStartRejectsBadConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Scale = 0
	_, err := Start(newTestHAL(), cfg)
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, err = Start(nil, testConfig())
	assert.Error(t, err)

	poll := NewWithConfig(newTestHAL(), cfg)
	assert.ErrorIs(t, poll(), config.ErrInvalid)
}

func TestPollStopsAfterFrames(t *testing.T) {
	h := newTestHAL()
	cfg := testConfig()
	cfg.Frames = 20

	poll := NewWithConfig(h, cfg)
	waitFor(t, func() bool { return errors.Is(poll(), hal.ErrDone) })

	assert.True(t, h.log.has("duofb "))
	waitFor(t, func() bool { return h.log.has("stats: rendered=") })
	h.led.mu.Lock()
	assert.NotEmpty(t, h.led.toggles)
	h.led.mu.Unlock()
}

func TestSystemKeepsRunningThroughBusFaults(t *testing.T) {
	h := newTestHAL()
	cfg := testConfig()
	s, err := Start(h, cfg)
	require.NoError(t, err)

	waitFor(t, func() bool { return s.Pipeline().Stats().Flushed > 5 })
	h.bus.mu.Lock()
	h.bus.fail = hal.ErrBusFault
	h.bus.mu.Unlock()
	waitFor(t, func() bool { return s.Pipeline().Stats().BusErrors > 5 })
	h.bus.mu.Lock()
	h.bus.fail = nil
	h.bus.mu.Unlock()

	before := s.Pipeline().Stats().Flushed
	waitFor(t, func() bool { return s.Pipeline().Stats().Flushed > before+5 })
	assert.NoError(t, s.Poll())
	assert.Equal(t, 2, s.Pipeline().Census().Total())
	assert.True(t, h.log.has("flush: bus write: "))
	select {
	case <-s.Done():
		t.Fatalf("pipeline halted: %v", s.Err())
	default:
	}
}

func TestFatalHandlerFreezesPanel(t *testing.T) {
	h := newTestHAL()
	bus := newGuardedBus(h.bus)

	// Call the handler directly; kernel.Fatal fires only once per process.
	fatalScreen(h, bus)(kernel.FatalInfo{Err: errors.New("buffer 1 counted twice"), Stack: []byte("main.go:1\n\nmain.go:2\n")})

	assert.True(t, h.log.has("duofb fatal: buffer 1 counted twice"))
	assert.True(t, h.log.has("main.go:2"))

	h.bus.mu.Lock()
	assert.Equal(t, 1, h.bus.writes)
	assert.Equal(t, int16((config.Height-bannerHeight)/2), h.bus.lastY)
	assert.Len(t, h.bus.last, config.Width*bannerHeight)
	assert.Equal(t, framebuffer.RGB565(colornames.Darkred), h.bus.last[0])
	h.bus.mu.Unlock()

	// Frames after the banner are refused.
	assert.ErrorIs(t, bus.WriteRegion(0, 0, 1, 1, []uint16{0}), pipeline.ErrBusHalted)
	h.bus.mu.Lock()
	assert.Equal(t, 1, h.bus.writes)
	h.bus.mu.Unlock()
}

// This is the only test in the package that reaches kernel.Fatal, which
// fires once per process.
func TestInvariantViolationHaltsSystem(t *testing.T) {
	h := newTestHAL()
	cfg := testConfig()
	cfg.Frames = 1
	s, err := newSystem(h, cfg)
	require.NoError(t, err)

	var trip atomic.Bool
	_, err = s.sched.AddTask(kernel.TaskFunc(func() error {
		if !trip.Load() {
			return nil
		}
		return fmt.Errorf("census: 3 buffers: %w", pipeline.ErrInvariant)
	}))
	require.NoError(t, err)
	s.launch()

	waitFor(t, func() bool { return s.Pipeline().Stats().Flushed > 3 })
	trip.Store(true)

	select {
	case <-s.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("pipeline did not halt")
	}
	assert.ErrorIs(t, s.Poll(), pipeline.ErrInvariant)
	assert.ErrorIs(t, s.Err(), pipeline.ErrInvariant)

	waitFor(t, func() bool { return h.log.has("duofb fatal: ") })
	waitFor(t, func() bool {
		h.bus.mu.Lock()
		defer h.bus.mu.Unlock()
		return h.bus.banners == 1
	})
	assert.True(t, kernel.InFatalMode())

	h.bus.mu.Lock()
	writes := h.bus.writes
	h.bus.mu.Unlock()

	assert.ErrorIs(t, s.bus.WriteRegion(0, 0, config.Width, config.Height, make([]uint16, config.BufferLen)), pipeline.ErrBusHalted)
	h.bus.mu.Lock()
	assert.Equal(t, writes, h.bus.writes)
	assert.Equal(t, 1, h.bus.banners)
	h.bus.mu.Unlock()

	// The halt error wins over the frame count.
	assert.ErrorIs(t, s.Poll(), pipeline.ErrInvariant)
}

func TestHeartbeatToggles(t *testing.T) {
	led := &recLED{}
	clock := &stepClock{}
	hb := newHeartbeat(led, clock, 10)
	for i := 0; i < 35; i++ {
		require.NoError(t, hb.Step())
	}
	// Each Step advances the clock by 1ms: toggles at 1, 11, 21, 31.
	assert.Equal(t, []bool{true, false, true, false}, led.toggles)
}
