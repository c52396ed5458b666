package app

import (
	"fmt"

	"duofb/hal"
	"duofb/pipeline"
)

// heartbeat toggles the LED so a hung render core is visible on the board.
type heartbeat struct {
	led      hal.LED
	clock    hal.Clock
	interval uint64
	next     uint64
	on       bool
}

func newHeartbeat(led hal.LED, clock hal.Clock, interval uint64) *heartbeat {
	return &heartbeat{led: led, clock: clock, interval: interval}
}

func (t *heartbeat) Step() error {
	if t.led == nil {
		return nil
	}
	now := t.clock.Millis()
	if now < t.next {
		return nil
	}
	t.next = now + t.interval
	t.on = !t.on
	if t.on {
		t.led.High()
	} else {
		t.led.Low()
	}
	return nil
}

type statsReporter struct {
	p        *pipeline.Pipeline
	log      hal.Logger
	clock    hal.Clock
	interval uint64
	next     uint64
}

func newStatsReporter(p *pipeline.Pipeline, log hal.Logger, clock hal.Clock, interval uint64) *statsReporter {
	return &statsReporter{p: p, log: log, clock: clock, interval: interval, next: clock.Millis() + interval}
}

func (t *statsReporter) Step() error {
	now := t.clock.Millis()
	if now < t.next {
		return nil
	}
	t.next = now + t.interval
	st := t.p.Stats()
	t.log.WriteLineString(fmt.Sprintf("stats: rendered=%d skipped=%d flushed=%d bus_errors=%d draw_errors=%d",
		st.Rendered, st.Skipped, st.Flushed, st.BusErrors, st.DrawErrors))
	return nil
}
