package app

import (
	"context"
	"errors"
	"fmt"

	"duofb/config"
	"duofb/hal"
	"duofb/internal/buildinfo"
	"duofb/kernel"
	"duofb/pipeline"

	"golang.org/x/sync/errgroup"
)

// System is the running pipeline: the flush loop on the display core and
// the cooperative scheduler (render stage plus housekeeping) on the render core.
type System struct {
	cfg   config.Config
	log   hal.Logger
	bus   *guardedBus
	p     *pipeline.Pipeline
	sched *kernel.Scheduler
	flush *pipeline.FlushStage

	done chan struct{}
	err  error
}

// Run starts the pipeline with default config and blocks forever (TinyGo/native entrypoint).
func Run(h hal.HAL) {
	RunWithConfig(h, config.Default())
}

// RunWithConfig starts the pipeline and blocks forever.
func RunWithConfig(h hal.HAL, cfg config.Config) {
	if _, err := Start(h, cfg); err != nil {
		installFatalHandler(h, nil)
		kernel.Fatal(err)
	}
	select {}
}

// NewWithConfig starts the pipeline and returns a poll function for the
// host runners. The poll function returns hal.ErrDone once cfg.Frames
// frames have been flushed, and in headless mode the fatal error if the
// pipeline halted.
func NewWithConfig(h hal.HAL, cfg config.Config) func() error {
	s, err := Start(h, cfg)
	if err != nil {
		return func() error { return err }
	}
	return s.Poll
}

// Start builds, primes and launches the pipeline.
func Start(h hal.HAL, cfg config.Config) (*System, error) {
	s, err := newSystem(h, cfg)
	if err != nil {
		return nil, err
	}
	s.logf("duofb %s %dx%d", buildinfo.Short(), config.Width, config.Height)
	s.launch()
	return s, nil
}

// newSystem builds and primes the pipeline and registers the core A tasks
// without starting either loop.
func newSystem(h hal.HAL, cfg config.Config) (*System, error) {
	if h == nil {
		return nil, errors.New("app: nil HAL")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &System{
		cfg:   cfg,
		log:   h.Logger(),
		bus:   newGuardedBus(h.Bus()),
		p:     pipeline.New(),
		sched: kernel.NewScheduler(),
		done:  make(chan struct{}),
	}
	installFatalHandler(h, s.bus)

	if err := s.p.Prime(); err != nil {
		return nil, fmt.Errorf("prime: %w", err)
	}
	flush, err := pipeline.NewFlushStage(s.p, s.bus, s.log)
	if err != nil {
		return nil, err
	}
	s.flush = flush
	render, err := pipeline.NewRenderStage(s.p, h.Clock(), s.log, pipeline.DefaultOverlay())
	if err != nil {
		return nil, err
	}

	tasks := []kernel.Task{render}
	if cfg.HeartbeatInterval > 0 {
		tasks = append(tasks, newHeartbeat(h.LED(), h.Clock(), uint64(cfg.HeartbeatInterval)))
	}
	if cfg.StatsInterval > 0 && s.log != nil {
		tasks = append(tasks, newStatsReporter(s.p, s.log, h.Clock(), uint64(cfg.StatsInterval)))
	}
	for _, t := range tasks {
		if _, err := s.sched.AddTask(t); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *System) launch() {
	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		s.pin(config.DisplayCore)
		return s.flush.Run()
	})
	g.Go(func() error {
		s.pin(config.RenderCore)
		return s.sched.Run()
	})

	// Neither loop returns unless the pipeline is broken.
	go func() {
		<-ctx.Done()
		s.err = context.Cause(ctx)
		close(s.done)
		kernel.Fatal(s.err)
	}()
}

func (s *System) pin(core int) {
	if !s.cfg.PinCores {
		return
	}
	if err := hal.PinToCore(core); err != nil && !errors.Is(err, hal.ErrNotImplemented) {
		s.logf("pin: %v", err)
	}
}

// Poll reports whether a host runner should stop.
func (s *System) Poll() error {
	select {
	case <-s.done:
		if s.cfg.Headless {
			return s.err
		}
	default:
	}
	if s.cfg.Frames > 0 && s.p.Stats().Flushed >= s.cfg.Frames {
		return hal.ErrDone
	}
	return nil
}

// Done is closed when the pipeline halts.
func (s *System) Done() <-chan struct{} { return s.done }

// Err returns the error that halted the pipeline. Valid after Done is closed.
func (s *System) Err() error { return s.err }

// Pipeline exposes the running pipeline for inspection.
func (s *System) Pipeline() *pipeline.Pipeline { return s.p }

func (s *System) logf(format string, args ...any) {
	if s.log == nil {
		return
	}
	s.log.WriteLineString(fmt.Sprintf(format, args...))
}
