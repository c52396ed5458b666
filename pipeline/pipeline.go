package pipeline

import (
	"sync/atomic"

	"duofb/framebuffer"
	"duofb/kernel"
)

// Buffers is the number of framebuffers in the pipeline. Both queues are
// sized to it so a push can only fail if a buffer was counted twice.
const Buffers = 2

// Owner identifies who holds a buffer.
type Owner uint32

const (
	OwnerNone Owner = iota
	OwnerRender
	OwnerReady
	OwnerDisplay
	OwnerFree
)

func (o Owner) String() string {
	switch o {
	case OwnerNone:
		return "none"
	case OwnerRender:
		return "render"
	case OwnerReady:
		return "ready"
	case OwnerDisplay:
		return "display"
	case OwnerFree:
		return "free"
	default:
		return "unknown"
	}
}

type slot struct {
	id    int
	owner atomic.Uint32
	fb    framebuffer.Framebuffer
}

func (s *slot) move(from, to Owner) error {
	if !s.owner.CompareAndSwap(uint32(from), uint32(to)) {
		return invariant("buffer %d: owner %s, want %s", s.id, Owner(s.owner.Load()), from)
	}
	return nil
}

// Lease is exclusive access to one buffer. The zero Lease holds nothing.
type Lease struct {
	s      *slot
	holder Owner
}

// Valid reports whether the lease still holds a buffer.
func (l *Lease) Valid() bool { return l != nil && l.s != nil }

// ID returns the buffer index, or -1 for a released lease.
func (l *Lease) ID() int {
	if !l.Valid() {
		return -1
	}
	return l.s.id
}

// Framebuffer returns the leased buffer.
func (l *Lease) Framebuffer() (*framebuffer.Framebuffer, error) {
	if !l.Valid() {
		return nil, ErrLeaseReleased
	}
	if got := Owner(l.s.owner.Load()); got != l.holder {
		return nil, invariant("buffer %d: leased to %s but owned by %s", l.s.id, l.holder, got)
	}
	return &l.s.fb, nil
}

// release voids the lease and returns what it held.
func (l *Lease) release() *slot {
	s := l.s
	l.s = nil
	l.holder = OwnerNone
	return s
}

// Pipeline is the process-wide buffer arena plus its two queues.
//
// New then Prime must complete before any stage is built; stages refuse an
// unprimed pipeline.
type Pipeline struct {
	arena [Buffers]slot
	ready *kernel.Queue[*slot]
	free  *kernel.Queue[*slot]

	primed atomic.Bool
	stats  counters
}

// New allocates both buffers, cleared to black, and empty queues.
func New() *Pipeline {
	p := &Pipeline{
		ready: kernel.NewQueue[*slot](Buffers),
		free:  kernel.NewQueue[*slot](Buffers),
	}
	for i := range p.arena {
		p.arena[i].id = i
		p.arena[i].fb.Reset()
	}
	return p
}

// Prime seeds every buffer into the ready queue. It may be called once.
func (p *Pipeline) Prime() error {
	if !p.primed.CompareAndSwap(false, true) {
		return ErrAlreadyPrimed
	}
	for i := range p.arena {
		s := &p.arena[i]
		if err := s.move(OwnerNone, OwnerReady); err != nil {
			return err
		}
		if !p.ready.TryPush(s) {
			return invariant("prime: ready queue full at buffer %d", s.id)
		}
	}
	return nil
}

// Primed reports whether Prime has run.
func (p *Pipeline) Primed() bool { return p.primed.Load() }

// tryAcquire takes a free buffer for rendering without blocking.
func (p *Pipeline) tryAcquire() (Lease, bool, error) {
	s, ok := p.free.TryPop()
	if !ok {
		return Lease{}, false, nil
	}
	if err := s.move(OwnerFree, OwnerRender); err != nil {
		return Lease{}, false, err
	}
	return Lease{s: s, holder: OwnerRender}, true, nil
}

// submit hands a rendered buffer to the display stage and voids l.
func (p *Pipeline) submit(l *Lease) error {
	return p.handOff(l, OwnerRender, OwnerReady, p.ready, "ready")
}

// wait blocks until a buffer is ready for display.
func (p *Pipeline) wait() (Lease, error) {
	s := p.ready.Pop()
	if err := s.move(OwnerReady, OwnerDisplay); err != nil {
		return Lease{}, err
	}
	return Lease{s: s, holder: OwnerDisplay}, nil
}

// recycle returns a displayed buffer to the render stage and voids l.
func (p *Pipeline) recycle(l *Lease) error {
	return p.handOff(l, OwnerDisplay, OwnerFree, p.free, "free")
}

func (p *Pipeline) handOff(l *Lease, from, to Owner, q *kernel.Queue[*slot], name string) error {
	if !l.Valid() {
		return ErrLeaseReleased
	}
	if l.holder != from {
		return invariant("buffer %d: %s lease handed to %s queue", l.s.id, l.holder, name)
	}
	s := l.release()
	if err := s.move(from, to); err != nil {
		return err
	}
	if !q.TryPush(s) {
		return invariant("buffer %d: %s queue full", s.id, name)
	}
	return nil
}

// Census counts buffers by owner.
type Census struct {
	Render  int
	Ready   int
	Display int
	Free    int
}

// Total is the number of buffers accounted for.
func (c Census) Total() int { return c.Render + c.Ready + c.Display + c.Free }

// Census returns a snapshot of buffer ownership.
func (p *Pipeline) Census() Census {
	var c Census
	for i := range p.arena {
		switch Owner(p.arena[i].owner.Load()) {
		case OwnerRender:
			c.Render++
		case OwnerReady:
			c.Ready++
		case OwnerDisplay:
			c.Display++
		case OwnerFree:
			c.Free++
		}
	}
	return c
}

// QueueLens returns the current queue lengths.
func (p *Pipeline) QueueLens() (ready, free int) {
	return p.ready.Len(), p.free.Len()
}
