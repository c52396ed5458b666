// Package pipeline hands two framebuffers back and forth between a render
// stage and a display-flush stage running on separate cores.
//
// Buffers move as leases through two bounded queues:
//
//	render --ready--> flush --free--> render
//
// Exactly one side holds a given buffer at any instant. Handing a lease to a
// queue voids the caller's copy, so a stage cannot keep drawing into a
// buffer it has already given away.
//
// Before either stage starts, Prime seeds both buffers into the ready queue.
// The display stage has work immediately and shows two blank frames, and
// buffers reach the free queue without the render stage running first.
// Until then the render stage skips its ticks.
//
// The render stage never blocks: when no free buffer is available the tick
// is skipped. The display stage blocks on the ready queue; that wait is the
// only suspension point in the system. A bus write failure is reported and
// the buffer is still recycled. A queue push failing despite matched
// capacity means a buffer was double-counted and is returned as an error
// wrapping ErrInvariant; callers treat it as fatal.
package pipeline
