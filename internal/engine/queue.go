package engine

import (
	"sync"

	"github.com/roach88/yakstack/internal/frame"
)

// frameQueue is a thread-safe FIFO queue of frames awaiting application.
//
// The queue is unbounded: the stream listener must never block, and frame
// delivery rate is trusted entirely to the transport (no backpressure in
// this core).
//
// The signal channel enables context-aware waiting in the Run loop: a
// buffered size-1 channel coalesces multiple signals.
type frameQueue struct {
	mu     sync.Mutex
	frames []frame.Frame
	closed bool
	signal chan struct{}
}

func newFrameQueue() *frameQueue {
	return &frameQueue{
		frames: make([]frame.Frame, 0, 64),
		signal: make(chan struct{}, 1),
	}
}

// Enqueue adds a frame to the back of the queue.
// Thread-safe: may be called from any goroutine.
// Returns false if the queue is closed.
func (q *frameQueue) Enqueue(f frame.Frame) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}

	q.frames = append(q.frames, f)

	select {
	case q.signal <- struct{}{}:
	default:
	}

	return true
}

// TryDequeue attempts to dequeue without blocking.
// Returns (frame.Frame{}, false) if the queue is empty.
func (q *frameQueue) TryDequeue() (frame.Frame, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.frames) == 0 {
		return frame.Frame{}, false
	}

	f := q.frames[0]

	// Nil out the slot so the backing array does not retain the frame's
	// meta pointer until reallocation.
	q.frames[0] = frame.Frame{}

	if len(q.frames) == 1 {
		q.frames = q.frames[:0]
	} else {
		q.frames = q.frames[1:]
	}

	return f, true
}

// Wait returns a channel that signals when frames may be available.
// Use with select alongside ctx.Done().
func (q *frameQueue) Wait() <-chan struct{} {
	return q.signal
}

// Len returns the current queue length.
func (q *frameQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.frames)
}

// Close signals that no more frames will be enqueued and wakes all waiters.
func (q *frameQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}

	q.closed = true
	close(q.signal)
}
