package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/roach88/yakstack/internal/frame"
)

// Stream is the event log port the engine consumes.
// Implemented by store.Store (production) and testutil.MemoryStream (tests).
type Stream interface {
	// Append writes a frame request to the log and returns the assigned
	// frame ID once the transport acknowledges it. The caller must not
	// assume local materialization: the frame returns through OnFrame.
	Append(ctx context.Context, req frame.AppendRequest) (string, error)

	// Content fetches content-addressed text by hash.
	Content(ctx context.Context, hash string) (string, error)

	// Subscribe begins historical-then-live delivery to OnFrame listeners.
	Subscribe(ctx context.Context) error

	// OnFrame registers a listener invoked once per frame in strict
	// delivery order. The returned function unsubscribes.
	OnFrame(fn func(frame.Frame)) func()
}

// Engine materializes yaks and notes from the frame stream.
//
// Thread-safety model:
//   - Run(): must be called from exactly one goroutine
//   - readers, setters, and commands: safe from any goroutine
//   - resolution completions: applied under the same lock as frame
//     transitions, one note at a time
//
// INVARIANTS:
//   - one frame transition commits at a time, indivisibly
//   - the replay latch never resets once raised
//   - at most one content resolution is scheduled per note
type Engine struct {
	stream Stream
	logger *slog.Logger
	queue  *frameQueue

	mu    sync.RWMutex
	st    *state
	views viewCache

	// scheduled tracks note ids whose resolution has been dispatched,
	// enforcing the at-most-once rule. Guarded by mu.
	scheduled map[string]struct{}

	applied atomic.Uint64
	wg      sync.WaitGroup
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// New creates an Engine over the given stream.
// The engine is inert until Run is called.
func New(stream Stream, opts ...Option) *Engine {
	e := &Engine{
		stream:    stream,
		logger:    slog.Default(),
		queue:     newFrameQueue(),
		st:        newState(),
		scheduled: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run subscribes to the stream and processes frames until ctx is canceled.
//
// The listener only enqueues; all transitions happen here, one frame at a
// time, in delivery order. Returns ctx.Err() on cancellation or the
// subscription error.
func (e *Engine) Run(ctx context.Context) error {
	unsub := e.stream.OnFrame(func(f frame.Frame) {
		e.queue.Enqueue(f)
	})
	defer unsub()

	if err := e.stream.Subscribe(ctx); err != nil {
		return fmt.Errorf("engine: subscribe: %w", err)
	}

	for {
		for {
			f, ok := e.queue.TryDequeue()
			if !ok {
				break
			}
			e.apply(f)
			e.applied.Add(1)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-e.queue.Wait():
		}
	}
}

// Wait blocks until all in-flight content resolutions have completed.
// Intended for tests and orderly shutdown; new resolutions scheduled while
// waiting are waited on too.
func (e *Engine) Wait() {
	e.wg.Wait()
}

// Applied returns the number of frames processed so far, including ignored
// topics. Monotonic; used by tests to wait for the loop to settle.
func (e *Engine) Applied() uint64 {
	return e.applied.Load()
}

// ThresholdReached reports whether historical replay has completed.
func (e *Engine) ThresholdReached() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.st.threshold
}

// CurrentYakID returns the current yak id, or "" for none.
func (e *Engine) CurrentYakID() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.st.currentYakID
}

// SelectedNoteID returns the selected note id, or "" for none.
func (e *Engine) SelectedNoteID() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.st.selectedNoteID
}

// Yak returns the yak with the given id.
func (e *Engine) Yak(id string) (Yak, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	y, ok := e.st.yaks[id]
	return y, ok
}

// Note returns the note with the given id. Superseded notes remain
// reachable here even after leaving the display index.
func (e *Engine) Note(id string) (Note, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	n, ok := e.st.notes[id]
	return n, ok
}

// Yaks returns all yaks sorted by id (creation order, ids are
// time-sortable).
func (e *Engine) Yaks() []Yak {
	e.mu.RLock()
	defer e.mu.RUnlock()

	yaks := make([]Yak, 0, len(e.st.yaks))
	for _, y := range e.st.yaks {
		yaks = append(yaks, y)
	}
	sort.Slice(yaks, func(i, j int) bool { return yaks[i].ID < yaks[j].ID })
	return yaks
}

// Notes returns all notes sorted by id, superseded ones included.
func (e *Engine) Notes() []Note {
	e.mu.RLock()
	defer e.mu.RUnlock()

	notes := make([]Note, 0, len(e.st.notes))
	for _, n := range e.st.notes {
		notes = append(notes, n)
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].ID < notes[j].ID })
	return notes
}

// NoteIndex returns a copy of a yak's raw note index, in display order.
// Debug accessor for inspection and tests.
func (e *Engine) NoteIndex(yakID string) []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]string(nil), e.st.index[yakID]...)
}
