// Package engine implements the yakstack materialization engine.
//
// The engine is the heart of yakstack - it consumes the ordered frame stream,
// incrementally builds queryable in-memory state (yaks and their notes), and
// reconciles three independent sources of change into one observably-atomic
// state: frame arrival, asynchronous content resolution, and user commands.
//
// ARCHITECTURE:
//
// Single-Writer Frame Loop:
// Frames are processed one at a time, in delivery order, by the Run loop
// goroutine. Each frame's transition (entity creation, index update,
// selection update) commits as a single unit under the state lock, so no
// partial state is ever observable between frames.
//
// Frame Processing Flow:
// 1. OnFrame listener enqueues frames to a FIFO queue
// 2. Subscribe streams historical frames, a threshold marker, then live frames
// 3. Run() dequeues one frame at a time and applies its transition
// 4. note frames carrying a hash schedule a content resolution
//
// Content Resolution:
// Resolutions are fire-and-forget goroutines - at most one per note, no
// retries, no cancellation. Each completion performs its own atomic
// single-note update, unordered relative to other resolutions and to frame
// processing beyond "after its triggering frame". A resolution landing in a
// note that was superseded meanwhile writes into the orphaned record; that
// is harmless and deliberately not detected.
//
// Commands:
// CreateNote/EditNote append request frames to the stream and return on
// transport acknowledgment only. No local state is pre-applied: the note
// becomes visible when its own frame returns through the ingestion path.
//
// Derived Views:
// Projections (current yak, its notes in index order, selected note) are
// memoized against a state version counter and recomputed on demand. All
// derived reads report not-ready until the replay threshold frame has been
// observed, so consumers never render a half-replayed log.
package engine
