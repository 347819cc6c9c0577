package engine

import "context"

// scheduleResolveLocked dispatches an asynchronous content resolution for a
// note. Caller holds e.mu.
//
// At most one resolution is ever scheduled per note: the same hash always
// resolves to the same text, so one attempt suffices and retries are
// pointless. The fetch runs in its own goroutine and must never block frame
// ingestion; its completion is an independent atomic single-note update.
func (e *Engine) scheduleResolveLocked(noteID, hash string) {
	if _, ok := e.scheduled[noteID]; ok {
		return
	}
	e.scheduled[noteID] = struct{}{}

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		// Resolutions have no cancellation or timeout semantics: they
		// run to completion or fail on their own.
		text, err := e.stream.Content(context.Background(), hash)
		e.completeResolve(noteID, text, err)
	}()
}

// completeResolve writes a resolution result into its note.
//
// On failure the note degrades to fixed error strings rather than surfacing
// an error. If the note was superseded and dropped from the index before the
// fetch finished, the write still lands in the orphaned record; staleness is
// deliberately not detected.
func (e *Engine) completeResolve(noteID, text string, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	n, ok := e.st.notes[noteID]
	if !ok {
		// Note ids come from applied frames, so this only happens if a
		// caller races a resolution against a fresh engine in tests.
		return
	}

	if err != nil {
		e.logger.Warn("content resolution failed", "note", noteID, "hash", n.Hash, "error", err)
		n.Content = errorContent
		n.Title = errorTitle
	} else {
		n.Content = text
		n.Title = titleOf(text)
	}

	e.st.notes[noteID] = n
	e.st.bump()
}
