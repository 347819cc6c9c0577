package engine

// viewCache memoizes the derived projections against the state version.
// Recomputed on demand when a reader observes a stale version; guarded by
// the engine lock.
type viewCache struct {
	version uint64
	valid   bool

	currentYak   *Yak
	currentNotes []Note
	selectedNote *Note
}

// refreshLocked recomputes the projections if the state changed since the
// last computation. Caller holds e.mu for writing.
func (e *Engine) refreshLocked() {
	if e.views.valid && e.views.version == e.st.version {
		return
	}

	e.views = viewCache{version: e.st.version, valid: true}

	if y, ok := e.st.yaks[e.st.currentYakID]; ok {
		yc := y
		e.views.currentYak = &yc
	}

	if e.views.currentYak != nil {
		ids := e.st.index[e.st.currentYakID]
		notes := make([]Note, 0, len(ids))
		for _, id := range ids {
			// An index slot whose record is missing is skipped, never
			// surfaced as a hole.
			if n, ok := e.st.notes[id]; ok {
				notes = append(notes, n)
			}
		}
		e.views.currentNotes = notes
	}

	if n, ok := e.st.notes[e.st.selectedNoteID]; ok {
		nc := n
		e.views.selectedNote = &nc
	}
}

// CurrentYak returns the current yak.
//
// The second return is the readiness gate: false until the replay threshold
// frame has been observed, even if underlying data already exists. When
// ready, a nil yak means no current yak is set (or its record is missing).
func (e *Engine) CurrentYak() (*Yak, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.st.threshold {
		return nil, false
	}
	e.refreshLocked()
	if e.views.currentYak == nil {
		return nil, true
	}
	y := *e.views.currentYak
	return &y, true
}

// CurrentNotes returns the current yak's notes in index order: creation
// order, except that an edited note keeps its predecessor's slot.
//
// Not-ready (nil, false) is distinct from ready-but-empty (empty, true).
func (e *Engine) CurrentNotes() ([]Note, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.st.threshold {
		return nil, false
	}
	e.refreshLocked()
	return append([]Note(nil), e.views.currentNotes...), true
}

// SelectedNote returns the selected note, gated like the other views.
// When ready, nil means no selection or a dangling selected id.
func (e *Engine) SelectedNote() (*Note, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.st.threshold {
		return nil, false
	}
	e.refreshLocked()
	if e.views.selectedNote == nil {
		return nil, true
	}
	n := *e.views.selectedNote
	return &n, true
}
