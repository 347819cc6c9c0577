package engine

import "github.com/roach88/yakstack/internal/frame"

// apply commits exactly one atomic state transition for the given frame.
// Called only from the Run loop, one frame at a time, in delivery order.
//
// Malformed frames (missing required meta fields) are dropped whole: no
// entity, no index change, no error. Unknown topics are ignored.
func (e *Engine) apply(f frame.Frame) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch f.Topic {
	case frame.TopicThreshold:
		e.applyThreshold()
	case frame.TopicYakCreate:
		e.applyYakCreate(f)
	case frame.TopicNoteCreate:
		e.applyNoteCreate(f)
	case frame.TopicNoteEdit:
		e.applyNoteEdit(f)
	default:
		e.logger.Debug("ignoring unknown topic", "id", f.ID, "topic", f.Topic)
	}
}

// applyThreshold raises the replay latch. Idempotent; the latch never
// resets.
func (e *Engine) applyThreshold() {
	if e.st.threshold {
		return
	}
	e.st.threshold = true
	e.st.bump()
	e.logger.Info("replay threshold reached")
}

// applyYakCreate materializes a yak from the frame id. The first yak
// observed becomes current; later creations never steal it
// (first-writer-wins).
func (e *Engine) applyYakCreate(f frame.Frame) {
	e.st.putYak(newYak(f))
	if e.st.currentYakID == "" {
		e.st.currentYakID = f.ID
	}
	e.st.bump()
}

// applyNoteCreate materializes a note with placeholder content at the tail
// of its yak's index and schedules content resolution when the frame
// carries a hash.
func (e *Engine) applyNoteCreate(f frame.Frame) {
	if f.Meta == nil || f.Meta.ContainerID == "" {
		e.logger.Warn("dropping note.create without containerId", "id", f.ID)
		return
	}

	n := newNote(f, "")
	e.st.appendNote(n)
	e.st.bump()

	if f.Hash != "" {
		e.scheduleResolveLocked(n.ID, f.Hash)
	}
}

// applyNoteEdit supersedes an existing note: a brand-new note takes the
// predecessor's index slot, and the active selection follows if it pointed
// at the predecessor. All of it commits in this one transition.
func (e *Engine) applyNoteEdit(f frame.Frame) {
	if f.Meta == nil || f.Meta.ContainerID == "" || f.Meta.OriginalNoteID == "" {
		e.logger.Warn("dropping note.edit without containerId/originalNoteId", "id", f.ID)
		return
	}

	n := newNote(f, f.Meta.OriginalNoteID)
	e.st.replaceNote(n)

	if e.st.selectedNoteID == n.Supersedes {
		e.st.selectedNoteID = n.ID
	}
	e.st.bump()

	if f.Hash != "" {
		e.scheduleResolveLocked(n.ID, f.Hash)
	}
}
