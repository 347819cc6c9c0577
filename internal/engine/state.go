package engine

// state is the canonical entity store plus the identity/selection context.
// It is a passive container: all access goes through the Engine's lock, and
// every mutation helper leaves the maps and indices consistent (a freshly
// indexed note is always present in the note map, and vice versa no index
// slot ever references an id the map lacks).
type state struct {
	yaks  map[string]Yak
	notes map[string]Note

	// index holds each yak's note ids in display order: creates append,
	// edits replace in place. pos maps note id to its index slot so edits
	// avoid a linear scan.
	index map[string][]string
	pos   map[string]int

	// Empty string is the "none" sentinel for both.
	currentYakID   string
	selectedNoteID string

	// threshold is the one-way replay latch: false during historical
	// replay, true forever after the first xs.threshold frame.
	threshold bool

	// version increments on every observable mutation; derived views
	// memoize against it.
	version uint64
}

func newState() *state {
	return &state{
		yaks:  make(map[string]Yak),
		notes: make(map[string]Note),
		index: make(map[string][]string),
		pos:   make(map[string]int),
	}
}

// bump marks the state as changed for view memoization.
func (st *state) bump() {
	st.version++
}

// putYak stores a yak and initializes its (empty) note index.
func (st *state) putYak(y Yak) {
	st.yaks[y.ID] = y
	if _, ok := st.index[y.ID]; !ok {
		st.index[y.ID] = []string{}
	}
}

// appendNote stores a note and appends its id to the owning yak's index tail.
func (st *state) appendNote(n Note) {
	st.notes[n.ID] = n
	st.index[n.YakID] = append(st.index[n.YakID], n.ID)
	st.pos[n.ID] = len(st.index[n.YakID]) - 1
	st.touchYak(n.YakID, n)
}

// replaceNote stores a successor note and swaps it into the predecessor's
// index slot, keeping the predecessor's position. The predecessor stays in
// the note map (lineage) but leaves the index (display).
//
// A predecessor with no index slot (already superseded, or never indexed)
// degrades to a tail append so the successor is still visible.
func (st *state) replaceNote(n Note) {
	st.notes[n.ID] = n

	slot, ok := st.pos[n.Supersedes]
	if ok {
		// A cross-yak edit must not splice into another yak's index.
		if prev, exists := st.notes[n.Supersedes]; !exists || prev.YakID != n.YakID {
			ok = false
		}
	}
	if !ok {
		st.index[n.YakID] = append(st.index[n.YakID], n.ID)
		st.pos[n.ID] = len(st.index[n.YakID]) - 1
	} else {
		st.index[n.YakID][slot] = n.ID
		st.pos[n.ID] = slot
		delete(st.pos, n.Supersedes)
	}

	st.touchYak(n.YakID, n)
}

// touchYak advances the owning yak's LastActivity to the note's clock.
// Notes referencing an unknown yak leave yak state untouched.
func (st *state) touchYak(yakID string, n Note) {
	y, ok := st.yaks[yakID]
	if !ok {
		return
	}
	// IDs are time-sortable, so a later note never moves LastActivity
	// backwards. Equal clocks (same-millisecond frames) still count as
	// activity.
	if !n.CreatedAt.Before(y.LastActivity) {
		y.LastActivity = n.CreatedAt
		st.yaks[yakID] = y
	}
}
