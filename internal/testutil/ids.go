// Package testutil provides deterministic test doubles for the yakstack
// engine: sequential frame IDs and an in-memory stream.
package testutil

import (
	"fmt"
	"sync"
)

// SeqIDs generates deterministic, sortable frame IDs: "prefix-001",
// "prefix-002", ... Useful when tests or golden files need to reference
// frame IDs by value.
//
// Thread-safety: safe for concurrent use via internal mutex.
type SeqIDs struct {
	mu     sync.Mutex
	prefix string
	next   int
}

// NewSeqIDs creates a generator with the given prefix.
func NewSeqIDs(prefix string) *SeqIDs {
	return &SeqIDs{prefix: prefix, next: 1}
}

// NewID returns the next sequential ID.
func (g *SeqIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := fmt.Sprintf("%s-%03d", g.prefix, g.next)
	g.next++
	return id
}

// FixedIDs returns predetermined IDs in order and panics when exhausted.
// The panic is fail-fast: a test consuming more IDs than it declared is a
// test bug, not a condition to limp through.
type FixedIDs struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedIDs creates a generator that returns ids in order.
func NewFixedIDs(ids ...string) *FixedIDs {
	return &FixedIDs{ids: ids}
}

// NewID returns the next predetermined ID.
func (g *FixedIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.idx >= len(g.ids) {
		panic("testutil: FixedIDs exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}
