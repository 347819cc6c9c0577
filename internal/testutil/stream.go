package testutil

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	"github.com/roach88/yakstack/internal/frame"
)

// ErrNoContent is returned by MemoryStream.Content for unknown hashes.
var ErrNoContent = errors.New("content not found")

// MemoryStream is an in-memory frame log and CAS implementing the engine's
// stream interface. Delivery semantics mirror store.Store: historical
// frames, a synthesized threshold, then live frames, all under one mutex so
// listeners observe strict log order.
type MemoryStream struct {
	gen frame.IDGenerator

	mu      sync.Mutex
	frames  []frame.Frame
	cas     map[string]string
	subs    []func(frame.Frame)
	live    bool
	failCAS map[string]error // hash -> injected resolution failure

	appends int
}

// NewMemoryStream creates an empty stream using the given ID generator.
func NewMemoryStream(gen frame.IDGenerator) *MemoryStream {
	return &MemoryStream{
		gen:     gen,
		cas:     make(map[string]string),
		failCAS: make(map[string]error),
	}
}

// Append validates and appends a frame, delivering it inline when live.
func (m *MemoryStream) Append(_ context.Context, req frame.AppendRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", fmt.Errorf("append: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	hash := ""
	if req.Content != "" {
		hash = HashContent(req.Content)
		m.cas[hash] = req.Content
	}

	f := frame.Frame{
		ID:        m.gen.NewID(),
		Topic:     req.Topic,
		ContextID: frame.ZeroContext,
		Hash:      hash,
		Meta:      req.Meta,
	}
	m.frames = append(m.frames, f)
	m.appends++

	if m.live {
		for _, fn := range m.subs {
			fn(f)
		}
	}
	return f.ID, nil
}

// AppendFrame injects a pre-built frame, bypassing validation and ID
// assignment. Lets tests deliver malformed or hand-crafted frames.
func (m *MemoryStream) AppendFrame(f frame.Frame) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.frames = append(m.frames, f)
	if m.live {
		for _, fn := range m.subs {
			fn(f)
		}
	}
}

// PutContent seeds the CAS directly and returns the hash.
func (m *MemoryStream) PutContent(content string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	hash := HashContent(content)
	m.cas[hash] = content
	return hash
}

// FailContent makes Content return err for the given hash.
func (m *MemoryStream) FailContent(hash string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failCAS[hash] = err
}

// Content fetches CAS content by hash.
func (m *MemoryStream) Content(_ context.Context, hash string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.failCAS[hash]; ok {
		return "", err
	}
	content, ok := m.cas[hash]
	if !ok {
		return "", fmt.Errorf("cas read %q: %w", hash, ErrNoContent)
	}
	return content, nil
}

// Subscribe delivers all historical frames, then a threshold frame, then
// flips the stream live.
func (m *MemoryStream) Subscribe(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.live {
		return errors.New("subscribe: already live")
	}

	for _, f := range m.frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, fn := range m.subs {
			fn(f)
		}
	}

	threshold := frame.Frame{
		ID:        m.gen.NewID(),
		Topic:     frame.TopicThreshold,
		ContextID: frame.ZeroContext,
	}
	for _, fn := range m.subs {
		fn(threshold)
	}

	m.live = true
	return nil
}

// OnFrame registers a listener. The returned function unsubscribes.
func (m *MemoryStream) OnFrame(fn func(frame.Frame)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.subs = append(m.subs, fn)
	idx := len(m.subs) - 1

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.subs[idx] = func(frame.Frame) {}
	}
}

// Appends returns how many Append calls have been made.
// Used to assert that a no-op command appended nothing.
func (m *MemoryStream) Appends() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.appends
}

// Frames returns a copy of the log.
func (m *MemoryStream) Frames() []frame.Frame {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]frame.Frame(nil), m.frames...)
}

// HashContent returns the hex SHA-256 of content, matching the production
// CAS key derivation.
func HashContent(content string) string {
	h := sha256.Sum256([]byte(content))
	return hex.EncodeToString(h[:])
}
