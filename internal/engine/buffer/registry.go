package buffer

import (
	"io"
	"sync"
)

// Registry creates and numbers buffers. The numbering counter lives
// here rather than in package state so independent registries never
// share numbers.
type Registry struct {
	mu      sync.Mutex
	nextNum int
	byID    map[string]*Buffer
}

// NewRegistry returns an empty registry. Numbering starts at 1.
func NewRegistry() *Registry {
	return &Registry{
		nextNum: 1,
		byID:    make(map[string]*Buffer),
	}
}

// Create reads content into a new numbered buffer and registers it. A
// read failure returns ErrFailBuffer and registers nothing.
func (g *Registry) Create(id string, r io.Reader, opts ...Option) (*Buffer, error) {
	b, err := FromReader(id, r, opts...)
	if err != nil {
		return nil, err
	}
	g.add(b)
	return b, nil
}

// CreateFromString registers a new numbered buffer with the given
// content.
func (g *Registry) CreateFromString(id, s string, opts ...Option) *Buffer {
	b := FromString(id, s, opts...)
	g.add(b)
	return b
}

func (g *Registry) add(b *Buffer) {
	g.mu.Lock()
	defer g.mu.Unlock()
	b.num = g.nextNum
	g.nextNum++
	g.byID[b.id] = b
}

// Get returns the registered buffer with the given id, or nil.
func (g *Registry) Get(id string) *Buffer {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.byID[id]
}

// Remove drops the buffer with the given id. Numbers are never
// reused.
func (g *Registry) Remove(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.byID, id)
}

// Len returns the number of registered buffers.
func (g *Registry) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.byID)
}

// Each calls fn for every registered buffer.
func (g *Registry) Each(fn func(*Buffer)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, b := range g.byID {
		fn(b)
	}
}
