package catalog

import (
	"context"
	"sync"
)

// Store holds fetched catalog documents keyed by locale code.
//
// A store never contains an entry that was not successfully loaded at
// least once, and entries are never evicted or invalidated: a cached
// catalog is authoritative for the lifetime of the store.
type Store interface {
	// Get retrieves the document for a locale.
	// Returns ErrNotFound if no catalog was stored for it.
	Get(ctx context.Context, locale string) (Document, error)

	// Set stores the document for a locale.
	Set(ctx context.Context, locale string, doc Document) error

	// Has reports whether a catalog was stored for the locale.
	Has(ctx context.Context, locale string) (bool, error)
}

// Memory is an in-memory Store guarded by a mutex.
// It grows monotonically: entries are added once per locale and kept
// for the lifetime of the process.
type Memory struct {
	mu   sync.RWMutex
	docs map[string]Document
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string]Document)}
}

// Get retrieves the document for a locale.
func (m *Memory) Get(_ context.Context, locale string) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.docs[locale]
	if !ok {
		return nil, ErrNotFound
	}
	return doc, nil
}

// Set stores the document for a locale.
func (m *Memory) Set(_ context.Context, locale string, doc Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.docs[locale] = doc
	return nil
}

// Has reports whether a catalog was stored for the locale.
func (m *Memory) Has(_ context.Context, locale string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.docs[locale]
	return ok, nil
}

var _ Store = (*Memory)(nil)
