package storage

import (
	"encoding/json"
	"fmt"
	"sync"

	"estate-builder/models"
)

// MemoryStore is an in-process RecordStore used when PostgreSQL is not
// reachable and in tests. Pages are deep-copied on the way in and out so a
// caller mutating its session never leaks into the stored copy.
type MemoryStore struct {
	mu    sync.RWMutex
	pages map[string]*models.Page
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{pages: make(map[string]*models.Page)}
}

// Get returns a copy of the stored page.
func (m *MemoryStore) Get(pageID string) (*models.Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	page, ok := m.pages[pageID]
	if !ok {
		return nil, fmt.Errorf("memory: page %q not found", pageID)
	}
	return copyPage(page)
}

// Upsert stores a copy of the page, replacing any previous version.
func (m *MemoryStore) Upsert(page *models.Page) error {
	clone, err := copyPage(page)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages[page.ID] = clone
	return nil
}

// Delete removes the page. Deleting an absent page is not an error.
func (m *MemoryStore) Delete(pageID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pages, pageID)
	return nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error { return nil }

func copyPage(page *models.Page) (*models.Page, error) {
	raw, err := json.Marshal(page)
	if err != nil {
		return nil, fmt.Errorf("memory: copy page: %w", err)
	}
	clone := &models.Page{}
	if err := json.Unmarshal(raw, clone); err != nil {
		return nil, fmt.Errorf("memory: copy page: %w", err)
	}
	return clone, nil
}
