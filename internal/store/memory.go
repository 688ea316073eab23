package store

import "sync"

// MemoryStorage is the in-memory Storage variant used by tests (§2 item 4
// "An in-memory variant exists for tests"). It still enforces the
// single-writer discipline with a plain mutex, so tests exercise the same
// lock-then-load-then-commit protocol as the on-disk implementation.
type MemoryStorage struct {
	mu      sync.Mutex
	current *IndexState
}

// NewMemoryStorage returns an empty in-memory index.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{current: NewIndexState()}
}

func (m *MemoryStorage) Lock() (Unlock, error) {
	m.mu.Lock()
	return func() error {
		m.mu.Unlock()
		return nil
	}, nil
}

func (m *MemoryStorage) LoadLatest() (*IndexState, error) {
	if m.current == nil {
		return NewIndexState(), nil
	}
	return m.current.Clone(), nil
}

func (m *MemoryStorage) Commit(state *IndexState) error {
	m.current = state.Clone()
	return nil
}
