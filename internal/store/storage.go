package store

// Storage is the directory-of-segments abstraction (§2 item 4) that both
// the on-disk DirectoryStorage and the in-memory MemoryStorage implement.
// A caller must hold the lock returned by Lock for the duration of any
// LoadLatest/Commit pair it performs as one logical writer session (§3
// Ownership: "the storage directory hosts a file-lock singleton that
// guarantees at-most-one concurrent writer per index path").
type Storage interface {
	// Lock acquires the single-writer lock, blocking until it is
	// available. The returned Unlock must be called exactly once.
	Lock() (Unlock, error)

	// LoadLatest returns the most recently committed segment's state, or
	// an empty state if the index has never been committed to.
	LoadLatest() (*IndexState, error)

	// Commit persists state as the new current segment, atomically
	// repointing the manifest at it.
	Commit(state *IndexState) error
}

// Unlock releases a previously acquired writer lock.
type Unlock func() error
