package store

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/gofrs/flock"

	"github.com/standardbeagle/codexdex/internal/errs"
)

const (
	lockFileName     = ".lock"
	manifestFileName = "manifest.json"
	segmentPrefix    = "seg-"
	segmentSuffix    = ".segment"
)

// manifest is the small pointer file naming the current segment. It is
// the only file rewritten atomically on every commit; the segment files
// themselves are written once and never mutated, matching the glossary's
// "Segment: an immutable on-disk slice of the index."
type manifest struct {
	CurrentSegment string `json:"current_segment"`
	Generation     uint64 `json:"generation"`
}

// DirectoryStorage is the on-disk Storage implementation: a directory
// holding a lock file, a manifest, and the segment file of the current
// committed generation; Commit deletes the previous generation's segment
// once the manifest points at the new one (§3 Ownership, §6 "Persisted
// layout").
type DirectoryStorage struct {
	path string
	lock *flock.Flock
}

// NewDirectoryStorage opens (creating if necessary) an index directory at
// path.
func NewDirectoryStorage(path string) (*DirectoryStorage, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("store: create index directory %s: %w", path, err)
	}
	return &DirectoryStorage{
		path: path,
		lock: flock.New(filepath.Join(path, lockFileName)),
	}, nil
}

func (d *DirectoryStorage) Lock() (Unlock, error) {
	if err := d.lock.Lock(); err != nil {
		return nil, errs.NewLockError(d.path, err)
	}
	return func() error {
		return d.lock.Unlock()
	}, nil
}

func (d *DirectoryStorage) manifestPath() string {
	return filepath.Join(d.path, manifestFileName)
}

func (d *DirectoryStorage) readManifest() (*manifest, error) {
	data, err := os.ReadFile(d.manifestPath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read manifest: %w", err)
	}
	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("store: decode manifest: %w", err)
	}
	return &m, nil
}

func (d *DirectoryStorage) LoadLatest() (*IndexState, error) {
	m, err := d.readManifest()
	if err != nil {
		return nil, err
	}
	if m == nil || m.CurrentSegment == "" {
		return NewIndexState(), nil
	}
	data, err := os.ReadFile(filepath.Join(d.path, m.CurrentSegment))
	if err != nil {
		return nil, fmt.Errorf("store: read segment %s: %w", m.CurrentSegment, err)
	}
	var state IndexState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&state); err != nil {
		return nil, fmt.Errorf("store: decode segment %s: %w", m.CurrentSegment, err)
	}
	return &state, nil
}

func (d *DirectoryStorage) Commit(state *IndexState) error {
	prev, err := d.readManifest()
	if err != nil {
		return err
	}
	gen := uint64(1)
	if prev != nil {
		gen = prev.Generation + 1
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(state); err != nil {
		return fmt.Errorf("store: encode segment: %w", err)
	}
	sum := xxhash.Sum64(buf.Bytes())
	segName := fmt.Sprintf("%s%010d-%016x%s", segmentPrefix, gen, sum, segmentSuffix)
	segPath := filepath.Join(d.path, segName)
	if err := os.WriteFile(segPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("store: write segment %s: %w", segName, err)
	}

	newManifest := manifest{CurrentSegment: segName, Generation: gen}
	data, err := json.Marshal(newManifest)
	if err != nil {
		return fmt.Errorf("store: encode manifest: %w", err)
	}
	tmpPath := d.manifestPath() + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("store: stage manifest: %w", err)
	}
	if err := os.Rename(tmpPath, d.manifestPath()); err != nil {
		return fmt.Errorf("store: publish manifest: %w", err)
	}

	if prev != nil && prev.CurrentSegment != "" && prev.CurrentSegment != segName {
		_ = os.Remove(filepath.Join(d.path, prev.CurrentSegment))
	}
	return nil
}
