package filekv

import (
	"context"
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/utsavdwivedi51/Attendance-ERP/storage/kv"
)

const fileExt = ".json"

// Store keeps each key in its own file under a directory.
type Store struct {
	dir    string
	mu     sync.RWMutex
	closed bool
}

var _ kv.Store = (*Store)(nil)

// Open returns a Store rooted at dir, creating it if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrap(err, "creating store directory")
	}
	return &Store{dir: dir}, nil
}

// path hex-encodes the key so that any key maps to a safe file name.
func (s *Store) path(key string) string {
	return filepath.Join(s.dir, hex.EncodeToString([]byte(key))+fileExt)
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, kv.ErrClosed
	}
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, kv.ErrNotFound
		}
		return nil, errors.Wrap(err, "reading value")
	}
	return data, nil
}

// Set writes to a temporary file and renames it so readers never observe a partial value.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return kv.ErrClosed
	}
	tmp, err := os.CreateTemp(s.dir, "tmp-*")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	if _, err = tmp.Write(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return errors.Wrap(err, "writing value")
	}
	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return errors.Wrap(err, "closing temp file")
	}
	return errors.Wrap(os.Rename(tmp.Name(), s.path(key)), "renaming temp file")
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return kv.ErrClosed
	}
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing value")
	}
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
