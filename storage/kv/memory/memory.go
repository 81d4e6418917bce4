package memkv

import (
	"context"
	"sync"

	"github.com/utsavdwivedi51/Attendance-ERP/storage/kv"
)

type store struct {
	sync.RWMutex
	table  map[string][]byte
	closed bool
}

var _ kv.Store = (*store)(nil) // interface compliance check

// Open returns an empty in-memory kv.Store.
func Open() kv.Store {
	return &store{table: make(map[string][]byte)}
}

func (s *store) Get(_ context.Context, key string) ([]byte, error) {
	s.RLock()
	defer s.RUnlock()

	if s.closed {
		return nil, kv.ErrClosed
	}
	val, ok := s.table[key]
	if !ok {
		return nil, kv.ErrNotFound
	}
	return append([]byte(nil), val...), nil
}

func (s *store) Set(_ context.Context, key string, value []byte) error {
	s.Lock()
	defer s.Unlock()

	if s.closed {
		return kv.ErrClosed
	}
	s.table[key] = append([]byte(nil), value...)
	return nil
}

func (s *store) Delete(_ context.Context, key string) error {
	s.Lock()
	defer s.Unlock()

	if s.closed {
		return kv.ErrClosed
	}
	delete(s.table, key)
	return nil
}

func (s *store) Close() error {
	s.Lock()
	defer s.Unlock()
	s.closed = true
	return nil
}
