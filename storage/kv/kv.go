// Package kv is the key-value persistence layer: every collection is a single JSON blob stored
// under its own key and is always read and written whole.
package kv

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned by Store.Get when the key was never set (or was deleted).
	ErrNotFound = errors.New("key not found")
	// ErrClosed is returned by a Store used after Close.
	ErrClosed = errors.New("store closed")
)

// Store is a persistent key-value store. Set replaces the whole value stored under key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Status tells how Load obtained its value.
type Status int

const (
	Loaded  Status = iota // decoded from the stored value
	Missing               // key absent or JSON null; fallback used
	Corrupt               // stored value could not be decoded; fallback used
)

func (s Status) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case Missing:
		return "missing"
	case Corrupt:
		return "corrupt"
	default:
		return "unknown"
	}
}

// Load decodes the JSON value stored under key into a T.
// Absent and unparsable values yield fallback with the matching Status; only backend failures are returned as errors.
func Load[T any](ctx context.Context, s Store, key string, fallback T) (T, Status, error) {
	data, err := s.Get(ctx, key)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return fallback, Missing, nil
		}
		return fallback, Missing, errors.Wrapf(err, "getting %q", key)
	}

	var ptr *T
	if err := json.Unmarshal(data, &ptr); err != nil {
		return fallback, Corrupt, nil
	}
	if ptr == nil {
		return fallback, Missing, nil
	}
	return *ptr, Loaded, nil
}

// Save encodes val as JSON and stores it under key.
func Save[T any](ctx context.Context, s Store, key string, val T) error {
	data, err := json.Marshal(val)
	if err != nil {
		return errors.Wrapf(err, "encoding %q", key)
	}
	return errors.Wrapf(s.Set(ctx, key, data), "setting %q", key)
}
