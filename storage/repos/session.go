package kvrepos

import (
	"context"

	"github.com/pkg/errors"

	"github.com/utsavdwivedi51/Attendance-ERP/core/auth"
	"github.com/utsavdwivedi51/Attendance-ERP/storage/kv"
)

// tokenStore keeps the session token under KeySession. It should be backed by a transient store.
type tokenStore struct {
	store kv.Store
}

var _ auth.TokenStore = (*tokenStore)(nil)

func NewTokenStore(store kv.Store) auth.TokenStore {
	return &tokenStore{store: store}
}

func (ts *tokenStore) SaveToken(ctx context.Context, token string) error {
	return kv.Save(ctx, ts.store, KeySession, token)
}

func (ts *tokenStore) LoadToken(ctx context.Context) (string, error) {
	token, _, err := kv.Load(ctx, ts.store, KeySession, "")
	return token, errors.Wrap(err, "loading token")
}

func (ts *tokenStore) ClearToken(ctx context.Context) error {
	err := ts.store.Delete(ctx, KeySession)
	if errors.Cause(err) == kv.ErrNotFound {
		return nil
	}
	return err
}
