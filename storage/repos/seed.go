package kvrepos

import (
	"context"

	"github.com/pkg/errors"

	"github.com/utsavdwivedi51/Attendance-ERP/core"
	"github.com/utsavdwivedi51/Attendance-ERP/core/seed"
	"github.com/utsavdwivedi51/Attendance-ERP/storage/kv"
)

type seedFlag struct {
	repository
}

var _ seed.Flag = (*seedFlag)(nil)

func NewSeedFlag(store kv.Store, logger core.Logger) seed.Flag {
	return &seedFlag{repository{store: store, logger: logger}}
}

func (f *seedFlag) IsSeeded(ctx context.Context) (bool, error) {
	seeded, status, err := kv.Load(ctx, f.store, KeySeeded, false)
	if err != nil {
		return false, errors.Wrap(err, "loading seeded flag")
	}
	if status == kv.Corrupt {
		f.logger.Warn("unreadable seeded flag", map[string]interface{}{"key": KeySeeded})
	}
	return seeded, nil
}

func (f *seedFlag) SetSeeded(ctx context.Context, seeded bool) error {
	return kv.Save(ctx, f.store, KeySeeded, seeded)
}
