// Package kvopen opens the kv.Store selected by the configuration.
package kvopen

import (
	"context"

	"github.com/pkg/errors"

	"github.com/utsavdwivedi51/Attendance-ERP/core"
	"github.com/utsavdwivedi51/Attendance-ERP/storage/kv"
	"github.com/utsavdwivedi51/Attendance-ERP/storage/kv/file"
	"github.com/utsavdwivedi51/Attendance-ERP/storage/kv/memory"
	"github.com/utsavdwivedi51/Attendance-ERP/storage/kv/postgres"
	"github.com/utsavdwivedi51/Attendance-ERP/storage/kv/sqlite"
)

func Open(ctx context.Context, conf core.StorageConfig) (kv.Store, error) {
	switch conf.Engine {
	case core.EngineMemory:
		return memkv.Open(), nil
	case core.EngineFile:
		s, err := filekv.Open(conf.Path)
		if err != nil {
			return nil, errors.Wrap(err, "opening file store")
		}
		return s, nil
	case core.EngineSQLite, "":
		s, err := sqlitekv.Open(conf.Path)
		if err != nil {
			return nil, errors.Wrap(err, "opening sqlite store")
		}
		return s, nil
	case core.EnginePostgres:
		s, err := pgkv.Open(ctx, conf.DSN)
		if err != nil {
			return nil, errors.Wrap(err, "opening postgres store")
		}
		return s, nil
	default:
		return nil, errors.Errorf("unknown storage engine %q", conf.Engine)
	}
}
