package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/utsavdwivedi51/Attendance-ERP/core"
	"github.com/utsavdwivedi51/Attendance-ERP/storage/kv"
	kvopen "github.com/utsavdwivedi51/Attendance-ERP/storage/kv/open"
	kvrepos "github.com/utsavdwivedi51/Attendance-ERP/storage/repos"
)

var openStoreFunc = kvopen.Open // mockable

// persistent collections; the session token is transient and never copied
var migratedKeys = []string{kvrepos.KeyUsers, kvrepos.KeyStudents, kvrepos.KeyAttendance, kvrepos.KeySeeded}

func (cli *commandLine) migrate(engine, path, dsn string) error {
	ctx := context.Background()
	dst, err := openStoreFunc(ctx, core.StorageConfig{Engine: engine, Path: path, DSN: dsn})
	if err != nil {
		return err
	}
	defer dst.Close()

	for _, key := range migratedKeys {
		val, err := cli.store.Get(ctx, key)
		if errors.Cause(err) == kv.ErrNotFound {
			continue
		}
		if err != nil {
			return errors.Wrapf(err, "reading %s", key)
		}
		if err = dst.Set(ctx, key, val); err != nil {
			return errors.Wrapf(err, "writing %s", key)
		}
		fmt.Printf("copied %s (%d bytes)\n", key, len(val))
	}
	return nil
}
