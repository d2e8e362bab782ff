package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/alexanderramin/prodsched/internal/db"
)

// FailingUoW runs each transaction against a real database but injects Err
// into one write, so tests can assert that a multi-write operation (a
// reschedule cascade, an upsert) leaves no partial state behind.
//
// Writes are counted from 1 per transaction. When Match is set only
// statements containing it are counted, e.g. "UPDATE task_resource_assignments".
// Reads are never intercepted.
type FailingUoW struct {
	DB     *sql.DB
	FailOn int32
	Match  string
	Err    error

	writes atomic.Int32
}

// Writes reports how many counted writes the last transaction attempted.
func (u *FailingUoW) Writes() int32 {
	return u.writes.Load()
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	u.writes.Store(0)

	wrapped := &failingTx{DBTX: tx, uow: u}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failingTx struct {
	db.DBTX
	uow *FailingUoW
}

func (f *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.uow.Match == "" || strings.Contains(query, f.uow.Match) {
		if f.uow.writes.Add(1) == f.uow.FailOn {
			return nil, f.uow.Err
		}
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
