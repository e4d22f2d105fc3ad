// Package tracker persists the current version of each migration module
// in the tracking table: one logical row per module.
package tracker

import (
	"context"

	"github.com/axkov/ladder/qb"
	"github.com/pkg/errors"
)

const DefaultTable = "migrations"

type record struct {
	Module  string `db:"module"`
	Version int    `db:"version"`
}

type Store struct {
	conn  *qb.Conn
	table string
}

func New(conn *qb.Conn, table string) *Store {
	if table == "" {
		table = DefaultTable
	}

	return &Store{conn: conn, table: table}
}

// CreateTrackingTable bootstraps the tracking table. Idempotent.
func (s *Store) CreateTrackingTable(ctx context.Context) error {
	exists, err := s.conn.HasTable(ctx, s.table)
	if err != nil {
		return err
	}

	if exists {
		return nil
	}

	return s.conn.CreateTable(ctx, s.table, func(t *qb.TableBuilder) {
		t.String("module", 50)
		t.Integer("version")
		t.Index("module")
	})
}

// Version returns the stored version for a module. found is false when
// the module has never been migrated; that is distinct from a stored 0.
func (s *Store) Version(ctx context.Context, module string) (version int, found bool, err error) {
	var rec record

	err = s.conn.Table(s.table).Where("module", module).First(ctx, &rec)
	if err != nil {
		if errors.Is(err, qb.ErrNoRows) {
			return 0, false, nil
		}

		return 0, false, errors.Wrapf(err, "could not read version of module %s", module)
	}

	return rec.Version, true, nil
}

// SetVersion writes a module's version. insert selects insert-vs-update
// semantics: the first successful forward run inserts, every later run
// updates the existing row. The row is never deleted, a full rollback
// leaves it at 0.
func (s *Store) SetVersion(ctx context.Context, module string, version int, insert bool) error {
	t := s.conn.Table(s.table)

	if insert {
		err := t.Insert(ctx, qb.Row{"module": module, "version": version})
		return errors.Wrapf(err, "could not insert version of module %s", module)
	}

	err := t.Where("module", module).Update(ctx, qb.Row{"version": version})
	return errors.Wrapf(err, "could not update version of module %s", module)
}
