// Package qb is a small query and connection handle over sqlx: per-table
// CRUD with equality predicates, table bootstrap helpers and raw execution.
// It is the only layer that talks to the database.
package qb

import (
	"context"
	"database/sql"

	"github.com/axkov/ladder/internal/logger"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

var ErrNoRows = errors.New("no rows found")

// Row is a column => value map used by Insert and Update.
type Row map[string]interface{}

type Conn struct {
	db      *sqlx.DB
	dialect Dialect
	lg      logger.Logger
}

func New(db *sqlx.DB, dialect Dialect) *Conn {
	return &Conn{db: db, dialect: dialect, lg: &logger.NullLogger{}}
}

func (c *Conn) SetLogger(lg logger.Logger) {
	c.lg = lg
}

func (c *Conn) Close() error {
	return c.db.Close()
}

// Exec runs a raw statement. Migration unit scripts go through here.
func (c *Conn) Exec(ctx context.Context, query string, args ...interface{}) error {
	c.lg.SQL(query, args...)

	if _, err := c.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "exec failed")
	}

	return nil
}

func (c *Conn) HasTable(ctx context.Context, name string) (bool, error) {
	query := c.dialect.TableExistsQuery()
	c.lg.SQL(query, name)

	var found string
	if err := c.db.GetContext(ctx, &found, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}

		return false, errors.Wrapf(err, "could not check if table %s exists", name)
	}

	return true, nil
}

// CreateTable builds and executes the DDL for name. The callback declares
// columns and indexes on the builder.
func (c *Conn) CreateTable(ctx context.Context, name string, build func(*TableBuilder)) error {
	tb := new(TableBuilder)
	build(tb)

	if len(tb.columns) == 0 {
		return errors.Errorf("table %s must have at least one column", name)
	}

	for _, stmt := range c.dialect.CreateTableSQL(name, tb) {
		if err := c.Exec(ctx, stmt); err != nil {
			return errors.Wrapf(err, "could not create table %s", name)
		}
	}

	return nil
}

// Table returns a handle scoped to a single table.
func (c *Conn) Table(name string) *Table {
	return &Table{conn: c, name: name}
}
