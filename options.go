package ladder

import (
	"database/sql"

	"github.com/axkov/ladder/internal/source"
	"github.com/axkov/ladder/internal/tracker"
	"github.com/axkov/ladder/qb"
	"github.com/axkov/ladder/step"
	"github.com/jmoiron/sqlx"
)

type OptionFunc func(*Engine) error

type (
	SqliteOptionFunc func(*sqliteOptions)
	MySQLOptionFunc  func(*mysqlOptions)

	sqliteOptions struct {
		table string
	}

	mysqlOptions struct {
		table string
	}
)

// UseSqlite backs the engine with an sqlite database.
func UseSqlite(db *sql.DB, options ...SqliteOptionFunc) OptionFunc {
	return func(e *Engine) error {
		opts := &sqliteOptions{table: tracker.DefaultTable}
		for _, oFunc := range options {
			oFunc(opts)
		}

		conn := qb.New(sqlx.NewDb(db, "sqlite3"), qb.SQLite{})
		e.conn = conn
		e.store = tracker.New(conn, opts.table)

		return nil
	}
}

func WithSqliteTrackingTable(table string) SqliteOptionFunc {
	return func(opts *sqliteOptions) {
		opts.table = table
	}
}

// UseMySQL backs the engine with a MySQL database.
func UseMySQL(db *sql.DB, options ...MySQLOptionFunc) OptionFunc {
	return func(e *Engine) error {
		opts := &mysqlOptions{table: tracker.DefaultTable}
		for _, oFunc := range options {
			oFunc(opts)
		}

		conn := qb.New(sqlx.NewDb(db, "mysql"), qb.MySQL{})
		e.conn = conn
		e.store = tracker.New(conn, opts.table)

		return nil
	}
}

func WithMySQLTrackingTable(table string) MySQLOptionFunc {
	return func(opts *mysqlOptions) {
		opts.table = table
	}
}

// UseLocalFolder loads module steps from <folder>/<module>/ instead of
// the default ./migrations.
func UseLocalFolder(folder string) OptionFunc {
	return func(e *Engine) error {
		if e.registry != nil {
			return ErrConflictingSources
		}

		e.folder = folder
		return nil
	}
}

// UseStrictSource makes the loader fail on files that do not form a
// migrate/rollback pair instead of skipping them.
func UseStrictSource() OptionFunc {
	return func(e *Engine) error {
		e.strict = true
		return nil
	}
}

// Register adds code-defined steps for a module, in version order.
// Engines with registered steps do not read the filesystem.
func Register(module string, steps ...step.Step) OptionFunc {
	return func(e *Engine) error {
		if e.folder != "" {
			return ErrConflictingSources
		}

		if e.registry == nil {
			e.registry = source.NewInMemory()
			e.selector = e.registry
		}

		return e.registry.Register(module, steps...)
	}
}
