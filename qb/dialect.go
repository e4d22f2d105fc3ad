package qb

import (
	"fmt"
	"strings"
)

// Dialect renders the driver-specific parts of the generated SQL.
// Predicate placeholders are ? for both bundled drivers.
type Dialect interface {
	// TableExistsQuery returns a query with a single ? parameter
	// (the table name) that yields at least one row iff the table exists.
	TableExistsQuery() string

	// CreateTableSQL renders the DDL statements for a built table
	// definition. Statements are executed in order.
	CreateTableSQL(table string, tb *TableBuilder) []string
}

type SQLite struct{}

type MySQL struct{}

var _ Dialect = (*SQLite)(nil)
var _ Dialect = (*MySQL)(nil)

func (SQLite) TableExistsQuery() string {
	return "SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?"
}

func (SQLite) CreateTableSQL(table string, tb *TableBuilder) []string {
	cols := make([]string, len(tb.columns))
	for i, c := range tb.columns {
		var t string
		switch c.kind {
		case colInteger:
			t = "INTEGER"
		case colTimestamp:
			t = "TIMESTAMP"
		default:
			// sqlite has no length-constrained strings
			t = "TEXT"
		}
		cols[i] = fmt.Sprintf("%s %s NOT NULL", c.name, t)
	}

	stmts := []string{
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", table, strings.Join(cols, ", ")),
	}

	for _, idx := range tb.indexes {
		stmts = append(stmts, fmt.Sprintf(
			"CREATE INDEX IF NOT EXISTS %s ON %s (%s)",
			indexName(table, idx), table, strings.Join(idx, ", "),
		))
	}

	return stmts
}

func (MySQL) TableExistsQuery() string {
	return "SELECT table_name FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ?"
}

func (MySQL) CreateTableSQL(table string, tb *TableBuilder) []string {
	defs := make([]string, 0, len(tb.columns)+len(tb.indexes))
	for _, c := range tb.columns {
		var t string
		switch c.kind {
		case colInteger:
			t = "INT"
		case colText:
			t = "TEXT"
		case colTimestamp:
			t = "TIMESTAMP"
		default:
			t = fmt.Sprintf("VARCHAR(%d)", c.size)
		}
		defs = append(defs, fmt.Sprintf("%s %s NOT NULL", c.name, t))
	}

	for _, idx := range tb.indexes {
		defs = append(defs, fmt.Sprintf(
			"INDEX %s (%s)", indexName(table, idx), strings.Join(idx, ", "),
		))
	}

	return []string{fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (%s) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
		table, strings.Join(defs, ", "),
	)}
}

func indexName(table string, cols []string) string {
	return "idx_" + table + "_" + strings.Join(cols, "_")
}
