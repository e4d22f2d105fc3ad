package qb

import (
	"context"
	"database/sql"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

type predicate struct {
	column string
	value  interface{}
}

// Table is a per-table accessor with equality-predicate filtering.
type Table struct {
	conn   *Conn
	name   string
	wheres []predicate
}

// Where adds an equality predicate. Predicates combine with AND in the
// order they were added.
func (t *Table) Where(column string, value interface{}) *Table {
	t.wheres = append(t.wheres, predicate{column: column, value: value})
	return t
}

// First fetches a single row into dest. Returns ErrNoRows when nothing
// matches.
func (t *Table) First(ctx context.Context, dest interface{}) error {
	where, args := t.whereClause()
	query := "SELECT * FROM " + t.name + where + " LIMIT 1"
	t.conn.lg.SQL(query, args...)

	if err := t.conn.db.GetContext(ctx, dest, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errors.Wrapf(ErrNoRows, "in table %s", t.name)
		}

		return errors.Wrapf(err, "could not select first row from %s", t.name)
	}

	return nil
}

// All fetches every matching row into dest, which must be a pointer to
// a slice.
func (t *Table) All(ctx context.Context, dest interface{}) error {
	where, args := t.whereClause()
	query := "SELECT * FROM " + t.name + where
	t.conn.lg.SQL(query, args...)

	if err := t.conn.db.SelectContext(ctx, dest, query, args...); err != nil {
		return errors.Wrapf(err, "could not select rows from %s", t.name)
	}

	return nil
}

func (t *Table) Insert(ctx context.Context, row Row) error {
	cols := sortedColumns(row)

	args := make([]interface{}, len(cols))
	marks := make([]string, len(cols))
	for i, col := range cols {
		args[i] = row[col]
		marks[i] = "?"
	}

	query := "INSERT INTO " + t.name +
		" (" + strings.Join(cols, ", ") + ") VALUES (" + strings.Join(marks, ", ") + ")"
	t.conn.lg.SQL(query, args...)

	if _, err := t.conn.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "could not insert into %s", t.name)
	}

	return nil
}

func (t *Table) Update(ctx context.Context, row Row) error {
	cols := sortedColumns(row)

	sets := make([]string, len(cols))
	args := make([]interface{}, 0, len(cols)+len(t.wheres))
	for i, col := range cols {
		sets[i] = col + " = ?"
		args = append(args, row[col])
	}

	where, whereArgs := t.whereClause()
	args = append(args, whereArgs...)

	query := "UPDATE " + t.name + " SET " + strings.Join(sets, ", ") + where
	t.conn.lg.SQL(query, args...)

	if _, err := t.conn.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "could not update %s", t.name)
	}

	return nil
}

func (t *Table) Delete(ctx context.Context) error {
	where, args := t.whereClause()
	query := "DELETE FROM " + t.name + where
	t.conn.lg.SQL(query, args...)

	if _, err := t.conn.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "could not delete from %s", t.name)
	}

	return nil
}

func (t *Table) whereClause() (string, []interface{}) {
	if len(t.wheres) == 0 {
		return "", nil
	}

	conds := make([]string, len(t.wheres))
	args := make([]interface{}, len(t.wheres))
	for i, p := range t.wheres {
		conds[i] = p.column + " = ?"
		args[i] = p.value
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

// sortedColumns keeps generated SQL deterministic.
func sortedColumns(row Row) []string {
	cols := make([]string, 0, len(row))
	for col := range row {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}
