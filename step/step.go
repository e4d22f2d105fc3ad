// Package step defines the contract a single migration unit must satisfy.
// A unit's version is its 1-based position in the module's sequence; units
// carry no persisted identity of their own.
package step

import (
	"context"

	"github.com/axkov/ladder/qb"
)

// Step is one forward/backward schema change. Both actions must be safe
// to run exactly once per direction; the engine's version bookkeeping,
// not the step itself, prevents reruns.
type Step interface {
	// Key identifies the step in log output, e.g. its filename base.
	Key() string

	Up(ctx context.Context, conn *qb.Conn) error
	Down(ctx context.Context, conn *qb.Conn) error
}

// Sequence is a module's ordered steps. Index i holds version i+1.
type Sequence []Step

// SQL is a step backed by a pair of scripts.
type SQL struct {
	Name       string
	UpScript   string
	DownScript string
}

var _ Step = SQL{}

func (s SQL) Key() string { return s.Name }

func (s SQL) Up(ctx context.Context, conn *qb.Conn) error {
	return conn.Exec(ctx, s.UpScript)
}

func (s SQL) Down(ctx context.Context, conn *qb.Conn) error {
	return conn.Exec(ctx, s.DownScript)
}

// Func is a step defined in code.
type Func struct {
	Name   string
	UpFn   func(ctx context.Context, conn *qb.Conn) error
	DownFn func(ctx context.Context, conn *qb.Conn) error
}

var _ Step = Func{}

func (f Func) Key() string { return f.Name }

// Valid reports whether both actions are present. Checked at
// registration time so a half-defined step never reaches execution.
func (f Func) Valid() bool {
	return f.UpFn != nil && f.DownFn != nil
}

func (f Func) Up(ctx context.Context, conn *qb.Conn) error {
	return f.UpFn(ctx, conn)
}

func (f Func) Down(ctx context.Context, conn *qb.Conn) error {
	return f.DownFn(ctx, conn)
}
