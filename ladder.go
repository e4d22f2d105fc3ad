// Package ladder runs schema migrations per named module. Every module
// owns an ordered sequence of steps; a step's version is its 1-based
// position in that sequence, and the current version of each module is
// tracked in a single database table.
package ladder

import (
	"context"

	"github.com/axkov/ladder/internal/logger"
	"github.com/axkov/ladder/internal/source"
	"github.com/axkov/ladder/internal/tracker"
	"github.com/axkov/ladder/qb"
	"github.com/axkov/ladder/step"
	"github.com/pkg/errors"
)

type CloserFunc func() error

type versionStore interface {
	CreateTrackingTable(ctx context.Context) error
	Version(ctx context.Context, module string) (version int, found bool, err error)
	SetVersion(ctx context.Context, module string, version int, insert bool) error
}

var _ versionStore = (*tracker.Store)(nil)

type Engine struct {
	lg       logger.Logger
	conn     *qb.Conn
	store    versionStore
	selector source.Selector
	registry *source.InMemory
	folder   string
	strict   bool
}

// NewEngine creates an engine from option callbacks. A database option
// (UseSqlite or UseMySQL) is required; without a step source option the
// engine loads steps from ./migrations/<module>/.
func NewEngine(opts ...OptionFunc) (*Engine, CloserFunc, error) {
	e := new(Engine)
	e.lg = &logger.NullLogger{}

	for _, oFunc := range opts {
		if err := oFunc(e); err != nil {
			return nil, nil, err
		}
	}

	if e.store == nil || e.conn == nil {
		return nil, nil, ErrStoreNotInitialized
	}

	if e.selector == nil {
		if e.folder == "" {
			e.folder = source.DefaultFolder
		}

		e.selector = source.NewLocalFS(e.folder, e.strict, e.lg)
	}

	e.conn.SetLogger(e.lg)

	return e, e.close, nil
}

// InitTrackingTable creates the tracking table if it is absent.
func (e *Engine) InitTrackingTable(ctx context.Context) error {
	if err := e.store.CreateTrackingTable(ctx); err != nil {
		e.lg.Error(err)
		return err
	}

	e.lg.Debugf("tracking table ready")
	return nil
}

// Version returns a module's stored version. found is false for modules
// that have never been migrated.
func (e *Engine) Version(ctx context.Context, module string) (version int, found bool, err error) {
	if module == "" {
		return 0, false, ErrEmptyModule
	}

	return e.store.Version(ctx, module)
}

// Migrate runs a module forward: one step without configurators, to an
// explicit version with WithVersion, or all the way with ToLatest.
func (e *Engine) Migrate(ctx context.Context, module string, cfs ...ActionConfigurator) (*Result, error) {
	return e.run(ctx, forward, module, cfs)
}

// Rollback runs a module backward: one step without configurators, or
// down to an explicit version with WithVersion.
func (e *Engine) Rollback(ctx context.Context, module string, cfs ...ActionConfigurator) (*Result, error) {
	return e.run(ctx, backward, module, cfs)
}

func (e *Engine) run(ctx context.Context, dir direction, module string, cfs []ActionConfigurator) (*Result, error) {
	act := new(action)
	for _, f := range cfs {
		f(act)
	}

	if module == "" {
		e.lg.Error(ErrEmptyModule)
		return nil, ErrEmptyModule
	}

	if err := act.validate(dir); err != nil {
		e.lg.Error(err)
		return nil, err
	}

	seq, err := e.selector.Load(ctx, module)
	if err != nil {
		err = errors.Wrapf(err, "could not load steps of module %s", module)
		e.lg.Error(err)
		return nil, err
	}
	latest := len(seq)

	current, found, err := e.store.Version(ctx, module)
	if err != nil {
		e.lg.Error(err)
		return nil, err
	}

	if current > latest {
		err := errors.Wrapf(ErrOutOfSync,
			"module %s is at version %d but only %d steps were discovered", module, current, latest)
		e.lg.Error(err)
		return nil, err
	}

	p, err := resolve(dir, act, latest, current, found)
	if err != nil {
		e.lg.Error(err)
		return nil, err
	}

	if p.reason != "" {
		e.lg.Debugf("%s of module %s is a no-op: %s", dir.op(), module, p.reason)
		return &Result{Module: module, Version: current, NoOp: true, Reason: p.reason}, nil
	}

	applied, err := e.execute(ctx, dir, module, seq, current, p.target)
	if err != nil {
		e.lg.Error(err)
		return nil, err
	}

	if err := e.store.SetVersion(ctx, module, p.target, !found); err != nil {
		pErr := &PersistError{Module: module, Version: p.target, Err: err}
		e.lg.Error(pErr)
		return nil, pErr
	}

	e.lg.Successf("module %s %s to version %d", module, dir.past(), p.target)

	return &Result{Module: module, Version: p.target, Applied: applied}, nil
}

// execute runs the closed range of steps between current and target in
// the order the direction implies. It stops at the first failure; steps
// already run stay applied.
func (e *Engine) execute(
	ctx context.Context,
	dir direction,
	module string,
	seq step.Sequence,
	current, target int,
) ([]int, error) {
	var applied []int

	if dir == forward {
		for v := current + 1; v <= target; v++ {
			s := seq[v-1]
			e.lg.Debugf("running step %d (%s) of module %s forward", v, s.Key(), module)

			if err := s.Up(ctx, e.conn); err != nil {
				return applied, &StepError{Module: module, Version: v, Key: s.Key(), Op: OpMigrate, Err: err}
			}

			applied = append(applied, v)
		}

		return applied, nil
	}

	for v := current; v > target; v-- {
		s := seq[v-1]
		e.lg.Debugf("running step %d (%s) of module %s backward", v, s.Key(), module)

		if err := s.Down(ctx, e.conn); err != nil {
			return applied, &StepError{Module: module, Version: v, Key: s.Key(), Op: OpRollback, Err: err}
		}

		applied = append(applied, v)
	}

	return applied, nil
}

func (e *Engine) close() error {
	if e.conn == nil {
		return nil
	}

	if err := e.conn.Close(); err != nil {
		e.lg.Error(err)
		return err
	}

	return nil
}
