// Package cli glues the engine to the ladder binary: configuration
// loading, database bootstrap and step scaffolding.
package cli

import (
	"context"
	"strconv"

	"github.com/axkov/ladder"
	"github.com/axkov/ladder/internal/logger"
	"github.com/axkov/ladder/internal/source"
	"github.com/pkg/errors"
)

type App struct {
	engine   *ladder.Engine
	closer   ladder.CloserFunc
	scaffold *source.LocalFS
}

// New builds the application: parses the database URL, connects with
// retries and wires the engine.
func New(ctx context.Context, cfg Config, lgOpt ladder.OptionFunc) (*App, error) {
	engine, closer, err := createEngine(ctx, cfg, lgOpt)
	if err != nil {
		return nil, err
	}

	return &App{
		engine:   engine,
		closer:   closer,
		scaffold: source.NewLocalFS(cfg.MigrationsFolder, cfg.Strict, &logger.NullLogger{}),
	}, nil
}

func (app *App) Close() error {
	return app.closer()
}

func (app *App) Init(ctx context.Context) error {
	return app.engine.InitTrackingTable(ctx)
}

// Migrate runs a module forward. version is "", "latest" or an integer
// string.
func (app *App) Migrate(ctx context.Context, module, version string) (*ladder.Result, error) {
	cfs, err := configurators(version)
	if err != nil {
		return nil, err
	}

	return app.engine.Migrate(ctx, module, cfs...)
}

// Rollback runs a module backward. version is "" or an integer string;
// "latest" is passed through so the engine rejects it uniformly.
func (app *App) Rollback(ctx context.Context, module, version string) (*ladder.Result, error) {
	cfs, err := configurators(version)
	if err != nil {
		return nil, err
	}

	return app.engine.Rollback(ctx, module, cfs...)
}

func (app *App) Version(ctx context.Context, module string) (version int, found bool, err error) {
	return app.engine.Version(ctx, module)
}

// CreateStep scaffolds the next migrate/rollback file pair for a module
// and returns the new step key.
func (app *App) CreateStep(module, name string) (string, error) {
	if module == "" {
		return "", ladder.ErrEmptyModule
	}

	if name == "" {
		return "", errors.New("step name must not be empty")
	}

	return app.scaffold.Create(module, name)
}

func configurators(version string) ([]ladder.ActionConfigurator, error) {
	switch version {
	case "":
		return nil, nil
	case "latest":
		return []ladder.ActionConfigurator{ladder.ToLatest()}, nil
	}

	v, err := strconv.Atoi(version)
	if err != nil {
		return nil, errors.Wrapf(ladder.ErrInvalidVersion, "%s", version)
	}

	return []ladder.ActionConfigurator{ladder.WithVersion(v)}, nil
}
