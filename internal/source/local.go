package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/axkov/ladder/internal/logger"
	"github.com/axkov/ladder/step"
	"github.com/pkg/errors"
)

const DefaultFolder = "./migrations"

const (
	migrateSuffix  = ".migrate.sql"
	rollbackSuffix = ".rollback.sql"
)

// LocalFS loads steps from <root>/<module>/. Each step is a pair of
// <key>.migrate.sql and <key>.rollback.sql files; lexicographic order of
// the migrate files defines the version numbering.
type LocalFS struct {
	root   string
	strict bool
	lg     logger.Logger
}

func NewLocalFS(root string, strict bool, lg logger.Logger) *LocalFS {
	return &LocalFS{root: root, strict: strict, lg: lg}
}

func (l *LocalFS) IsValid() bool {
	info, err := os.Stat(l.root)
	if err != nil {
		return false
	}

	return info.IsDir()
}

func (l *LocalFS) Load(_ context.Context, module string) (step.Sequence, error) {
	dir := filepath.Join(l.root, module)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "could not list migration folder %s", dir)
	}

	names := make(map[string]bool, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names[e.Name()] = true
		}
	}

	var seq step.Sequence
	claimed := make(map[string]bool)

	// os.ReadDir returns entries sorted by filename
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, migrateSuffix) {
			continue
		}

		key := strings.TrimSuffix(name, migrateSuffix)
		rollback := key + rollbackSuffix
		if !names[rollback] {
			if err := l.skip(name, "it has no rollback counterpart"); err != nil {
				return nil, err
			}
			continue
		}

		up, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, errors.Wrapf(err, "could not read migration file %s", name)
		}

		down, err := os.ReadFile(filepath.Join(dir, rollback))
		if err != nil {
			return nil, errors.Wrapf(err, "could not read rollback file %s", rollback)
		}

		claimed[name] = true
		claimed[rollback] = true

		seq = append(seq, step.SQL{
			Name:       key,
			UpScript:   string(up),
			DownScript: string(down),
		})
	}

	for _, e := range entries {
		if e.IsDir() || claimed[e.Name()] {
			continue
		}

		if err := l.skip(e.Name(), "it is not part of a migrate/rollback pair"); err != nil {
			return nil, err
		}
	}

	return seq, nil
}

func (l *LocalFS) skip(name, reason string) error {
	if l.strict {
		return errors.Wrapf(ErrNonConformingFile, "%s: %s", name, reason)
	}

	l.lg.Debugf("skipping %s: %s", name, reason)
	return nil
}

// Create scaffolds the next step for a module: an empty migrate/rollback
// file pair prefixed with the next ordinal. Returns the new step key.
func (l *LocalFS) Create(module, name string) (string, error) {
	dir := filepath.Join(l.root, module)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "could not create module folder %s", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", errors.Wrapf(err, "could not list migration folder %s", dir)
	}

	next := 1
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), migrateSuffix) {
			next++
		}
	}

	key := fmt.Sprintf("%03d_%s", next, strings.ReplaceAll(strings.ToLower(name), " ", "_"))

	for _, filename := range []string{key + migrateSuffix, key + rollbackSuffix} {
		f, err := os.Create(filepath.Join(dir, filename))
		if err != nil {
			return "", errors.Wrapf(err, "could not create file %s", filename)
		}

		if err := f.Close(); err != nil {
			return "", errors.Wrapf(err, "could not close file %s", filename)
		}
	}

	return key, nil
}
