package ladder

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrStoreNotInitialized = errors.New("version store has not been initialized")
	ErrEmptyModule         = errors.New("module name must not be empty")
	ErrInvalidVersion      = errors.New("invalid target version")
	ErrRollbackToLatest    = errors.New("cannot rollback to latest")
	ErrInvalidDirection    = errors.New("target version contradicts the requested direction")
	ErrConflictingSources  = errors.New("cannot combine a local folder with registered steps")
	ErrOutOfSync           = errors.New("stored version exceeds the discovered migration steps")
)

// StepError reports a forward or backward action that failed. Steps
// already applied in the same run stay applied; the stored version is
// left at its pre-run value.
type StepError struct {
	Module  string
	Version int
	Key     string
	Op      string
	Err     error
}

func (e *StepError) Error() string {
	return fmt.Sprintf(
		"%s of module %s halted at step %d (%s): %v",
		e.Op, e.Module, e.Version, e.Key, e.Err,
	)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// PersistError reports a version bookkeeping write that failed after
// every step action had already succeeded. The tracking table is stale
// relative to the applied state at this point.
type PersistError struct {
	Module  string
	Version int
	Err     error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf(
		"module %s: steps applied but version %d could not be persisted: %v",
		e.Module, e.Version, e.Err,
	)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}
