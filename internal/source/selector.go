package source

import (
	"context"

	"github.com/axkov/ladder/step"
	"github.com/pkg/errors"
)

var (
	ErrNonConformingFile = errors.New("file is not a migration step")
	ErrInvalidStep       = errors.New("step is missing a forward or backward action")
	ErrModuleUnknown     = errors.New("module has no registered migration steps")
)

// Selector produces a module's ordered steps. The position of a step in
// the returned sequence is its version.
type Selector interface {
	Load(ctx context.Context, module string) (step.Sequence, error)
}
