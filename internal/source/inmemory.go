package source

import (
	"context"

	"github.com/axkov/ladder/step"
	"github.com/pkg/errors"
)

// InMemory holds code-defined step sequences keyed by module.
type InMemory struct {
	modules map[string]step.Sequence
}

func NewInMemory() *InMemory {
	return &InMemory{modules: make(map[string]step.Sequence)}
}

// Register appends steps to a module's sequence. Steps are validated
// here so malformed ones never reach execution.
func (m *InMemory) Register(module string, steps ...step.Step) error {
	for _, s := range steps {
		if s == nil {
			return errors.Wrapf(ErrInvalidStep, "module %s", module)
		}

		if f, ok := s.(step.Func); ok && !f.Valid() {
			return errors.Wrapf(ErrInvalidStep, "module %s, step %s", module, f.Key())
		}
	}

	m.modules[module] = append(m.modules[module], steps...)
	return nil
}

func (m *InMemory) Load(_ context.Context, module string) (step.Sequence, error) {
	seq, ok := m.modules[module]
	if !ok {
		return nil, errors.Wrapf(ErrModuleUnknown, "%s", module)
	}

	return seq, nil
}
