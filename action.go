package ladder

import "github.com/pkg/errors"

// ActionConfigurator customizes a single Migrate or Rollback call.
type ActionConfigurator func(*action)

type action struct {
	version  int
	explicit bool
	latest   bool
}

// WithVersion requests an explicit target version.
func WithVersion(version int) ActionConfigurator {
	return func(a *action) {
		a.version = version
		a.explicit = true
	}
}

// ToLatest requests the highest discovered version. Valid for Migrate
// only.
func ToLatest() ActionConfigurator {
	return func(a *action) {
		a.latest = true
	}
}

// validate applies the fail-fast preconditions, before any loading or
// store access.
func (a *action) validate(dir direction) error {
	if a.explicit && a.latest {
		return errors.Wrap(ErrInvalidVersion, "both an explicit version and latest were requested")
	}

	if a.explicit && a.version < 0 {
		return errors.Wrapf(ErrInvalidVersion, "%d", a.version)
	}

	if a.latest && dir == backward {
		return ErrRollbackToLatest
	}

	return nil
}
