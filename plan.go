package ladder

import "github.com/pkg/errors"

const (
	OpMigrate  = "migrate"
	OpRollback = "rollback"
)

type direction int

const (
	forward direction = iota
	backward
)

func (d direction) op() string {
	if d == forward {
		return OpMigrate
	}

	return OpRollback
}

func (d direction) past() string {
	if d == forward {
		return "migrated"
	}

	return "rolled back"
}

// plan is a resolved run: either a target version to reach or a no-op
// reason.
type plan struct {
	target int
	reason string
}

// resolve computes the target version and applies the guard rails, in
// order, first match wins. current must be 0 when found is false; latest
// is the length of the module's sequence. Preconditions are assumed to
// have been validated already.
func resolve(dir direction, act *action, latest, current int, found bool) (plan, error) {
	var target int
	switch {
	case act.latest:
		target = latest
	case act.explicit:
		target = act.version
	case dir == forward:
		if !found {
			target = 1
		} else {
			target = current + 1
		}
	default:
		// implicit rollback; current == 0 is caught by a guard below
		target = current - 1
	}

	switch {
	case dir == forward && target < current:
		return plan{}, errors.Wrapf(ErrInvalidDirection,
			"target %d is below current version %d, use rollback instead", target, current)

	case dir == backward && target > current:
		return plan{}, errors.Wrapf(ErrInvalidDirection,
			"target %d is above current version %d, use migrate instead", target, current)

	case target > latest || (dir == forward && current == latest):
		return plan{reason: ReasonAlreadyAtLatest}, nil

	case dir == backward && current == 0:
		return plan{reason: ReasonNotYetMigrated}, nil

	case target == current:
		return plan{reason: ReasonAlreadyAtTarget}, nil
	}

	return plan{target: target}, nil
}
