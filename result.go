package ladder

// No-op reasons reported in Result.Reason.
const (
	ReasonAlreadyAtLatest = "already at latest"
	ReasonNotYetMigrated  = "not yet migrated"
	ReasonAlreadyAtTarget = "already at target version"
)

// Result is the outcome of a successful Migrate or Rollback call,
// including the no-op case. Failures are returned as errors instead.
type Result struct {
	Module string

	// Version is the module's version after the run.
	Version int

	// Applied lists the step versions that ran, in execution order:
	// ascending for migrate, descending for rollback. Empty on no-op.
	Applied []int

	NoOp   bool
	Reason string
}
