package session

// Typed sentinels for the two caller-visible conditions.
//
// ErrNoStartTime is the "nothing to calculate" signal: the start time
// input was empty. It is not a fault; the caller hides the result
// presentation and moves on.
//
// ErrNoCalculation means Report or Save was invoked before any
// successful Calculate. That one must be surfaced, never swallowed.
var (
	ErrNoStartTime   = errf("start time not set")
	ErrNoCalculation = errf("no current calculation")
)

type staticErr string

func (e staticErr) Error() string { return string(e) }
func errf(s string) error         { return staticErr(s) }
