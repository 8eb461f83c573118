// Package permission implements the durable per-tool permission store and
// the gateway that decides whether a tool invocation may proceed.
package permission

// Decision is a stored per-tool preference. The string values are the
// on-disk literals; Unset is represented by absence and is never written.
type Decision string

const (
	// Unset means no stored preference: the gateway must ask.
	Unset Decision = ""
	// AlwaysAllow permits the tool without prompting.
	AlwaysAllow Decision = "always"
	// AlwaysDeny blocks the tool without prompting.
	AlwaysDeny Decision = "never"
)

// Verdict is the terminal outcome of an authorization request.
type Verdict string

const (
	Allowed Verdict = "allowed"
	Denied  Verdict = "denied"
)

// Choice is the outcome of the external decision callback (the UI).
type Choice string

const (
	AllowOnce   Choice = "allow_once"
	AllowAlways Choice = "allow_always"
	DenyOnce    Choice = "deny_once"
	DenyAlways  Choice = "deny_always"
)

// Allows reports whether the choice grants this invocation.
func (c Choice) Allows() bool {
	return c == AllowOnce || c == AllowAlways
}
