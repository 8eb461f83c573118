package permission

import "fmt"

// CorruptStoreError reports that the permission file exists but cannot be
// parsed. It is fatal to store construction: user-curated trust decisions
// are never silently reset.
type CorruptStoreError struct {
	Path  string
	Cause error
}

func (e *CorruptStoreError) Error() string {
	return fmt.Sprintf("permission store %s is corrupt: %v (fix or remove the file to continue)", e.Path, e.Cause)
}
func (e *CorruptStoreError) Unwrap() error { return e.Cause }

// PersistenceError reports that a decision could not be durably saved.
// The in-memory state is still updated, so the current session behaves
// correctly, but the preference will not survive a restart.
type PersistenceError struct {
	Path  string
	Cause error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist permission decision to %s: %v", e.Path, e.Cause)
}
func (e *PersistenceError) Unwrap() error { return e.Cause }
