package fsys

import "fmt"

// WriteError reports the stage of an atomic write that failed. Op is one
// of "create", "write", "sync", "close", "chmod" or "replace"; Path is the
// temp file for the intermediate stages and the target for "replace".
type WriteError struct {
	Op    string
	Path  string
	Cause error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("atomic write: %s %s: %v", e.Op, e.Path, e.Cause)
}

func (e *WriteError) Unwrap() error { return e.Cause }
