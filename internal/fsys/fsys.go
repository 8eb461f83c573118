// Package fsys abstracts the filesystem operations the store and config
// loader need, so tests can run against an in-memory implementation.
package fsys

import (
	"os"
	"path/filepath"
)

// FileSystem is the seam between file-resident state and the OS.
type FileSystem interface {
	UserHomeDir() (string, error)
	ReadFile(path string) ([]byte, error)
	WriteFileAtomic(path string, content []byte, perm os.FileMode) error
	EnsureDirs(path string) error
}

// OSFileSystem implements FileSystem using the local OS primitives.
type OSFileSystem struct{}

// NewOSFileSystem creates a new OSFileSystem.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

func (*OSFileSystem) UserHomeDir() (string, error) {
	return os.UserHomeDir()
}

func (*OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// EnsureDirs creates path and any missing parents. Idempotent.
func (*OSFileSystem) EnsureDirs(path string) error {
	return os.MkdirAll(path, 0o755)
}

// WriteFileAtomic writes content through a temp file in the target's
// directory and renames it into place, so readers only ever see the old
// bytes or the new bytes. On any failure the temp file is removed and the
// target left untouched.
func (*OSFileSystem) WriteFileAtomic(path string, content []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return &WriteError{Op: "create", Path: dir, Cause: err}
	}
	tmpPath := tmp.Name()

	replaced := false
	defer func() {
		if tmp != nil {
			_ = tmp.Close()
		}
		if !replaced {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return &WriteError{Op: "write", Path: tmpPath, Cause: err}
	}
	if err := tmp.Sync(); err != nil {
		return &WriteError{Op: "sync", Path: tmpPath, Cause: err}
	}
	if err := tmp.Close(); err != nil {
		tmp = nil
		return &WriteError{Op: "close", Path: tmpPath, Cause: err}
	}
	tmp = nil

	if err := os.Chmod(tmpPath, perm); err != nil {
		return &WriteError{Op: "chmod", Path: tmpPath, Cause: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return &WriteError{Op: "replace", Path: path, Cause: err}
	}
	replaced = true

	return nil
}
