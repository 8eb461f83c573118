// Package testutil provides shared test doubles.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// MemFS implements fsys.FileSystem with in-memory storage. Errors can be
// injected per operation via OpErrors.
type MemFS struct {
	Mu         sync.RWMutex
	Files      map[string][]byte
	Dirs       map[string]bool
	OpErrors   map[string]error // operation name -> error to return
	HomeDir    string
	HomeDirErr error
}

// NewMemFS creates an empty in-memory filesystem with a default home dir.
func NewMemFS() *MemFS {
	return &MemFS{
		Files:    make(map[string][]byte),
		Dirs:     make(map[string]bool),
		OpErrors: make(map[string]error),
		HomeDir:  "/home/user",
	}
}

// SetOperationError makes the named operation fail with err.
func (f *MemFS) SetOperationError(operation string, err error) {
	f.Mu.Lock()
	defer f.Mu.Unlock()
	f.OpErrors[operation] = err
}

func (f *MemFS) UserHomeDir() (string, error) {
	return f.HomeDir, f.HomeDirErr
}

func (f *MemFS) ReadFile(path string) ([]byte, error) {
	f.Mu.RLock()
	defer f.Mu.RUnlock()

	if err, ok := f.OpErrors["ReadFile"]; ok {
		return nil, err
	}
	content, ok := f.Files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return content, nil
}

func (f *MemFS) WriteFileAtomic(path string, content []byte, perm os.FileMode) error {
	f.Mu.Lock()
	defer f.Mu.Unlock()

	if err, ok := f.OpErrors["WriteFileAtomic"]; ok {
		return err
	}
	// Copy so later caller mutations don't leak into the "file"
	buf := make([]byte, len(content))
	copy(buf, content)
	f.Files[path] = buf
	return nil
}

func (f *MemFS) EnsureDirs(path string) error {
	f.Mu.Lock()
	defer f.Mu.Unlock()

	if err, ok := f.OpErrors["EnsureDirs"]; ok {
		return err
	}
	cleaned := filepath.Clean(path)
	current := ""
	for _, part := range strings.Split(cleaned, string(filepath.Separator)) {
		if part == "" {
			current = string(filepath.Separator)
			continue
		}
		current = filepath.Join(current, part)
		f.Dirs[current] = true
	}
	return nil
}
