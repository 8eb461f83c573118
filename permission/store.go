package permission

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/hakkenlabs/toolgate/internal/fsys"
)

const (
	// StoreDir is the directory name under the user's home.
	StoreDir = ".toolgate"
	// StoreFile is the permission file name.
	StoreFile = "permissions.json"

	storeFilePerm = 0o600
)

// Store is the durable mapping from tool identity to permission decision,
// backed by a single JSON file. The store exclusively owns the file: it
// loads it once at construction and rewrites the whole mapping on every
// mutation, using an atomic replace so a crash never corrupts it.
type Store struct {
	path string
	fs   fsys.FileSystem
	log  *slog.Logger

	mu      sync.RWMutex
	entries map[string]Decision
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithFileSystem replaces the OS filesystem, for tests.
func WithFileSystem(fs fsys.FileSystem) StoreOption {
	return func(s *Store) { s.fs = fs }
}

// WithStoreLogger sets the store's logger.
func WithStoreLogger(log *slog.Logger) StoreOption {
	return func(s *Store) { s.log = log }
}

// NewStore constructs the store and loads existing decisions from path.
// An empty path resolves to ~/.toolgate/permissions.json. A missing file
// is a fresh install, not an error; an unparsable file fails with
// *CorruptStoreError so user-curated decisions are never silently reset.
func NewStore(path string, opts ...StoreOption) (*Store, error) {
	s := &Store{
		fs:      fsys.NewOSFileSystem(),
		log:     slog.Default(),
		entries: make(map[string]Decision),
	}
	for _, opt := range opts {
		opt(s)
	}

	if path == "" {
		home, err := s.fs.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory for permission store: %w", err)
		}
		path = filepath.Join(home, StoreDir, StoreFile)
	}
	s.path = path

	if err := s.fs.EnsureDirs(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("failed to create permission store directory: %w", err)
	}

	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) load() error {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil // fresh install, empty mapping
		}
		return fmt.Errorf("failed to read permission store %s: %w", s.path, err)
	}

	raw := make(map[string]string)
	if err := json.Unmarshal(data, &raw); err != nil {
		return &CorruptStoreError{Path: s.path, Cause: err}
	}
	for name, value := range raw {
		d := Decision(value)
		if d != AlwaysAllow && d != AlwaysDeny {
			return &CorruptStoreError{
				Path:  s.path,
				Cause: fmt.Errorf("unknown decision %q for tool %q", value, name),
			}
		}
		s.entries[name] = d
	}
	return nil
}

// Lookup returns the stored decision for a tool identity, or Unset if none
// exists. It never fails for an unknown tool.
func (s *Store) Lookup(name string) Decision {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[name]
}

// Set records a decision and flushes the whole mapping to disk. Setting
// Unset removes the entry; absence on disk is the Unset representation.
// On a write failure the in-memory mapping is still updated and a
// *PersistenceError is returned so the caller can warn the user that the
// preference will not survive a restart.
func (s *Store) Set(name string, d Decision) error {
	if name == "" {
		return fmt.Errorf("tool identity must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch d {
	case AlwaysAllow, AlwaysDeny:
		s.entries[name] = d
	case Unset:
		delete(s.entries, name)
	default:
		return fmt.Errorf("invalid permission decision %q for tool %q", d, name)
	}

	return s.flushLocked()
}

// Len returns the number of stored decisions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// flushLocked serializes the full mapping and replaces the backing file
// atomically. Callers must hold s.mu.
func (s *Store) flushLocked() error {
	raw := make(map[string]string, len(s.entries))
	for name, d := range s.entries {
		raw[name] = string(d)
	}

	// encoding/json sorts map keys, so the file is byte-stable for a
	// given mapping and repeated writes are idempotent.
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return &PersistenceError{Path: s.path, Cause: err}
	}
	data = append(data, '\n')

	if err := s.fs.WriteFileAtomic(s.path, data, storeFilePerm); err != nil {
		s.log.Warn("permission decision not durably saved", "path", s.path, "error", err)
		return &PersistenceError{Path: s.path, Cause: err}
	}
	return nil
}
