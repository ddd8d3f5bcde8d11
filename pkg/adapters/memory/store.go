package memory

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/aretw0/sceneswap/pkg/domain"
)

// Store implements ports.SceneStore in memory.
// Safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	dirs   map[string]struct{}
	files  map[string][]byte
	denied []string
}

// Option defines a functional option for configuring the Store.
type Option func(*Store)

// WithDeniedDirs makes EnsureDir fail for the given directories and
// everything below them, as a read-only filesystem would.
func WithDeniedDirs(dirs ...string) Option {
	return func(s *Store) {
		for _, d := range dirs {
			s.denied = append(s.denied, filepath.Clean(d))
		}
	}
}

// WithDirs marks directories as already existing.
func WithDirs(dirs ...string) Option {
	return func(s *Store) {
		for _, d := range dirs {
			s.addDir(filepath.Clean(d))
		}
	}
}

// NewStore creates a new in-memory store. Only "." and "/" exist initially.
func NewStore(opts ...Option) *Store {
	s := &Store{
		dirs:  map[string]struct{}{".": {}, string(filepath.Separator): {}},
		files: make(map[string][]byte),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EnsureDir records dir and its parents.
func (s *Store) EnsureDir(ctx context.Context, dir string) (bool, error) {
	dir = filepath.Clean(dir)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.dirs[dir]; ok {
		return false, nil
	}
	for _, d := range s.denied {
		if dir == d || strings.HasPrefix(dir, d+string(filepath.Separator)) {
			return false, &fs.PathError{Op: "mkdir", Path: dir, Err: fs.ErrPermission}
		}
	}
	s.addDir(dir)
	return true, nil
}

func (s *Store) addDir(dir string) {
	for d := dir; ; d = filepath.Dir(d) {
		s.dirs[d] = struct{}{}
		if parent := filepath.Dir(d); parent == d {
			return
		}
	}
}

// Write stores a copy of data. The parent directory must exist.
func (s *Store) Write(ctx context.Context, path string, data []byte) error {
	path = filepath.Clean(path)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.dirs[filepath.Dir(path)]; !ok {
		return &fs.PathError{Op: "write", Path: path, Err: fs.ErrNotExist}
	}
	if _, isDir := s.dirs[path]; isDir {
		return fmt.Errorf("%s is a directory", path)
	}
	s.files[path] = slices.Clone(data)
	return nil
}

// Read returns a copy of the data stored at path.
func (s *Store) Read(ctx context.Context, path string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.files[filepath.Clean(path)]
	if !ok {
		return nil, domain.ErrSceneNotFound
	}
	return slices.Clone(data), nil
}

// Files returns the paths written so far, sorted.
func (s *Store) Files() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.files))
	for p := range s.files {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}

// HasDir reports whether dir exists in the store.
func (s *Store) HasDir(dir string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.dirs[filepath.Clean(dir)]
	return ok
}
