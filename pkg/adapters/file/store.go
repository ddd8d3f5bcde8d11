package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/aretw0/sceneswap/pkg/domain"
)

// Store implements ports.SceneStore using the local filesystem.
// Relative paths resolve against the process working directory.
type Store struct {
	DirPerm  fs.FileMode
	FilePerm fs.FileMode
}

// New creates a new Store with 0755 directories and 0644 files.
func New() *Store {
	return &Store{DirPerm: 0755, FilePerm: 0644}
}

// EnsureDir opens dir and creates it, parents included, if it is missing.
func (s *Store) EnsureDir(ctx context.Context, dir string) (bool, error) {
	if dir == "" {
		dir = "."
	}
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("%s exists and is not a directory", dir)
		}
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("failed to open directory: %w", err)
	}
	if err := os.MkdirAll(dir, s.DirPerm); err != nil {
		return false, fmt.Errorf("failed to create directory: %w", err)
	}
	return true, nil
}

// Write stores data at path atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
// The destination directory must already exist.
func (s *Store) Write(ctx context.Context, path string, data []byte) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}
	dir := filepath.Dir(path)

	// 1. Create Temp File
	// we use the same directory to ensure we are on the same filesystem (required for atomic rename)
	tmpFile, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Remove the temp file unless it was renamed.
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	// 2. Write Data
	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	// 3. Fsync to ensure durability
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}

	// 4. Close File (cannot rename open file on Windows)
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, s.FilePerm); err != nil {
		return fmt.Errorf("failed to set file mode: %w", err)
	}

	// 5. Atomic Rename
	// On Windows, os.Rename fails if dest exists, so it is removed first.
	// Another writer may land in between; the last rename wins.
	if runtime.GOOS == "windows" {
		if _, err := os.Stat(path); err == nil {
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to remove existing scene file for overwrite: %w", err)
			}
		}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to scene file: %w", err)
	}
	return nil
}

// Read retrieves the scene file at path.
func (s *Store) Read(ctx context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrSceneNotFound
		}
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	return data, nil
}
