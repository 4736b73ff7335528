package bridge

import (
	"fmt"
	"os"
	"path/filepath"
)

// OSFileSystem reads and writes files on the local disk.
//
// Writes are atomic: data goes to a temporary file in the destination
// directory which is synced and renamed over the target, so a failed save
// never leaves a half-written file behind.
type OSFileSystem struct {
	// Perm is the mode of written files. Zero keeps the mode of an
	// existing target and uses 0644 for new files.
	Perm os.FileMode
}

// ReadFile reads the whole file at path.
func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return os.ReadFile(path)
}

// WriteFile replaces the file at path with data.
func (fs OSFileSystem) WriteFile(path string, data []byte) error {
	perm := fs.Perm
	if perm == 0 {
		perm = 0o644
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			perm = info.Mode().Perm()
		}
	}

	file, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	temporaryPath := file.Name()

	// Write, sync, close, in that order. If any step fails, remove the
	// temporary file and report the first error.
	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("writing temporary file: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("syncing temporary file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("closing temporary file: %w", err)
	}
	if err := os.Chmod(temporaryPath, perm); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("setting file mode: %w", err)
	}

	if err := os.Rename(temporaryPath, path); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("renaming file into place: %w", err)
	}
	return nil
}
