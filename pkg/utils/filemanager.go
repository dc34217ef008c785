// =============================================================================
// TR-181 Excelifier - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the converter:
//   - Directory management
//   - Atomic output writing (temp file + rename)
//
// ATOMICITY STRATEGY:
//   Output is written to a uniquely named temporary file in the target
//   directory and renamed into place only after the write and fsync
//   succeed. A failed write removes the temporary file, so the destination
//   either holds the previous content or the complete new content, never a
//   partial workbook.
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// EnsureDir creates the directory for the given file path if it does not
// exist. A bare file name (current directory) is a no-op.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	return nil
}

// WriteFileAtomic writes to path through a temporary file in the same
// directory, renaming into place on success. The write callback receives
// the temporary file's writer. An existing file at path is replaced
// silently.
func WriteFileAtomic(path string, write func(io.Writer) error) error {
	tmp := tempPath(path)

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	if err := write(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to flush temporary file: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to move output into place: %w", err)
	}

	return nil
}

// tempPath builds a unique sibling path for the temporary file. Using the
// same directory keeps the final rename on one filesystem.
func tempPath(path string) string {
	return fmt.Sprintf("%s.%s.tmp", path, uuid.NewString())
}
