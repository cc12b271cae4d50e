package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const (
	lockFileSuffix = ".lock"
	outputFileMode = 0o644
)

// LockFileName returns the base name of the lock file guarding writes to
// outputPath. The name participates in the ignore patterns so a lock left by
// an interrupted run never shows up in a later document.
func LockFileName(outputPath string) string {
	return filepath.Base(outputPath) + lockFileSuffix
}

// WriteDocument persists the document at outputPath as UTF-8 text. An
// exclusive file lock next to the output path serializes concurrent runs
// writing the same document; the lock file is removed once released so it
// never becomes part of the tree a following run serializes.
func WriteDocument(outputPath string, document string) error {
	documentLock := flock.New(outputPath + lockFileSuffix)
	if lockError := documentLock.Lock(); lockError != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", outputPath, lockError)
	}
	defer func() {
		if unlockError := documentLock.Unlock(); unlockError != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to release lock on %s: %v\n", outputPath, unlockError)
			return
		}
		if removeError := os.Remove(documentLock.Path()); removeError != nil && !os.IsNotExist(removeError) {
			fmt.Fprintf(os.Stderr, "Warning: failed to remove lock file %s: %v\n", documentLock.Path(), removeError)
		}
	}()

	if writeError := os.WriteFile(outputPath, []byte(document), outputFileMode); writeError != nil {
		return fmt.Errorf("writing document to %s: %w", outputPath, writeError)
	}
	return nil
}
