package output

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteDocumentRemovesLockFile(testingHandle *testing.T) {
	outputFilePath := filepath.Join(testingHandle.TempDir(), "repo_prompt.txt")

	if writeError := WriteDocument(outputFilePath, "document body"); writeError != nil {
		testingHandle.Fatalf("unexpected write error: %v", writeError)
	}

	lockFilePath := outputFilePath + lockFileSuffix
	if _, statError := os.Stat(lockFilePath); !os.IsNotExist(statError) {
		testingHandle.Fatalf("expected no lock file at %s after the write", lockFilePath)
	}
}

func TestLockFileName(testingHandle *testing.T) {
	if lockName := LockFileName(filepath.Join("some", "dir", "context.txt")); lockName != "context.txt.lock" {
		testingHandle.Fatalf("unexpected lock file name %q", lockName)
	}
}
