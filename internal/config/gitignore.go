package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/repoprompt/internal/utils"
)

const (
	// GitIgnoreFileName is the name of the Git ignore file read at the tree root.
	GitIgnoreFileName = ".gitignore"

	commentLinePrefix = "#"
)

// LoadGitignorePatterns reads the .gitignore file at the root of the tree and
// returns every non-blank, non-comment line as a pattern. A missing file
// yields no patterns and no error.
func LoadGitignorePatterns(rootDirectoryPath string) ([]string, error) {
	gitIgnoreFilePath := filepath.Join(rootDirectoryPath, GitIgnoreFileName)
	fileHandle, openFileError := os.Open(gitIgnoreFilePath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return nil, nil
		}
		return nil, openFileError
	}
	defer func() {
		closeError := fileHandle.Close()
		if closeError != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close %s: %v\n", gitIgnoreFilePath, closeError)
		}
	}()

	var patterns []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentLinePrefix) {
			continue
		}
		patterns = append(patterns, trimmedLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, scanError
	}
	return patterns, nil
}

// CombinedIgnorePatterns aggregates the configured directory and file
// patterns with the .gitignore patterns into one deduplicated pattern set.
func CombinedIgnorePatterns(settings Settings, gitignorePatterns []string) []string {
	combinedPatterns := make([]string, 0, len(settings.IgnoreDirs)+len(settings.IgnoreFiles)+len(gitignorePatterns))
	combinedPatterns = append(combinedPatterns, settings.IgnoreDirs...)
	combinedPatterns = append(combinedPatterns, settings.IgnoreFiles...)
	combinedPatterns = append(combinedPatterns, gitignorePatterns...)
	return utils.DeduplicatePatterns(combinedPatterns)
}
