// Package types defines cross-package data structures used by the repoprompt CLI.
package types

// CollectedFile pairs an absolute file path with its path relative to the
// repository root as rendered in the generated document.
type CollectedFile struct {
	AbsolutePath string
	RelativePath string
}

// DocumentStatistics captures the aggregate information reported in the
// statistics section of the generated document.
type DocumentStatistics struct {
	FileCount  int
	TotalBytes int64
	Tokens     int
	Model      string
}
