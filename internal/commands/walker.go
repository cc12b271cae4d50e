// Package commands implements the traversal engine: directory tree rendering,
// file collection, and file content reading.
package commands

import (
	"os"
	"path/filepath"

	"github.com/temirov/repoprompt/internal/utils"
)

// TreeWalker performs depth-limited traversals of a directory tree. The tree
// renderer and the file collector both list children through
// includedChildren so their views of the tree cannot diverge.
type TreeWalker struct {
	Policy   utils.IgnorePolicy
	MaxDepth int
}

// includedChildren lists the immediate children of directoryPath with ignored
// entries removed. os.ReadDir returns entries sorted by name, which fixes the
// document ordering. Directory read errors yield an empty listing so one
// unreadable subtree cannot abort a traversal.
func (walker *TreeWalker) includedChildren(directoryPath string, ancestorSegments []string) []os.DirEntry {
	directoryEntries, readDirectoryError := os.ReadDir(directoryPath)
	if readDirectoryError != nil {
		return nil
	}

	includedEntries := make([]os.DirEntry, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		entrySegments := childSegments(ancestorSegments, directoryEntry.Name())
		if walker.Policy.ShouldIgnore(directoryEntry.Name(), entrySegments) {
			continue
		}
		includedEntries = append(includedEntries, directoryEntry)
	}
	return includedEntries
}

// entryIsDirectory reports whether the entry names a directory, following
// symlinks so a link to a directory is descended into instead of being read
// as a file. A broken link counts as a file and surfaces through the reader's
// error placeholder.
func entryIsDirectory(directoryPath string, directoryEntry os.DirEntry) bool {
	if directoryEntry.IsDir() {
		return true
	}
	if directoryEntry.Type()&os.ModeSymlink == 0 {
		return false
	}
	targetInformation, statError := os.Stat(filepath.Join(directoryPath, directoryEntry.Name()))
	return statError == nil && targetInformation.IsDir()
}

// childSegments extends the ancestor segment sequence with the entry's own
// name, always on a fresh backing array.
func childSegments(ancestorSegments []string, entryName string) []string {
	extended := make([]string, 0, len(ancestorSegments)+1)
	extended = append(extended, ancestorSegments...)
	extended = append(extended, entryName)
	return extended
}
