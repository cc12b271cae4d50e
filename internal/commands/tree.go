package commands

import (
	"path/filepath"
)

const (
	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "
)

// RenderTree renders the directory tree below directoryPath as prefixed
// ASCII-art lines. Each line carries the accumulated prefix, a branch
// connector, and the entry name; subdirectory lines follow their parent
// immediately. Rendering stops silently once depth reaches the walker's
// limit.
func (walker *TreeWalker) RenderTree(directoryPath string, linePrefix string, depth int) []string {
	return walker.renderTree(directoryPath, nil, linePrefix, depth)
}

func (walker *TreeWalker) renderTree(directoryPath string, ancestorSegments []string, linePrefix string, depth int) []string {
	if depth >= walker.MaxDepth {
		return nil
	}

	var treeLines []string
	includedEntries := walker.includedChildren(directoryPath, ancestorSegments)
	for entryIndex, directoryEntry := range includedEntries {
		isLastEntry := entryIndex == len(includedEntries)-1
		connector := treeBranchConnector
		childPadding := treeBranchPadding
		if isLastEntry {
			connector = treeLastConnector
			childPadding = treeLastPadding
		}
		treeLines = append(treeLines, linePrefix+connector+directoryEntry.Name())

		if entryIsDirectory(directoryPath, directoryEntry) {
			subdirectoryLines := walker.renderTree(
				filepath.Join(directoryPath, directoryEntry.Name()),
				childSegments(ancestorSegments, directoryEntry.Name()),
				linePrefix+childPadding,
				depth+1,
			)
			treeLines = append(treeLines, subdirectoryLines...)
		}
	}
	return treeLines
}
