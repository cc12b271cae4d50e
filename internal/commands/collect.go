package commands

import (
	"path/filepath"

	"github.com/temirov/repoprompt/internal/types"
	"github.com/temirov/repoprompt/internal/utils"
)

// CollectFiles walks the tree below rootDirectoryPath and returns every
// included file in depth-first order, each directory's entries sorted
// lexicographically. The walk honors the same ignore policy and depth limit
// as tree rendering, so the collected set always equals the file leaves of
// the rendered tree.
func (walker *TreeWalker) CollectFiles(rootDirectoryPath string) []types.CollectedFile {
	var collectedFiles []types.CollectedFile
	walker.collectFiles(rootDirectoryPath, rootDirectoryPath, nil, 0, &collectedFiles)
	return collectedFiles
}

func (walker *TreeWalker) collectFiles(
	currentDirectoryPath string,
	rootDirectoryPath string,
	ancestorSegments []string,
	depth int,
	collectedFiles *[]types.CollectedFile,
) {
	if depth >= walker.MaxDepth {
		return
	}

	for _, directoryEntry := range walker.includedChildren(currentDirectoryPath, ancestorSegments) {
		entryPath := filepath.Join(currentDirectoryPath, directoryEntry.Name())
		if entryIsDirectory(currentDirectoryPath, directoryEntry) {
			walker.collectFiles(
				entryPath,
				rootDirectoryPath,
				childSegments(ancestorSegments, directoryEntry.Name()),
				depth+1,
				collectedFiles,
			)
			continue
		}
		*collectedFiles = append(*collectedFiles, types.CollectedFile{
			AbsolutePath: entryPath,
			RelativePath: utils.RelativePathOrSelf(entryPath, rootDirectoryPath),
		})
	}
}
