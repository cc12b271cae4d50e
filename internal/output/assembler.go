// Package output assembles and persists the generated repository document.
package output

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/repoprompt/internal/commands"
	"github.com/temirov/repoprompt/internal/tokenizer"
	"github.com/temirov/repoprompt/internal/types"
	"github.com/temirov/repoprompt/internal/utils"
)

const (
	bannerWidth = 80

	repositoryContextHeader  = "REPOSITORY CONTEXT"
	directoryStructureHeader = "DIRECTORY STRUCTURE"
	fileContentsHeader       = "FILE CONTENTS"
	additionalContextHeader  = "ADDITIONAL CONTEXT"

	repositoryLineFormat = "Repository: %s"
	rootPathLineFormat   = "Path: %s"
	fileLineFormat       = "File: %s"

	statisticsHeader     = "Statistics:"
	fileCountLineFormat  = "- Total files included: %d"
	rootLineFormat       = "- Repository root: %s"
	totalSizeLineFormat  = "- Total content size: %s"
	tokenCountLineFormat = "- Estimated tokens: %d (%s)"

	savedMessageFormat      = "Repository prompt saved to: %s"
	warnSaveFailedFormat    = "Error saving prompt to file: %v"
	warnTokenCountingFormat = "Could not estimate tokens for %s: %v"
)

// additionalContextNote is the fixed explanatory trailer of every document.
var additionalContextNote = []string{
	"This repository structure and content has been provided to give you ",
	"comprehensive context about the project. Please use this information ",
	"to better understand the codebase and provide more accurate assistance.",
}

var (
	sectionBanner = strings.Repeat("=", bannerWidth)
	fileSeparator = strings.Repeat("-", bannerWidth)
)

// Generator assembles the complete repository document from the traversal
// engine's results.
type Generator struct {
	RootPath     string
	Walker       *commands.TreeWalker
	Reader       *commands.ContentReader
	TokenCounter tokenizer.Counter
	TokenModel   string
	Logger       *zap.Logger
}

// GeneratePrompt assembles the document and, when outputPath is non-empty,
// persists it there. A failed write is logged as a warning; the assembled
// document is returned either way.
func (generator *Generator) GeneratePrompt(outputPath string) string {
	repositoryName := filepath.Base(generator.RootPath)

	var documentLines []string
	appendSection := func(sectionHeader string) {
		documentLines = append(documentLines, sectionBanner, sectionHeader, sectionBanner, "")
	}

	appendSection(repositoryContextHeader)
	documentLines = append(documentLines,
		fmt.Sprintf(repositoryLineFormat, repositoryName),
		fmt.Sprintf(rootPathLineFormat, generator.RootPath),
		"",
	)

	appendSection(directoryStructureHeader)
	documentLines = append(documentLines, repositoryName+"/")
	documentLines = append(documentLines, generator.Walker.RenderTree(generator.RootPath, "", 0)...)
	documentLines = append(documentLines, "")

	appendSection(fileContentsHeader)
	collectedFiles := generator.Walker.CollectFiles(generator.RootPath)
	statistics := types.DocumentStatistics{FileCount: len(collectedFiles), Model: generator.TokenModel}
	for _, collectedFile := range collectedFiles {
		fileContent := generator.Reader.ReadFileContent(collectedFile.AbsolutePath)
		statistics.TotalBytes += int64(len(fileContent))
		statistics.Tokens += generator.countTokens(collectedFile.RelativePath, fileContent)
		documentLines = append(documentLines,
			fileSeparator,
			fmt.Sprintf(fileLineFormat, collectedFile.RelativePath),
			fileSeparator,
			fileContent,
			"",
		)
	}

	appendSection(additionalContextHeader)
	documentLines = append(documentLines, additionalContextNote...)
	documentLines = append(documentLines, "")
	documentLines = append(documentLines, statisticsLines(statistics, generator.RootPath, generator.TokenCounter != nil)...)
	documentLines = append(documentLines, "")

	document := strings.Join(documentLines, "\n")

	if outputPath != "" {
		if writeError := WriteDocument(outputPath, document); writeError != nil {
			generator.Logger.Warn(fmt.Sprintf(warnSaveFailedFormat, writeError))
		} else {
			generator.Logger.Info(fmt.Sprintf(savedMessageFormat, outputPath))
		}
	}

	return document
}

// countTokens estimates the token footprint of one file's content block.
// Counting problems degrade to a warning and a zero contribution.
func (generator *Generator) countTokens(relativePath string, content string) int {
	if generator.TokenCounter == nil {
		return 0
	}
	tokenCount, countError := generator.TokenCounter.CountString(content)
	if countError != nil {
		generator.Logger.Warn(fmt.Sprintf(warnTokenCountingFormat, relativePath, countError))
		return 0
	}
	return tokenCount
}

// statisticsLines renders the trailing statistics of the document.
func statisticsLines(statistics types.DocumentStatistics, rootPath string, tokensCounted bool) []string {
	lines := []string{
		statisticsHeader,
		fmt.Sprintf(fileCountLineFormat, statistics.FileCount),
		fmt.Sprintf(rootLineFormat, rootPath),
		fmt.Sprintf(totalSizeLineFormat, utils.FormatFileSize(statistics.TotalBytes)),
	}
	if tokensCounted {
		lines = append(lines, fmt.Sprintf(tokenCountLineFormat, statistics.Tokens, statistics.Model))
	}
	return lines
}
