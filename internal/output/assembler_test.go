package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/temirov/repoprompt/internal/commands"
	"github.com/temirov/repoprompt/internal/config"
	"github.com/temirov/repoprompt/internal/utils"
)

// buildRepositoryFixture creates the scenario repository:
//
//	root/
//	  .git/config
//	  README.md
//	  logo.png
//	  sub/deep.txt
func buildRepositoryFixture(testingHandle *testing.T) string {
	testingHandle.Helper()
	rootDirectory := testingHandle.TempDir()

	for _, directoryPath := range []string{
		filepath.Join(rootDirectory, ".git"),
		filepath.Join(rootDirectory, "sub"),
	} {
		if makeDirectoryError := os.MkdirAll(directoryPath, 0o755); makeDirectoryError != nil {
			testingHandle.Fatalf("failed to create %s: %v", directoryPath, makeDirectoryError)
		}
	}

	files := map[string][]byte{
		filepath.Join(rootDirectory, ".git", "config"):  []byte("[core]"),
		filepath.Join(rootDirectory, "README.md"):       []byte("# Demo\nHello."),
		filepath.Join(rootDirectory, "logo.png"):        {0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A},
		filepath.Join(rootDirectory, "sub", "deep.txt"): []byte("deep content"),
	}
	for filePath, content := range files {
		if writeError := os.WriteFile(filePath, content, 0o644); writeError != nil {
			testingHandle.Fatalf("failed to write %s: %v", filePath, writeError)
		}
	}
	return rootDirectory
}

// newFixtureGenerator builds a Generator over the fixture with the provided
// settings, mirroring the wiring performed by the CLI.
func newFixtureGenerator(rootDirectory string, settings config.Settings) *Generator {
	return &Generator{
		RootPath: rootDirectory,
		Walker: &commands.TreeWalker{
			Policy: utils.IgnorePolicy{
				Patterns:          config.CombinedIgnorePatterns(settings, nil),
				IncludeHidden:     settings.IncludeHidden,
				SelfExclusionName: config.SelfExclusionDirectoryName,
			},
			MaxDepth: settings.MaxDepth,
		},
		Reader: commands.NewContentReader(settings.BinaryExtensions, settings.MaxFileSizeKB),
		Logger: zap.NewNop(),
	}
}

func TestGeneratePromptDocumentLayout(testingHandle *testing.T) {
	rootDirectory := buildRepositoryFixture(testingHandle)
	generator := newFixtureGenerator(rootDirectory, config.DefaultSettings())

	document := generator.GeneratePrompt("")

	for _, sectionHeader := range []string{
		"REPOSITORY CONTEXT",
		"DIRECTORY STRUCTURE",
		"FILE CONTENTS",
		"ADDITIONAL CONTEXT",
	} {
		if !strings.Contains(document, sectionHeader) {
			testingHandle.Fatalf("document is missing the %s section", sectionHeader)
		}
	}

	repositoryName := filepath.Base(rootDirectory)
	if !strings.Contains(document, "Repository: "+repositoryName) {
		testingHandle.Fatal("document is missing the repository name line")
	}
	if !strings.Contains(document, repositoryName+"/\n") {
		testingHandle.Fatal("document is missing the tree root line")
	}

	if !strings.Contains(document, "File: README.md") {
		testingHandle.Fatal("document is missing the README.md block")
	}
	if !strings.Contains(document, "# Demo\nHello.") {
		testingHandle.Fatal("document is missing the README.md content")
	}
	if !strings.Contains(document, "File: sub/deep.txt") {
		testingHandle.Fatal("document is missing the sub/deep.txt block")
	}
	if strings.Contains(document, ".git") {
		testingHandle.Fatal("hidden .git directory leaked into the document")
	}

	// logo.png is not matched by any default ignore pattern, so it appears
	// with the binary placeholder and counts toward the statistics.
	if !strings.Contains(document, "File: logo.png") {
		testingHandle.Fatal("document is missing the logo.png block")
	}
	if !strings.Contains(document, "[Binary file - content not included]") {
		testingHandle.Fatal("document is missing the binary placeholder for logo.png")
	}
	if !strings.Contains(document, "- Total files included: 3") {
		testingHandle.Fatal("statistics do not report three included files")
	}
	if !strings.Contains(document, "- Repository root: "+rootDirectory) {
		testingHandle.Fatal("statistics do not report the repository root")
	}
}

// TestGeneratePromptIgnoredBinary verifies that an ignore pattern covering
// the binary file removes it from both the tree and the statistics.
func TestGeneratePromptIgnoredBinary(testingHandle *testing.T) {
	rootDirectory := buildRepositoryFixture(testingHandle)
	settings := config.DefaultSettings()
	settings.IgnoreFiles = append(settings.IgnoreFiles, "*.png")
	generator := newFixtureGenerator(rootDirectory, settings)

	document := generator.GeneratePrompt("")

	if strings.Contains(document, "logo.png") {
		testingHandle.Fatal("ignored binary file leaked into the document")
	}
	if !strings.Contains(document, "- Total files included: 2") {
		testingHandle.Fatal("statistics do not report two included files")
	}
}

func TestGeneratePromptIsIdempotent(testingHandle *testing.T) {
	rootDirectory := buildRepositoryFixture(testingHandle)
	generator := newFixtureGenerator(rootDirectory, config.DefaultSettings())

	firstDocument := generator.GeneratePrompt("")
	secondDocument := generator.GeneratePrompt("")

	if firstDocument != secondDocument {
		testingHandle.Fatal("expected byte-identical documents across runs over an unchanged tree")
	}
}

// TestGeneratePromptRepeatedSavesStayIdentical verifies that saving into the
// repository root leaves nothing behind that a following run would serialize:
// the second document must be byte-identical and free of writer artifacts.
func TestGeneratePromptRepeatedSavesStayIdentical(testingHandle *testing.T) {
	rootDirectory := buildRepositoryFixture(testingHandle)
	generator := newFixtureGenerator(rootDirectory, config.DefaultSettings())
	outputFilePath := filepath.Join(rootDirectory, "repo_prompt.txt")

	firstDocument := generator.GeneratePrompt(outputFilePath)
	secondDocument := generator.GeneratePrompt(outputFilePath)

	if strings.Contains(secondDocument, ".lock") {
		testingHandle.Fatal("second document mentions the writer's lock file")
	}
	if firstDocument != secondDocument {
		testingHandle.Fatal("expected byte-identical documents across saving runs")
	}
}

func TestGeneratePromptPersistsDocument(testingHandle *testing.T) {
	rootDirectory := buildRepositoryFixture(testingHandle)
	generator := newFixtureGenerator(rootDirectory, config.DefaultSettings())
	outputFilePath := filepath.Join(testingHandle.TempDir(), "repo_prompt.txt")

	document := generator.GeneratePrompt(outputFilePath)

	persistedBytes, readError := os.ReadFile(outputFilePath)
	if readError != nil {
		testingHandle.Fatalf("failed to read persisted document: %v", readError)
	}
	if string(persistedBytes) != document {
		testingHandle.Fatal("persisted document differs from the returned document")
	}
}

// TestGeneratePromptWriteFailureStillReturnsDocument verifies that a failing
// write degrades to a warning while the in-memory document is still returned.
func TestGeneratePromptWriteFailureStillReturnsDocument(testingHandle *testing.T) {
	rootDirectory := buildRepositoryFixture(testingHandle)
	generator := newFixtureGenerator(rootDirectory, config.DefaultSettings())
	unwritablePath := filepath.Join(testingHandle.TempDir(), "missing", "nested", "repo_prompt.txt")

	document := generator.GeneratePrompt(unwritablePath)

	if !strings.Contains(document, "FILE CONTENTS") {
		testingHandle.Fatal("expected the assembled document despite the write failure")
	}
	if _, statError := os.Stat(unwritablePath); !os.IsNotExist(statError) {
		testingHandle.Fatal("expected no file at the unwritable path")
	}
}
