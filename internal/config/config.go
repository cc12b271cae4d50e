// Package config resolves the effective run configuration from built-in
// defaults, an optional override file, and the repository's .gitignore.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	// SelfExclusionDirectoryName is the tool's own output directory, excluded
	// from every traversal regardless of configuration.
	SelfExclusionDirectoryName = "repo-prompt"
	// DefaultOutputFileName is the file the generated document is written to
	// when no explicit output path is given.
	DefaultOutputFileName = "repo_prompt.txt"

	warnConfigLoadFormat = "Could not load config from %s: %v"
)

// Settings is the effective configuration for one run. It is resolved once at
// startup and read-only afterward.
type Settings struct {
	IgnoreDirs       []string
	IgnoreFiles      []string
	BinaryExtensions []string
	MaxFileSizeKB    int
	IncludeHidden    bool
	MaxDepth         int
}

// Override mirrors Settings with every field optional. A key present in the
// override file replaces the corresponding default wholesale; list-valued
// keys are never unioned with the defaults. Scalar fields use pointers so an
// explicit zero value is distinguishable from an absent key.
type Override struct {
	IgnoreDirs       []string `mapstructure:"ignore_dirs"`
	IgnoreFiles      []string `mapstructure:"ignore_files"`
	BinaryExtensions []string `mapstructure:"binary_extensions"`
	MaxFileSizeKB    *int     `mapstructure:"max_file_size_kb"`
	IncludeHidden    *bool    `mapstructure:"include_hidden"`
	MaxDepth         *int     `mapstructure:"max_depth"`
}

// DefaultSettings returns the built-in configuration.
func DefaultSettings() Settings {
	return Settings{
		IgnoreDirs: []string{
			".git", ".svn", ".hg", "__pycache__", "node_modules",
			".idea", ".vscode", "venv", "env", ".env", "dist",
			"build", "target", ".pytest_cache", ".mypy_cache",
			SelfExclusionDirectoryName,
		},
		IgnoreFiles: []string{
			".DS_Store", "Thumbs.db", "*.pyc", "*.pyo", "*.pyd",
			"*.so", "*.dll", "*.dylib", "*.egg-info", "*.egg",
			DefaultOutputFileName,
		},
		BinaryExtensions: []string{
			".jpg", ".jpeg", ".png", ".gif", ".bmp", ".ico", ".svg",
			".pdf", ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx",
			".zip", ".tar", ".gz", ".rar", ".7z", ".bin", ".exe",
			".dll", ".so", ".dylib", ".db", ".sqlite", ".pickle", ".pkl",
		},
		MaxFileSizeKB: 500,
		IncludeHidden: false,
		MaxDepth:      10,
	}
}

// Merge overlays the override onto the receiver returning the combined settings.
func (settings Settings) Merge(override Override) Settings {
	result := settings
	if override.IgnoreDirs != nil {
		result.IgnoreDirs = append([]string{}, override.IgnoreDirs...)
	}
	if override.IgnoreFiles != nil {
		result.IgnoreFiles = append([]string{}, override.IgnoreFiles...)
	}
	if override.BinaryExtensions != nil {
		result.BinaryExtensions = append([]string{}, override.BinaryExtensions...)
	}
	if override.MaxFileSizeKB != nil {
		result.MaxFileSizeKB = *override.MaxFileSizeKB
	}
	if override.IncludeHidden != nil {
		result.IncludeHidden = *override.IncludeHidden
	}
	if override.MaxDepth != nil {
		result.MaxDepth = *override.MaxDepth
	}
	return result
}

// LoadSettings resolves the effective configuration. A missing override file
// keeps the defaults silently; an unreadable or malformed one logs a warning
// and keeps the defaults. Configuration problems never fail the run.
func LoadSettings(overrideFilePath string, logger *zap.Logger) Settings {
	defaults := DefaultSettings()
	if overrideFilePath == "" {
		return defaults
	}
	if _, statError := os.Stat(overrideFilePath); os.IsNotExist(statError) {
		return defaults
	}
	override, loadError := loadOverrideFromPath(overrideFilePath)
	if loadError != nil {
		logger.Warn(fmt.Sprintf(warnConfigLoadFormat, overrideFilePath, loadError))
		return defaults
	}
	return defaults.Merge(override)
}

// loadOverrideFromPath reads and decodes one override file.
func loadOverrideFromPath(path string) (Override, error) {
	fileInformation, statError := os.Stat(path)
	if statError != nil {
		return Override{}, fmt.Errorf("stat configuration %s: %w", path, statError)
	}
	if fileInformation.IsDir() {
		return Override{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if readError := reader.ReadInConfig(); readError != nil {
		return Override{}, fmt.Errorf("read configuration from %s: %w", path, readError)
	}
	var override Override
	if decodeError := reader.Unmarshal(&override); decodeError != nil {
		return Override{}, fmt.Errorf("decode configuration from %s: %w", path, decodeError)
	}
	return override, nil
}
