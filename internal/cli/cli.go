// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/repoprompt/internal/commands"
	"github.com/temirov/repoprompt/internal/config"
	"github.com/temirov/repoprompt/internal/output"
	"github.com/temirov/repoprompt/internal/services/clipboard"
	"github.com/temirov/repoprompt/internal/tokenizer"
	"github.com/temirov/repoprompt/internal/utils"
)

const (
	outputFlagName      = "output"
	outputFlagShorthand = "o"
	configFlagName      = "config"
	configFlagShorthand = "c"
	noSaveFlagName      = "no-save"
	copyFlagName        = "copy"
	tokensFlagName      = "tokens"
	modelFlagName       = "model"
	versionFlagName     = "version"
	versionTemplate     = "repoprompt version: %s\n"

	defaultPath          = "."
	rootUse              = "repoprompt [path]"
	rootShortDescription = "generate a repository context document for LLMs"
	rootLongDescription  = `repoprompt walks a repository, filters out binary and irrelevant files,
and serializes the remaining structure and file contents into one text
document suitable for pasting into an LLM conversation.`
	rootUsageExample = `  # Generate repo_prompt.txt for the current directory
  repoprompt

  # Print the document to stdout without saving
  repoprompt --no-save ./project

  # Use a configuration override and a custom output path
  repoprompt -c repoprompt.json -o context.txt .`

	outputFlagDescription  = "output file path"
	configFlagDescription  = "path to configuration override file"
	noSaveFlagDescription  = "print the document to stdout instead of saving"
	copyFlagDescription    = "copy the generated document to the clipboard"
	tokensFlagDescription  = "include an estimated token count in the statistics"
	modelFlagDescription   = "tokenizer model used for token estimation"
	versionFlagDescription = "display application version"

	defaultTokenizerModelName = "gpt-4o"
	defaultOutputFileName     = config.DefaultOutputFileName

	errorAbsolutePathFormat = "abs failed for '%s': %w"
	errorPathMissingFormat  = "path '%s' does not exist"
	errorStatFormat         = "stat failed for '%s': %w"
	errorNotDirectoryFormat = "path '%s' is not a directory"

	warnGitignoreFormat = "Could not read %s: %v"
	warnClipboardFormat = "Could not copy document to clipboard: %v"

	savedSuccessMessage  = "\nRepository prompt has been generated successfully!"
	savedFileFormat      = "Output file: %s"
	savedGuidanceFormat  = "\nYou can now copy the contents of '%s' and paste it into any LLM chat"
	savedGuidanceTrailer = "to provide comprehensive context about your repository."
)

// generateOptions stores flag values for the root command.
type generateOptions struct {
	outputPath     string
	configPath     string
	noSave         bool
	copyEnabled    bool
	tokensEnabled  bool
	tokenizerModel string
}

// Execute runs the repoprompt application.
func Execute(logger *zap.Logger) error {
	rootCommand := createRootCommand(logger)
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand(logger *zap.Logger) *cobra.Command {
	var showVersion bool
	var options generateOptions

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			rootPath := defaultPath
			if len(arguments) > 0 {
				rootPath = arguments[0]
			}
			return runGenerate(rootPath, options, logger)
		},
	}

	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.Flags().StringVarP(&options.outputPath, outputFlagName, outputFlagShorthand, defaultOutputFileName, outputFlagDescription)
	rootCommand.Flags().StringVarP(&options.configPath, configFlagName, configFlagShorthand, "", configFlagDescription)
	rootCommand.Flags().BoolVar(&options.noSave, noSaveFlagName, false, noSaveFlagDescription)
	rootCommand.Flags().BoolVar(&options.copyEnabled, copyFlagName, false, copyFlagDescription)
	rootCommand.Flags().BoolVar(&options.tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	rootCommand.Flags().StringVar(&options.tokenizerModel, modelFlagName, defaultTokenizerModelName, modelFlagDescription)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// runGenerate resolves the configuration, builds the traversal engine, and
// produces the document.
func runGenerate(rootPath string, options generateOptions, logger *zap.Logger) error {
	absoluteRootPath, validationError := resolveRepositoryRoot(rootPath)
	if validationError != nil {
		return validationError
	}

	settings := config.LoadSettings(options.configPath, logger)

	gitignorePatterns, gitignoreError := config.LoadGitignorePatterns(absoluteRootPath)
	if gitignoreError != nil {
		logger.Warn(fmt.Sprintf(warnGitignoreFormat, config.GitIgnoreFileName, gitignoreError))
	}

	treeWalker := &commands.TreeWalker{
		Policy: utils.IgnorePolicy{
			Patterns:          runIgnorePatterns(settings, gitignorePatterns, options.outputPath),
			IncludeHidden:     settings.IncludeHidden,
			SelfExclusionName: config.SelfExclusionDirectoryName,
		},
		MaxDepth: settings.MaxDepth,
	}
	contentReader := commands.NewContentReader(settings.BinaryExtensions, settings.MaxFileSizeKB)

	var tokenCounter tokenizer.Counter
	var tokenModel string
	if options.tokensEnabled {
		createdCounter, resolvedModel, counterError := tokenizer.NewCounter(options.tokenizerModel)
		if counterError != nil {
			return counterError
		}
		tokenCounter = createdCounter
		tokenModel = resolvedModel
	}

	generator := &output.Generator{
		RootPath:     absoluteRootPath,
		Walker:       treeWalker,
		Reader:       contentReader,
		TokenCounter: tokenCounter,
		TokenModel:   tokenModel,
		Logger:       logger,
	}

	outputTarget := options.outputPath
	if options.noSave {
		outputTarget = ""
	}
	document := generator.GeneratePrompt(outputTarget)

	if options.noSave {
		fmt.Println(document)
	} else {
		printSavedMessage(options.outputPath)
	}

	if options.copyEnabled {
		if copyError := clipboard.NewService().Copy(document); copyError != nil {
			logger.Warn(fmt.Sprintf(warnClipboardFormat, copyError))
		}
	}

	return nil
}

// runIgnorePatterns combines the configured patterns with .gitignore entries
// and the names of the run's own artifacts. The output file and its write
// lock are always excluded so a previous run's output is never serialized
// back into the next document.
func runIgnorePatterns(settings config.Settings, gitignorePatterns []string, outputPath string) []string {
	combinedPatterns := config.CombinedIgnorePatterns(settings, gitignorePatterns)
	combinedPatterns = append(combinedPatterns, filepath.Base(outputPath), output.LockFileName(outputPath))
	return utils.DeduplicatePatterns(combinedPatterns)
}

// resolveRepositoryRoot converts the input path to absolute form and
// validates that it names an existing directory.
func resolveRepositoryRoot(rootPath string) (string, error) {
	absolutePath, absolutePathError := filepath.Abs(rootPath)
	if absolutePathError != nil {
		return "", fmt.Errorf(errorAbsolutePathFormat, rootPath, absolutePathError)
	}
	cleanPath := filepath.Clean(absolutePath)
	fileInformation, fileStatusError := os.Stat(cleanPath)
	if fileStatusError != nil {
		if os.IsNotExist(fileStatusError) {
			return "", fmt.Errorf(errorPathMissingFormat, rootPath)
		}
		return "", fmt.Errorf(errorStatFormat, rootPath, fileStatusError)
	}
	if !fileInformation.IsDir() {
		return "", fmt.Errorf(errorNotDirectoryFormat, rootPath)
	}
	return cleanPath, nil
}

// printSavedMessage reports a successful save on stdout, colored when the
// output is a terminal.
func printSavedMessage(outputPath string) {
	successPrinter := color.New(color.FgGreen)
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		successPrinter.DisableColor()
	}
	successPrinter.Println(savedSuccessMessage)
	fmt.Printf(savedFileFormat+"\n", outputPath)
	fmt.Printf(savedGuidanceFormat+"\n", outputPath)
	fmt.Println(savedGuidanceTrailer)
}
