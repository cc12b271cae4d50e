package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/repoprompt/internal/utils"
)

const (
	binaryFilePlaceholder     = "[Binary file - content not included]"
	unreadableFilePlaceholder = "[Could not read file]"
	fileTooLargeFormat        = "[File too large - %.1fKB exceeds %dKB limit]"
	readErrorFormat           = "[Error reading file: %v]"

	bytesPerKilobyte    = 1024
	encodingSniffLength = 4096
)

// ContentReader resolves a file path to the content block embedded in the
// generated document. Every failure resolves to a placeholder string, so
// document assembly never aborts because of one unreadable file.
type ContentReader struct {
	binaryExtensions map[string]struct{}
	maxFileSizeKB    int
}

// NewContentReader builds a reader from the effective configuration. The
// binary extension check is case-insensitive.
func NewContentReader(binaryExtensions []string, maxFileSizeKB int) *ContentReader {
	extensionSet := make(map[string]struct{}, len(binaryExtensions))
	for _, extension := range binaryExtensions {
		extensionSet[strings.ToLower(extension)] = struct{}{}
	}
	return &ContentReader{binaryExtensions: extensionSet, maxFileSizeKB: maxFileSizeKB}
}

// IsBinaryExtension reports whether the file's extension marks it as binary.
func (reader *ContentReader) IsBinaryExtension(filePath string) bool {
	_, isBinary := reader.binaryExtensions[strings.ToLower(filepath.Ext(filePath))]
	return isBinary
}

// ReadFileContent returns the effective content of the file at filePath: the
// decoded text for readable files within the size limit, otherwise a
// placeholder naming the reason.
func (reader *ContentReader) ReadFileContent(filePath string) string {
	if reader.IsBinaryExtension(filePath) {
		return binaryFilePlaceholder
	}

	fileInformation, statError := os.Stat(filePath)
	if statError != nil {
		return unreadableFilePlaceholder
	}
	fileSizeKB := float64(fileInformation.Size()) / bytesPerKilobyte
	if fileSizeKB > float64(reader.maxFileSizeKB) {
		return fmt.Sprintf(fileTooLargeFormat, fileSizeKB, reader.maxFileSizeKB)
	}

	encodingName := detectFileEncoding(filePath)
	fileBytes, fileReadError := os.ReadFile(filePath)
	if fileReadError != nil {
		return fmt.Sprintf(readErrorFormat, fileReadError)
	}
	decodedContent, decodeError := utils.DecodeBytes(fileBytes, encodingName)
	if decodeError != nil {
		return fmt.Sprintf(readErrorFormat, decodeError)
	}
	return decodedContent
}

// detectFileEncoding samples up to the first encodingSniffLength bytes of the
// file and asks the charset detector for a name, falling back to UTF-8.
func detectFileEncoding(filePath string) string {
	fileHandle, openError := os.Open(filePath)
	if openError != nil {
		return utils.DefaultTextEncoding
	}
	defer fileHandle.Close()

	sampleBuffer := make([]byte, encodingSniffLength)
	bytesRead, readError := fileHandle.Read(sampleBuffer)
	if readError != nil && readError != io.EOF {
		return utils.DefaultTextEncoding
	}
	return utils.DetectTextEncoding(sampleBuffer[:bytesRead])
}
