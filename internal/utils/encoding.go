package utils

import (
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

const (
	// DefaultTextEncoding is assumed whenever charset detection yields nothing.
	DefaultTextEncoding = "utf-8"

	asciiEncodingName   = "ascii"
	usASCIIEncodingName = "us-ascii"
)

// DetectTextEncoding names the character set of the provided sample bytes.
// Detection failures and empty samples fall back to DefaultTextEncoding.
func DetectTextEncoding(sampleBytes []byte) string {
	if len(sampleBytes) == 0 {
		return DefaultTextEncoding
	}
	detectionResult, detectionError := chardet.NewTextDetector().DetectBest(sampleBytes)
	if detectionError != nil || detectionResult == nil || detectionResult.Charset == "" {
		return DefaultTextEncoding
	}
	return detectionResult.Charset
}

// DecodeBytes decodes data using the named character set. UTF-8 and plain
// ASCII pass through unchanged; other charsets are resolved through the
// htmlindex registry. An unresolvable charset or a failing transform is
// reported as an error so the caller can substitute a placeholder.
func DecodeBytes(data []byte, encodingName string) (string, error) {
	normalizedName := strings.ToLower(strings.TrimSpace(encodingName))
	switch normalizedName {
	case "", DefaultTextEncoding, asciiEncodingName, usASCIIEncodingName:
		return string(data), nil
	}

	characterSet, lookupError := htmlindex.Get(normalizedName)
	if lookupError != nil {
		return "", lookupError
	}
	decodedBytes, _, transformError := transform.Bytes(characterSet.NewDecoder(), data)
	if transformError != nil {
		return "", transformError
	}
	return string(decodedBytes), nil
}
