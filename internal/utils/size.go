package utils

import (
	"fmt"
	"strings"
)

const (
	kilobyte = 1 << 10
	megabyte = 1 << 20
	gigabyte = 1 << 30
)

// FormatFileSize renders a byte count for the statistics section using the
// smallest unit that keeps the value readable, from bytes up to gigabytes.
func FormatFileSize(byteCount int64) string {
	if byteCount < 0 {
		byteCount = 0
	}
	switch {
	case byteCount < kilobyte:
		return fmt.Sprintf("%db", byteCount)
	case byteCount < megabyte:
		return formatScaledSize(float64(byteCount)/kilobyte, "kb")
	case byteCount < gigabyte:
		return formatScaledSize(float64(byteCount)/megabyte, "mb")
	default:
		return formatScaledSize(float64(byteCount)/gigabyte, "gb")
	}
}

// formatScaledSize keeps one decimal for small values and drops a trailing
// ".0" so exact multiples print without a fraction.
func formatScaledSize(scaledValue float64, unitSuffix string) string {
	if scaledValue < 10 {
		return strings.TrimSuffix(fmt.Sprintf("%.1f", scaledValue), ".0") + unitSuffix
	}
	return fmt.Sprintf("%.0f%s", scaledValue, unitSuffix)
}
