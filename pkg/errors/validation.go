package errors

import (
	"strings"
	"unicode"
)

// ValidateSuffix validates a dump-file suffix before it is appended to
// artifact names. Suffixes become part of filenames, so anything that
// could escape the dump directory is rejected.
func ValidateSuffix(suffix string) error {
	if len(suffix) > 64 {
		return New(ErrCodeInvalidSuffix, "suffix too long (max 64 characters)")
	}
	for _, r := range suffix {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidSuffix, "suffix contains control characters")
		}
	}
	for _, pattern := range []string{"..", "/", "\\", "\x00"} {
		if strings.Contains(suffix, pattern) {
			return New(ErrCodeInvalidSuffix, "suffix contains invalid sequence %q", pattern)
		}
	}
	return nil
}

// ValidateStrategy checks a pair-selection strategy name against the set
// of known selectors.
func ValidateStrategy(name string) error {
	switch name {
	case "unconnected", "closest", "file":
		return nil
	}
	return New(ErrCodeInvalidStrategy,
		"unknown strategy %q (want unconnected, closest or file)", name)
}

// ValidateNeighbours checks the per-minimum candidate cap passed to the
// selectors.
func ValidateNeighbours(k int) error {
	if k < 1 {
		return New(ErrCodeInvalidInput, "neighbours must be at least 1, got %d", k)
	}
	return nil
}
