package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxInputSize is 4KB.
	DefaultMaxInputSize = 4096
	// EnvMaxInputSize overrides the default limit.
	EnvMaxInputSize = "SURVEYFLOW_MAX_INPUT_SIZE"
)

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// Sanitizer cleans raw answers before they reach a session.
type Sanitizer struct {
	// MaxSize is the largest accepted answer in bytes.
	MaxSize int
	// TrimSpace removes surrounding whitespace from accepted answers.
	TrimSpace bool
}

// NewSanitizer returns a Sanitizer whose limit honors SURVEYFLOW_MAX_INPUT_SIZE.
func NewSanitizer() Sanitizer {
	return Sanitizer{MaxSize: maxInputSizeFromEnv(), TrimSpace: true}
}

// SanitizeInput cleans input with the environment configured limits.
func SanitizeInput(input string) (string, error) {
	return NewSanitizer().Clean(input)
}

// Clean rejects oversized or malformed input and strips control characters.
// Newline, tab and carriage return survive so multi-line free text keeps its shape.
func (s Sanitizer) Clean(input string) (string, error) {
	limit := s.MaxSize
	if limit <= 0 {
		limit = DefaultMaxInputSize
	}
	// Reject rather than truncate: a cut answer could still pass validation.
	if len(input) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}
	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}

	out := input
	if strings.IndexFunc(input, isUnsafeControl) >= 0 {
		out = strings.Map(func(r rune) rune {
			if isUnsafeControl(r) {
				return -1
			}
			return r
		}, input)
	}
	if s.TrimSpace {
		out = strings.TrimSpace(out)
	}
	return out, nil
}

func isUnsafeControl(r rune) bool {
	return unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r'
}

func maxInputSizeFromEnv() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}
