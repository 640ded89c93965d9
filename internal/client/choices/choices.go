// Package choices validates prompt input against the enumerated mouthpiece
// fields. Every parser is a pure function of its input so it can be retried
// by the prompt loop and tested without a terminal.
package choices

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atinyakov/mouthpiecer/internal/models"
)

// ValidationError describes input that does not satisfy a field's constraint.
type ValidationError struct {
	Field  string
	Input  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Input, e.Reason)
}

// ParseOption parses a 1-based menu position among n options and returns the
// zero-based index.
func ParseOption(field, input string, n int) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || v < 1 || v > n {
		return 0, &ValidationError{Field: field, Input: input, Reason: fmt.Sprintf("choose 1-%d", n)}
	}
	return v - 1, nil
}

// ParseType maps a menu position to a mouthpiece type.
func ParseType(input string) (models.Type, error) {
	i, err := ParseOption("type", input, len(models.Types))
	if err != nil {
		return "", err
	}
	return models.Types[i], nil
}

// ParseThreads maps a menu position to a thread standard. Empty input means
// no threads.
func ParseThreads(input string) (models.Threads, error) {
	if strings.TrimSpace(input) == "" {
		return models.ThreadsNone, nil
	}
	i, err := ParseOption("threads", input, len(models.ThreadOptions))
	if err != nil {
		return "", err
	}
	return models.ThreadOptions[i], nil
}

// ParseFinish maps a menu position to a finish.
func ParseFinish(input string) (models.Finish, error) {
	i, err := ParseOption("finish", input, len(models.Finishes))
	if err != nil {
		return "", err
	}
	return models.Finishes[i], nil
}

// ParseIndex parses a display index into a list of n records.
func ParseIndex(input string, n int) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || v < 0 || v >= n {
		return 0, &ValidationError{Field: "index", Input: input, Reason: fmt.Sprintf("choose 0-%d", n-1)}
	}
	return v, nil
}

// Labels returns the display labels of an enumeration in prompt order.
func Labels[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
