package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration marks missing or invalid access configuration.
	// It is the only marker that halts a run.
	ErrConfiguration = errors.New("configuration error")
	// ErrUnavailable marks a source that failed, timed out, or returned a
	// non-2xx status. Recovered locally as "no data".
	ErrUnavailable = errors.New("source unavailable")
	// ErrNotFound marks a lookup that completed but matched nothing.
	ErrNotFound = errors.New("not found")
)

// Wrap builds an error message that includes component context while
// tagging it with the provided marker for later classification. The marker
// should be one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrUnavailable
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsFatal reports whether an error should halt the run rather than degrade
// to absent data.
func IsFatal(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
