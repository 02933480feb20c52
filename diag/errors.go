package diag

import (
	"errors"
	"fmt"
)

// maxMessage is how many characters of a failure message are shown.
const maxMessage = 50

var (
	ErrModuleNotFound = errors.New("database module not found")
	ErrNotInitialized = errors.New("database available but not initialized")
)

// EnumerationError wraps a failure to list collections on a live handle.
type EnumerationError struct {
	Err error
}

func (e *EnumerationError) Error() string {
	return fmt.Sprintf("list collections: %v", e.Err)
}

func (e *EnumerationError) Unwrap() error { return e.Err }

// Describe converts a diagnostics error into the status string shown to
// operators.
func Describe(err error) string {
	var enumErr *EnumerationError
	switch {
	case err == nil:
		return StatusWorking
	case errors.Is(err, ErrModuleNotFound):
		return StatusModuleNotFound
	case errors.Is(err, ErrNotInitialized):
		return StatusNotInitialized
	case errors.As(err, &enumErr):
		return "Connected but Error: " + Truncate(message(enumErr.Err), maxMessage)
	default:
		return "Error: " + Truncate(err.Error(), maxMessage)
	}
}

func message(err error) string {
	if err == nil {
		return "<nil>"
	}
	return err.Error()
}

// Truncate returns at most n characters of s.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
