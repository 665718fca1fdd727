package cli

import (
	"errors"

	"github.com/lumipallolabs/pdfscout/internal/config"
	"github.com/lumipallolabs/pdfscout/internal/enumerator"
)

// Exit codes
const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitConfigError  = 2
)

// ErrInvalidConfig marks bad flags, config files or settings
var ErrInvalidConfig = errors.New("invalid configuration")

// reportedError wraps an error whose details were already written to stderr
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// ExitCodeForError maps an error returned by Execute to a process exit code
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var rootErr *enumerator.RootError
	switch {
	case errors.Is(err, ErrInvalidConfig),
		errors.Is(err, config.ErrConfigNotFound),
		errors.Is(err, enumerator.ErrNoValidRoots),
		errors.As(err, &rootErr):
		return ExitConfigError
	}
	return ExitGeneralError
}
