package enumerator

import (
	"errors"
	"fmt"
)

var (
	// ErrRootNotExist means a root path does not exist
	ErrRootNotExist = errors.New("does not exist")
	// ErrRootNotDir means a root path exists but is not a directory
	ErrRootNotDir = errors.New("not a directory")
	// ErrRootUnreadable means a root directory cannot be opened or walked
	ErrRootUnreadable = errors.New("not readable")
	// ErrNoValidRoots is returned when roots were given and none was usable
	ErrNoValidRoots = errors.New("no valid roots")
)

// RootError is a configuration error for one root
type RootError struct {
	Root string // as supplied by the caller
	Err  error
}

func (e *RootError) Error() string {
	return fmt.Sprintf("root %q: %v", e.Root, e.Err)
}

func (e *RootError) Unwrap() error {
	return e.Err
}

// noValidRoots joins every root error under ErrNoValidRoots
func noValidRoots(rootErrs []*RootError) error {
	errs := make([]error, 0, len(rootErrs)+1)
	errs = append(errs, ErrNoValidRoots)
	for _, re := range rootErrs {
		errs = append(errs, re)
	}
	return errors.Join(errs...)
}
