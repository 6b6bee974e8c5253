package domain

import (
	"errors"
	"fmt"
	"os"
)

// ErrUnknownLanguage is matched by every UnknownLanguageError.
var ErrUnknownLanguage = errors.New("unknown language")

// NotFoundError reports a missing extraction root. It is the only error that
// aborts a run.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("root %s not found: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("root %s not found", e.Path)
}

// Unwrap keeps errors.Is(err, os.ErrNotExist) working.
func (e *NotFoundError) Unwrap() error {
	if e.Err == nil {
		return os.ErrNotExist
	}
	return e.Err
}

type UnknownLanguageError struct {
	Name string
}

func (e *UnknownLanguageError) Error() string {
	return fmt.Sprintf("unknown language %q (valid: dotnet, angular, html)", e.Name)
}

func (e *UnknownLanguageError) Is(target error) bool { return target == ErrUnknownLanguage }
