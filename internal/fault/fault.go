// Package fault carries a message and the source location where a structural
// error was raised, while still unwrapping to the package sentinel.
package fault

import (
	"fmt"
	"path/filepath"
	"runtime"
)

// Error is a located error.
type Error struct {
	Msg  string
	File string
	Line int
	Err  error
}

// Wrap records err with a formatted message at the caller's location.
func Wrap(err error, format string, args ...any) *Error {
	return at(2, fmt.Sprintf(format, args...), err)
}

func at(skip int, msg string, err error) *Error {
	e := &Error{Msg: msg, Err: err}
	if _, file, line, ok := runtime.Caller(skip); ok {
		e.File = filepath.Base(file)
		e.Line = line
	}
	return e
}

func (e *Error) Error() string {
	loc := e.Location()
	switch {
	case e.Err == nil:
		return fmt.Sprintf("%s (%s)", e.Msg, loc)
	case e.Msg == "":
		return fmt.Sprintf("%v (%s)", e.Err, loc)
	}
	return fmt.Sprintf("%v: %s (%s)", e.Err, e.Msg, loc)
}

// Location returns "file:line", or "unknown" when the caller was not recoverable.
func (e *Error) Location() string {
	if e.File == "" {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", e.File, e.Line)
}

func (e *Error) Unwrap() error { return e.Err }
