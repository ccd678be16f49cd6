package shader

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by source providers for unknown identifiers.
	ErrNotFound = errors.New("shader: source not found")

	// ErrUnusable accompanies compile and link failures. The program handle
	// exists but must not be drawn with.
	ErrUnusable = errors.New("shader: program unusable")
)

// SourceUnavailableError reports that the text for one stage could not be read.
type SourceUnavailableError struct {
	Stage Stage
	ID    string
	Err   error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("shader: %s source %q unavailable: %v", e.Stage, e.ID, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error { return e.Err }

// CompileError carries the compiler log of a failed stage.
type CompileError struct {
	Stage Stage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("shader: %s compilation failed:\n%s", e.Stage, e.Log)
}

// LinkError carries the linker log of a failed program.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("shader: program linking failed:\n%s", e.Log)
}
