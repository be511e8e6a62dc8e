package parser

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned for unknown extensions. Callers
// match it with errors.Is.
var ErrUnsupportedFormat = errors.New("unsupported format")

// ContainerError means the underlying container (EPUB archive, PDF
// cross-reference table) could not be opened. There is no fallback
// past it; the path travels with the error.
type ContainerError struct {
	Path string
	Err  error
}

func (e *ContainerError) Error() string {
	return fmt.Sprintf("cannot open container %s: %v", e.Path, e.Err)
}

func (e *ContainerError) Unwrap() error { return e.Err }
