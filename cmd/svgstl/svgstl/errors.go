package svgstl

import (
	"errors"
	"fmt"
)

// ErrEmptyDrawing is returned when a document has nothing to extrude.
var ErrEmptyDrawing = errors.New("no valid paths found in SVG file")

// InvalidOptionError is returned for an option value that can't be
// used.
type InvalidOptionError struct {
	Option string
	Value  interface{}
	Reason string
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Option, e.Value, e.Reason)
}
