package solid

import "fmt"

// DegenerateGeometryError is returned when the geometry has no extent
// or non-finite coordinates, so it can't be scaled to size.
type DegenerateGeometryError struct {
	Step string
}

func (e *DegenerateGeometryError) Error() string {
	return fmt.Sprintf("degenerate geometry at step %q", e.Step)
}
