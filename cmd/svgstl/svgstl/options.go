package svgstl

import (
	"fmt"
	"io"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/paulhankin/svgstl/solid"
	"gopkg.in/yaml.v3"
)

// BasePlateShape is the outline of the base plate.
type BasePlateShape string

const (
	Rectangular BasePlateShape = "Rectangular"
	Circular    BasePlateShape = "Circular"
)

// Options configure a conversion. Lengths are in millimeters.
type Options struct {
	// TypeSize is the size of the larger side of the drawing.
	TypeSize float64 `yaml:"type_size"`
	// TypeDepth is how far the drawing stands up. A negative depth is
	// extruded by its magnitude, and with a base plate is no deeper
	// than the base.
	TypeDepth float64 `yaml:"type_depth"`
	// WantInvertedType leaves the drawing unmirrored.
	WantInvertedType bool `yaml:"invert_type"`
	// BevelEnabled flares the drawing out towards the base plate.
	BevelEnabled bool `yaml:"flare_type"`
	// SVGWindingIsCW swaps which contour orientation is solid and
	// which is a hole.
	SVGWindingIsCW bool `yaml:"reverse_winding_order"`

	WantBasePlate  bool           `yaml:"base_plate"`
	BasePlateShape BasePlateShape `yaml:"base_plate_shape"`
	BaseDepth      float64        `yaml:"base_depth"`
	BaseBuffer     float64        `yaml:"base_buffer"`

	// ObjectColor is a hex color such as "#5d9dea". It is written to
	// binary STL files.
	ObjectColor string `yaml:"color"`
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() *Options {
	return &Options{
		TypeSize:       60,
		TypeDepth:      3,
		BasePlateShape: Rectangular,
		BaseDepth:      5,
		BaseBuffer:     5,
		ObjectColor:    "#5d9dea",
	}
}

// LoadYAML overwrites options with those set in a YAML document.
// Unknown keys are an error.
func (o *Options) LoadYAML(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(o); err != nil && err != io.EOF {
		return fmt.Errorf("failed to read options: %w", err)
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Validate checks that the options describe a solid that can be built.
func (o *Options) Validate() error {
	if !(o.TypeSize > 0) || !finite(o.TypeSize) {
		return &InvalidOptionError{"type_size", o.TypeSize, "must be a positive number"}
	}
	if !finite(o.TypeDepth) {
		return &InvalidOptionError{"type_depth", o.TypeDepth, "must be a number"}
	}
	if o.BasePlateShape != Rectangular && o.BasePlateShape != Circular {
		return &InvalidOptionError{"base_plate_shape", o.BasePlateShape, "must be Rectangular or Circular"}
	}
	if o.WantBasePlate && (!(o.BaseDepth > 0) || !finite(o.BaseDepth)) {
		return &InvalidOptionError{"base_depth", o.BaseDepth, "must be a positive number"}
	}
	if o.BaseBuffer < 0 || !finite(o.BaseBuffer) {
		return &InvalidOptionError{"base_buffer", o.BaseBuffer, "must not be negative"}
	}
	if _, err := o.Color(); err != nil {
		return err
	}
	return nil
}

// Color parses ObjectColor.
func (o *Options) Color() (colorful.Color, error) {
	c, err := colorful.Hex(o.ObjectColor)
	if err != nil {
		return colorful.Color{}, &InvalidOptionError{"color", o.ObjectColor, "must be a hex color like #5d9dea"}
	}
	return c, nil
}

// EffectiveDepth returns the depth the drawing is built with: with a
// base plate, a negative depth can't be deeper than the base.
func (o *Options) EffectiveDepth() float64 {
	if o.WantBasePlate && o.TypeDepth < 0 && -o.TypeDepth > o.BaseDepth {
		return -o.BaseDepth
	}
	return o.TypeDepth
}

func (o *Options) solidOptions() solid.Options {
	return solid.Options{
		TypeSize:     o.TypeSize,
		TypeDepth:    o.EffectiveDepth(),
		Inverted:     o.WantInvertedType,
		Bevel:        o.BevelEnabled,
		BasePlate:    o.WantBasePlate,
		CircularBase: o.BasePlateShape == Circular,
		BaseDepth:    o.BaseDepth,
		BaseBuffer:   o.BaseBuffer,
	}
}
