// Package svgstl provides the functionality for the svgstl binary as
// a library: it turns SVG drawings into STL solids for 3d printing.
package svgstl

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/paulhankin/svgstl/paths"
	"github.com/paulhankin/svgstl/solid"
	"github.com/paulhankin/svgstl/stl"
	"github.com/paulhankin/svgstl/tess"
	"go.uber.org/zap"
)

// A Converter turns SVG documents into STL files. The zero value
// writes ASCII STL using the default geometry engine, and doesn't log.
type Converter struct {
	Engine tess.Engine
	Logger *zap.Logger
	Format stl.Format
}

func (c *Converter) log() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

func (c *Converter) engine() tess.Engine {
	if c.Engine == nil {
		return &tess.Tessellator{Log: c.log()}
	}
	return c.Engine
}

// Contours returns the flattened contours of each drawable element of
// the document, in the order they are extruded.
func (c *Converter) Contours(svg []byte, opts *Options) ([][]paths.Contour, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	ds, err := paths.FromSVG(bytes.NewReader(svg))
	if err != nil {
		return nil, err
	}
	if len(ds) == 0 {
		return nil, ErrEmptyDrawing
	}
	var cs [][]paths.Contour
	for i, d := range ds {
		cmds, err := paths.ParseData(d, c.log())
		if err != nil {
			return nil, fmt.Errorf("path %d: %w", i, err)
		}
		cs = append(cs, paths.BuildContours(cmds, opts.SVGWindingIsCW))
	}
	return cs, nil
}

// Convert returns the STL file for an SVG document.
func (c *Converter) Convert(svg []byte, opts *Options) ([]byte, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	color, err := opts.Color()
	if err != nil {
		return nil, err
	}
	cs, err := c.Contours(svg, opts)
	if err != nil {
		return nil, err
	}
	eng := c.engine()
	var shapes []tess.Shape
	for _, pc := range cs {
		shapes = append(shapes, eng.ToShapes(pc)...)
	}
	if len(shapes) == 0 {
		return nil, ErrEmptyDrawing
	}
	if d := opts.EffectiveDepth(); d != opts.TypeDepth {
		c.log().Debug("limiting depth to the base plate", zap.Float64("depth", opts.TypeDepth), zap.Float64("limit", d))
	}

	composer := &solid.Composer{Engine: eng, Log: c.log()}
	scene, err := composer.Compose(shapes, opts.solidOptions())
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := stl.Write(&buf, c.Format, stl.DefaultName, color, scene); err != nil {
		return nil, fmt.Errorf("failed to write stl: %w", err)
	}
	c.log().Debug("built solid",
		zap.Int("paths", len(cs)),
		zap.Int("shapes", len(shapes)),
		zap.Int("triangles", scene.TriangleCount()))
	return buf.Bytes(), nil
}

// Convert returns the ASCII STL file for an SVG document. If opts is
// nil, DefaultOptions are used.
func Convert(svg []byte, opts *Options) ([]byte, error) {
	return (&Converter{}).Convert(svg, opts)
}

var svgExt = regexp.MustCompile(`(?i)\.svg$`)

// OutputPath returns the default output file for an input file: the
// input with its .svg extension replaced by .stl.
func OutputPath(in string) string {
	if svgExt.MatchString(in) {
		return svgExt.ReplaceAllString(in, ".stl")
	}
	return in + ".stl"
}

// Config describes a conversion from one file to another.
type Config struct {
	In  string
	Out string

	Options *Options
	Format  stl.Format
}

// ConvertFile converts the input file and writes the output file. An
// output file with a .svg extension gets an outline of the flattened
// contours instead of a solid, to show what would be extruded.
func ConvertFile(cfg *Config, log *zap.Logger) error {
	if cfg.In == "" {
		return fmt.Errorf("input file must be specified")
	}
	out := cfg.Out
	if out == "" {
		out = OutputPath(cfg.In)
	}
	if out == cfg.In {
		return fmt.Errorf("output file %s would overwrite the input", out)
	}
	svg, err := os.ReadFile(cfg.In)
	if err != nil {
		return err
	}
	opts := cfg.Options
	if opts == nil {
		opts = DefaultOptions()
	}
	c := &Converter{Logger: log, Format: cfg.Format}

	var data []byte
	if strings.EqualFold(filepath.Ext(out), ".svg") {
		cs, err := c.Contours(svg, opts)
		if err != nil {
			return err
		}
		var all []paths.Contour
		for _, pc := range cs {
			all = append(all, pc...)
		}
		var buf bytes.Buffer
		if err := paths.WriteSVG(&buf, all); err != nil {
			return fmt.Errorf("failed to write svg file: %w", err)
		}
		data = buf.Bytes()
	} else {
		data, err = c.Convert(svg, opts)
		if err != nil {
			return err
		}
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	c.log().Info("Successfully converted", zap.String("in", cfg.In), zap.String("out", out))
	return nil
}
