package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/paulhankin/svgstl/cmd/svgstl/svgstl"
	"github.com/paulhankin/svgstl/stl"
)

// flagColorValue is a hex color such as #5d9dea.
type flagColorValue struct {
	hex string
}

func (fc *flagColorValue) String() string {
	return fc.hex
}

func (fc *flagColorValue) Set(s string) error {
	if _, err := colorful.Hex(s); err != nil {
		return fmt.Errorf("can't parse %q as a hex color", s)
	}
	fc.hex = s
	return nil
}

// flagFormatValue is an STL encoding.
type flagFormatValue struct {
	f stl.Format
}

func (ff *flagFormatValue) String() string {
	return ff.f.String()
}

func (ff *flagFormatValue) Set(s string) error {
	f, err := stl.ParseFormat(s)
	if err != nil {
		return err
	}
	ff.f = f
	return nil
}

type cliFlags struct {
	out string

	typeSize        float64
	typeDepth       float64
	invertType      bool
	flareType       bool
	reverseWinding  bool
	basePlate       bool
	basePlateCircle bool
	baseDepth       float64
	buffer          float64
	color           flagColorValue

	config   string
	binary   bool
	format   flagFormatValue
	logLevel string
	logFile  string
}

func (cf *cliFlags) register(fs *flag.FlagSet) {
	def := svgstl.DefaultOptions()
	cf.color.hex = def.ObjectColor

	fs.StringVar(&cf.out, "o", "", "output STL file (defaults to the input with a .stl extension)")
	fs.StringVar(&cf.out, "output", "", "output STL file (defaults to the input with a .stl extension)")
	fs.Float64Var(&cf.typeSize, "type-size", def.TypeSize, "size of the drawing (mm)")
	fs.Float64Var(&cf.typeDepth, "type-depth", def.TypeDepth, "depth of the drawing (mm)")
	fs.BoolVar(&cf.invertType, "invert-type", false, "if set, don't mirror the drawing")
	fs.BoolVar(&cf.flareType, "flare-type", false, "if set, flare the drawing out to the base plate")
	fs.BoolVar(&cf.reverseWinding, "reverse-winding-order", false, "if set, swap which contours are solid and which are holes")
	fs.BoolVar(&cf.basePlate, "base-plate", false, "if set, add a rectangular base plate")
	fs.BoolVar(&cf.basePlateCircle, "base-plate-circle", false, "if set, add a circular base plate")
	fs.Float64Var(&cf.baseDepth, "base-depth", def.BaseDepth, "depth of the base plate (mm)")
	fs.Float64Var(&cf.buffer, "buffer", def.BaseBuffer, "margin around the drawing on the base plate (mm)")
	fs.Var(&cf.color, "color", "object color (hex)")

	fs.StringVar(&cf.config, "config", "", "YAML file of conversion options, overridden by flags")
	fs.BoolVar(&cf.binary, "binary", false, "if set, write binary STL")
	fs.Var(&cf.format, "format", "STL encoding: ascii or binary")
	fs.StringVar(&cf.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	fs.StringVar(&cf.logFile, "log-file", "", "also write logs to this file")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: svgstl [flags] <input.svg>\n\nConvert SVG files to STL for 3D printing.\n\n")
		fs.PrintDefaults()
	}
}

// parseArgs parses flags, which may come before or after positional
// arguments, and returns the positional arguments.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var pos []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return pos, nil
		}
		pos = append(pos, rest[0])
		args = rest[1:]
	}
}

// parse parses the command line into a conversion config. Options come
// from the defaults, then the -config file, then flags set on the
// command line.
func (cf *cliFlags) parse(fs *flag.FlagSet, args []string) (*svgstl.Config, error) {
	pos, err := parseArgs(fs, args)
	if err != nil {
		return nil, err
	}
	if len(pos) != 1 {
		return nil, fmt.Errorf("expected one input file, got %d", len(pos))
	}

	opts := svgstl.DefaultOptions()
	if cf.config != "" {
		f, err := os.Open(cf.config)
		if err != nil {
			return nil, err
		}
		err = opts.LoadYAML(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", cf.config, err)
		}
	}

	cfg := &svgstl.Config{In: pos[0], Out: cf.out, Options: opts}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "type-size":
			opts.TypeSize = math.Abs(cf.typeSize)
		case "type-depth":
			opts.TypeDepth = cf.typeDepth
		case "invert-type":
			opts.WantInvertedType = cf.invertType
		case "flare-type":
			opts.BevelEnabled = cf.flareType
		case "reverse-winding-order":
			opts.SVGWindingIsCW = cf.reverseWinding
		case "base-plate":
			opts.WantBasePlate = cf.basePlate
		case "base-plate-circle":
			if cf.basePlateCircle {
				opts.WantBasePlate = true
				opts.BasePlateShape = svgstl.Circular
			}
		case "base-depth":
			opts.BaseDepth = math.Abs(cf.baseDepth)
		case "buffer":
			opts.BaseBuffer = math.Abs(cf.buffer)
		case "color":
			opts.ObjectColor = cf.color.hex
		case "format":
			cfg.Format = cf.format.f
		}
	})
	if cf.binary {
		cfg.Format = stl.Binary
	}
	return cfg, nil
}
