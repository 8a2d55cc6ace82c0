package paths

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/JoshVarga/svgparser"
	"github.com/tdewolff/parse/v2/strconv"
	"golang.org/x/net/html/charset"
)

// attrFloat parses the leading number of an attribute, like the
// browser's parseFloat. Missing or unparseable values are 0.
func attrFloat(e *svgparser.Element, name string) float64 {
	b := []byte(strings.TrimSpace(e.Attributes[name]))
	f, n := strconv.ParseFloat(b)
	if n == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// decodeSVG reads the element tree of an SVG document.
func decodeSVG(r io.Reader) (*svgparser.Element, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	decoder := xml.NewDecoder(bytes.NewReader(raw))
	decoder.CharsetReader = charset.NewReaderLabel
	elt, err := svgparser.DecodeFirst(decoder)
	if err != nil {
		return nil, fmt.Errorf("failed to parse svg: %w", err)
	}
	if err := elt.Decode(decoder); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse svg: %w", err)
	}
	return elt, nil
}

// FromSVG parses an SVG document and returns path data for each of
// its drawable elements: all paths first, then circles, ellipses,
// rects, polygons, polylines and lines, each in document order.
// Basic shapes are rewritten as path data; shapes with no size are
// skipped. Transforms, strokes and styles are ignored.
func FromSVG(r io.Reader) ([]string, error) {
	root, err := decodeSVG(r)
	if err != nil {
		return nil, err
	}
	var ds []string
	add := func(d string, ok bool) {
		if ok {
			ds = append(ds, d)
		}
	}
	for _, e := range root.FindAll("path") {
		d := e.Attributes["d"]
		add(d, d != "")
	}
	for _, e := range root.FindAll("circle") {
		add(CirclePath(attrFloat(e, "cx"), attrFloat(e, "cy"), attrFloat(e, "r")))
	}
	for _, e := range root.FindAll("ellipse") {
		add(EllipsePath(attrFloat(e, "cx"), attrFloat(e, "cy"), attrFloat(e, "rx"), attrFloat(e, "ry")))
	}
	for _, e := range root.FindAll("rect") {
		add(RectPath(attrFloat(e, "x"), attrFloat(e, "y"), attrFloat(e, "width"), attrFloat(e, "height"),
			attrFloat(e, "rx"), attrFloat(e, "ry")))
	}
	for _, e := range root.FindAll("polygon") {
		add(PolygonPath(e.Attributes["points"]))
	}
	for _, e := range root.FindAll("polyline") {
		add(PolylinePath(e.Attributes["points"]))
	}
	for _, e := range root.FindAll("line") {
		add(LinePath(attrFloat(e, "x1"), attrFloat(e, "y1"), attrFloat(e, "x2"), attrFloat(e, "y2")), true)
	}
	return ds, nil
}

var (
	svgh = `<svg height="%d" width="%d" viewBox="%d %d %d %d" version="1.1" xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink">`
)

// WriteSVG writes an SVG file that outlines the contours with black
// strokes. It's useful to see what the triangulator was given.
func WriteSVG(w io.Writer, cs []Contour) error {
	ps := &Paths{}
	for _, c := range cs {
		ps.P = append(ps.P, c.Path)
	}
	ps.TightenBounds()
	b := ps.Bounds
	var werr error
	bi := bufio.NewWriter(w)
	wr := func(f string, args ...interface{}) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(bi, f, args...)
	}
	minX, minY := int(math.Floor(b.Min[0])), int(math.Floor(b.Min[1]))
	width, height := int(math.Ceil(b.Max[0]))-minX, int(math.Ceil(b.Max[1]))-minY
	wr(svgh, height, width, minX, minY, width, height)
	wr("\n")
	wr("<g fill=\"none\" stroke=\"black\" stroke-width=\"0.1\">\n")
	for _, c := range cs {
		if len(c.V) == 0 {
			continue
		}
		wr(`<path d="`)
		for i, v := range c.V {
			if i == 0 {
				wr("M %.2f, %.2f", v[0], v[1])
			} else {
				wr(" %.2f, %.2f", v[0], v[1])
			}
		}
		if c.Closed {
			wr(" Z")
		}
		wr("\"/>\n")
	}
	wr("</g>")
	wr("</svg>")
	if werr == nil {
		werr = bi.Flush()
	}
	return werr
}
