// Package stl writes scenes as STL triangle meshes.
package stl

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/paulhankin/svgstl/mesh"
)

// DefaultName is the solid name written when none is given.
const DefaultName = "exported"

// fnum formats f as the shortest decimal that reads back as f, with
// an exponent only for very large or very small magnitudes. Negative
// zero is written as 0.
func fnum(f float64) string {
	if f == 0 {
		return "0"
	}
	if a := math.Abs(f); a < 1e-6 || a >= 1e21 {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func vec(v mgl64.Vec3) string {
	return fnum(v[0]) + " " + fnum(v[1]) + " " + fnum(v[2])
}

// WriteASCII writes the scene as an ASCII STL solid with the given
// name, one facet per triangle in object order. Vertices are in world
// space.
func WriteASCII(w io.Writer, name string, scene *mesh.Scene) error {
	if name == "" {
		name = DefaultName
	}
	var werr error
	bi := bufio.NewWriter(w)
	wr := func(f string, args ...interface{}) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(bi, f, args...)
	}
	wr("solid %s\n", name)
	err := scene.Facets(func(f mesh.Facet) error {
		wr("\tfacet normal %s\n", vec(f.Normal))
		wr("\t\touter loop\n")
		for _, v := range f.V {
			wr("\t\t\tvertex %s\n", vec(v))
		}
		wr("\t\tendloop\n")
		wr("\tendfacet\n")
		return werr
	})
	if err != nil {
		return err
	}
	wr("endsolid %s\n", name)
	if werr == nil {
		werr = bi.Flush()
	}
	return werr
}
