package stl

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/paulhankin/svgstl/mesh"
)

const (
	headerSize = 80
	facetSize  = 50
)

// A Format is an STL encoding.
type Format int

const (
	ASCII Format = iota
	Binary
)

func (f Format) String() string {
	switch f {
	case ASCII:
		return "ascii"
	case Binary:
		return "binary"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat parses "ascii" or "binary".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "ascii", "":
		return ASCII, nil
	case "binary":
		return Binary, nil
	}
	return 0, fmt.Errorf("unknown STL format %q", s)
}

// Write writes the scene in the given format. The name is used only by
// ASCII output and the color only by binary output.
func Write(w io.Writer, f Format, name string, c colorful.Color, scene *mesh.Scene) error {
	switch f {
	case ASCII:
		return WriteASCII(w, name, scene)
	case Binary:
		return WriteBinary(w, scene, c)
	}
	return fmt.Errorf("unknown STL format %v", f)
}

// facetColor packs c into 15 bits, 5 per channel with red lowest. The
// top bit is left clear to mark the color as set.
func facetColor(c colorful.Color) uint16 {
	r, g, b := c.RGB255()
	return uint16(r>>3) | uint16(g>>3)<<5 | uint16(b>>3)<<10
}

func putVec(b []byte, x, y, z float64) {
	binary.LittleEndian.PutUint32(b[0:], math.Float32bits(float32(x)))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(float32(y)))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(float32(z)))
}

// WriteBinary writes the scene as a binary STL. The header carries the
// object color as a COLOR= entry and every facet carries it too.
func WriteBinary(w io.Writer, scene *mesh.Scene, c colorful.Color) error {
	bi := bufio.NewWriter(w)
	var header [headerSize]byte
	n := copy(header[:], "svgstl COLOR=")
	r, g, b := c.RGB255()
	copy(header[n:], []byte{r, g, b, 0xff})
	if _, err := bi.Write(header[:]); err != nil {
		return err
	}
	var count [4]byte
	binary.LittleEndian.PutUint32(count[:], uint32(scene.TriangleCount()))
	if _, err := bi.Write(count[:]); err != nil {
		return err
	}
	attr := facetColor(c)
	var rec [facetSize]byte
	err := scene.Facets(func(f mesh.Facet) error {
		putVec(rec[0:], f.Normal[0], f.Normal[1], f.Normal[2])
		for i, v := range f.V {
			putVec(rec[12+12*i:], v[0], v[1], v[2])
		}
		binary.LittleEndian.PutUint16(rec[48:], attr)
		_, err := bi.Write(rec[:])
		return err
	})
	if err != nil {
		return err
	}
	return bi.Flush()
}
