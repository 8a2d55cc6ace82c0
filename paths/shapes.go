package paths

import (
	"fmt"
	"strconv"
	"strings"
)

// kappa places cubic control points so that four curves approximate a
// circle.
const kappa = 0.5522847498

func fnum(f float64) string {
	if f == 0 {
		// avoid "-0"
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func pt(x, y float64) string {
	return fnum(x) + "," + fnum(y)
}

// EllipsePath returns path data for an ellipse made of four cubic
// curves, one per quadrant. It returns false if either radius is not
// positive.
func EllipsePath(cx, cy, rx, ry float64) (string, bool) {
	if !(rx > 0 && ry > 0) {
		return "", false
	}
	kx, ky := kappa*rx, kappa*ry
	d := fmt.Sprintf("M %s C %s %s %s C %s %s %s C %s %s %s C %s %s %s Z",
		pt(cx-rx, cy),
		pt(cx-rx, cy-ky), pt(cx-kx, cy-ry), pt(cx, cy-ry),
		pt(cx+kx, cy-ry), pt(cx+rx, cy-ky), pt(cx+rx, cy),
		pt(cx+rx, cy+ky), pt(cx+kx, cy+ry), pt(cx, cy+ry),
		pt(cx-kx, cy+ry), pt(cx-rx, cy+ky), pt(cx-rx, cy),
	)
	return d, true
}

// CirclePath returns path data for a circle.
func CirclePath(cx, cy, r float64) (string, bool) {
	return EllipsePath(cx, cy, r, r)
}

// RectPath returns path data for a rectangle, with corners rounded by
// quadratic curves when rx or ry is set. A missing radius takes the
// value of the other, and radii are clamped to half the side.
func RectPath(x, y, w, h, rx, ry float64) (string, bool) {
	if !(w > 0 && h > 0) {
		return "", false
	}
	if rx < 0 {
		rx = 0
	}
	if ry < 0 {
		ry = 0
	}
	if rx == 0 {
		rx = ry
	}
	if ry == 0 {
		ry = rx
	}
	if rx == 0 {
		return fmt.Sprintf("M %s L %s L %s L %s Z", pt(x, y), pt(x+w, y), pt(x+w, y+h), pt(x, y+h)), true
	}
	if rx > w/2 {
		rx = w / 2
	}
	if ry > h/2 {
		ry = h / 2
	}
	d := fmt.Sprintf("M %s L %s Q %s %s L %s Q %s %s L %s Q %s %s L %s Q %s %s Z",
		pt(x+rx, y),
		pt(x+w-rx, y),
		pt(x+w, y), pt(x+w, y+ry),
		pt(x+w, y+h-ry),
		pt(x+w, y+h), pt(x+w-rx, y+h),
		pt(x+rx, y+h),
		pt(x, y+h), pt(x, y+h-ry),
		pt(x, y+ry),
		pt(x, y), pt(x+rx, y),
	)
	return d, true
}

// PolygonPath returns closed path data through the points of an SVG
// points attribute.
func PolygonPath(points string) (string, bool) {
	if strings.TrimSpace(points) == "" {
		return "", false
	}
	return "M " + points + " Z", true
}

// PolylinePath returns open path data through the points of an SVG
// points attribute.
func PolylinePath(points string) (string, bool) {
	if strings.TrimSpace(points) == "" {
		return "", false
	}
	return "M " + points, true
}

// LinePath returns path data for a single line segment.
func LinePath(x1, y1, x2, y2 float64) string {
	return fmt.Sprintf("M %s L %s", pt(x1, y1), pt(x2, y2))
}
