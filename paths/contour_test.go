package paths

import (
	"testing"
)

func contoursOf(t *testing.T, d string, windingCW bool) []Contour {
	t.Helper()
	cmds, err := ParseData(d, nil)
	if err != nil {
		t.Fatalf("ParseData(%q) failed: %v", d, err)
	}
	return BuildContours(cmds, windingCW)
}

type contourTestCase struct {
	d      string
	points []int
	closed []bool
}

func TestBuildContours(t *testing.T) {
	cases := []contourTestCase{
		{"M0,0 L10,0 L10,10 L0,10 Z", []int{4}, []bool{true}},
		{"M0,0 L10,0 L10,10 L0,10 L0,0", []int{4}, []bool{true}},
		{"M0,0 L1,0 L1,1", []int{3}, []bool{false}},
		{"M0,0 L0,0 L1,0 L1,0", []int{2}, []bool{false}},
		{"M0,0 L1,0 L1,1 Z M5,5 L6,5 L6,6 Z", []int{3, 3}, []bool{true, true}},
		{"M0,0 L1,0 L1,1 Z L2,2", []int{3, 2}, []bool{true, false}},
		{"M0,0 M1,1 L2,2", []int{1, 2}, []bool{false, false}},
		{"M0,0 Q1,1 2,0", []int{CurveSegments + 1}, []bool{false}},
		{"M0,0 C1,1 2,1 3,0", []int{CurveSegments + 1}, []bool{false}},
		{"M0,0 A1,1 0 0 1 2,0", []int{ArcSegments + 1}, []bool{false}},
		{"M0,0 A1,1 0 0 1 2,0 A1,1 0 0 1 0,0 Z", []int{2 * ArcSegments}, []bool{true}},
	}
	for _, c := range cases {
		got := contoursOf(t, c.d, false)
		if len(got) != len(c.points) {
			t.Errorf("BuildContours(%q) gave %d contours, want %d", c.d, len(got), len(c.points))
			continue
		}
		for i, ct := range got {
			if len(ct.V) != c.points[i] || ct.Closed != c.closed[i] {
				t.Errorf("BuildContours(%q)[%d] has %d points, closed=%v; want %d points, closed=%v",
					c.d, i, len(ct.V), ct.Closed, c.points[i], c.closed[i])
			}
		}
	}
}

func TestBuildContoursWinding(t *testing.T) {
	for _, cw := range []bool{false, true} {
		for _, ct := range contoursOf(t, "M0,0 L1,0 L1,1 Z M5,5 L6,5 L6,6 Z", cw) {
			if ct.WindingCW != cw {
				t.Errorf("contour WindingCW = %v, want %v", ct.WindingCW, cw)
			}
		}
	}
}

// The circle reducer must produce the same outline as the equivalent
// hand-written cubic path.
func TestCircleMatchesCubics(t *testing.T) {
	d, ok := CirclePath(0, 0, 5)
	if !ok {
		t.Fatalf("CirclePath failed")
	}
	got := contoursOf(t, d, false)
	want := contoursOf(t, "M -5,0 "+
		"C -5,-2.761423749 -2.761423749,-5 0,-5 "+
		"C 2.761423749,-5 5,-2.761423749 5,0 "+
		"C 5,2.761423749 2.761423749,5 0,5 "+
		"C -2.761423749,5 -5,2.761423749 -5,0 Z", false)
	if len(got) != 1 || len(want) != 1 {
		t.Fatalf("got %d and %d contours, want 1", len(got), len(want))
	}
	if len(got[0].V) != 4*CurveSegments || len(got[0].V) != len(want[0].V) {
		t.Fatalf("got %d and %d points, want %d", len(got[0].V), len(want[0].V), 4*CurveSegments)
	}
	for i := range got[0].V {
		if vec2dist(got[0].V[i], want[0].V[i]) > 1e-3 {
			t.Errorf("point %d = %v, want %v", i, got[0].V[i], want[0].V[i])
		}
	}
	if !got[0].Closed {
		t.Errorf("circle contour is not closed")
	}
}

func TestFlattenedCurvesStayOnCurve(t *testing.T) {
	for _, ct := range contoursOf(t, "M-1,0 A1,1 0 0 1 1,0 A1,1 0 0 1 -1,0", false) {
		for _, v := range ct.V {
			if r := vec2dist(v, Vec2{}); r < 1-1e-9 || r > 1+1e-9 {
				t.Errorf("arc point %v is %v from the center, want 1", v, r)
			}
		}
	}
}
