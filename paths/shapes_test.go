package paths

import "testing"

type shapeTestCase struct {
	d  string
	ok bool
}

func TestShapePaths(t *testing.T) {
	sp := func(d string, ok bool) shapeTestCase { return shapeTestCase{d: d, ok: ok} }
	cases := []struct {
		desc   string
		got    shapeTestCase
		want   string
		wantOK bool
	}{
		{"rect", sp(RectPath(0, 0, 10, 5, 0, 0)), "M 0,0 L 10,0 L 10,5 L 0,5 Z", true},
		{"rect with negative origin", sp(RectPath(-1.5, -2, 3, 4, 0, 0)), "M -1.5,-2 L 1.5,-2 L 1.5,2 L -1.5,2 Z", true},
		{"rect with no width", sp(RectPath(0, 0, 0, 5, 0, 0)), "", false},
		{"rect with negative height", sp(RectPath(0, 0, 5, -5, 0, 0)), "", false},
		{
			"rounded rect takes missing radius from the other",
			sp(RectPath(0, 0, 10, 6, 1, 0)),
			"M 1,0 L 9,0 Q 10,0 10,1 L 10,5 Q 10,6 9,6 L 1,6 Q 0,6 0,5 L 0,1 Q 0,0 1,0 Z",
			true,
		},
		{
			"rounded rect radii are clamped",
			sp(RectPath(0, 0, 4, 2, 10, 10)),
			"M 2,0 L 2,0 Q 4,0 4,1 L 4,1 Q 4,2 2,2 L 2,2 Q 0,2 0,1 L 0,1 Q 0,0 2,0 Z",
			true,
		},
		{"negative radii are square corners", sp(RectPath(0, 0, 1, 1, -1, -1)), "M 0,0 L 1,0 L 1,1 L 0,1 Z", true},
		{"polygon", sp(PolygonPath("0,0 1,0 1,1")), "M 0,0 1,0 1,1 Z", true},
		{"empty polygon", sp(PolygonPath("")), "", false},
		{"polyline", sp(PolylinePath("0,0 1,0 1,1")), "M 0,0 1,0 1,1", true},
		{"empty polyline", sp(PolylinePath("  ")), "", false},
		{"line", sp(LinePath(0, -0, 2.5, 1), true), "M 0,0 L 2.5,1", true},
		{"ellipse with no radius", sp(EllipsePath(0, 0, 1, 0)), "", false},
		{"circle with negative radius", sp(CirclePath(0, 0, -1)), "", false},
	}
	for _, c := range cases {
		if c.got.d != c.want || c.got.ok != c.wantOK {
			t.Errorf("%s: got (%q, %v), want (%q, %v)", c.desc, c.got.d, c.got.ok, c.want, c.wantOK)
		}
	}
}

func TestEllipsePathEndpoints(t *testing.T) {
	d, ok := EllipsePath(10, 20, 3, 4)
	if !ok {
		t.Fatalf("EllipsePath failed")
	}
	cmds, err := ParseData(d, nil)
	if err != nil {
		t.Fatalf("ParseData(%q) failed: %v", d, err)
	}
	want := []Vec2{{7, 20}, {10, 16}, {13, 20}, {10, 24}, {7, 20}}
	var got []Vec2
	for _, c := range cmds {
		if c.Kind == MoveTo || c.Kind == CubicTo {
			got = append(got, c.End())
		}
	}
	if len(got) != len(want) {
		t.Fatalf("got quadrant ends %v, want %v", got, want)
	}
	for i := range want {
		if vec2dist(got[i], want[i]) > 1e-12 {
			t.Errorf("quadrant end %d = %v, want %v", i, got[i], want[i])
		}
	}
}
