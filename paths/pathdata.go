package paths

import (
	"errors"
	"fmt"
	"math"

	"github.com/tdewolff/parse/v2/strconv"
	"go.uber.org/zap"
)

// CommandKind identifies the drawing operation of a Command.
type CommandKind int

const (
	MoveTo CommandKind = 1 + iota
	LineTo
	CubicTo
	QuadTo
	ArcTo
	Close
)

func (k CommandKind) String() string {
	switch k {
	case MoveTo:
		return "MoveTo"
	case LineTo:
		return "LineTo"
	case CubicTo:
		return "CubicTo"
	case QuadTo:
		return "QuadTo"
	case ArcTo:
		return "ArcTo"
	case Close:
		return "Close"
	}
	return fmt.Sprintf("CommandKind(%d)", int(k))
}

// A Command is one drawing operation, with all operands in absolute
// coordinates.
//
// P holds the points of the command: the end point for MoveTo, LineTo
// and ArcTo; the control point then the end point for QuadTo; two
// control points then the end point for CubicTo; the subpath start
// for Close.
type Command struct {
	Kind CommandKind
	P    [3]Vec2

	// Circular arc parameters, for ArcTo only. Angles are in radians;
	// Sweep is signed.
	Center Vec2
	Radius float64
	Start  float64
	Sweep  float64
}

// End returns the current point after the command has been drawn.
func (c Command) End() Vec2 {
	switch c.Kind {
	case QuadTo:
		return c.P[1]
	case CubicTo:
		return c.P[2]
	}
	return c.P[0]
}

// MalformedPathError is returned when path data can't be interpreted.
type MalformedPathError struct {
	Data   string
	Offset int
	Reason string
}

func (e *MalformedPathError) Error() string {
	d := e.Data
	if len(d) > 40 {
		d = d[:37] + "..."
	}
	return fmt.Sprintf("malformed path data %q at offset %d: %s", d, e.Offset, e.Reason)
}

// errEnd stops the parse when the data runs out where a command's
// first operand was expected.
var errEnd = errors.New("end of path data")

type curveFamily int

const (
	noCurve curveFamily = iota
	cubicCurve
	quadCurve
)

type pathScanner struct {
	s   string
	pos int
}

func isSep(c byte) bool {
	return c == ',' || c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func (sc *pathScanner) skip() {
	for sc.pos < len(sc.s) && isSep(sc.s[sc.pos]) {
		sc.pos++
	}
}

func (sc *pathScanner) done() bool {
	return sc.pos >= len(sc.s)
}

// nextIsNum skips separators and reports whether a number follows.
func (sc *pathScanner) nextIsNum() bool {
	sc.skip()
	if sc.done() {
		return false
	}
	c := sc.s[sc.pos]
	return isDigit(c) || c == '-' || c == '.'
}

// number scans an optional minus sign, digits and at most one decimal
// point. Exponents and plus signs are not recognised.
func (sc *pathScanner) number() (float64, bool) {
	sc.skip()
	start := sc.pos
	i := start
	if i < len(sc.s) && sc.s[i] == '-' {
		i++
	}
	dot := false
	digits := 0
	for ; i < len(sc.s); i++ {
		c := sc.s[i]
		if isDigit(c) {
			digits++
		} else if c == '.' && !dot {
			dot = true
		} else {
			break
		}
	}
	if digits == 0 {
		return 0, false
	}
	f, n := strconv.ParseFloat([]byte(sc.s[start:i]))
	if n == 0 {
		return 0, false
	}
	sc.pos = start + n
	return f, true
}

type pathParser struct {
	sc  pathScanner
	log *zap.Logger

	cmds   []Command
	cur    Vec2
	start  Vec2
	closed bool

	// last unreflected control point, valid when family != noCurve.
	ctrl   Vec2
	family curveFamily
}

// ParseData interprets SVG path data, returning the drawing commands
// in absolute coordinates. The data must start with a moveto. Unknown
// command letters are skipped. Elliptical arcs are drawn as circular
// arcs using the x radius, with a warning written to log (which may be
// nil).
func ParseData(d string, log *zap.Logger) ([]Command, error) {
	if log == nil {
		log = zap.NewNop()
	}
	p := &pathParser{sc: pathScanner{s: d}, log: log}
	if err := p.parse(); err != nil {
		return nil, err
	}
	return p.cmds, nil
}

func (p *pathParser) errorf(format string, args ...interface{}) error {
	return &MalformedPathError{Data: p.sc.s, Offset: p.sc.pos, Reason: fmt.Sprintf(format, args...)}
}

func (p *pathParser) parse() error {
	p.sc.skip()
	if p.sc.done() {
		return p.errorf("empty path data")
	}
	cmd := p.sc.s[p.sc.pos]
	if cmd != 'M' && cmd != 'm' {
		return p.errorf("path data must start with a moveto, got %q", cmd)
	}
	p.sc.pos++
	for {
		known, err := p.exec(cmd)
		if err == errEnd {
			return nil
		}
		if err != nil {
			return err
		}
		switch cmd {
		case 'M':
			cmd = 'L'
		case 'm':
			cmd = 'l'
		}
		if known && cmd != 'Z' && cmd != 'z' && p.sc.nextIsNum() {
			continue
		}
		p.sc.skip()
		if p.sc.done() {
			return nil
		}
		cmd = p.sc.s[p.sc.pos]
		p.sc.pos++
	}
}

// operands reads n numbers for command cmd.
func (p *pathParser) operands(cmd byte, n int) ([]float64, error) {
	r := make([]float64, n)
	for i := range r {
		f, ok := p.sc.number()
		if !ok {
			if i == 0 && p.sc.done() {
				return nil, errEnd
			}
			return nil, p.errorf("command %c expects %d numbers, got %d", cmd, n, i)
		}
		r[i] = f
	}
	return r, nil
}

func (p *pathParser) emit(c Command) {
	if p.closed && c.Kind != MoveTo {
		// Drawing after a closepath starts a new subpath at its start.
		p.cmds = append(p.cmds, Command{Kind: MoveTo, P: [3]Vec2{p.cur}})
	}
	p.closed = c.Kind == Close
	p.cmds = append(p.cmds, c)
	p.cur = c.End()
}

// exec runs a single command. It reports whether the command letter
// was recognised.
func (p *pathParser) exec(cmd byte) (bool, error) {
	var origin Vec2
	if 'a' <= cmd && cmd <= 'z' {
		origin = p.cur
	}
	rel := func(x, y float64) Vec2 {
		return Vec2{origin[0] + x, origin[1] + y}
	}
	family := noCurve
	var ctrl Vec2

	switch cmd {
	case 'M', 'm':
		a, err := p.operands(cmd, 2)
		if err != nil {
			return true, err
		}
		pt := rel(a[0], a[1])
		p.closed = false
		p.emit(Command{Kind: MoveTo, P: [3]Vec2{pt}})
		p.start = pt
	case 'L', 'l':
		a, err := p.operands(cmd, 2)
		if err != nil {
			return true, err
		}
		p.emit(Command{Kind: LineTo, P: [3]Vec2{rel(a[0], a[1])}})
	case 'H', 'h':
		a, err := p.operands(cmd, 1)
		if err != nil {
			return true, err
		}
		pt := Vec2{a[0], p.cur[1]}
		if cmd == 'h' {
			pt[0] += p.cur[0]
		}
		p.emit(Command{Kind: LineTo, P: [3]Vec2{pt}})
	case 'V', 'v':
		a, err := p.operands(cmd, 1)
		if err != nil {
			return true, err
		}
		pt := Vec2{p.cur[0], a[0]}
		if cmd == 'v' {
			pt[1] += p.cur[1]
		}
		p.emit(Command{Kind: LineTo, P: [3]Vec2{pt}})
	case 'C', 'c':
		a, err := p.operands(cmd, 6)
		if err != nil {
			return true, err
		}
		c1, c2, end := rel(a[0], a[1]), rel(a[2], a[3]), rel(a[4], a[5])
		p.emit(Command{Kind: CubicTo, P: [3]Vec2{c1, c2, end}})
		family, ctrl = cubicCurve, c2
	case 'S', 's':
		a, err := p.operands(cmd, 4)
		if err != nil {
			return true, err
		}
		c1 := p.reflect(cubicCurve)
		c2, end := rel(a[0], a[1]), rel(a[2], a[3])
		p.emit(Command{Kind: CubicTo, P: [3]Vec2{c1, c2, end}})
		family, ctrl = cubicCurve, c2
	case 'Q', 'q':
		a, err := p.operands(cmd, 4)
		if err != nil {
			return true, err
		}
		c1, end := rel(a[0], a[1]), rel(a[2], a[3])
		p.emit(Command{Kind: QuadTo, P: [3]Vec2{c1, end}})
		family, ctrl = quadCurve, c1
	case 'T', 't':
		a, err := p.operands(cmd, 2)
		if err != nil {
			return true, err
		}
		c1 := p.reflect(quadCurve)
		p.emit(Command{Kind: QuadTo, P: [3]Vec2{c1, rel(a[0], a[1])}})
		family, ctrl = quadCurve, c1
	case 'A', 'a':
		a, err := p.operands(cmd, 7)
		if err != nil {
			return true, err
		}
		p.arc(a[0], a[1], a[2], a[3] != 0, a[4] != 0, rel(a[5], a[6]))
	case 'Z', 'z':
		if p.cur != p.start {
			p.emit(Command{Kind: LineTo, P: [3]Vec2{p.start}})
		}
		if !p.closed {
			p.emit(Command{Kind: Close, P: [3]Vec2{p.start}})
		}
	default:
		p.log.Debug("ignoring unknown path command", zap.String("command", string(cmd)), zap.Int("offset", p.sc.pos-1))
		return false, nil
	}
	p.family, p.ctrl = family, ctrl
	return true, nil
}

// reflect returns the first control point of a smooth curve: the
// previous control point of the same family mirrored through the
// current point, or the current point itself.
func (p *pathParser) reflect(f curveFamily) Vec2 {
	if p.family != f {
		return p.cur
	}
	return Vec2{2*p.cur[0] - p.ctrl[0], 2*p.cur[1] - p.ctrl[1]}
}

// arc converts an endpoint-parameterised arc to a circular arc around
// a center.
func (p *pathParser) arc(rx, ry, xrot float64, large, sweep bool, end Vec2) {
	start := p.cur
	if start == end {
		return
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		p.emit(Command{Kind: LineTo, P: [3]Vec2{end}})
		return
	}
	if rx != ry {
		p.log.Warn("forcing elliptical arc to be circular", zap.Float64("rx", rx), zap.Float64("ry", ry))
		ry = rx
	}
	phi := xrot * math.Pi / 180
	cosPhi, sinPhi := math.Cos(phi), math.Sin(phi)

	// Half-chord in the arc's rotated frame.
	dx2 := (start[0] - end[0]) / 2
	dy2 := (start[1] - end[1]) / 2
	x1 := cosPhi*dx2 + sinPhi*dy2
	y1 := -sinPhi*dx2 + cosPhi*dy2

	// Radii too small to span the chord are scaled up until they do.
	if l := x1*x1/(rx*rx) + y1*y1/(ry*ry); l > 1 {
		s := math.Sqrt(l)
		rx *= s
		ry *= s
	}

	rx2, ry2 := rx*rx, ry*ry
	num := rx2*ry2 - rx2*y1*y1 - ry2*x1*x1
	den := rx2*y1*y1 + ry2*x1*x1
	norm := math.Sqrt(math.Max(0, num/den))
	if large == sweep {
		norm = -norm
	}
	cx := norm * rx * y1 / ry
	cy := -norm * ry * x1 / rx
	center := Vec2{
		cosPhi*cx - sinPhi*cy + (start[0]+end[0])/2,
		sinPhi*cx + cosPhi*cy + (start[1]+end[1])/2,
	}

	u := Vec2{(x1 - cx) / rx, (y1 - cy) / ry}
	v := Vec2{(-x1 - cx) / rx, (-y1 - cy) / ry}
	theta := vecAngle(Vec2{1, 0}, u)
	delta := vecAngle(u, v)
	if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	} else if sweep && delta < 0 {
		delta += 2 * math.Pi
	}
	p.emit(Command{
		Kind:   ArcTo,
		P:      [3]Vec2{end},
		Center: center,
		Radius: rx,
		Start:  theta + phi,
		Sweep:  delta,
	})
}

// vecAngle returns the signed angle from u to v.
func vecAngle(u, v Vec2) float64 {
	c := (u[0]*v[0] + u[1]*v[1]) / (math.Hypot(u[0], u[1]) * math.Hypot(v[0], v[1]))
	a := math.Acos(math.Max(-1, math.Min(1, c)))
	if u[0]*v[1]-u[1]*v[0] < 0 {
		a = -a
	}
	return a
}
