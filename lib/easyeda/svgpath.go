package easyeda

import (
	"math"
	"regexp"
	"strings"
)

/*
	EasyEDA embeds small SVG path fragments inside its shape strings: arc
	records carry a single M/A pair, solid regions carry M/L/Z outlines
	(with an occasional pair of half-circle arcs), and pin records carry a
	stub whose trailing h or v command encodes the pin length. Each form
	gets its own narrow parser here instead of a general path engine.
*/

var arcPathRe = regexp.MustCompile(
	`^\s*M\s*(-?[\d.]+)[,\s]+(-?[\d.]+)\s*A\s*(-?[\d.]+)[,\s]+(-?[\d.]+)[,\s]+(-?[\d.]+)[,\s]+([01])[,\s]+([01])[,\s]+(-?[\d.]+)[,\s]+(-?[\d.]+)`)

type arcPath struct {
	start    Point
	end      Point
	rx       float64
	ry       float64
	largeArc bool
	sweep    bool
}

/*
	Parse an "M x y A rx ry rot large sweep x y" fragment. Content past
	the first arc command is ignored. Returns nil when the fragment does
	not match or the radii are not positive.
*/
func parseArcPath(s string) *arcPath {
	m := arcPathRe.FindStringSubmatch(s)
	if m == nil {
		return nil
	}

	vals := make([]float64, 0, 9)
	for _, g := range []string{m[1], m[2], m[3], m[4], m[8], m[9]} {
		v, ok := parseFloat(g)
		if !ok {
			return nil
		}
		vals = append(vals, v)
	}

	if vals[2] <= 0 || vals[3] <= 0 {
		return nil
	}

	return &arcPath{
		start:    Point{vals[0], vals[1]},
		end:      Point{vals[4], vals[5]},
		rx:       vals[2],
		ry:       vals[3],
		largeArc: m[6] == "1",
		sweep:    m[7] == "1",
	}
}

/*
	ArcMidpoint returns the point halfway along a circular arc given in
	SVG endpoint form. The radius is clamped up to half the chord when it
	is too small to reach both endpoints. The center lies on the side of
	the chord selected by the two flags; the midpoint sits on the angular
	bisector walking from start to end in the sweep direction. When the
	flags contradict the geometry (a chord exactly spanning a diameter),
	the large-arc flag wins and the complementary arc is taken.
*/
func ArcMidpoint(start, end Point, radius float64, largeArc, sweep bool) Point {
	dx := end.X - start.X
	dy := end.Y - start.Y
	chord := math.Hypot(dx, dy)
	if chord == 0 {
		return start
	}

	if radius < chord/2 {
		radius = chord / 2
	}

	h := math.Sqrt(math.Max(0, radius*radius-(chord/2)*(chord/2)))
	side := 1.0
	if largeArc == sweep {
		side = -1.0
	}

	cx := (start.X+end.X)/2 + side*h*(-dy/chord)
	cy := (start.Y+end.Y)/2 + side*h*(dx/chord)

	a0 := math.Atan2(start.Y-cy, start.X-cx)
	a1 := math.Atan2(end.Y-cy, end.X-cx)

	delta := a1 - a0
	if sweep {
		for delta <= 0 {
			delta += 2 * math.Pi
		}
	} else {
		for delta >= 0 {
			delta -= 2 * math.Pi
		}
	}

	if largeArc && math.Abs(delta) <= math.Pi {
		delta -= math.Copysign(2*math.Pi, delta)
	} else if !largeArc && math.Abs(delta) > math.Pi {
		delta -= math.Copysign(2*math.Pi, delta)
	}

	mid := a0 + delta/2
	return Point{cx + radius*math.Cos(mid), cy + radius*math.Sin(mid)}
}

/*
	CircleFromThreePoints reconstructs center and radius from three points
	on a circle. Coincident or collinear points fall back to the midpoint
	of the outer pair instead of dividing by zero.
*/
func CircleFromThreePoints(a, b, c Point) (Point, float64) {
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	if math.Abs(d) < 1e-9 {
		center := Point{(a.X + c.X) / 2, (a.Y + c.Y) / 2}
		return center, math.Hypot(a.X-center.X, a.Y-center.Y)
	}

	aa := a.X*a.X + a.Y*a.Y
	bb := b.X*b.X + b.Y*b.Y
	cc := c.X*c.X + c.Y*c.Y

	center := Point{
		(aa*(b.Y-c.Y) + bb*(c.Y-a.Y) + cc*(a.Y-b.Y)) / d,
		(aa*(c.X-b.X) + bb*(a.X-c.X) + cc*(b.X-a.X)) / d,
	}
	return center, math.Hypot(a.X-center.X, a.Y-center.Y)
}

var regionCmdRe = regexp.MustCompile(`([MLAZmlaz])([^MLAZmlaz]*)`)

type regionCmd struct {
	cmd    byte
	coords []float64
}

/*
	Walk a solid-region outline path into a point list. M and L commands
	append absolute points. EasyEDA draws filled circles as two 180-degree
	arcs; that form is detected and replaced by a sixteen-sided polygon.
	Other arc commands degrade to a straight segment to their endpoint.
	Points come back in source units; the caller offsets and converts.
*/
func parseRegionPath(s string) []Point {
	cmds := []regionCmd{}
	for _, m := range regionCmdRe.FindAllStringSubmatch(s, -1) {
		cmds = append(cmds, regionCmd{
			cmd:    byte(m[1][0]),
			coords: parseCoords(m[2]),
		})
	}

	if pts := regionCircle(cmds); pts != nil {
		return pts
	}

	pts := []Point{}
	for _, c := range cmds {
		switch c.cmd {
		case 'M', 'm', 'L', 'l':
			for i := 0; i+1 < len(c.coords); i += 2 {
				pts = append(pts, Point{c.coords[i], c.coords[i+1]})
			}
		case 'A', 'a':
			// rx ry rot large sweep x y, possibly repeated
			for i := 0; i+6 < len(c.coords); i += 7 {
				pts = append(pts, Point{c.coords[i+5], c.coords[i+6]})
			}
		}
	}

	return pts
}

/*
	Detect the M-A-A(-Z) filled-circle form and expand it to sixteen
	points around the reconstructed center.
*/
func regionCircle(cmds []regionCmd) []Point {
	arcs := []regionCmd{}
	start := Point{}
	seenMove := false

	for _, c := range cmds {
		switch c.cmd {
		case 'M', 'm':
			if seenMove || len(c.coords) < 2 {
				return nil
			}
			seenMove = true
			start = Point{c.coords[0], c.coords[1]}
		case 'A', 'a':
			if len(c.coords) < 7 {
				return nil
			}
			arcs = append(arcs, c)
		case 'Z', 'z':
		default:
			return nil
		}
	}

	if !seenMove || len(arcs) != 2 {
		return nil
	}

	opposite := Point{arcs[0].coords[5], arcs[0].coords[6]}
	center := Point{(start.X + opposite.X) / 2, (start.Y + opposite.Y) / 2}
	radius := math.Hypot(opposite.X-start.X, opposite.Y-start.Y) / 2
	if radius == 0 {
		return nil
	}

	a0 := math.Atan2(start.Y-center.Y, start.X-center.X)
	pts := make([]Point, 0, 16)
	for i := 0; i < 16; i++ {
		a := a0 + float64(i)*math.Pi/8
		pts = append(pts, Point{center.X + radius*math.Cos(a), center.Y + radius*math.Sin(a)})
	}

	return pts
}

var pinLengthRe = regexp.MustCompile(`[hv]\s*(-?[\d.]+)\s*$`)

/*
	Pin stubs end in a horizontal or vertical delta; its magnitude is the
	pin length in source units. Returns 0 when no such command exists.
*/
func pinPathLength(s string) float64 {
	m := pinLengthRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0
	}

	v, ok := parseFloat(m[1])
	if !ok {
		return 0
	}

	return math.Abs(v)
}
