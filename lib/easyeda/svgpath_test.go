package easyeda

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseArcPath(t *testing.T) {
	path := parseArcPath("M 0 -1 A 1 1 0 0 1 0 1")
	require.NotNil(t, path)
	require.Equal(t, Point{0, -1}, path.start)
	require.Equal(t, Point{0, 1}, path.end)
	require.Equal(t, 1.0, path.rx)
	require.Equal(t, 1.0, path.ry)
	require.False(t, path.largeArc)
	require.True(t, path.sweep)

	// comma-separated form, as some documents write it
	path = parseArcPath("M399.5,295 A10.5,10.5 0 1,0 420,295")
	require.NotNil(t, path)
	require.Equal(t, Point{399.5, 295}, path.start)
	require.Equal(t, Point{420, 295}, path.end)
	require.True(t, path.largeArc)
	require.False(t, path.sweep)
}

func TestParseArcPathRejects(t *testing.T) {
	require.Nil(t, parseArcPath(""))
	require.Nil(t, parseArcPath("M 0 0 L 10 10"))
	require.Nil(t, parseArcPath("M 0 0 A 0 0 0 0 1 10 10"))
}

/*
	The fixture arc runs from the bottom to the top of the unit circle.
	With sweep set, the short arc passes through (1, 0); taking the
	complementary arc instead must land on the other side.
*/
func TestArcMidpointWinding(t *testing.T) {
	start := Point{0, -1}
	end := Point{0, 1}

	mid := ArcMidpoint(start, end, 1, false, true)
	require.InDelta(t, 1, mid.X*mid.X+mid.Y*mid.Y, 1e-9)
	require.InDelta(t, 1, mid.X, 1e-9)
	require.InDelta(t, 0, mid.Y, 1e-9)

	flipped := ArcMidpoint(start, end, 1, true, true)
	require.InDelta(t, -1, flipped.X, 1e-9)
	require.InDelta(t, 0, flipped.Y, 1e-9)

	reversed := ArcMidpoint(start, end, 1, false, false)
	require.InDelta(t, -1, reversed.X, 1e-9)
	require.InDelta(t, 0, reversed.Y, 1e-9)
}

func TestArcMidpointClampsRadius(t *testing.T) {
	// radius 1 cannot span a chord of 10; it is clamped to a semicircle
	mid := ArcMidpoint(Point{0, 0}, Point{10, 0}, 1, false, true)
	require.InDelta(t, 5, mid.X, 1e-9)
	require.InDelta(t, -5, mid.Y, 1e-9)
}

func TestArcMidpointDegenerateChord(t *testing.T) {
	p := Point{3, 4}
	require.Equal(t, p, ArcMidpoint(p, p, 1, false, true))
}

func TestCircleFromThreePoints(t *testing.T) {
	center, radius := CircleFromThreePoints(Point{0, -1}, Point{1, 0}, Point{0, 1})
	require.InDelta(t, 0, center.X, 1e-9)
	require.InDelta(t, 0, center.Y, 1e-9)
	require.InDelta(t, 1, radius, 1e-9)
}

func TestCircleFromCollinearPoints(t *testing.T) {
	center, radius := CircleFromThreePoints(Point{0, 0}, Point{1, 0}, Point{2, 0})
	require.InDelta(t, 1, center.X, 1e-9)
	require.InDelta(t, 0, center.Y, 1e-9)
	require.InDelta(t, 1, radius, 1e-9)
}

func TestParseRegionPathOutline(t *testing.T) {
	pts := parseRegionPath("M 0 0 L 10 0 L 10 10 L 0 10 Z")
	require.Equal(t, []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}, pts)

	// multiple coordinate pairs after one L
	pts = parseRegionPath("M 0 0 L 10 0 10 10 0 10 Z")
	require.Equal(t, []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}, pts)
}

func TestParseRegionPathCircle(t *testing.T) {
	pts := parseRegionPath("M 0 10 A 10 10 0 1 1 0 -10 A 10 10 0 1 1 0 10 Z")
	require.Len(t, pts, 16)
	for _, p := range pts {
		require.InDelta(t, 10, math.Hypot(p.X, p.Y), 1e-9)
	}
}

func TestParseRegionPathArcEndpoint(t *testing.T) {
	// an arc mixed into a polygon degrades to its endpoint
	pts := parseRegionPath("M 0 0 L 10 0 A 5 5 0 0 1 10 10 L 0 10")
	require.Equal(t, []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}, pts)
}

func TestPinPathLength(t *testing.T) {
	require.Equal(t, 20.0, pinPathLength("M 940 -90 h -20"))
	require.Equal(t, 20.0, pinPathLength("M 940 -90 h 20"))
	require.Equal(t, 15.5, pinPathLength("M 0 0 v 15.5"))
	require.Equal(t, 0.0, pinPathLength("M 0 0 L 5 5"))
	require.Equal(t, 0.0, pinPathLength(""))
}
