package easyeda

import (
	"testing"

	"github.com/stretchr/testify/require"
)

/*
	A schematic symbol in miniature: three pins, a body rectangle in both
	source encodings, two ellipses, a polyline, a polygon and an arc. The
	origin sits at (400, 300); Y flips during parse.
*/
var symbolShapes = []string{
	"P~show~0~1~420~300~0~gge23^^M 420 300 h 20~#880000^^1~425~297~0~VCC~start~~~#0000FF^^1~415~301~0~1~end~~~#0000FF",
	"P~show~4~2~380~310~180~gge24^^M 380 310 h -20~#880000^^0~375~307~0~GND~end~~~#0000FF^^1~385~311~0~2~start~~~#0000FF",
	"P~show~1~3~400~320~90~gge25^^M 400 320~#880000^^1~400~325~0~IN~start~~~#0000FF^^1~398~321~0~3~end~~~#0000FF",
	"R~390~290~20~20~#880000~1~0~gge26",
	"R~390~290~2~2~20~20~#880000~1~0~none~~gge27",
	"E~400~295~5~5~#880000~1~0~#880000~gge28",
	"E~400~295~5~5~#880000~1~0~none~gge29",
	"PL~390 295 410 295~#880000~1~0~none~gge30",
	"PG~390~295~410~295~410~305~#880000~1~0~none~gge31",
	"A~M 390 300 A 10 10 0 0 1 410 300~~#880000~1~0~none~gge32",
	"T~L~420~295~0~0~0~#0000FF~Arial~7pt~~~comment~gge33",
}

func parseTestSymbol() *Symbol {
	return ParseSymbol("NE555", "U", 400, 300, symbolShapes)
}

func findPin(t *testing.T, sym *Symbol, number string) Pin {
	t.Helper()
	for _, p := range sym.Pins {
		if p.Number == number {
			return p
		}
	}

	t.Fatalf("no pin %q", number)
	return Pin{}
}

func TestParseSymbolCounts(t *testing.T) {
	sym := parseTestSymbol()

	require.Len(t, sym.Pins, 3)
	require.Len(t, sym.Rects, 2)
	require.Len(t, sym.Circles, 2)
	require.Len(t, sym.Polylines, 2)
	require.Len(t, sym.Arcs, 1)
}

func TestParseSymbolPins(t *testing.T) {
	sym := parseTestSymbol()

	vcc := findPin(t, sym, "1")
	require.Equal(t, PinUnspecified, vcc.Kind)
	require.InDelta(t, 0.508, vcc.X, 1e-9)
	require.InDelta(t, 0, vcc.Y, 1e-9)
	// source angle 0 re-bases to 180
	require.Equal(t, 180.0, vcc.Rotation)
	require.Equal(t, "VCC", vcc.Name)
	require.True(t, vcc.ShowName)
	require.True(t, vcc.ShowNumber)
	require.InDelta(t, 0.508, vcc.Length, 1e-9)

	gnd := findPin(t, sym, "2")
	require.Equal(t, PinPower, gnd.Kind)
	require.InDelta(t, -0.508, gnd.X, 1e-9)
	// Y flips: the pin below the origin lands at negative Y
	require.InDelta(t, -0.254, gnd.Y, 1e-9)
	require.Equal(t, 0.0, gnd.Rotation)
	require.False(t, gnd.ShowName)

	in := findPin(t, sym, "3")
	require.Equal(t, PinInput, in.Kind)
	require.Equal(t, 270.0, in.Rotation)
	// stub without a trailing h/v falls back to one grid unit
	require.Equal(t, 2.54, in.Length)
}

/*
	Only an explicit "0" hides a pin label; an empty or unrecognized
	flag leaves it shown.
*/
func TestParseSymbolPinLabelVisibility(t *testing.T) {
	sym := ParseSymbol("vis", "U", 400, 300, []string{
		"P~show~1~1~420~300~0~gge1^^M 420 300 h 20~#880000^^~425~297~0~A~start~~~#0000FF^^show~415~301~0~1~end~~~#0000FF",
		"P~show~1~2~420~310~0~gge2^^M 420 310 h 20~#880000^^0~425~307~0~B~start~~~#0000FF^^0~415~311~0~2~end~~~#0000FF",
	})
	require.Len(t, sym.Pins, 2)

	shown := findPin(t, sym, "1")
	require.True(t, shown.ShowName)
	require.True(t, shown.ShowNumber)
	require.Equal(t, "A", shown.Name)

	hidden := findPin(t, sym, "2")
	require.False(t, hidden.ShowName)
	require.False(t, hidden.ShowNumber)
}

func TestParseSymbolRects(t *testing.T) {
	sym := parseTestSymbol()

	short := sym.Rects[0]
	require.InDelta(t, -0.254, short.X, 1e-9)
	require.InDelta(t, 0.254, short.Y, 1e-9)
	require.InDelta(t, 0.508, short.Width, 1e-9)
	require.InDelta(t, -0.508, short.Height, 1e-9)

	// the long form with corner radii reads the same rectangle
	require.Equal(t, short, sym.Rects[1])
}

func TestParseSymbolEllipses(t *testing.T) {
	sym := parseTestSymbol()

	filled := sym.Circles[0]
	require.InDelta(t, 0, filled.CX, 1e-9)
	require.InDelta(t, 0.127, filled.CY, 1e-9)
	require.InDelta(t, 0.127, filled.Radius, 1e-9)
	require.True(t, filled.Filled)

	require.False(t, sym.Circles[1].Filled)
}

func TestParseSymbolPolylines(t *testing.T) {
	sym := parseTestSymbol()

	open := sym.Polylines[0]
	require.False(t, open.Filled)
	require.Equal(t, []Point{{-0.254, 0.127}, {0.254, 0.127}}, open.Points)

	// PG spreads coordinates over tilde fields and closes the outline
	closed := sym.Polylines[1]
	require.True(t, closed.Filled)
	require.Len(t, closed.Points, 4)
	require.Equal(t, closed.Points[0], closed.Points[3])
	require.InDelta(t, -0.127, closed.Points[2].Y, 1e-9)
}

func TestParseSymbolArcInvertsSweep(t *testing.T) {
	sym := parseTestSymbol()

	arc := sym.Arcs[0]
	require.InDelta(t, -0.254, arc.Start.X, 1e-9)
	require.InDelta(t, 0.254, arc.End.X, 1e-9)
	// flipping Y reverses the handedness, so source sweep 1 stores as 0
	require.False(t, arc.Sweep)
}

func TestParseSymbolDropsMalformed(t *testing.T) {
	sym := ParseSymbol("broken", "U", 0, 0, []string{
		"P~show~0~1~x~300~0~gge1^^M 0 0 h 20~c^^1~~~~A~~~~c^^1~~~~1~~~~c",
		"P~show~0~9~420~300~0~gge2",
		"R~1~2",
		"E~1~2~3",
		"PL~~#880000~1",
		"A~no path here~~#880000",
	})

	require.Empty(t, sym.Pins)
	require.Empty(t, sym.Rects)
	require.Empty(t, sym.Circles)
	require.Empty(t, sym.Polylines)
	require.Empty(t, sym.Arcs)
}
