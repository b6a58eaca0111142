package kicad

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nilskiefer/kicad-jlcimport/lib/easyeda"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in  float64
		out string
	}{
		{0, "0"},
		{1, "1"},
		{-3, "-3"},
		{1000000, "1000000"},
		{0.5, "0.5"},
		{2.54, "2.54"},
		{-0.254, "-0.254"},
		{0.1 + 0.2, "0.3"},
		{1.23456789, "1.234568"},
		{-0.0000001, "0"},
		{math.Copysign(0, -1), "0"},
		{math.NaN(), "0"},
		{math.Inf(1), "0"},
		{math.Inf(-1), "0"},
	}

	for _, test := range tests {
		require.Equal(t, test.out, formatFloat(test.in), "formatFloat(%v)", test.in)
	}
}

func TestEscapeString(t *testing.T) {
	require.Equal(t, `a\"b`, escapeString(`a"b`))
	require.Equal(t, `a\\b`, escapeString(`a\b`))
	require.Equal(t, "a b", escapeString("a\nb"))
	require.Equal(t, "a b", escapeString("a\r\nb"))
	require.Equal(t, `100k \"small\" resistor`, escapeString(`100k "small" resistor`))
}

func TestFormatPoints(t *testing.T) {
	pts := []easyeda.Point{{X: -0.254, Y: 0}, {X: 0.254, Y: 0.5}}
	require.Equal(t, "(pts (xy -0.254 0) (xy 0.254 0.5))", formatPoints(pts))
}

/*
	Both writers emit arcs in three-point form. A stored sweep of 0 walks
	the same curve the other way, so the endpoints swap and the midpoint
	stays on the arc.
*/
func TestArcPoints(t *testing.T) {
	forward := easyeda.Arc{
		Start: easyeda.Point{X: 0, Y: -1}, End: easyeda.Point{X: 0, Y: 1},
		RadiusX: 1, Sweep: true,
	}
	start, mid, end := arcPoints(forward)
	require.Equal(t, forward.Start, start)
	require.Equal(t, forward.End, end)
	require.InDelta(t, 1, mid.X, 1e-9)
	require.InDelta(t, 0, mid.Y, 1e-9)

	reversed := forward
	reversed.Sweep = false
	start, mid, end = arcPoints(reversed)
	require.Equal(t, forward.End, start)
	require.Equal(t, forward.Start, end)
	require.InDelta(t, -1, mid.X, 1e-9)
}
