package kicad

import (
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/nilskiefer/kicad-jlcimport/lib/easyeda"
)

/*
	Number and string formatting shared by every writer. Keeping these
	two functions stable is what makes repeated conversions diff cleanly.
*/

func formatFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}

	if v == math.Trunc(v) {
		if v == 0 {
			return "0"
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	s := strconv.FormatFloat(v, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-0" {
		return "0"
	}

	return s
}

func escapeString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")

	return s
}

func quote(s string) string {
	return `"` + escapeString(s) + `"`
}

func newUUID() string {
	return uuid.New().String()
}

func formatPoints(pts []easyeda.Point) string {
	b := strings.Builder{}
	b.WriteString("(pts")
	for _, p := range pts {
		b.WriteString(" (xy ")
		b.WriteString(formatFloat(p.X))
		b.WriteString(" ")
		b.WriteString(formatFloat(p.Y))
		b.WriteString(")")
	}
	b.WriteString(")")

	return b.String()
}

/*
	Three-point form for arc emission. Arcs are stored start to end with
	SVG flags; KiCad wants start, mid, end laid out so the traversal
	direction is implied. Endpoints swap when the sweep runs the other
	way, and the midpoint comes from the arc geometry helper.
*/
func arcPoints(a easyeda.Arc) (easyeda.Point, easyeda.Point, easyeda.Point) {
	start, end := a.Start, a.End
	if !a.Sweep {
		start, end = end, start
	}

	mid := easyeda.ArcMidpoint(start, end, a.RadiusX, a.LargeArc, true)
	return start, mid, end
}
