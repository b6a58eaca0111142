package easyeda

import (
	"strconv"
	"strings"
)

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}

	return v, true
}

/*
	Lenient parse for fields that may legitimately be blank, like drill
	radius on SMD pads or rotation.
*/
func optionalFloat(s string) float64 {
	v, ok := parseFloat(s)
	if !ok {
		return 0
	}

	return v
}

func parseCoords(s string) []float64 {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n'
	})

	coords := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, ok := parseFloat(p)
		if !ok {
			return coords
		}
		coords = append(coords, v)
	}

	return coords
}

func parsePoints(s string) []Point {
	coords := parseCoords(s)

	pts := make([]Point, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		pts = append(pts, Point{coords[i], coords[i+1]})
	}

	return pts
}

/*
	A field holds track-style point data when it mixes spaces and digits.
	Used to locate the point list in records where its position drifts.
*/
func hasPointData(s string) bool {
	return strings.Contains(s, " ") && strings.ContainsAny(s, "0123456789")
}
