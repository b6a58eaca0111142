package easyeda

import (
	"encoding/json"
	"strings"

	"github.com/nilskiefer/kicad-jlcimport/internal/logger"
)

/*
	ParseFootprint reads the shape strings of an EasyEDA package document
	into a Footprint. Records are tilde-delimited; the first field names
	the record type. Records that are unknown, decorative, or malformed
	in a required field are dropped without failing the whole footprint.
*/
func ParseFootprint(name string, originX, originY float64, shapes []string) *Footprint {
	fp := &Footprint{
		Name:    name,
		OriginX: originX,
		OriginY: originY,
	}
	origin := Point{originX, originY}

	for _, shape := range shapes {
		fields := strings.Split(shape, "~")

		switch fields[0] {
		case "PAD":
			if p := parsePad(fields, origin); p != nil {
				fp.Pads = append(fp.Pads, *p)
			}
		case "TRACK":
			if t := parseTrack(fields, origin); t != nil {
				fp.Tracks = append(fp.Tracks, *t)
			}
		case "RECT":
			fp.Tracks = append(fp.Tracks, parseRectTracks(fields, origin)...)
		case "ARC":
			if a := parseFootprintArc(fields, origin); a != nil {
				fp.Arcs = append(fp.Arcs, *a)
			}
		case "CIRCLE":
			if c := parseFootprintCircle(fields, origin); c != nil {
				fp.Circles = append(fp.Circles, *c)
			}
		case "HOLE":
			if h := parseHole(fields, origin); h != nil {
				fp.Holes = append(fp.Holes, *h)
			}
		case "SOLIDREGION":
			if r := parseRegion(fields, origin); r != nil {
				fp.Regions = append(fp.Regions, *r)
			}
		case "SVGNODE":
			if m := parseSvgNode(fields); m != nil {
				fp.Model = m
			}
		default:
			logger.Debug("skipping footprint record %q", fields[0])
		}
	}

	return fp
}

func convertPoint(p, origin Point) Point {
	return Point{MilToMM(p.X - origin.X), MilToMM(p.Y - origin.Y)}
}

func convertPoints(pts []Point, origin Point) []Point {
	out := make([]Point, 0, len(pts))
	for _, p := range pts {
		out = append(out, convertPoint(p, origin))
	}

	return out
}

/*
	PAD~shape~x~y~w~h~layer~net~number~drill radius~points~rotation~id~slot
*/
func parsePad(fields []string, origin Point) *Pad {
	if len(fields) < 12 {
		return nil
	}

	x, okx := parseFloat(fields[2])
	y, oky := parseFloat(fields[3])
	w, okw := parseFloat(fields[4])
	h, okh := parseFloat(fields[5])
	if !okx || !oky || !okw || !okh {
		return nil
	}

	pad := &Pad{
		Shape:    fields[1],
		X:        MilToMM(x - origin.X),
		Y:        MilToMM(y - origin.Y),
		Width:    MilToMM(w),
		Height:   MilToMM(h),
		Layer:    fields[6],
		Number:   fields[8],
		Drill:    MilToMM(2 * optionalFloat(fields[9])),
		Rotation: optionalFloat(fields[11]),
	}

	if pad.Shape == "POLYGON" {
		pad.Points = convertPoints(parsePoints(fields[10]), origin)
	}

	if len(fields) > 13 {
		if slot := optionalFloat(fields[13]); slot > 0 {
			pad.Slot = MilToMM(slot)
		}
	}

	return pad
}

/*
	TRACK~width~layer~net~points~id. The net field is sometimes missing,
	so the point list is found by scanning rather than by position.
*/
func parseTrack(fields []string, origin Point) *Track {
	if len(fields) < 4 {
		return nil
	}

	w, okw := parseFloat(fields[1])
	if !okw {
		return nil
	}

	for i := 3; i < len(fields); i++ {
		if !hasPointData(fields[i]) {
			continue
		}

		pts := parsePoints(fields[i])
		if len(pts) < 2 {
			return nil
		}

		return &Track{
			Width:  MilToMM(w),
			Layer:  fields[2],
			Points: convertPoints(pts, origin),
		}
	}

	return nil
}

/*
	RECT~x~y~w~h~layer~id~stroke. Rendered as four track segments closing
	a rectangle, matching how the outline is drawn.
*/
func parseRectTracks(fields []string, origin Point) []Track {
	if len(fields) < 6 {
		return nil
	}

	x, okx := parseFloat(fields[1])
	y, oky := parseFloat(fields[2])
	w, okw := parseFloat(fields[3])
	h, okh := parseFloat(fields[4])
	if !okx || !oky || !okw || !okh {
		return nil
	}

	stroke := 1.0
	if len(fields) > 7 {
		if v, ok := parseFloat(fields[7]); ok && v > 0 {
			stroke = v
		}
	}

	corners := []Point{
		{x, y},
		{x + w, y},
		{x + w, y + h},
		{x, y + h},
		{x, y},
	}

	tracks := make([]Track, 0, 4)
	for i := 0; i < 4; i++ {
		tracks = append(tracks, Track{
			Width:  MilToMM(stroke),
			Layer:  fields[5],
			Points: convertPoints([]Point{corners[i], corners[i+1]}, origin),
		})
	}

	return tracks
}

/*
	ARC~width~layer~net~path~id. The path field is located by its leading
	M command.
*/
func parseFootprintArc(fields []string, origin Point) *Arc {
	if len(fields) < 4 {
		return nil
	}

	w, okw := parseFloat(fields[1])
	if !okw {
		return nil
	}

	for i := 3; i < len(fields); i++ {
		if !strings.HasPrefix(strings.TrimSpace(fields[i]), "M") {
			continue
		}

		path := parseArcPath(fields[i])
		if path == nil {
			return nil
		}

		return &Arc{
			Width:    MilToMM(w),
			Layer:    fields[2],
			Start:    convertPoint(path.start, origin),
			End:      convertPoint(path.end, origin),
			RadiusX:  MilToMM(path.rx),
			RadiusY:  MilToMM(path.ry),
			LargeArc: path.largeArc,
			Sweep:    path.sweep,
		}
	}

	return nil
}

/*
	CIRCLE~cx~cy~r~width~layer~id~flag. Layers 100 and 101 hold editor
	decoration rings around holes and never reach the board.
*/
func parseFootprintCircle(fields []string, origin Point) *Circle {
	if len(fields) < 6 {
		return nil
	}

	if fields[5] == "100" || fields[5] == "101" {
		return nil
	}

	cx, okx := parseFloat(fields[1])
	cy, oky := parseFloat(fields[2])
	r, okr := parseFloat(fields[3])
	w, okw := parseFloat(fields[4])
	if !okx || !oky || !okr || !okw {
		return nil
	}

	center := convertPoint(Point{cx, cy}, origin)
	return &Circle{
		CX:     center.X,
		CY:     center.Y,
		Radius: MilToMM(r),
		Width:  MilToMM(w),
		Layer:  fields[5],
		Filled: len(fields) > 7 && fields[7] == "1",
	}
}

/*
	HOLE~x~y~radius~id. Stored as a diameter like every other drill.
*/
func parseHole(fields []string, origin Point) *Hole {
	if len(fields) < 4 {
		return nil
	}

	x, okx := parseFloat(fields[1])
	y, oky := parseFloat(fields[2])
	r, okr := parseFloat(fields[3])
	if !okx || !oky || !okr {
		return nil
	}

	center := convertPoint(Point{x, y}, origin)
	return &Hole{
		X:     center.X,
		Y:     center.Y,
		Drill: MilToMM(2 * r),
	}
}

/*
	SOLIDREGION~layer~net~path~kind~id. The outline path and the kind
	token are found by scanning. Cutouts are an editor-only concept and
	are dropped; solid fills are only meaningful on the top silk layer
	(pin one markers); npth regions become board cutouts downstream.
*/
func parseRegion(fields []string, origin Point) *Region {
	if len(fields) < 4 {
		return nil
	}

	path := ""
	kind := ""
	for _, f := range fields[2:] {
		trimmed := strings.TrimSpace(f)
		switch {
		case strings.HasPrefix(trimmed, "M"):
			path = trimmed
		case trimmed == "npth" || trimmed == "solid" || trimmed == "cutout":
			kind = trimmed
		}
	}

	if path == "" || kind == "" {
		return nil
	}
	if kind == "cutout" {
		return nil
	}
	if kind == "solid" && fields[1] != "3" {
		return nil
	}

	pts := parseRegionPath(path)
	if len(pts) < 3 {
		return nil
	}

	return &Region{
		Layer:  fields[1],
		Kind:   kind,
		Points: convertPoints(pts, origin),
	}
}

type svgNodeAttrs struct {
	Attrs struct {
		UUID     string `json:"uuid"`
		Title    string `json:"title"`
		Origin   string `json:"c_origin"`
		Z        string `json:"z"`
		Rotation string `json:"c_rotation"`
	} `json:"attrs"`
}

/*
	SVGNODE~json. The JSON payload may itself contain tildes, so the
	fields are joined back together before decoding. The rotation triple
	is negated on read; EasyEDA and KiCad turn opposite directions.
*/
func parseSvgNode(fields []string) *Model3D {
	if len(fields) < 2 {
		return nil
	}

	node := svgNodeAttrs{}
	if err := json.Unmarshal([]byte(strings.Join(fields[1:], "~")), &node); err != nil {
		logger.Debug("bad SVGNODE payload: %v", err)
		return nil
	}

	if node.Attrs.UUID == "" {
		return nil
	}

	m := &Model3D{
		UUID:  node.Attrs.UUID,
		Title: node.Attrs.Title,
		Z:     optionalFloat(node.Attrs.Z),
	}

	if origin := parseCoords(node.Attrs.Origin); len(origin) >= 2 {
		m.OriginX = origin[0]
		m.OriginY = origin[1]
	}

	if rot := parseCoords(node.Attrs.Rotation); len(rot) >= 3 {
		m.Rotation = [3]float64{-rot[0], -rot[1], -rot[2]}
	}

	return m
}
