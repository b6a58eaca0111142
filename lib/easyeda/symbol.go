package easyeda

import (
	"math"
	"strings"

	"github.com/nilskiefer/kicad-jlcimport/internal/logger"
)

/*
	ParseSymbol reads the shape strings of an EasyEDA schematic symbol
	into a Symbol. Symbol space is flipped to KiCad convention: Y grows
	upward, so every source Y is negated after the origin offset. The
	same drop-don't-fail policy as the footprint parser applies.
*/
func ParseSymbol(name, prefix string, originX, originY float64, shapes []string) *Symbol {
	sym := &Symbol{
		Name:    name,
		Prefix:  prefix,
		OriginX: originX,
		OriginY: originY,
	}
	origin := Point{originX, originY}

	for _, shape := range shapes {
		switch {
		case strings.HasPrefix(shape, "P~"):
			if p := parsePin(shape, origin); p != nil {
				sym.Pins = append(sym.Pins, *p)
			}
		case strings.HasPrefix(shape, "R~"):
			if r := parseSymbolRect(strings.Split(shape, "~"), origin); r != nil {
				sym.Rects = append(sym.Rects, *r)
			}
		case strings.HasPrefix(shape, "E~"):
			if c := parseSymbolEllipse(strings.Split(shape, "~"), origin); c != nil {
				sym.Circles = append(sym.Circles, *c)
			}
		case strings.HasPrefix(shape, "PL~"), strings.HasPrefix(shape, "PG~"):
			if p := parseSymbolPolyline(strings.Split(shape, "~"), origin); p != nil {
				sym.Polylines = append(sym.Polylines, *p)
			}
		case strings.HasPrefix(shape, "A~"):
			if a := parseSymbolArc(strings.Split(shape, "~"), origin); a != nil {
				sym.Arcs = append(sym.Arcs, *a)
			}
		default:
			if i := strings.IndexByte(shape, '~'); i > 0 {
				logger.Debug("skipping symbol record %q", shape[:i])
			}
		}
	}

	return sym
}

func convertSymbolPoint(p, origin Point) Point {
	return Point{MilToMM(p.X - origin.X), -MilToMM(p.Y - origin.Y)}
}

func convertSymbolPoints(pts []Point, origin Point) []Point {
	out := make([]Point, 0, len(pts))
	for _, p := range pts {
		out = append(out, convertSymbolPoint(p, origin))
	}

	return out
}

var pinKinds = map[string]PinKind{
	"0": PinUnspecified,
	"1": PinInput,
	"2": PinOutput,
	"3": PinBidirectional,
	"4": PinPower,
}

/*
	Pin records carry four caret-delimited sections:

	  P~display~electric~number~x~y~rotation~id~locked
	  ^^M 670 -30 h -20~color
	  ^^visible~x~y~rotation~name~anchor~family~size
	  ^^visible~x~y~rotation~number~anchor~family~size

	Section one's trailing h/v delta is the pin length. Rotation is
	re-based by 180 degrees: EasyEDA angles point from the pin into the
	body, KiCad angles point from the tip toward the body.
*/
func parsePin(record string, origin Point) *Pin {
	sections := strings.Split(record, "^^")
	if len(sections) < 4 {
		return nil
	}

	settings := strings.Split(sections[0], "~")
	if len(settings) < 7 {
		return nil
	}

	x, okx := parseFloat(settings[4])
	y, oky := parseFloat(settings[5])
	if !okx || !oky {
		return nil
	}

	kind, ok := pinKinds[settings[2]]
	if !ok {
		kind = PinUnspecified
	}

	rotation := math.Mod(optionalFloat(settings[6])+180, 360)
	if rotation < 0 {
		rotation += 360
	}

	pos := convertSymbolPoint(Point{x, y}, origin)
	pin := &Pin{
		Kind:     kind,
		X:        pos.X,
		Y:        pos.Y,
		Rotation: rotation,
		Number:   settings[3],
	}

	// the path rides in front of its stroke color
	path := strings.SplitN(sections[1], "~", 2)[0]
	if length := pinPathLength(path); length > 0 {
		pin.Length = MilToMM(length)
	} else {
		// stub without a trailing h/v command, take one grid unit
		pin.Length = 2.54
	}

	// only an explicit "0" hides a label
	nameFields := strings.Split(sections[2], "~")
	pin.ShowName = nameFields[0] != "0"
	if len(nameFields) > 4 {
		pin.Name = nameFields[4]
	}

	numFields := strings.Split(sections[3], "~")
	pin.ShowNumber = numFields[0] != "0"

	return pin
}

/*
	R~x~y~rx~ry~w~h~... (long form) or R~x~y~w~h (short form). The long
	form's corner radii are ignored.
*/
func parseSymbolRect(fields []string, origin Point) *Rect {
	var xf, yf, wf, hf string
	switch {
	case len(fields) >= 12:
		xf, yf, wf, hf = fields[1], fields[2], fields[5], fields[6]
	case len(fields) >= 5:
		xf, yf, wf, hf = fields[1], fields[2], fields[3], fields[4]
	default:
		return nil
	}

	x, okx := parseFloat(xf)
	y, oky := parseFloat(yf)
	w, okw := parseFloat(wf)
	h, okh := parseFloat(hf)
	if !okx || !oky || !okw || !okh {
		return nil
	}

	pos := convertSymbolPoint(Point{x, y}, origin)
	return &Rect{
		X:      pos.X,
		Y:      pos.Y,
		Width:  MilToMM(w),
		Height: -MilToMM(h),
	}
}

/*
	E~cx~cy~rx~ry~stroke~width~style~fill~id. Radii are averaged; KiCad
	symbol circles are round. A fill color marks the circle filled,
	"none" does not.
*/
func parseSymbolEllipse(fields []string, origin Point) *Circle {
	if len(fields) < 5 {
		return nil
	}

	cx, okx := parseFloat(fields[1])
	cy, oky := parseFloat(fields[2])
	rx, okrx := parseFloat(fields[3])
	ry, okry := parseFloat(fields[4])
	if !okx || !oky || !okrx || !okry {
		return nil
	}

	center := convertSymbolPoint(Point{cx, cy}, origin)
	return &Circle{
		CX:     center.X,
		CY:     center.Y,
		Radius: MilToMM((rx + ry) / 2),
		Filled: len(fields) > 8 && strings.HasPrefix(fields[8], "#") && fields[8] != "none",
	}
}

/*
	PL~points~stroke~... or PG~points~stroke~...; some documents spread
	the coordinates over separate tilde fields instead of one spaced
	list. PG closes the outline and is always filled.
*/
func parseSymbolPolyline(fields []string, origin Point) *Polyline {
	if len(fields) < 2 {
		return nil
	}

	var pts []Point
	if strings.Contains(fields[1], " ") {
		pts = parsePoints(fields[1])
	} else {
		coords := []float64{}
		for _, f := range fields[1:] {
			v, ok := parseFloat(f)
			if !ok {
				break
			}
			coords = append(coords, v)
		}
		for i := 0; i+1 < len(coords); i += 2 {
			pts = append(pts, Point{coords[i], coords[i+1]})
		}
	}

	if len(pts) < 2 {
		return nil
	}

	closed := fields[0] == "PG"
	if closed {
		pts = append(pts, pts[0])
	}

	return &Polyline{
		Points: convertSymbolPoints(pts, origin),
		Filled: closed,
	}
}

/*
	A~path~...~id. The sweep flag is inverted here: flipping the Y axis
	reverses the arc's handedness, and storing the corrected flag lets
	both writers share one emission rule.
*/
func parseSymbolArc(fields []string, origin Point) *Arc {
	for _, f := range fields[1:] {
		if !strings.HasPrefix(strings.TrimSpace(f), "M") {
			continue
		}

		path := parseArcPath(f)
		if path == nil {
			return nil
		}

		return &Arc{
			Start:    convertSymbolPoint(path.start, origin),
			End:      convertSymbolPoint(path.end, origin),
			RadiusX:  MilToMM(path.rx),
			RadiusY:  MilToMM(path.ry),
			LargeArc: path.largeArc,
			Sweep:    !path.sweep,
		}
	}

	return nil
}
