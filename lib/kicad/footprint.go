package kicad

import (
	"fmt"
	"math"
	"strings"

	"github.com/nilskiefer/kicad-jlcimport/lib/easyeda"
)

var layerNames = map[string]string{
	"1":   "F.Cu",
	"2":   "B.Cu",
	"3":   "F.SilkS",
	"4":   "B.SilkS",
	"5":   "F.Paste",
	"6":   "B.Paste",
	"7":   "F.Mask",
	"8":   "B.Mask",
	"10":  "Edge.Cuts",
	"11":  "Edge.Cuts",
	"12":  "Cmts.User",
	"13":  "F.Fab",
	"14":  "B.Fab",
	"15":  "Dwgs.User",
	"101": "F.Fab",
}

func layerName(code string) string {
	if name, ok := layerNames[code]; ok {
		return name
	}

	return "Cmts.User"
}

/*
	WriteFootprint serializes a footprint to .kicad_mod text. The output
	is stable apart from the uuid on each node: converting the same part
	twice diffs clean once uuids are masked out.
*/
func WriteFootprint(fp *easyeda.Footprint, modelPath string, version FormatVersion) string {
	cfg := version.config()
	b := &strings.Builder{}

	fmt.Fprintf(b, "(footprint %s\n", quote(fp.Name))
	fmt.Fprintf(b, "  (version %d)\n", cfg.FootprintStamp)
	fmt.Fprintf(b, "  (generator %s)\n", quote(generatorName))
	if cfg.GeneratorVersion != "" {
		fmt.Fprintf(b, "  (generator_version %s)\n", quote(cfg.GeneratorVersion))
	}
	fmt.Fprintf(b, "  (layer \"F.Cu\")\n")

	if fp.Description != "" {
		fmt.Fprintf(b, "  (descr %s)\n", quote(fp.Description))
	}
	if fp.LCSC != "" {
		fmt.Fprintf(b, "  (tags %s)\n", quote(fp.LCSC))
	}

	top, bottom := footprintExtent(fp)
	writeFootprintProperty(b, "Reference", "REF**", 0, top-1, "F.SilkS", false)
	writeFootprintProperty(b, "Value", fp.Name, 0, bottom+1, "F.Fab", false)
	if fp.Datasheet != "" {
		writeFootprintProperty(b, "Datasheet", fp.Datasheet, 0, 0, "F.Fab", true)
	}
	if fp.Description != "" {
		writeFootprintProperty(b, "Description", fp.Description, 0, 0, "F.Fab", true)
	}
	if fp.LCSC != "" {
		writeFootprintProperty(b, "LCSC", fp.LCSC, 0, 0, "F.Fab", true)
	}
	if fp.Manufacturer != "" {
		writeFootprintProperty(b, "Manufacturer", fp.Manufacturer, 0, 0, "F.Fab", true)
	}

	fmt.Fprintf(b, "  (attr %s)\n", footprintAttr(fp))

	for _, t := range fp.Tracks {
		writeTrack(b, t)
	}
	for _, c := range fp.Circles {
		writeFootprintCircle(b, c)
	}
	for _, a := range fp.Arcs {
		writeFootprintArc(b, a)
	}
	for _, r := range fp.Regions {
		writeRegion(b, r)
	}
	for _, p := range fp.Pads {
		writePad(b, p)
	}
	for _, h := range fp.Holes {
		writeHole(b, h)
	}

	if fp.Model != nil && modelPath != "" {
		offset, rotate := ModelPlacement(fp)
		fmt.Fprintf(b, "  (model %s\n", quote(modelPath))
		fmt.Fprintf(b, "    (offset (xyz %s %s %s))\n",
			formatFloat(offset[0]), formatFloat(offset[1]), formatFloat(offset[2]))
		fmt.Fprintf(b, "    (scale (xyz 1 1 1))\n")
		fmt.Fprintf(b, "    (rotate (xyz %s %s %s))\n",
			formatFloat(rotate[0]), formatFloat(rotate[1]), formatFloat(rotate[2]))
		fmt.Fprintf(b, "  )\n")
	}

	if cfg.EmbeddedFonts {
		fmt.Fprintf(b, "  (embedded_fonts no)\n")
	}

	b.WriteString(")\n")
	return b.String()
}

/*
	Vertical extent over pad centers and track points, for placing the
	reference above and the value below the part.
*/
func footprintExtent(fp *easyeda.Footprint) (float64, float64) {
	top, bottom := 0.0, 0.0
	seen := false

	consider := func(y float64) {
		if !seen {
			top, bottom = y, y
			seen = true
			return
		}
		top = math.Min(top, y)
		bottom = math.Max(bottom, y)
	}

	for _, p := range fp.Pads {
		consider(p.Y)
	}
	for _, t := range fp.Tracks {
		for _, p := range t.Points {
			consider(p.Y)
		}
	}

	return top, bottom
}

func footprintAttr(fp *easyeda.Footprint) string {
	for _, p := range fp.Pads {
		if p.Layer == "11" {
			return "through_hole"
		}
	}

	return "smd"
}

func writeFootprintProperty(b *strings.Builder, name, value string, x, y float64, layer string, hidden bool) {
	hide := ""
	if hidden {
		hide = " (hide yes)"
	}

	fmt.Fprintf(b, "  (property %s %s (at %s %s 0) (layer %s)%s (uuid %s) (effects (font (size 1 1) (thickness 0.15))))\n",
		quote(name), quote(value), formatFloat(x), formatFloat(y), quote(layer), hide, quote(newUUID()))
}

func writeTrack(b *strings.Builder, t easyeda.Track) {
	layer := layerName(t.Layer)
	for i := 0; i+1 < len(t.Points); i++ {
		fmt.Fprintf(b, "  (fp_line (start %s %s) (end %s %s) (stroke (width %s) (type solid)) (layer %s) (uuid %s))\n",
			formatFloat(t.Points[i].X), formatFloat(t.Points[i].Y),
			formatFloat(t.Points[i+1].X), formatFloat(t.Points[i+1].Y),
			formatFloat(t.Width), quote(layer), quote(newUUID()))
	}
}

func writeFootprintCircle(b *strings.Builder, c easyeda.Circle) {
	fill := "no"
	if c.Filled {
		fill = "yes"
	}

	fmt.Fprintf(b, "  (fp_circle (center %s %s) (end %s %s) (stroke (width %s) (type solid)) (fill %s) (layer %s) (uuid %s))\n",
		formatFloat(c.CX), formatFloat(c.CY),
		formatFloat(c.CX+c.Radius), formatFloat(c.CY),
		formatFloat(c.Width), fill, quote(layerName(c.Layer)), quote(newUUID()))
}

func writeFootprintArc(b *strings.Builder, a easyeda.Arc) {
	start, mid, end := arcPoints(a)
	fmt.Fprintf(b, "  (fp_arc (start %s %s) (mid %s %s) (end %s %s) (stroke (width %s) (type solid)) (layer %s) (uuid %s))\n",
		formatFloat(start.X), formatFloat(start.Y),
		formatFloat(mid.X), formatFloat(mid.Y),
		formatFloat(end.X), formatFloat(end.Y),
		formatFloat(a.Width), quote(layerName(a.Layer)), quote(newUUID()))
}

/*
	npth regions cut the board outline; solid regions are filled silk.
*/
func writeRegion(b *strings.Builder, r easyeda.Region) {
	layer, width, fill := "F.SilkS", 0.0, "yes"
	if r.Kind == "npth" {
		layer, width, fill = "Edge.Cuts", 0.1, "no"
	}

	fmt.Fprintf(b, "  (fp_poly %s (stroke (width %s) (type solid)) (fill %s) (layer %s) (uuid %s))\n",
		formatPoints(r.Points), formatFloat(width), fill, quote(layer), quote(newUUID()))
}

func padShapeName(p easyeda.Pad) string {
	switch p.Shape {
	case "RECT":
		return "rect"
	case "POLYGON":
		if len(p.Points) > 0 {
			return "custom"
		}
		return "rect"
	}

	return "oval"
}

func padTypeAndLayers(p easyeda.Pad) (string, string) {
	switch p.Layer {
	case "11":
		return "thru_hole", `"*.Cu" "*.Mask"`
	case "2":
		return "smd", `"B.Cu" "B.Paste" "B.Mask"`
	}

	return "smd", `"F.Cu" "F.Paste" "F.Mask"`
}

func writePad(b *strings.Builder, p easyeda.Pad) {
	shape := padShapeName(p)
	padType, layers := padTypeAndLayers(p)

	rotation := math.Mod(p.Rotation, 360)
	if rotation < 0 {
		rotation += 360
	}

	at := fmt.Sprintf("(at %s %s)", formatFloat(p.X), formatFloat(p.Y))
	if rotation != 0 && shape != "custom" {
		at = fmt.Sprintf("(at %s %s %s)", formatFloat(p.X), formatFloat(p.Y), formatFloat(rotation))
	}

	size := fmt.Sprintf("(size %s %s)", formatFloat(p.Width), formatFloat(p.Height))
	if shape == "custom" {
		// minimal anchor; the real outline rides in the primitives
		size = "(size 0.1 0.1)"
	}

	drill := ""
	if padType == "thru_hole" && p.Drill > 0 {
		switch {
		case p.Slot > 0 && p.Height >= p.Width:
			drill = fmt.Sprintf(" (drill oval %s %s)", formatFloat(p.Drill), formatFloat(p.Slot))
		case p.Slot > 0:
			drill = fmt.Sprintf(" (drill oval %s %s)", formatFloat(p.Slot), formatFloat(p.Drill))
		default:
			drill = fmt.Sprintf(" (drill %s)", formatFloat(p.Drill))
		}
	}

	options := ""
	if shape == "custom" {
		relative := make([]easyeda.Point, 0, len(p.Points))
		for _, pt := range p.Points {
			relative = append(relative, easyeda.Point{X: pt.X - p.X, Y: pt.Y - p.Y})
		}

		options = fmt.Sprintf(" (options (clearance outline) (anchor rect)) (primitives (gr_poly %s (width 0.1) (fill yes)))",
			formatPoints(relative))
	}

	fmt.Fprintf(b, "  (pad %s %s %s %s %s%s (layers %s)%s (uuid %s))\n",
		quote(p.Number), padType, shape, at, size, drill, layers, options, quote(newUUID()))
}

func writeHole(b *strings.Builder, h easyeda.Hole) {
	fmt.Fprintf(b, "  (pad \"\" np_thru_hole circle (at %s %s) (size %s %s) (drill %s) (layers \"*.Cu\" \"*.Mask\") (uuid %s))\n",
		formatFloat(h.X), formatFloat(h.Y),
		formatFloat(h.Drill), formatFloat(h.Drill),
		formatFloat(h.Drill), quote(newUUID()))
}
