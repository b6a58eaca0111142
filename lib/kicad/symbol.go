package kicad

import (
	"fmt"
	"math"
	"strings"

	"github.com/nilskiefer/kicad-jlcimport/lib/easyeda"
)

const symbolStroke = "(stroke (width 0.254) (type solid))"

/*
	WriteSymbol serializes one symbol as a library fragment, indented to
	sit inside a kicad_symbol_lib block. Graphic items live in the
	conventional unit-one child symbol.
*/
func WriteSymbol(sym *easyeda.Symbol) string {
	b := &strings.Builder{}

	top, bottom := symbolExtent(sym)

	fmt.Fprintf(b, "  (symbol %s\n", quote(sym.Name))
	fmt.Fprintf(b, "    (pin_names (offset 1.016))\n")
	fmt.Fprintf(b, "    (exclude_from_sim no)\n")
	fmt.Fprintf(b, "    (in_bom yes)\n")
	fmt.Fprintf(b, "    (on_board yes)\n")

	writeSymbolProperty(b, "Reference", sym.Prefix, top+2.54, false)
	writeSymbolProperty(b, "Value", sym.Name, bottom-2.54, false)
	writeSymbolProperty(b, "Footprint", sym.FootprintName, 0, true)
	writeSymbolProperty(b, "Datasheet", sym.Datasheet, 0, true)
	writeSymbolProperty(b, "Description", sym.Description, 0, true)
	writeSymbolProperty(b, "LCSC", sym.LCSC, 0, true)
	writeSymbolProperty(b, "Manufacturer", sym.Manufacturer, 0, true)

	fmt.Fprintf(b, "    (symbol %s\n", quote(sym.Name+"_0_1"))

	for _, r := range sym.Rects {
		fmt.Fprintf(b, "      (rectangle (start %s %s) (end %s %s) %s (fill (type background)))\n",
			formatFloat(r.X), formatFloat(r.Y),
			formatFloat(r.X+r.Width), formatFloat(r.Y+r.Height), symbolStroke)
	}

	for _, c := range sym.Circles {
		fill := "none"
		if c.Filled {
			fill = "outline"
		}
		fmt.Fprintf(b, "      (circle (center %s %s) (radius %s) %s (fill (type %s)))\n",
			formatFloat(c.CX), formatFloat(c.CY), formatFloat(c.Radius), symbolStroke, fill)
	}

	for _, p := range sym.Polylines {
		fill := "none"
		if p.Filled {
			fill = "background"
		}
		fmt.Fprintf(b, "      (polyline %s %s (fill (type %s)))\n",
			formatPoints(p.Points), symbolStroke, fill)
	}

	for _, a := range sym.Arcs {
		start, mid, end := arcPoints(a)
		fmt.Fprintf(b, "      (arc (start %s %s) (mid %s %s) (end %s %s) %s (fill (type none)))\n",
			formatFloat(start.X), formatFloat(start.Y),
			formatFloat(mid.X), formatFloat(mid.Y),
			formatFloat(end.X), formatFloat(end.Y), symbolStroke)
	}

	for _, p := range sym.Pins {
		writePin(b, p)
	}

	fmt.Fprintf(b, "    )\n")
	fmt.Fprintf(b, "  )\n")

	return b.String()
}

/*
	WriteSymbolLibrary wraps pre-rendered symbol fragments in a library
	header. The version stamp and generator_version gate the same way
	the footprint writer does.
*/
func WriteSymbolLibrary(fragments []string, version FormatVersion) string {
	cfg := version.config()
	b := &strings.Builder{}

	fmt.Fprintf(b, "(kicad_symbol_lib\n")
	fmt.Fprintf(b, "  (version %d)\n", cfg.SymbolStamp)
	fmt.Fprintf(b, "  (generator %s)\n", quote(generatorName))
	if cfg.GeneratorVersion != "" {
		fmt.Fprintf(b, "  (generator_version %s)\n", quote(cfg.GeneratorVersion))
	}

	for _, f := range fragments {
		b.WriteString(f)
	}

	b.WriteString(")\n")
	return b.String()
}

func symbolExtent(sym *easyeda.Symbol) (float64, float64) {
	top, bottom := 0.0, 0.0
	seen := false

	consider := func(y float64) {
		if !seen {
			top, bottom = y, y
			seen = true
			return
		}
		top = math.Max(top, y)
		bottom = math.Min(bottom, y)
	}

	for _, r := range sym.Rects {
		consider(r.Y)
		consider(r.Y + r.Height)
	}
	for _, p := range sym.Pins {
		consider(p.Y)
	}

	return top, bottom
}

func writeSymbolProperty(b *strings.Builder, name, value string, y float64, hidden bool) {
	effects := "(effects (font (size 1.27 1.27)))"
	if hidden {
		effects = "(effects (font (size 1.27 1.27)) hide)"
	}

	fmt.Fprintf(b, "    (property %s %s (at 0 %s 0) %s)\n",
		quote(name), quote(value), formatFloat(y), effects)
}

func writePin(b *strings.Builder, p easyeda.Pin) {
	nameEffects := "(effects (font (size 1.27 1.27)))"
	if !p.ShowName {
		nameEffects = "(effects (font (size 1.27 1.27)) hide)"
	}

	numberEffects := "(effects (font (size 1.27 1.27)))"
	if !p.ShowNumber {
		numberEffects = "(effects (font (size 1.27 1.27)) hide)"
	}

	fmt.Fprintf(b, "      (pin %s line (at %s %s %s) (length %s)\n",
		string(p.Kind), formatFloat(p.X), formatFloat(p.Y),
		formatFloat(p.Rotation), formatFloat(p.Length))
	fmt.Fprintf(b, "        (name %s %s)\n", quote(p.Name), nameEffects)
	fmt.Fprintf(b, "        (number %s %s)\n", quote(p.Number), numberEffects)
	fmt.Fprintf(b, "      )\n")
}
