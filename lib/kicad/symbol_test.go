package kicad

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nilskiefer/kicad-jlcimport/lib/easyeda"
)

func symbolFixture() *easyeda.Symbol {
	return &easyeda.Symbol{
		Name:          "NE555",
		Prefix:        "U",
		LCSC:          "C7593",
		Description:   "single precision timer",
		Datasheet:     "https://lcsc.com/product-detail/C7593.html",
		Manufacturer:  "Texas Instruments",
		FootprintName: "JLCImport:SOIC-8_150mil",
		Rects: []easyeda.Rect{
			{X: -5.08, Y: 7.62, Width: 10.16, Height: -15.24},
		},
		Pins: []easyeda.Pin{
			{Kind: easyeda.PinPower, X: -7.62, Y: 5.08, Rotation: 0, Number: "8", Name: "VCC", ShowName: true, ShowNumber: true, Length: 2.54},
			{Kind: easyeda.PinInput, X: -7.62, Y: -5.08, Rotation: 0, Number: "2", Name: "TRIG", ShowName: false, ShowNumber: true, Length: 2.54},
		},
	}
}

func TestWriteSymbol(t *testing.T) {
	text := WriteSymbol(symbolFixture())

	require.True(t, strings.HasPrefix(text, `  (symbol "NE555"`))
	require.Contains(t, text, `(symbol "NE555_0_1"`)
	require.Contains(t, text, "(pin_names (offset 1.016))")
	require.Contains(t, text, "(in_bom yes)")

	// reference above the body, value below
	require.Contains(t, text, `(property "Reference" "U" (at 0 10.16 0)`)
	require.Contains(t, text, `(property "Value" "NE555" (at 0 -10.16 0)`)
	require.Contains(t, text, `(property "Footprint" "JLCImport:SOIC-8_150mil" (at 0 0 0) (effects (font (size 1.27 1.27)) hide))`)
	require.Contains(t, text, `(property "LCSC" "C7593"`)

	require.Contains(t, text, `(rectangle (start -5.08 7.62) (end 5.08 -7.62)`)
	require.Contains(t, text, "(fill (type background))")

	require.Contains(t, text, "(pin power_in line (at -7.62 5.08 0) (length 2.54)")
	require.Contains(t, text, `(name "VCC" (effects (font (size 1.27 1.27))))`)
	require.Contains(t, text, `(name "TRIG" (effects (font (size 1.27 1.27)) hide))`)
	require.Contains(t, text, `(number "8" (effects (font (size 1.27 1.27))))`)
}

func TestWriteSymbolGraphics(t *testing.T) {
	sym := &easyeda.Symbol{
		Name:   "graphic",
		Prefix: "U",
		Circles: []easyeda.Circle{
			{CX: 0, CY: 0, Radius: 1.27, Filled: true},
			{CX: 2.54, CY: 0, Radius: 1.27},
		},
		Polylines: []easyeda.Polyline{
			{Points: []easyeda.Point{{X: 0, Y: 0}, {X: 2.54, Y: 0}}},
			{Points: []easyeda.Point{{X: 0, Y: 0}, {X: 2.54, Y: 0}, {X: 0, Y: 2.54}, {X: 0, Y: 0}}, Filled: true},
		},
		Arcs: []easyeda.Arc{
			{Start: easyeda.Point{X: 0, Y: -1.27}, End: easyeda.Point{X: 0, Y: 1.27}, RadiusX: 1.27, Sweep: true},
		},
	}

	text := WriteSymbol(sym)
	require.Contains(t, text, "(circle (center 0 0) (radius 1.27)")
	require.Contains(t, text, "(fill (type outline))")
	require.Contains(t, text, "(fill (type none))")
	require.Contains(t, text, "(polyline (pts (xy 0 0) (xy 2.54 0))")
	require.Contains(t, text, "(arc (start 0 -1.27) (mid 1.27 0) (end 0 1.27)")
}

/*
	Parse-then-write over raw shape strings: five pins around a body
	rectangle, with lengths measured from the record paths and the
	reference placed one grid unit above the extent.
*/
func TestWriteSymbolFromShapes(t *testing.T) {
	shapes := []string{
		"R~380~280~2~2~40~40~#880000~1~0~none~~sr1",
		"P~show~1~1~380~290~0~sp1^^M 380 290 h -20~#880000^^1~375~287~0~IN1~start~~~#0000FF^^1~379~291~0~1~end~~~#0000FF",
		"P~show~1~2~380~310~0~sp2^^M 380 310 h -20~#880000^^1~375~307~0~IN2~start~~~#0000FF^^1~379~311~0~2~end~~~#0000FF",
		"P~show~2~3~420~300~180~sp3^^M 420 300 h 20~#880000^^1~425~297~0~OUT~start~~~#0000FF^^1~421~301~0~3~end~~~#0000FF",
		"P~show~4~4~400~280~90~sp4^^M 400 280 v 20~#880000^^1~405~275~0~VCC~start~~~#0000FF^^1~401~281~0~4~end~~~#0000FF",
		"P~show~0~5~400~320~270~sp5^^M 400 320 v -20~#880000^^1~405~325~0~NC~start~~~#0000FF^^0~401~321~0~5~end~~~#0000FF",
	}

	sym := easyeda.ParseSymbol("OPAMP", "U", 400, 300, shapes)
	require.Len(t, sym.Pins, 5)
	require.Len(t, sym.Rects, 1)

	text := WriteSymbol(sym)
	require.Equal(t, 5, strings.Count(text, "(pin "))
	require.Equal(t, 1, strings.Count(text, "(rectangle"))

	require.Contains(t, text, `(rectangle (start -0.508 0.508) (end 0.508 -0.508)`)
	require.Contains(t, text, "(pin input line (at -0.508 0.254 180) (length 0.508)")
	require.Contains(t, text, "(pin output line (at 0.508 0 0) (length 0.508)")
	require.Contains(t, text, "(pin power_in line (at 0 0.508 270) (length 0.508)")
	require.Contains(t, text, "(pin unspecified line (at 0 -0.508 90) (length 0.508)")
	require.Contains(t, text, `(name "NC" (effects (font (size 1.27 1.27))))`)
	require.Contains(t, text, `(number "5" (effects (font (size 1.27 1.27)) hide))`)
	require.Contains(t, text, `(property "Reference" "U" (at 0 3.048 0)`)
	require.Contains(t, text, `(property "Value" "OPAMP" (at 0 -3.048 0)`)
}

func TestWriteSymbolLibrary(t *testing.T) {
	fragment := WriteSymbol(symbolFixture())

	v8 := WriteSymbolLibrary([]string{fragment}, V8)
	require.True(t, strings.HasPrefix(v8, "(kicad_symbol_lib\n"))
	require.Contains(t, v8, "(version 20231120)")
	require.NotContains(t, v8, "generator_version")
	require.True(t, strings.HasSuffix(v8, ")\n"))

	v9 := WriteSymbolLibrary([]string{fragment}, V9)
	require.Contains(t, v9, "(version 20241209)")
	require.Contains(t, v9, `(generator_version "9.0")`)
	require.Contains(t, v9, `(symbol "NE555"`)
}
