package easyeda

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeLCSC(t *testing.T) {
	id, err := NormalizeLCSC(" c25804 ")
	require.NoError(t, err)
	require.Equal(t, "C25804", id)

	id, err = NormalizeLCSC("C7593")
	require.NoError(t, err)
	require.Equal(t, "C7593", id)

	for _, bad := range []string{"", "25804", "CXYZ", "C25804X", "LCSC C25804"} {
		_, err := NormalizeLCSC(bad)
		require.Error(t, err, "expected %q to be rejected", bad)
	}
}

func testComponentResult() *ComponentResult {
	result := &ComponentResult{
		Title:       "NE555DR",
		Description: "single precision timer",
	}
	result.SZLCSC.Number = "C7593"
	result.SZLCSC.URL = "https://lcsc.com/product-detail/C7593.html"

	result.DataStr = DataStr{
		Head: Head{
			CPara: map[string]string{
				"name":                  "NE555DR",
				"pre":                   "U?",
				"package":               "SOIC-8",
				"BOM_Manufacturer":      "Texas Instruments",
				"BOM_Manufacturer Part": "NE555DR",
			},
			X: 400,
			Y: 300,
		},
		Shape: symbolShapes,
	}

	result.PackageDetail.Title = "SOIC-8_150mil"
	result.PackageDetail.DataStr = DataStr{
		Head:  Head{X: 4000, Y: 3000},
		Shape: footprintShapes,
	}

	return result
}

func TestComponentResultFootprint(t *testing.T) {
	fp := testComponentResult().Footprint()

	require.Equal(t, "SOIC-8_150mil", fp.Name)
	require.Equal(t, "C7593", fp.LCSC)
	require.Equal(t, "single precision timer", fp.Description)
	require.Equal(t, "https://lcsc.com/product-detail/C7593.html", fp.Datasheet)
	require.Equal(t, "Texas Instruments", fp.Manufacturer)
	require.Equal(t, 4000.0, fp.OriginX)
	require.Len(t, fp.Pads, 4)
}

func TestComponentResultSymbol(t *testing.T) {
	sym := testComponentResult().Symbol()

	require.Equal(t, "NE555DR", sym.Name)
	require.Equal(t, "U", sym.Prefix)
	require.Equal(t, "C7593", sym.LCSC)
	require.Equal(t, "SOIC-8_150mil", sym.FootprintName)
	require.Len(t, sym.Pins, 3)
}

func TestComponentResultFallbacks(t *testing.T) {
	result := testComponentResult()
	result.SZLCSC.Number = ""
	result.DataStr.Head.CPara["BOM_Supplier Part"] = "C7593"
	delete(result.DataStr.Head.CPara, "name")
	delete(result.DataStr.Head.CPara, "pre")
	result.PackageDetail.Title = ""

	sym := result.Symbol()
	require.Equal(t, "C7593", sym.LCSC)
	require.Equal(t, "NE555DR", sym.Name) // falls back to the catalog title
	require.Equal(t, "U", sym.Prefix)
	require.Equal(t, "SOIC-8", sym.FootprintName)
}

func TestComponentResultMFRPart(t *testing.T) {
	result := testComponentResult()
	require.Equal(t, "NE555DR", result.MFRPart())

	delete(result.DataStr.Head.CPara, "BOM_Manufacturer Part")
	require.Equal(t, "", result.MFRPart())

	result.DataStr.Head.CPara["Manufacturer Part"] = "NE555P"
	require.Equal(t, "NE555P", result.MFRPart())
}
