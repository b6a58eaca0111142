package easyeda

import (
	"fmt"
	"regexp"
	"strings"
)

var lcscRe = regexp.MustCompile(`^C\d+$`)

/*
	NormalizeLCSC validates a part number of the form C plus digits,
	tolerating stray whitespace and lowercase input.
*/
func NormalizeLCSC(id string) (string, error) {
	id = strings.ToUpper(strings.TrimSpace(id))
	if !lcscRe.MatchString(id) {
		return "", fmt.Errorf("%q is not an LCSC part number", id)
	}

	return id, nil
}

/*
	The c_para map on each document head carries the catalog fields the
	editor shows. Keys differ between symbol and footprint documents, so
	lookups go through a small fallback chain.
*/
func (h Head) para(keys ...string) string {
	for _, k := range keys {
		if v, ok := h.CPara[k]; ok && v != "" {
			return v
		}
	}

	return ""
}

func (r *ComponentResult) lcsc() string {
	if r.SZLCSC.Number != "" {
		return r.SZLCSC.Number
	}

	return r.DataStr.Head.para("BOM_Supplier Part", "Supplier Part")
}

func (r *ComponentResult) MFRPart() string {
	return r.DataStr.Head.para("BOM_Manufacturer Part", "Manufacturer Part")
}

/*
	Footprint assembles the parsed footprint from the package document,
	catalog fields included.
*/
func (r *ComponentResult) Footprint() *Footprint {
	detail := r.PackageDetail
	name := detail.Title
	if name == "" {
		name = detail.DataStr.Head.para("package", "name")
	}

	fp := ParseFootprint(name, detail.DataStr.Head.X, detail.DataStr.Head.Y, detail.DataStr.Shape)
	fp.LCSC = r.lcsc()
	fp.Description = r.Description
	fp.Datasheet = r.SZLCSC.URL
	fp.Manufacturer = r.DataStr.Head.para("BOM_Manufacturer", "Manufacturer")

	return fp
}

/*
	Symbol assembles the parsed symbol from the schematic document. The
	reference prefix loses the trailing placeholder: "U?" becomes "U".
*/
func (r *ComponentResult) Symbol() *Symbol {
	name := r.DataStr.Head.para("name")
	if name == "" {
		name = r.Title
	}

	prefix := strings.TrimSuffix(r.DataStr.Head.para("pre"), "?")
	if prefix == "" {
		prefix = "U"
	}

	sym := ParseSymbol(name, prefix, r.DataStr.Head.X, r.DataStr.Head.Y, r.DataStr.Shape)
	sym.LCSC = r.lcsc()
	sym.Description = r.Description
	sym.Datasheet = r.SZLCSC.URL
	sym.Manufacturer = r.DataStr.Head.para("BOM_Manufacturer", "Manufacturer")
	sym.FootprintName = r.PackageDetail.Title
	if sym.FootprintName == "" {
		sym.FootprintName = r.DataStr.Head.para("package")
	}

	return sym
}
