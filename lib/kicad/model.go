package kicad

import (
	"math"
	"strconv"
	"strings"

	"github.com/nilskiefer/kicad-jlcimport/lib/easyeda"
)

/*
	ModelPlacement computes the offset and rotation that align a part's
	3D mesh with the footprint origin. For SMD parts, and whenever no
	mesh data is at hand, the mesh already sits on the origin and only
	the declared height applies.

	Through-hole connectors are authored inconsistently in EasyEDA: the
	body often hangs off the pad-plane origin. When the model's declared
	origin drifts from the footprint origin in Y, the offset is rebuilt
	from the mesh bounding box. This correction is empirical, not exact.
	TODO: verify the connector branch against a wider set of THT parts.
*/
func ModelPlacement(fp *easyeda.Footprint) ([3]float64, [3]float64) {
	m := fp.Model

	offset := [3]float64{0, 0, m.Z / 100}
	rotate := m.Rotation

	if m.RawOBJ == "" {
		return offset, rotate
	}

	delta := easyeda.MilToMM(m.OriginY - fp.OriginY)
	if math.Abs(delta) <= 0.01 {
		return offset, rotate
	}

	bounds, ok := objBounds(m.RawOBJ)
	if !ok {
		return offset, rotate
	}

	cy := (bounds.minY + bounds.maxY) / 2

	yOff := delta
	if math.Abs(cy) >= 0.5 {
		// body center well off the origin: the authoring offset and
		// the mesh's own displacement stack up
		yOff = delta + cy
	}

	zOff := (bounds.maxZ - bounds.minZ) / 2
	if math.Abs(bounds.minZ) > math.Abs(bounds.maxZ) {
		// more body below the pad plane than above: sit the top
		// surface on the board
		zOff = bounds.maxZ
	}

	offset[1] = yOff
	offset[2] = zOff

	return offset, rotate
}

type meshBounds struct {
	minY, maxY float64
	minZ, maxZ float64
}

/*
	Y and Z extent over the v records of an OBJ document, in millimeters;
	placement only needs the vertical center and the depth. OBJ meshes
	from EasyEDA store hundredths of a millimeter.
*/
func objBounds(obj string) (meshBounds, bool) {
	bounds := meshBounds{}
	seen := false

	for _, line := range strings.Split(obj, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 4 || fields[0] != "v" {
			continue
		}

		_, errx := strconv.ParseFloat(fields[1], 64)
		y, erry := strconv.ParseFloat(fields[2], 64)
		z, errz := strconv.ParseFloat(fields[3], 64)
		if errx != nil || erry != nil || errz != nil {
			continue
		}

		y, z = y/100, z/100
		if !seen {
			bounds = meshBounds{y, y, z, z}
			seen = true
			continue
		}

		bounds.minY = math.Min(bounds.minY, y)
		bounds.maxY = math.Max(bounds.maxY, y)
		bounds.minZ = math.Min(bounds.minZ, z)
		bounds.maxZ = math.Max(bounds.maxZ, z)
	}

	return bounds, seen
}
