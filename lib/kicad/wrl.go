package kicad

import (
	"fmt"
	"strconv"
	"strings"
)

/*
	EasyEDA serves 3D meshes as a single OBJ document with the material
	table inlined ahead of the geometry. KiCad wants VRML 2.0, with one
	unit equal to 0.1 inch, so every coordinate is scaled from the OBJ's
	hundredths of a millimeter down to mm and then divided by 2.54.
*/

const vrmlUnit = 2.54

type objMaterial struct {
	name    string
	diffuse [3]float64
}

type objGroup struct {
	material string
	faces    [][]int
}

/*
	OBJToVRML transcodes an OBJ document into VRML 2.0 text. Faces are
	grouped per material into one Shape each; the shared vertex list is
	defined once and reused. Vertices with fewer than three coordinates
	and faces referencing them are skipped.
*/
func OBJToVRML(obj string) (string, error) {
	points := [][3]float64{}
	materials := map[string]objMaterial{}
	groups := []*objGroup{}

	var current *objMaterial
	var group *objGroup

	for _, line := range strings.Split(obj, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "newmtl":
			if len(fields) < 2 {
				continue
			}
			materials[fields[1]] = objMaterial{
				name:    fields[1],
				diffuse: [3]float64{0.8, 0.8, 0.8},
			}
			m := materials[fields[1]]
			current = &m
		case "Kd":
			if current == nil || len(fields) < 4 {
				continue
			}
			for i := 0; i < 3; i++ {
				if v, err := strconv.ParseFloat(fields[i+1], 64); err == nil {
					current.diffuse[i] = v
				}
			}
			materials[current.name] = *current
		case "endmtl":
			current = nil
		case "v":
			if len(fields) < 4 {
				continue
			}
			p := [3]float64{}
			ok := true
			for i := 0; i < 3; i++ {
				v, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					ok = false
					break
				}
				p[i] = v / 100 / vrmlUnit
			}
			if ok {
				points = append(points, p)
			}
		case "usemtl":
			name := ""
			if len(fields) > 1 {
				name = fields[1]
			}
			group = &objGroup{material: name}
			groups = append(groups, group)
		case "f":
			if group == nil {
				group = &objGroup{}
				groups = append(groups, group)
			}
			face := []int{}
			for _, f := range fields[1:] {
				// "12/3/4" style references; only the vertex matters
				idx := strings.SplitN(f, "/", 2)[0]
				v, err := strconv.Atoi(idx)
				if err != nil || v < 1 || v > len(points) {
					face = nil
					break
				}
				face = append(face, v-1)
			}
			if len(face) >= 3 {
				group.faces = append(group.faces, face)
			}
		}
	}

	if len(points) == 0 {
		return "", fmt.Errorf("OBJ document has no vertices")
	}

	faces := 0
	for _, g := range groups {
		faces += len(g.faces)
	}
	if faces == 0 {
		return "", fmt.Errorf("OBJ document has no faces")
	}

	b := &strings.Builder{}
	b.WriteString("#VRML V2.0 utf8\n")
	b.WriteString("# exported from an EasyEDA 3D model\n")

	first := true
	for _, g := range groups {
		if len(g.faces) == 0 {
			continue
		}

		diffuse := [3]float64{0.8, 0.8, 0.8}
		if m, ok := materials[g.material]; ok {
			diffuse = m.diffuse
		}

		b.WriteString("Shape {\n")
		b.WriteString("  appearance Appearance {\n")
		b.WriteString("    material Material {\n")
		fmt.Fprintf(b, "      diffuseColor %s %s %s\n",
			formatFloat(diffuse[0]), formatFloat(diffuse[1]), formatFloat(diffuse[2]))
		b.WriteString("    }\n")
		b.WriteString("  }\n")
		b.WriteString("  geometry IndexedFaceSet {\n")

		if first {
			b.WriteString("    coord DEF VERTEXES Coordinate {\n")
			b.WriteString("      point [\n")
			for _, p := range points {
				fmt.Fprintf(b, "        %s %s %s,\n",
					formatFloat(p[0]), formatFloat(p[1]), formatFloat(p[2]))
			}
			b.WriteString("      ]\n")
			b.WriteString("    }\n")
			first = false
		} else {
			b.WriteString("    coord USE VERTEXES\n")
		}

		b.WriteString("    coordIndex [\n")
		for _, face := range g.faces {
			b.WriteString("      ")
			for _, idx := range face {
				b.WriteString(strconv.Itoa(idx))
				b.WriteString(", ")
			}
			b.WriteString("-1,\n")
		}
		b.WriteString("    ]\n")
		b.WriteString("  }\n")
		b.WriteString("}\n")
	}

	return b.String(), nil
}
