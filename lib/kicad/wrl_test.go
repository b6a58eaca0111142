package kicad

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const objFixture = `# exported from EasyEDA
newmtl red
Kd 1 0 0
endmtl
newmtl gray
endmtl
v 254 0 0
v 0 254 0
v 0 0 254
v 254 254 0
usemtl red
f 1 2 3
usemtl gray
f 2/1 3/2 4/3
`

func TestOBJToVRML(t *testing.T) {
	text, err := OBJToVRML(objFixture)
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(text, "#VRML V2.0 utf8\n"))
	require.Contains(t, text, "diffuseColor 1 0 0")
	// a material without Kd keeps the default gray
	require.Contains(t, text, "diffuseColor 0.8 0.8 0.8")

	// 254 obj units are 2.54mm, one VRML unit
	require.Contains(t, text, "1 0 0,")

	// the vertex list is defined once and shared
	require.Equal(t, 1, strings.Count(text, "DEF VERTEXES"))
	require.Equal(t, 1, strings.Count(text, "USE VERTEXES"))
	require.Equal(t, 2, strings.Count(text, "Shape {"))

	// face indices shift to zero-based; slash references keep the vertex
	require.Contains(t, text, "0, 1, 2, -1,")
	require.Contains(t, text, "1, 2, 3, -1,")
}

func TestOBJToVRMLRejectsEmpty(t *testing.T) {
	_, err := OBJToVRML("")
	require.ErrorContains(t, err, "no vertices")

	_, err = OBJToVRML("v 1 1 1\nv 2 2 2\nv 3 3 3\n")
	require.ErrorContains(t, err, "no faces")

	// a face referencing a missing vertex is dropped
	_, err = OBJToVRML("v 1 1 1\nv 2 2 2\nv 3 3 3\nf 1 2 9\n")
	require.ErrorContains(t, err, "no faces")
}
