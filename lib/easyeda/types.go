package easyeda

/*
	Geometric primitives extracted from EasyEDA document shape strings.

	All dimensions are millimeters and all positions are relative to the
	document origin. Footprint shapes keep the source Y direction (down);
	symbol shapes are flipped to the KiCad schematic convention (Y up)
	when parsed.
*/

const MMPerMil = 0.0254

func MilToMM(v float64) float64 {
	return v * MMPerMil
}

type Point struct {
	X float64
	Y float64
}

type Pad struct {
	Shape    string // ELLIPSE, RECT, OVAL or POLYGON
	X        float64
	Y        float64
	Width    float64
	Height   float64
	Layer    string // "1" front, "2" back, "11" through-hole
	Number   string
	Drill    float64 // finished hole diameter, 0 for SMD pads
	Points   []Point // outline for POLYGON pads
	Rotation float64
	Slot     float64 // slot length for oval drills, 0 for round
}

type Track struct {
	Width  float64
	Layer  string
	Points []Point
}

/*
	An elliptical arc segment, stored start to end with the SVG large-arc
	and sweep flags. The three-point form KiCad wants is derived when the
	arc is written, not here.
*/
type Arc struct {
	Width    float64
	Layer    string
	Start    Point
	End      Point
	RadiusX  float64
	RadiusY  float64
	LargeArc bool
	Sweep    bool
}

type Circle struct {
	CX     float64
	CY     float64
	Radius float64
	Width  float64
	Layer  string
	Filled bool
}

/*
	A symbol rectangle. Height is negative when the source rectangle
	extended downward, since symbol Y is inverted at parse.
*/
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

type Polyline struct {
	Points []Point
	Filled bool
}

type Hole struct {
	X     float64
	Y     float64
	Drill float64 // diameter
}

/*
	A solid region outline. Kind is "npth" for board cutouts and "solid"
	for filled silkscreen shapes; everything else is dropped at parse.
*/
type Region struct {
	Layer  string
	Kind   string
	Points []Point
}

type PinKind string

const (
	PinUnspecified   PinKind = "unspecified"
	PinInput         PinKind = "input"
	PinOutput        PinKind = "output"
	PinBidirectional PinKind = "bidirectional"
	PinPower         PinKind = "power_in"
)

type Pin struct {
	Kind       PinKind
	X          float64
	Y          float64
	Rotation   float64
	Number     string
	Name       string
	ShowName   bool
	ShowNumber bool
	Length     float64
}

/*
	3D model reference attached to a footprint. Origin and Z stay in
	source units; the placement math happens on the KiCad side.
*/
type Model3D struct {
	UUID     string
	Title    string
	OriginX  float64
	OriginY  float64
	Z        float64
	Rotation [3]float64
	RawOBJ   string // OBJ text fetched separately, empty until loaded
}

type Footprint struct {
	Name         string
	LCSC         string
	Description  string
	Datasheet    string
	Manufacturer string

	// document origin in source units (mil)
	OriginX float64
	OriginY float64

	Pads    []Pad
	Tracks  []Track
	Arcs    []Arc
	Circles []Circle
	Holes   []Hole
	Regions []Region
	Model   *Model3D
}

type Symbol struct {
	Name          string
	Prefix        string
	LCSC          string
	Description   string
	Datasheet     string
	Manufacturer  string
	FootprintName string

	OriginX float64
	OriginY float64

	Rects     []Rect
	Circles   []Circle
	Polylines []Polyline
	Arcs      []Arc
	Pins      []Pin
}
