// Package hexgrid provides the axial-coordinate math shared by the map
// renderers and the engine seed converter: pixel projection for flat-top
// hexes, the odd-q offset grid the game engine addresses tiles by, and
// bounding-box helpers for canvas sizing.
package hexgrid

import "math"

var sqrt3 = math.Sqrt(3)

// Axial is a hex position in axial coordinates.
// The third cube coordinate s is derived: s = -q - r.
type Axial struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// S returns the implicit third cube coordinate.
func (a Axial) S() int {
	return -a.Q - a.R
}

// Point is a pixel position on a render canvas.
type Point struct {
	X float64
	Y float64
}

// Offset is a position on the odd-q offset grid (column/row addressing).
type Offset struct {
	Col int
	Row int
}

// ToPixel projects a onto the canvas: flat-top layout, columns spaced
// 1.5*size apart, odd columns shifted half a row down.
func (a Axial) ToPixel(origin Point, size float64) Point {
	return Point{
		X: origin.X + size*1.5*float64(a.Q),
		Y: origin.Y + size*(sqrt3/2*float64(a.Q)+sqrt3*float64(a.R)),
	}
}

// Corners returns the six corners of the hex centered on c, starting at the
// rightmost corner (angle 0) and stepping 60° per corner.
func Corners(c Point, size float64) [6]Point {
	var pts [6]Point
	for i := range pts {
		angle := math.Pi / 3 * float64(i)
		pts[i] = Point{
			X: c.X + size*math.Cos(angle),
			Y: c.Y + size*math.Sin(angle),
		}
	}
	return pts
}

// ToOffset converts a to the odd-q offset grid: col = q,
// row = r + (q - (q&1))/2. q-(q&1) is even for either sign of q, so the
// truncating division already floors.
func (a Axial) ToOffset() Offset {
	return Offset{
		Col: a.Q,
		Row: a.R + (a.Q-(a.Q&1))/2,
	}
}

// FromOffset is the inverse of ToOffset.
func FromOffset(o Offset) Axial {
	return Axial{
		Q: o.Col,
		R: o.Row - (o.Col-(o.Col&1))/2,
	}
}

// Bounds is the axial-space bounding box of a cell set.
type Bounds struct {
	MinQ, MaxQ int
	MinR, MaxR int
}

// BoundsOf returns the bounding box of cells. The zero Bounds stands in for
// an empty set.
func BoundsOf(cells []Axial) Bounds {
	if len(cells) == 0 {
		return Bounds{}
	}
	b := Bounds{
		MinQ: cells[0].Q, MaxQ: cells[0].Q,
		MinR: cells[0].R, MaxR: cells[0].R,
	}
	for _, c := range cells[1:] {
		if c.Q < b.MinQ {
			b.MinQ = c.Q
		}
		if c.Q > b.MaxQ {
			b.MaxQ = c.Q
		}
		if c.R < b.MinR {
			b.MinR = c.R
		}
		if c.R > b.MaxR {
			b.MaxR = c.R
		}
	}
	return b
}

// Canvas describes the pixel surface that frames a set of cells.
type Canvas struct {
	Width  float64
	Height float64
	Origin Point
}

// FitCanvas sizes a canvas around b so every hex of the given size fits with
// margin pixels of padding on all sides, and places the origin so that the
// (MinQ, MinR) hex lands fully inside the top-left margin.
func FitCanvas(b Bounds, size, margin float64) Canvas {
	return Canvas{
		Width:  float64(b.MaxQ-b.MinQ+2)*size*1.5 + 2*margin,
		Height: float64(b.MaxR-b.MinR+2)*size*sqrt3 + 2*margin,
		Origin: Point{
			X: margin - float64(b.MinQ)*size*1.5 + size*0.75,
			Y: margin - float64(b.MinR)*size*sqrt3 + size*sqrt3/2,
		},
	}
}

// neighborDirections are the six adjacent offsets in axial coordinates.
var neighborDirections = [6]Axial{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

// Neighbors returns the six adjacent coordinates.
func (a Axial) Neighbors() [6]Axial {
	var out [6]Axial
	for i, d := range neighborDirections {
		out[i] = Axial{Q: a.Q + d.Q, R: a.R + d.R}
	}
	return out
}

// Distance returns the hex distance between a and b: the maximum absolute
// difference of the cube coordinates.
func Distance(a, b Axial) int {
	dq := abs(a.Q - b.Q)
	dr := abs(a.R - b.R)
	ds := abs(a.S() - b.S())
	max := dq
	if dr > max {
		max = dr
	}
	if ds > max {
		max = ds
	}
	return max
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
