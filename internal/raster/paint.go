package raster

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/jisaf/Hexhaven/internal/hexgrid"
)

// fillPolygon rasterizes a closed polygon with antialiased edges. The
// rasterizer covers only the polygon's bounding box, with path
// coordinates shifted to match.
func fillPolygon(img *image.NRGBA, pts []hexgrid.Point, col color.NRGBA) {
	if len(pts) < 3 {
		return
	}

	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	x0 := int(math.Floor(minX))
	y0 := int(math.Floor(minY))
	x1 := int(math.Ceil(maxX))
	y1 := int(math.Ceil(maxY))
	if x1 <= x0 || y1 <= y0 {
		return
	}

	z := vector.NewRasterizer(x1-x0, y1-y0)
	z.MoveTo(float32(pts[0].X-float64(x0)), float32(pts[0].Y-float64(y0)))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.X-float64(x0)), float32(p.Y-float64(y0)))
	}
	z.ClosePath()
	z.Draw(img, image.Rect(x0, y0, x1, y1), image.NewUniform(col), image.Point{})
}

const discSegments = 24

func fillDisc(img *image.NRGBA, cx, cy, r float64, col color.NRGBA) {
	pts := make([]hexgrid.Point, discSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / discSegments
		pts[i] = hexgrid.Point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
	}
	fillPolygon(img, pts, col)
}

func fillRect(img *image.NRGBA, x, y, w, h float64, col color.NRGBA) {
	fillPolygon(img, []hexgrid.Point{
		{X: x, Y: y},
		{X: x + w, Y: y},
		{X: x + w, Y: y + h},
		{X: x, Y: y + h},
	}, col)
}

// strokeSquare outlines a square of the given side length centered on
// (cx, cy), drawn as four strips of width lw.
func strokeSquare(img *image.NRGBA, cx, cy, side, lw float64, col color.NRGBA) {
	half := side / 2
	x, y := cx-half, cy-half
	fillRect(img, x, y, side, lw, col)
	fillRect(img, x, y+side-lw, side, lw, col)
	fillRect(img, x, y+lw, lw, side-2*lw, col)
	fillRect(img, x+side-lw, y+lw, lw, side-2*lw, col)
}

// drawText renders a label centered horizontally on x with its baseline a
// few pixels under y, matching the small annotations on the vector maps.
func drawText(img *image.NRGBA, x, y float64, text string, col color.NRGBA) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
	}
	adv := d.MeasureString(text)
	d.Dot = fixed.Point26_6{
		X: fixed.Int26_6(x*64) - adv/2,
		Y: fixed.Int26_6((y + 4) * 64),
	}
	d.DrawString(text)
}
