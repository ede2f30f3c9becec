// Package raster renders scenario maps to bitmap images for WebP export:
// terrain-colored hexes over optional background artwork, entity markers,
// and coordinate labels. Shapes are drawn supersampled and filtered down
// for clean edges.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/jisaf/Hexhaven/internal/artwork"
	"github.com/jisaf/Hexhaven/internal/gameformat"
	"github.com/jisaf/Hexhaven/internal/hexgrid"
	"github.com/jisaf/Hexhaven/internal/scenario"
)

// Standard geometry and quality settings, used when Options fields are
// zero.
const (
	DefaultHexSize     = 50
	DefaultMargin      = 30
	DefaultSupersample = 2
)

// Options control raster geometry and quality. BackgroundRef is the
// canonical artwork stem tried when the scenario names no background image
// of its own.
type Options struct {
	HexSize       float64
	Margin        float64
	Supersample   int
	BackgroundRef string
}

func (o Options) withDefaults() Options {
	if o.HexSize <= 0 {
		o.HexSize = DefaultHexSize
	}
	if o.Margin <= 0 {
		o.Margin = DefaultMargin
	}
	if o.Supersample <= 0 {
		o.Supersample = DefaultSupersample
	}
	return o
}

var (
	colCanvas    = color.NRGBA{0xF5, 0xF5, 0xF5, 0xFF}
	colNormal    = color.NRGBA{0x90, 0xEE, 0x90, 0xFF}
	colDifficult = color.NRGBA{0xFF, 0xA5, 0x00, 0xFF}
	colObstacle  = color.NRGBA{0x8B, 0x00, 0x00, 0xFF}
	colGrid      = color.NRGBA{0x00, 0xAA, 0x00, 0xFF}
	colHazard    = color.NRGBA{0xFF, 0x00, 0x00, 0xFF}
	colMonster   = color.NRGBA{0xFF, 0x44, 0x44, 0xB2}
	colPlayer    = color.NRGBA{0x44, 0x44, 0xFF, 0xCC}
	colGold      = color.NRGBA{0xFF, 0xD7, 0x00, 0xFF}
	colGoldBox   = color.NRGBA{0xFF, 0xD7, 0x00, 0xE5}
	colGoldSoft  = color.NRGBA{0xFF, 0xD7, 0x00, 0xCC}
	colCoord     = color.NRGBA{0x66, 0x66, 0x66, 0xFF}
	colLabel     = color.NRGBA{0x33, 0x33, 0x33, 0xFF}
)

func terrainColors(t scenario.Terrain) (fill, stroke color.NRGBA, strokeWidth float64) {
	switch t.OrNormal() {
	case scenario.TerrainDifficult:
		return colDifficult, colGrid, 1
	case scenario.TerrainObstacle:
		return colObstacle, colHazard, 1.5
	default:
		return colNormal, colGrid, 1
	}
}

// RenderScenario draws the scenario map and returns the finished image.
// Scenarios with an empty map report scenario.ErrNoCells; structural
// problems surface as the validation error. A nil resolver renders without
// artwork.
func RenderScenario(s *scenario.Scenario, res artwork.Resolver, opts Options) (*image.NRGBA, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()
	ss := float64(opts.Supersample)

	bounds := hexgrid.BoundsOf(s.CellCoords())
	base := hexgrid.FitCanvas(bounds, opts.HexSize, opts.Margin)
	outW := int(math.Ceil(base.Width))
	outH := int(math.Ceil(base.Height))

	cv := hexgrid.FitCanvas(bounds, opts.HexSize*ss, opts.Margin*ss)
	img := image.NewNRGBA(image.Rect(0, 0, int(math.Ceil(cv.Width)), int(math.Ceil(cv.Height))))
	draw.Draw(img, img.Bounds(), image.NewUniform(colCanvas), image.Point{}, draw.Src)

	drawBackground(img, s, res, opts.BackgroundRef, ss)

	size := opts.HexSize * ss
	cells := s.DedupedCells()
	for _, c := range cells {
		drawHex(img, c, cv.Origin, size, ss)
	}
	drawEntities(img, s, cv.Origin, size, ss)

	out := Downsample(img, outW, outH)
	drawLabels(out, s, cells, base.Origin, opts.HexSize)
	return out, nil
}

func drawHex(img *image.NRGBA, c scenario.HexCell, origin hexgrid.Point, size, ss float64) {
	fill, stroke, sw := terrainColors(c.Terrain)
	center := c.Axial().ToPixel(origin, size)
	fillPolygon(img, hexPoints(center, size), stroke)
	fillPolygon(img, hexPoints(center, size-sw*ss), fill)
}

func drawEntities(img *image.NRGBA, s *scenario.Scenario, origin hexgrid.Point, size, ss float64) {
	for _, sp := range s.StartingPositions {
		p := sp.Axial().ToPixel(origin, size)
		fillDisc(img, p.X, p.Y, 8*ss, colPlayer)
	}

	for _, g := range s.MonsterGroups {
		for i, pos := range g.Positions {
			if pos.Kind != scenario.KindAxial {
				continue
			}
			p := pos.Axial().ToPixel(origin, size)
			r := 6.0
			if i < len(g.Elite) && g.Elite[i] {
				r = 8
			}
			fillDisc(img, p.X, p.Y, r*ss, colMonster)
		}
	}

	for _, obj := range s.Objectives {
		for _, h := range obj.Hexes {
			p := h.ToPixel(origin, size)
			strokeSquare(img, p.X, p.Y, 12*ss, 2*ss, colGoldBox)
		}
	}

	for _, t := range s.Treasures {
		p := t.Axial().ToPixel(origin, size)
		pts := make([]hexgrid.Point, len(starShape))
		for i, sp := range starShape {
			pts[i] = hexgrid.Point{X: p.X + sp[0]*ss, Y: p.Y + sp[1]*ss}
		}
		fillPolygon(img, pts, colGold)
		fillDisc(img, p.X, p.Y, 5*ss, colGoldSoft)
	}
}

// drawLabels runs after downsampling so the fixed-size font stays crisp.
func drawLabels(img *image.NRGBA, s *scenario.Scenario, cells []scenario.HexCell, origin hexgrid.Point, size float64) {
	for _, c := range cells {
		p := c.Axial().ToPixel(origin, size)
		drawText(img, p.X, p.Y, fmt.Sprintf("%d,%d", c.Q, c.R), colCoord)
	}
	for _, sp := range s.StartingPositions {
		p := sp.Axial().ToPixel(origin, size)
		drawText(img, p.X, p.Y+20, fmt.Sprintf("P%d", sp.Player+1), colLabel)
	}
}

// starShape traces a ten-point star around the origin, sized to sit inside
// a hex marker.
var starShape = [10][2]float64{
	{0, -7}, {3, -2}, {7, -2}, {4, 1}, {5, 6},
	{0, 3}, {-5, 6}, {-4, 1}, {-7, -2}, {-3, -2},
}

// drawBackground composites the scenario's artwork under the map: scaled
// to cover the canvas (times the authored scale), shifted by the authored
// offset, and blended at the authored opacity.
func drawBackground(img *image.NRGBA, s *scenario.Scenario, res artwork.Resolver, fallbackRef string, ss float64) {
	if res == nil {
		return
	}

	var refs []string
	if s.Background != nil && s.Background.Image != "" {
		refs = append(refs, s.Background.Image)
	}
	if fallbackRef != "" {
		refs = append(refs, fallbackRef)
	}
	var art *image.NRGBA
	for _, ref := range refs {
		if art = res.Resolve(ref); art != nil {
			break
		}
	}
	if art == nil {
		return
	}

	opacity := gameformat.DefaultBackgroundOpacity
	scale := gameformat.DefaultBackgroundScale
	var offX, offY float64
	if bg := s.Background; bg != nil {
		if bg.Opacity != nil {
			opacity = *bg.Opacity
		}
		if bg.Scale != nil {
			scale = *bg.Scale
		}
		offX, offY = bg.OffsetX, bg.OffsetY
	}
	if opacity <= 0 || scale <= 0 {
		return
	}
	if opacity > 1 {
		opacity = 1
	}

	w := float64(img.Bounds().Dx())
	h := float64(img.Bounds().Dy())
	aw := float64(art.Bounds().Dx())
	ah := float64(art.Bounds().Dy())
	if aw == 0 || ah == 0 {
		return
	}

	cover := math.Max(w/aw, h/ah) * scale
	sw := int(math.Ceil(aw * cover))
	sh := int(math.Ceil(ah * cover))
	scaled := image.NewNRGBA(image.Rect(0, 0, sw, sh))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), art, art.Bounds(), draw.Src, nil)

	x0 := int(math.Round((w-float64(sw))/2 + offX*ss))
	y0 := int(math.Round((h-float64(sh))/2 + offY*ss))
	mask := image.NewUniform(color.Alpha{A: uint8(opacity*255 + 0.5)})
	draw.DrawMask(img, image.Rect(x0, y0, x0+sw, y0+sh), scaled, image.Point{}, mask, image.Point{}, draw.Over)
}

func hexPoints(center hexgrid.Point, size float64) []hexgrid.Point {
	corners := hexgrid.Corners(center, size)
	return corners[:]
}
