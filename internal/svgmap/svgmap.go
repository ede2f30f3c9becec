// Package svgmap renders scenario maps as SVG documents: terrain-colored
// hex grid with coordinate labels, entity markers, and a legend box.
package svgmap

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo/float"

	"github.com/jisaf/Hexhaven/internal/hexgrid"
	"github.com/jisaf/Hexhaven/internal/scenario"
)

// Standard map geometry, used when Options fields are zero.
const (
	DefaultHexSize = 50
	DefaultMargin  = 30
)

// Options control the map geometry.
type Options struct {
	HexSize float64
	Margin  float64
}

func (o Options) withDefaults() Options {
	if o.HexSize <= 0 {
		o.HexSize = DefaultHexSize
	}
	if o.Margin <= 0 {
		o.Margin = DefaultMargin
	}
	return o
}

const (
	colorNormal    = "#90EE90"
	colorDifficult = "#FFA500"
	colorObstacle  = "#8B0000"
	colorGrid      = "#00AA00"
	colorHazard    = "#FF0000"
	colorMonster   = "#FF4444"
	colorPlayer    = "#4444FF"
	colorGold      = "#FFD700"
	colorCanvas    = "#F5F5F5"
)

const (
	styleLabel  = `font-size="10" font-family="Arial" fill="#333" text-anchor="middle"`
	styleLegend = `font-size="10" font-family="Arial" fill="#333" text-anchor="start" font-weight="bold"`
	styleDetail = `font-size="9" font-family="Arial" fill="#333" text-anchor="start"`
	styleCoord  = `font-size="8" font-family="Arial" fill="#666" text-anchor="middle"`
)

func terrainStyle(t scenario.Terrain) string {
	switch t.OrNormal() {
	case scenario.TerrainDifficult:
		return fmt.Sprintf(`fill="%s" stroke="%s" stroke-width="1"`, colorDifficult, colorGrid)
	case scenario.TerrainObstacle:
		return fmt.Sprintf(`fill="%s" stroke="%s" stroke-width="1.5"`, colorObstacle, colorHazard)
	default:
		return fmt.Sprintf(`fill="%s" stroke="%s" stroke-width="1"`, colorNormal, colorGrid)
	}
}

// Render writes the scenario map as an SVG document. Scenarios with an
// empty map report scenario.ErrNoCells; structural problems surface as the
// validation error.
func Render(w io.Writer, s *scenario.Scenario, opts Options) error {
	if err := s.Validate(); err != nil {
		return err
	}
	opts = opts.withDefaults()

	bounds := hexgrid.BoundsOf(s.CellCoords())
	cv := hexgrid.FitCanvas(bounds, opts.HexSize, opts.Margin)

	canvas := svg.New(w)
	canvas.Start(cv.Width, cv.Height)
	canvas.Rect(0, 0, cv.Width, cv.Height, fmt.Sprintf(`fill="%s"`, colorCanvas))

	drawMap(canvas, s, cv.Origin, opts.HexSize)
	drawStartingPositions(canvas, s, cv.Origin, opts.HexSize)
	drawMonsters(canvas, s, cv.Origin, opts.HexSize)
	drawObjectives(canvas, s, cv.Origin, opts.HexSize)
	drawTreasures(canvas, s, cv.Origin, opts.HexSize)
	drawLegend(canvas, s)

	canvas.End()
	return nil
}

func drawMap(canvas *svg.SVG, s *scenario.Scenario, origin hexgrid.Point, size float64) {
	canvas.Gid("map")
	for _, c := range s.DedupedCells() {
		center := c.Axial().ToPixel(origin, size)
		xs, ys := cornerSlices(center, size)
		canvas.Polygon(xs, ys, terrainStyle(c.Terrain))
		canvas.Text(center.X, center.Y+3, fmt.Sprintf("%d,%d", c.Q, c.R), styleCoord)
	}
	canvas.Gend()
}

func drawStartingPositions(canvas *svg.SVG, s *scenario.Scenario, origin hexgrid.Point, size float64) {
	canvas.Gid("starting-positions")
	for _, sp := range s.StartingPositions {
		p := sp.Axial().ToPixel(origin, size)
		canvas.Circle(p.X, p.Y, 8, fmt.Sprintf(`fill="%s" opacity="0.8"`, colorPlayer))
		canvas.Text(p.X, p.Y+20, fmt.Sprintf("P%d", sp.Player+1), styleLabel)
	}
	canvas.Gend()
}

// drawMonsters places axial positions only: engine-grid and unrecognized
// entries have no authoritative spot on the pixel map and are skipped.
func drawMonsters(canvas *svg.SVG, s *scenario.Scenario, origin hexgrid.Point, size float64) {
	canvas.Gid("monsters")
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
			canvas.Circle(p.X, p.Y, r, fmt.Sprintf(`fill="%s" opacity="0.7"`, colorMonster))
		}
	}
	canvas.Gend()
}

func drawObjectives(canvas *svg.SVG, s *scenario.Scenario, origin hexgrid.Point, size float64) {
	canvas.Gid("objectives")
	for _, obj := range s.Objectives {
		for _, h := range obj.Hexes {
			p := h.ToPixel(origin, size)
			canvas.Rect(p.X-6, p.Y-6, 12, 12,
				fmt.Sprintf(`fill="none" stroke="%s" stroke-width="2" opacity="0.9"`, colorGold))
		}
	}
	canvas.Gend()
}

// starShape traces a ten-point star around the origin, sized to sit inside
// a hex marker.
var starShape = [10][2]float64{
	{0, -7}, {3, -2}, {7, -2}, {4, 1}, {5, 6},
	{0, 3}, {-5, 6}, {-4, 1}, {-7, -2}, {-3, -2},
}

func drawTreasures(canvas *svg.SVG, s *scenario.Scenario, origin hexgrid.Point, size float64) {
	canvas.Gid("treasures")
	for _, t := range s.Treasures {
		p := t.Axial().ToPixel(origin, size)
		xs := make([]float64, len(starShape))
		ys := make([]float64, len(starShape))
		for i, pt := range starShape {
			xs[i] = p.X + pt[0]
			ys[i] = p.Y + pt[1]
		}
		canvas.Polygon(xs, ys, fmt.Sprintf(`fill="%s"`, colorGold))
		canvas.Circle(p.X, p.Y, 5, fmt.Sprintf(`fill="%s" opacity="0.8"`, colorGold))
	}
	canvas.Gend()
}

func drawLegend(canvas *svg.SVG, s *scenario.Scenario) {
	difficulty := "?"
	if s.Difficulty != nil {
		difficulty = fmt.Sprintf("%d", *s.Difficulty)
	}

	canvas.Gid("legend")
	canvas.Rect(10, 10, 200, 120, `fill="white" stroke="#999" stroke-width="1" opacity="0.9"`)
	canvas.Text(20, 30, s.Name, styleLegend)
	canvas.Text(20, 45, "Difficulty: "+difficulty, styleDetail)

	swatches := []struct {
		y       float64
		terrain scenario.Terrain
		label   string
	}{
		{52, scenario.TerrainNormal, "Normal"},
		{72, scenario.TerrainDifficult, "Difficult"},
		{92, scenario.TerrainObstacle, "Obstacle"},
	}
	for _, sw := range swatches {
		canvas.Rect(15, sw.y, 12, 12, terrainStyle(sw.terrain))
		canvas.Text(35, sw.y+10, sw.label, styleDetail)
	}
	canvas.Gend()
}

func cornerSlices(center hexgrid.Point, size float64) ([]float64, []float64) {
	corners := hexgrid.Corners(center, size)
	xs := make([]float64, len(corners))
	ys := make([]float64, len(corners))
	for i, c := range corners {
		xs[i] = c.X
		ys[i] = c.Y
	}
	return xs, ys
}
