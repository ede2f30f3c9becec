package main

import (
	"fmt"
	"math"
	"os"

	"github.com/jisaf/Hexhaven/internal/campaign"
	"github.com/jisaf/Hexhaven/internal/hexgrid"
	"github.com/jisaf/Hexhaven/internal/raster"
	"github.com/jisaf/Hexhaven/internal/scenario"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <campaign-file> [<campaign-file> ...]\n", os.Args[0])
		os.Exit(1)
	}

	for i, path := range os.Args[1:] {
		if i > 0 {
			fmt.Println()
		}
		c, err := campaign.Load(path)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Campaign: %s (%d scenarios)\n", c.Name, len(c.Scenarios))
		for si := range c.Scenarios {
			inspectScenario(si, &c.Scenarios[si])
		}
	}
}

func inspectScenario(idx int, s *scenario.Scenario) {
	fmt.Printf("  Scenario[%d]: %q seq=%d", idx, s.Name, s.Sequence)
	if s.ID != "" {
		fmt.Printf(" id=%s", s.ID)
	}
	if s.Difficulty != nil {
		fmt.Printf(" difficulty=%d", *s.Difficulty)
	}
	fmt.Println()

	cells := s.DedupedCells()
	if len(cells) == 0 {
		fmt.Println("    (empty map)")
		return
	}

	axials := make([]hexgrid.Axial, len(cells))
	terrain := map[scenario.Terrain]int{}
	for i, c := range cells {
		axials[i] = c.Axial()
		terrain[c.Terrain.OrNormal()]++
	}
	b := hexgrid.BoundsOf(axials)
	fmt.Printf("    Bounds: Q[%d, %d] R[%d, %d], cells=%d (%d authored)\n",
		b.MinQ, b.MaxQ, b.MinR, b.MaxR, len(cells), len(s.MapHexes))

	cv := hexgrid.FitCanvas(b, raster.DefaultHexSize, raster.DefaultMargin)
	fmt.Printf("    Canvas: %dx%d px at hex size %d\n",
		int(math.Ceil(cv.Width)), int(math.Ceil(cv.Height)), raster.DefaultHexSize)
	fmt.Printf("    Terrain: normal=%d difficult=%d obstacle=%d\n",
		terrain[scenario.TerrainNormal], terrain[scenario.TerrainDifficult], terrain[scenario.TerrainObstacle])

	monsters, elite := 0, 0
	for _, g := range s.MonsterGroups {
		for i, p := range g.Positions {
			if p.Kind == scenario.KindInvalid {
				continue
			}
			monsters++
			if i < len(g.Elite) && g.Elite[i] {
				elite++
			}
		}
	}
	fmt.Printf("    Entities: players=%d monsters=%d (%d elite, %d invalid) treasures=%d objectives=%d\n",
		len(s.StartingPositions), monsters, elite, s.InvalidPositions(), len(s.Treasures), len(s.Objectives))

	// Engine-grid extent after the odd-q conversion
	first := axials[0].ToOffset()
	minCol, maxCol := first.Col, first.Col
	minRow, maxRow := first.Row, first.Row
	for _, a := range axials[1:] {
		o := a.ToOffset()
		if o.Col < minCol {
			minCol = o.Col
		}
		if o.Col > maxCol {
			maxCol = o.Col
		}
		if o.Row < minRow {
			minRow = o.Row
		}
		if o.Row > maxRow {
			maxRow = o.Row
		}
	}
	fmt.Printf("    Offset grid: cols [%d, %d], rows [%d, %d]\n", minCol, maxCol, minRow, maxRow)

	fmt.Println("    --- Map preview (offset grid) ---")
	grid := map[hexgrid.Offset]byte{}
	for _, c := range cells {
		ch := byte('.')
		switch c.Terrain.OrNormal() {
		case scenario.TerrainDifficult:
			ch = '~'
		case scenario.TerrainObstacle:
			ch = '#'
		}
		grid[c.Axial().ToOffset()] = ch
	}
	for _, o := range s.Objectives {
		for _, h := range o.Hexes {
			grid[h.ToOffset()] = 'O'
		}
	}
	for _, t := range s.Treasures {
		grid[t.Axial().ToOffset()] = 'T'
	}
	for _, g := range s.MonsterGroups {
		for _, p := range g.Positions {
			switch p.Kind {
			case scenario.KindAxial:
				grid[p.Axial().ToOffset()] = 'M'
			case scenario.KindCartesian:
				// Already engine-grid coordinates.
				grid[hexgrid.Offset{Col: p.X, Row: p.Y}] = 'M'
			}
		}
	}
	for _, sp := range s.StartingPositions {
		grid[sp.Axial().ToOffset()] = 'P'
	}
	for row := minRow; row <= maxRow; row++ {
		line := make([]byte, 0, (maxCol-minCol+1)*2)
		for col := minCol; col <= maxCol; col++ {
			ch, ok := grid[hexgrid.Offset{Col: col, Row: row}]
			if !ok {
				ch = ' '
			}
			line = append(line, ch, ' ')
		}
		fmt.Printf("    %s\n", line)
	}
}
