package svgmap

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/jisaf/Hexhaven/internal/hexgrid"
	"github.com/jisaf/Hexhaven/internal/scenario"
)

func renderScenario(t *testing.T) *scenario.Scenario {
	t.Helper()
	d := 2
	return &scenario.Scenario{
		Name:       "The Broken Seal",
		Sequence:   1,
		Difficulty: &d,
		MapHexes: []scenario.HexCell{
			{Q: 0, R: 0, Terrain: scenario.TerrainNormal},
			{Q: 1, R: 0, Terrain: scenario.TerrainDifficult},
			{Q: 0, R: 0, Terrain: scenario.TerrainObstacle},
		},
		StartingPositions: []scenario.StartingPosition{{Q: 0, R: 0, Player: 0}},
		MonsterGroups: []scenario.MonsterGroup{{
			Type: "cultist",
			Positions: []scenario.Position{
				{Kind: scenario.KindAxial, Q: 1, R: 0},
				{Kind: scenario.KindCartesian, X: 3, Y: 2},
				{Kind: scenario.KindInvalid},
			},
			Elite: []bool{true, false, false},
		}},
		Objectives: []scenario.Objective{{
			ID:    "obj-1",
			Type:  "collect-items",
			Hexes: []hexgrid.Axial{{Q: 1, R: 0}},
		}},
		Treasures: []scenario.Treasure{{ID: "chest", Q: 0, R: 0}},
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, renderScenario(t), Options{}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Fatalf("not an SVG document:\n%s", out)
	}
	for _, id := range []string{
		`id="map"`,
		`id="starting-positions"`,
		`id="monsters"`,
		`id="objectives"`,
		`id="treasures"`,
		`id="legend"`,
	} {
		if !strings.Contains(out, id) {
			t.Errorf("missing layer %s", id)
		}
	}

	// 2 distinct cells + 1 treasure star.
	if got := strings.Count(out, "<polygon"); got != 3 {
		t.Errorf("polygons: got %d, want 3", got)
	}
	// 1 player + 1 axial monster + 1 treasure accent. The engine-grid and
	// unrecognized monster entries must not be drawn.
	if got := strings.Count(out, "<circle"); got != 3 {
		t.Errorf("circles: got %d, want 3", got)
	}
	// Background + 1 objective box + legend box + 3 swatches.
	if got := strings.Count(out, "<rect"); got != 6 {
		t.Errorf("rects: got %d, want 6", got)
	}

	if !strings.Contains(out, ">0,0</text>") || !strings.Contains(out, ">1,0</text>") {
		t.Error("missing coordinate labels")
	}
	if !strings.Contains(out, ">P1</text>") {
		t.Error("missing player label")
	}
	if !strings.Contains(out, "The Broken Seal") || !strings.Contains(out, "Difficulty: 2") {
		t.Error("missing legend content")
	}

	// The duplicate (0,0) cell keeps its last terrain: one obstacle fill on
	// the map plus the legend swatch.
	if got := strings.Count(out, colorObstacle); got != 2 {
		t.Errorf("obstacle fills: got %d, want 2", got)
	}
}

func TestRenderUnknownDifficulty(t *testing.T) {
	s := renderScenario(t)
	s.Difficulty = nil
	var buf bytes.Buffer
	if err := Render(&buf, s, Options{}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Difficulty: ?") {
		t.Error("missing unknown-difficulty placeholder")
	}
}

func TestRenderSkipsEmptyMap(t *testing.T) {
	s := &scenario.Scenario{Name: "Empty", Sequence: 1, MapHexes: []scenario.HexCell{}}
	var buf bytes.Buffer
	err := Render(&buf, s, Options{})
	if !errors.Is(err, scenario.ErrNoCells) {
		t.Fatalf("got %v, want ErrNoCells", err)
	}
	if buf.Len() != 0 {
		t.Errorf("no output expected for skipped scenario, got %d bytes", buf.Len())
	}
}

func TestRenderValidates(t *testing.T) {
	s := renderScenario(t)
	s.Name = ""
	var mf *scenario.MissingFieldError
	if err := Render(&bytes.Buffer{}, s, Options{}); !errors.As(err, &mf) {
		t.Fatalf("got %v, want MissingFieldError", err)
	}
}

func TestRenderHexSizeScalesCanvas(t *testing.T) {
	s := renderScenario(t)
	var small, large bytes.Buffer
	if err := Render(&small, s, Options{HexSize: 20, Margin: 10}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if err := Render(&large, s, Options{HexSize: 80, Margin: 10}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if small.Len() == 0 || large.Len() == 0 {
		t.Fatal("empty render output")
	}
	if small.String() == large.String() {
		t.Error("hex size had no effect on output")
	}
}
