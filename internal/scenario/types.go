// Package scenario defines the campaign authoring model: scenarios as they
// appear in campaign JSON files, including the polymorphic entity positions
// that may be written in axial or engine-grid form.
package scenario

import (
	"errors"
	"fmt"

	"github.com/jisaf/Hexhaven/internal/hexgrid"
)

// Terrain classifies a map cell.
type Terrain string

const (
	TerrainNormal    Terrain = "normal"
	TerrainDifficult Terrain = "difficult"
	TerrainObstacle  Terrain = "obstacle"
)

// OrNormal returns t, with the empty value defaulted to normal.
func (t Terrain) OrNormal() Terrain {
	if t == "" {
		return TerrainNormal
	}
	return t
}

// HexCell is one authored map cell.
type HexCell struct {
	Q       int     `json:"q"`
	R       int     `json:"r"`
	Terrain Terrain `json:"terrain,omitempty"`
}

// Axial returns the cell's coordinate.
func (c HexCell) Axial() hexgrid.Axial {
	return hexgrid.Axial{Q: c.Q, R: c.R}
}

// StartingPosition is a player start marker. Player is the zero-based seat
// index.
type StartingPosition struct {
	Q      int `json:"q"`
	R      int `json:"r"`
	Player int `json:"player"`
}

// Axial returns the marker's coordinate.
func (p StartingPosition) Axial() hexgrid.Axial {
	return hexgrid.Axial{Q: p.Q, R: p.R}
}

// MonsterGroup is an authored monster placement group. Elite runs parallel
// to Positions by input index; it may be shorter than Positions.
type MonsterGroup struct {
	Type      string     `json:"type,omitempty"`
	Positions []Position `json:"positions,omitempty"`
	Elite     []bool     `json:"elite,omitempty"`
	Level     string     `json:"level,omitempty"`
}

// Objective is an authored scenario objective. Hexes marks map cells the
// renderers highlight for it.
type Objective struct {
	ID          string          `json:"id,omitempty"`
	Type        string          `json:"type,omitempty"`
	Description string          `json:"description,omitempty"`
	Hexes       []hexgrid.Axial `json:"hexes,omitempty"`
}

// Background describes the artwork underlay for a scenario map. Opacity and
// Scale are pointers so an absent field can take its non-zero default.
type Background struct {
	Image   string   `json:"image,omitempty"`
	Opacity *float64 `json:"opacity,omitempty"`
	OffsetX float64  `json:"offsetX,omitempty"`
	OffsetY float64  `json:"offsetY,omitempty"`
	Scale   *float64 `json:"scale,omitempty"`
}

// Scenario is one authored scenario.
type Scenario struct {
	ID                string             `json:"id,omitempty"`
	Name              string             `json:"name"`
	Description       string             `json:"description,omitempty"`
	Sequence          int                `json:"sequence"`
	Difficulty        *int               `json:"difficulty,omitempty"`
	MapHexes          []HexCell          `json:"mapHexes"`
	StartingPositions []StartingPosition `json:"startingPositions,omitempty"`
	MonsterGroups     []MonsterGroup     `json:"monsterGroups,omitempty"`
	Objectives        []Objective        `json:"objectives,omitempty"`
	Treasures         []Treasure         `json:"treasures,omitempty"`
	Background        *Background        `json:"background,omitempty"`
	UnlocksScenarios  []string           `json:"unlocksScenarios,omitempty"`
	IsStarting        bool               `json:"isStarting,omitempty"`
}

// ErrNoCells marks a scenario whose map is present but empty. Callers skip
// such scenarios rather than failing the run.
var ErrNoCells = errors.New("scenario has no map cells")

// MissingFieldError reports a scenario missing a structurally required
// field.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// Validate checks the structural requirements: name, a positive sequence,
// and a mapHexes list. An empty (but present) map reports ErrNoCells so
// callers can distinguish skip from failure.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return &MissingFieldError{Field: "name"}
	}
	if s.Sequence <= 0 {
		return &MissingFieldError{Field: "sequence"}
	}
	if s.MapHexes == nil {
		return &MissingFieldError{Field: "mapHexes"}
	}
	if len(s.MapHexes) == 0 {
		return ErrNoCells
	}
	return nil
}

// CellCoords returns the coordinates of every map cell, duplicates
// included, in authored order.
func (s *Scenario) CellCoords() []hexgrid.Axial {
	coords := make([]hexgrid.Axial, len(s.MapHexes))
	for i, c := range s.MapHexes {
		coords[i] = c.Axial()
	}
	return coords
}

// DedupedCells collapses duplicate cell coordinates: each coordinate keeps
// its first occurrence's place in the list and its last occurrence's
// terrain. All consumers of the map share this ordering.
func (s *Scenario) DedupedCells() []HexCell {
	index := make(map[hexgrid.Axial]int, len(s.MapHexes))
	cells := make([]HexCell, 0, len(s.MapHexes))
	for _, c := range s.MapHexes {
		if i, ok := index[c.Axial()]; ok {
			cells[i] = c
			continue
		}
		index[c.Axial()] = len(cells)
		cells = append(cells, c)
	}
	return cells
}

// InvalidPositions counts monster positions that resolved to neither
// authored shape. The pipeline drops them silently; callers use the count
// to warn authors.
func (s *Scenario) InvalidPositions() int {
	n := 0
	for _, g := range s.MonsterGroups {
		for _, p := range g.Positions {
			if p.Kind == KindInvalid {
				n++
			}
		}
	}
	return n
}
