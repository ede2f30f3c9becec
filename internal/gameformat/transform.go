// Package gameformat converts authored scenarios into the seed records the
// game engine imports. The conversion is pure: it never mutates its input,
// and identical input always produces an identical record.
package gameformat

import (
	"fmt"

	"github.com/jisaf/Hexhaven/internal/scenario"
)

// Defaults applied where the authored data is silent.
const (
	DefaultMonsterType  = "enemy-basic"
	DefaultMonsterLevel = "normal"

	DefaultBackgroundOpacity = 0.7
	DefaultBackgroundScale   = 1.0
)

// secondaryObjectiveTypes maps authored objective types to engine types.
// Unknown types fall back to collect_treasure.
var secondaryObjectiveTypes = map[string]string{
	"collect-items":  "collect_treasure",
	"protect-allies": "protect",
	"reach-location": "reach_location",
}

// Transform converts s into its engine seed record. Structural problems
// surface as the validation error; an empty map reports
// scenario.ErrNoCells so callers can skip instead of fail.
func Transform(s *scenario.Scenario) (*Record, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	rec := &Record{
		Name:                 s.Name,
		MapLayout:            layoutFrom(s.DedupedCells()),
		PlayerStartPositions: startsFrom(s.StartingPositions),
		MonsterGroups:        monstersFrom(s.MonsterGroups),
		Objectives:           objectivesFrom(s.Objectives),
		Treasures:            treasuresFrom(s.Treasures),
		BackgroundOpacity:    DefaultBackgroundOpacity,
		BackgroundScale:      DefaultBackgroundScale,
	}
	if s.Difficulty != nil {
		d := *s.Difficulty
		rec.Difficulty = &d
	}
	if bg := s.Background; bg != nil {
		if bg.Image != "" {
			img := bg.Image
			rec.BackgroundImageURL = &img
		}
		if bg.Opacity != nil {
			rec.BackgroundOpacity = *bg.Opacity
		}
		rec.BackgroundOffsetX = bg.OffsetX
		rec.BackgroundOffsetY = bg.OffsetY
		if bg.Scale != nil {
			rec.BackgroundScale = *bg.Scale
		}
	}
	return rec, nil
}

// layoutFrom converts the deduplicated cells to offset-grid tiles.
func layoutFrom(cells []scenario.HexCell) []MapTile {
	tiles := make([]MapTile, len(cells))
	for i, c := range cells {
		a := c.Axial()
		o := a.ToOffset()
		tiles[i] = MapTile{
			ID:       fmt.Sprintf("hex-%d-%d", a.Q, a.R),
			X:        o.Col,
			Y:        o.Row,
			Terrain:  string(c.Terrain.OrNormal()),
			Features: []string{},
		}
	}
	return tiles
}

func startsFrom(positions []scenario.StartingPosition) []Point {
	out := make([]Point, len(positions))
	for i, p := range positions {
		o := p.Axial().ToOffset()
		out[i] = Point{X: o.Col, Y: o.Row}
	}
	return out
}

// monstersFrom converts monster groups. An empty list yields the default
// group. Positions that resolved to neither authored shape are dropped
// together with their elite flag, so Elite stays index-aligned with the
// surviving positions; flags beyond the authored elite list default false.
func monstersFrom(groups []scenario.MonsterGroup) []MonsterGroup {
	if len(groups) == 0 {
		return []MonsterGroup{{
			Type:      DefaultMonsterType,
			Positions: []Point{{X: 3, Y: 2}},
			Elite:     []bool{false},
			Level:     DefaultMonsterLevel,
		}}
	}

	out := make([]MonsterGroup, 0, len(groups))
	for _, g := range groups {
		positions := make([]Point, 0, len(g.Positions))
		elite := make([]bool, 0, len(g.Positions))
		for i, p := range g.Positions {
			var pt Point
			switch p.Kind {
			case scenario.KindAxial:
				o := p.Axial().ToOffset()
				pt = Point{X: o.Col, Y: o.Row}
			case scenario.KindCartesian:
				pt = Point{X: p.X, Y: p.Y}
			default:
				continue
			}
			positions = append(positions, pt)
			elite = append(elite, i < len(g.Elite) && g.Elite[i])
		}

		typ := g.Type
		if typ == "" {
			typ = DefaultMonsterType
		}
		level := g.Level
		if level == "" {
			level = DefaultMonsterLevel
		}
		out = append(out, MonsterGroup{
			Type:      typ,
			Positions: positions,
			Elite:     elite,
			Level:     level,
		})
	}
	return out
}

func treasuresFrom(treasures []scenario.Treasure) []Treasure {
	out := make([]Treasure, len(treasures))
	for i, t := range treasures {
		o := t.Axial().ToOffset()
		id := t.ID
		if id == "" {
			id = fmt.Sprintf("treasure-%d", i)
		}
		out[i] = Treasure{X: o.Col, Y: o.Row, ID: id}
	}
	return out
}

func objectivesFrom(list []scenario.Objective) Objectives {
	secondary := make([]Objective, len(list))
	for i, o := range list {
		typ, ok := secondaryObjectiveTypes[o.Type]
		if !ok {
			typ = "collect_treasure"
		}
		id := o.ID
		if id == "" {
			id = fmt.Sprintf("secondary-%d", i)
		}
		desc := o.Description
		if desc == "" {
			desc = "Complete objective"
		}
		secondary[i] = Objective{
			ID:            id,
			Type:          typ,
			Description:   desc,
			TrackProgress: true,
			Rewards:       &Rewards{Experience: 5},
		}
	}
	return Objectives{Primary: primaryObjective(), Secondary: secondary}
}

// primaryObjective returns a fresh copy each call so records never share
// the milestone slice.
func primaryObjective() Objective {
	return Objective{
		ID:            "primary-kill-all",
		Type:          "kill_all_monsters",
		Description:   "Defeat all enemies",
		TrackProgress: true,
		Milestones:    []int{25, 50, 75, 100},
	}
}
