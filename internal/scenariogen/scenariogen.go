// Package scenariogen builds synthetic campaigns from layered simplex
// noise: disc-shaped maps with obstacle and difficult-terrain patches,
// plus deterministically placed entities. It exists to exercise the
// pipeline without authored content.
package scenariogen

import (
	"fmt"
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/jisaf/Hexhaven/internal/campaign"
	"github.com/jisaf/Hexhaven/internal/hexgrid"
	"github.com/jisaf/Hexhaven/internal/scenario"
)

// GenConfig holds scenario generation parameters.
type GenConfig struct {
	Seed          int64 // 0 = random
	Radius        int   // hex disc radius
	Name          string
	Sequence      int
	Players       int
	MonsterGroups int
	Treasures     int
	ObstacleLvl   float64 // noise threshold for obstacle cells (0.0-1.0)
	DifficultLvl  float64 // noise threshold for difficult cells (0.0-1.0)
}

// DefaultGenConfig returns a small playable map configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Radius:        4,
		Players:       2,
		MonsterGroups: 2,
		Treasures:     2,
		ObstacleLvl:   0.78,
		DifficultLvl:  0.60,
	}
}

func (cfg GenConfig) withDefaults() GenConfig {
	def := DefaultGenConfig()
	if cfg.Radius <= 0 {
		cfg.Radius = def.Radius
	}
	if cfg.Sequence <= 0 {
		cfg.Sequence = 1
	}
	if cfg.Name == "" {
		cfg.Name = fmt.Sprintf("Trial %d", cfg.Sequence)
	}
	if cfg.ObstacleLvl <= 0 {
		cfg.ObstacleLvl = def.ObstacleLvl
	}
	if cfg.DifficultLvl <= 0 {
		cfg.DifficultLvl = def.DifficultLvl
	}
	return cfg
}

// Generate creates one synthetic scenario. The same non-zero seed always
// produces the same scenario.
func Generate(cfg GenConfig) *scenario.Scenario {
	cfg = cfg.withDefaults()
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	noise := opensimplex.NewNormalized(seed)
	rng := rand.New(rand.NewSource(seed + 100))

	origin := hexgrid.Axial{}
	var cells []scenario.HexCell
	var open []hexgrid.Axial

	for q := -cfg.Radius; q <= cfg.Radius; q++ {
		for r := -cfg.Radius; r <= cfg.Radius; r++ {
			a := hexgrid.Axial{Q: q, R: r}
			if hexgrid.Distance(a, origin) > cfg.Radius {
				continue
			}

			// Axial to continuous space for noise sampling.
			x := float64(q) + float64(r)*0.5
			y := float64(r) * math.Sqrt(3) / 2

			v := octaveNoise(noise, x, y, 3, 0.35, 0.5)
			terrain := scenario.TerrainNormal
			switch {
			case a == origin:
				// The center stays open for starting positions.
			case v > cfg.ObstacleLvl:
				terrain = scenario.TerrainObstacle
			case v > cfg.DifficultLvl:
				terrain = scenario.TerrainDifficult
			}

			cells = append(cells, scenario.HexCell{Q: q, R: r, Terrain: terrain})
			if terrain != scenario.TerrainObstacle {
				open = append(open, a)
			}
		}
	}

	rng.Shuffle(len(open), func(i, j int) { open[i], open[j] = open[j], open[i] })
	next := 0
	take := func() (hexgrid.Axial, bool) {
		if next >= len(open) {
			return hexgrid.Axial{}, false
		}
		a := open[next]
		next++
		return a, true
	}

	var starts []scenario.StartingPosition
	for p := 0; p < cfg.Players; p++ {
		a, ok := take()
		if !ok {
			break
		}
		starts = append(starts, scenario.StartingPosition{Q: a.Q, R: a.R, Player: p})
	}

	monsterTypes := [...]string{"enemy-basic", "enemy-archer", "enemy-brute"}
	var groups []scenario.MonsterGroup
	for g := 0; g < cfg.MonsterGroups; g++ {
		count := 1 + rng.Intn(3)
		var positions []scenario.Position
		var elite []bool
		for i := 0; i < count; i++ {
			a, ok := take()
			if !ok {
				break
			}
			pos := scenario.Position{Kind: scenario.KindAxial, Q: a.Q, R: a.R}
			if g%2 == 1 {
				// Alternate groups are authored on the engine grid, the
				// way hand-written campaign files mix both forms.
				o := a.ToOffset()
				pos = scenario.Position{Kind: scenario.KindCartesian, X: o.Col, Y: o.Row}
			}
			positions = append(positions, pos)
			elite = append(elite, rng.Intn(4) == 0)
		}
		if len(positions) == 0 {
			break
		}
		groups = append(groups, scenario.MonsterGroup{
			Type:      monsterTypes[rng.Intn(len(monsterTypes))],
			Positions: positions,
			Elite:     elite,
			Level:     "normal",
		})
	}

	var treasures []scenario.Treasure
	for i := 0; i < cfg.Treasures; i++ {
		a, ok := take()
		if !ok {
			break
		}
		treasures = append(treasures, scenario.Treasure{ID: fmt.Sprintf("treasure-%d", i), Q: a.Q, R: a.R})
	}

	objectiveTypes := [...]string{"collect-items", "protect-allies", "reach-location"}
	var objectives []scenario.Objective
	if a, ok := take(); ok {
		objectives = append(objectives, scenario.Objective{
			ID:          "secondary-0",
			Type:        objectiveTypes[rng.Intn(len(objectiveTypes))],
			Description: "Hold the marked position",
			Hexes:       []hexgrid.Axial{a},
		})
	}

	difficulty := 1 + rng.Intn(5)

	return &scenario.Scenario{
		ID:                fmt.Sprintf("%s-%d", campaign.Slug(cfg.Name), cfg.Sequence),
		Name:              cfg.Name,
		Description:       fmt.Sprintf("Generated from seed %d", seed),
		Sequence:          cfg.Sequence,
		Difficulty:        &difficulty,
		MapHexes:          cells,
		StartingPositions: starts,
		MonsterGroups:     groups,
		Objectives:        objectives,
		Treasures:         treasures,
	}
}

var scenarioNouns = [...]string{"Outpost", "Crossing", "Sanctum", "Warrens", "Gate", "Hollow"}

// GenerateCampaign builds an n-scenario campaign. Each scenario draws on
// its own sub-seed, so individual maps stay reproducible, and scenarios
// unlock in sequence.
func GenerateCampaign(name string, n int, seed int64) *campaign.Campaign {
	if seed == 0 {
		seed = rand.Int63()
	}
	rng := rand.New(rand.NewSource(seed))

	c := &campaign.Campaign{Name: name}
	for i := 0; i < n; i++ {
		cfg := DefaultGenConfig()
		cfg.Seed = seed + int64(i+1)*1000
		cfg.Name = fmt.Sprintf("The %s", scenarioNouns[rng.Intn(len(scenarioNouns))])
		cfg.Sequence = i + 1
		cfg.Radius = 3 + i%3

		c.Scenarios = append(c.Scenarios, *Generate(cfg))
	}
	for i := range c.Scenarios {
		c.Scenarios[i].IsStarting = i == 0
		if i+1 < len(c.Scenarios) {
			c.Scenarios[i].UnlocksScenarios = []string{c.Scenarios[i+1].ID}
		}
	}
	return c
}

// octaveNoise layers multiple noise frequencies into fractal terrain.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
