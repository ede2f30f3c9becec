package gameformat

// Record is one engine-ready scenario seed. Field order follows the seed
// files the game backend imports.
type Record struct {
	Name                 string         `json:"name"`
	Difficulty           *int           `json:"difficulty"`
	MapLayout            []MapTile      `json:"mapLayout"`
	PlayerStartPositions []Point        `json:"playerStartPositions"`
	MonsterGroups        []MonsterGroup `json:"monsterGroups"`
	Objectives           Objectives     `json:"objectives"`
	Treasures            []Treasure     `json:"treasures"`
	BackgroundImageURL   *string        `json:"backgroundImageUrl"`
	BackgroundOpacity    float64        `json:"backgroundOpacity"`
	BackgroundOffsetX    float64        `json:"backgroundOffsetX"`
	BackgroundOffsetY    float64        `json:"backgroundOffsetY"`
	BackgroundScale      float64        `json:"backgroundScale"`
}

// MapTile is one cell of the engine map layout, addressed on the offset
// grid.
type MapTile struct {
	ID       string   `json:"id"`
	X        int      `json:"x"`
	Y        int      `json:"y"`
	Terrain  string   `json:"terrain"`
	Features []string `json:"features"`
}

// Point is an engine-grid position.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// MonsterGroup is an engine monster placement. Elite always has one entry
// per position.
type MonsterGroup struct {
	Type      string  `json:"type"`
	Positions []Point `json:"positions"`
	Elite     []bool  `json:"elite"`
	Level     string  `json:"level"`
}

// Treasure is an engine treasure marker.
type Treasure struct {
	X  int    `json:"x"`
	Y  int    `json:"y"`
	ID string `json:"id"`
}

// Objectives pairs the fixed primary objective with the authored secondary
// ones.
type Objectives struct {
	Primary   Objective   `json:"primary"`
	Secondary []Objective `json:"secondary"`
}

// Objective is one engine objective. Milestones is set on the primary,
// Rewards on secondaries.
type Objective struct {
	ID            string   `json:"id"`
	Type          string   `json:"type"`
	Description   string   `json:"description"`
	TrackProgress bool     `json:"trackProgress"`
	Milestones    []int    `json:"milestones,omitempty"`
	Rewards       *Rewards `json:"rewards,omitempty"`
}

// Rewards is the reward block attached to secondary objectives.
type Rewards struct {
	Experience int `json:"experience"`
}
