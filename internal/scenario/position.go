package scenario

import (
	"encoding/json"

	"github.com/jisaf/Hexhaven/internal/hexgrid"
)

// PositionKind discriminates the authored shape of an entity position.
type PositionKind uint8

const (
	// KindInvalid marks a position that matched neither supported shape.
	// Downstream stages drop these without erroring.
	KindInvalid PositionKind = iota
	// KindAxial is a hex-grid position {q, r}.
	KindAxial
	// KindCartesian is an engine-grid position {x, y}, passed through
	// unconverted.
	KindCartesian
)

// Position is an entity position as authored. The shape is resolved once,
// at decode time; everything after ingestion switches on Kind instead of
// re-probing JSON keys.
type Position struct {
	Kind PositionKind
	Q, R int
	X, Y int
}

// Axial returns the hex coordinate of a KindAxial position.
func (p Position) Axial() hexgrid.Axial {
	return hexgrid.Axial{Q: p.Q, R: p.R}
}

// UnmarshalJSON resolves the authored shape. A complete {q, r} pair wins
// over {x, y} when both are present. Anything else, including non-object
// values and non-integer coordinates, decodes as KindInvalid rather than
// failing the surrounding document.
func (p *Position) UnmarshalJSON(data []byte) error {
	*p = Position{}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	if q, r, ok := intPair(raw, "q", "r"); ok {
		*p = Position{Kind: KindAxial, Q: q, R: r}
		return nil
	}
	if x, y, ok := intPair(raw, "x", "y"); ok {
		*p = Position{Kind: KindCartesian, X: x, Y: y}
		return nil
	}
	return nil
}

// MarshalJSON writes the authored shape back out. Invalid positions
// round-trip as empty objects.
func (p Position) MarshalJSON() ([]byte, error) {
	switch p.Kind {
	case KindAxial:
		return json.Marshal(struct {
			Q int `json:"q"`
			R int `json:"r"`
		}{p.Q, p.R})
	case KindCartesian:
		return json.Marshal(struct {
			X int `json:"x"`
			Y int `json:"y"`
		}{p.X, p.Y})
	}
	return []byte("{}"), nil
}

func intPair(raw map[string]json.RawMessage, aKey, bKey string) (int, int, bool) {
	ra, ok := raw[aKey]
	if !ok {
		return 0, 0, false
	}
	rb, ok := raw[bKey]
	if !ok {
		return 0, 0, false
	}
	var a, b int
	if json.Unmarshal(ra, &a) != nil || json.Unmarshal(rb, &b) != nil {
		return 0, 0, false
	}
	return a, b, true
}

// Treasure is an authored treasure marker. Both authored shapes, the
// nested {"position": {q, r}} form and the flat {q, r} form, decode into
// plain coordinates; absent coordinates default to 0.
type Treasure struct {
	ID string
	Q  int
	R  int
}

// Axial returns the treasure's coordinate.
func (t Treasure) Axial() hexgrid.Axial {
	return hexgrid.Axial{Q: t.Q, R: t.R}
}

// UnmarshalJSON accepts either authored shape. The nested position wins
// when both are present.
func (t *Treasure) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID       string `json:"id"`
		Q        *int   `json:"q"`
		R        *int   `json:"r"`
		Position *struct {
			Q int `json:"q"`
			R int `json:"r"`
		} `json:"position"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*t = Treasure{ID: raw.ID}
	if raw.Position != nil {
		t.Q, t.R = raw.Position.Q, raw.Position.R
		return nil
	}
	if raw.Q != nil {
		t.Q = *raw.Q
	}
	if raw.R != nil {
		t.R = *raw.R
	}
	return nil
}

// MarshalJSON writes the nested form, the canonical authored shape.
func (t Treasure) MarshalJSON() ([]byte, error) {
	type pos struct {
		Q int `json:"q"`
		R int `json:"r"`
	}
	return json.Marshal(struct {
		ID       string `json:"id,omitempty"`
		Position pos    `json:"position"`
	}{t.ID, pos{t.Q, t.R}})
}
