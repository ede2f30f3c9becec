// Package campaign loads campaign files and derives the artifact naming
// and seed template data shared by the exporters.
package campaign

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jisaf/Hexhaven/internal/scenario"
)

// Campaign is one campaign file: a name and its scenarios.
type Campaign struct {
	Name      string              `json:"campaign"`
	Scenarios []scenario.Scenario `json:"scenarios"`
}

// Load reads and decodes a campaign JSON file.
func Load(path string) (*Campaign, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("campaign: read %s: %w", path, err)
	}
	var c Campaign
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("campaign: parse %s: %w", path, err)
	}
	if c.Name == "" {
		return nil, fmt.Errorf("campaign: %s: missing campaign name", path)
	}
	return &c, nil
}

// Template is the campaign seed record the engine imports alongside the
// scenario records.
type Template struct {
	Name                 string        `json:"name"`
	Description          string        `json:"description"`
	DeathMode            string        `json:"deathMode"`
	MinPlayers           int           `json:"minPlayers"`
	MaxPlayers           int           `json:"maxPlayers"`
	RequireUniqueClasses bool          `json:"requireUniqueClasses"`
	Scenarios            []TemplateRef `json:"scenarios"`
}

// TemplateRef points a template at one of its scenarios.
type TemplateRef struct {
	ScenarioID       string   `json:"scenarioId"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	UnlocksScenarios []string `json:"unlocksScenarios"`
	IsStarting       bool     `json:"isStarting"`
	Sequence         int      `json:"sequence"`
}

// Template builds the campaign's seed template. The returned value shares
// nothing with the campaign.
func (c *Campaign) Template() Template {
	refs := make([]TemplateRef, len(c.Scenarios))
	for i, s := range c.Scenarios {
		refs[i] = TemplateRef{
			ScenarioID:       s.ID,
			Name:             s.Name,
			Description:      s.Description,
			UnlocksScenarios: append([]string{}, s.UnlocksScenarios...),
			IsStarting:       s.IsStarting,
			Sequence:         s.Sequence,
		}
	}
	return Template{
		Name:        c.Name,
		Description: fmt.Sprintf("%d scenario campaign", len(c.Scenarios)),
		DeathMode:   "configurable",
		MinPlayers:  1,
		MaxPlayers:  4,
		Scenarios:   refs,
	}
}

var slugStrip = strings.NewReplacer(":", "", "(", "", ")", "")

// Slug derives the filename slug for a campaign or scenario name: lower
// case, spaces to dashes, with ':', '(' and ')' dropped.
func Slug(name string) string {
	return strings.ReplaceAll(slugStrip.Replace(strings.ToLower(name)), " ", "-")
}

// Stem is the canonical artifact name for a scenario, without extension.
// Background artwork files are matched against the same stem.
func Stem(campaignName string, s *scenario.Scenario) string {
	return fmt.Sprintf("%s-scenario-%02d-%s", Slug(campaignName), s.Sequence, Slug(s.Name))
}

// OutputName is the export filename for a scenario artifact with the given
// extension.
func OutputName(campaignName string, s *scenario.Scenario, ext string) string {
	return Stem(campaignName, s) + "." + ext
}
