package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jisaf/Hexhaven/internal/campaign"
	"github.com/jisaf/Hexhaven/internal/scenario"
)

func testCampaign() *campaign.Campaign {
	return &campaign.Campaign{
		Name: "Arcane Conspiracy",
		Scenarios: []scenario.Scenario{
			{
				Name:     "First Light",
				Sequence: 1,
				MapHexes: []scenario.HexCell{
					{Q: 0, R: 0},
					{Q: 1, R: 0, Terrain: scenario.TerrainObstacle},
				},
			},
			{
				Name:     "Void Sketch",
				Sequence: 2,
				MapHexes: []scenario.HexCell{},
			},
			{
				// No name: structural failure.
				Sequence: 3,
				MapHexes: []scenario.HexCell{{Q: 0, R: 0}},
			},
		},
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		OutputDir:   dir,
		SVG:         true,
		WebP:        true,
		Supersample: 1,
		Workers:     2,
	}

	results := Run(cfg, testCampaign())
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}

	first := results[0]
	if !first.Success || first.Skipped || first.Error != "" {
		t.Fatalf("first result = %+v", first)
	}
	want := []string{
		"arcane-conspiracy-scenario-01-first-light.svg",
		"arcane-conspiracy-scenario-01-first-light.webp",
	}
	if len(first.Outputs) != 2 || first.Outputs[0] != want[0] || first.Outputs[1] != want[1] {
		t.Errorf("outputs = %v, want %v", first.Outputs, want)
	}
	for _, name := range first.Outputs {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("stat %s: %v", name, err)
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}

	if skipped := results[1]; !skipped.Skipped || skipped.Success || len(skipped.Outputs) != 0 {
		t.Errorf("empty-map result = %+v", skipped)
	}
	if failed := results[2]; failed.Success || failed.Skipped || !strings.Contains(failed.Error, "name") {
		t.Errorf("invalid result = %+v", failed)
	}
}

func TestRunSVGOnly(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{OutputDir: dir, SVG: true, Workers: 1}

	results := Run(cfg, testCampaign())
	if len(results[0].Outputs) != 1 || !strings.HasSuffix(results[0].Outputs[0], ".svg") {
		t.Errorf("outputs = %v, want one svg", results[0].Outputs)
	}
	if _, err := os.Stat(filepath.Join(dir, "arcane-conspiracy-scenario-01-first-light.webp")); !os.IsNotExist(err) {
		t.Error("webp written despite svg-only config")
	}
}

func TestWriteManifest(t *testing.T) {
	results := []Result{
		{Scenario: "First Light", Sequence: 1, Outputs: []string{"a.svg", "a.webp"}, Success: true},
		{Scenario: "Void Sketch", Sequence: 2, Skipped: true},
		{Scenario: "", Sequence: 3, Error: `missing required field "name"`},
	}

	path := filepath.Join(t.TempDir(), "manifest.json")
	if err := WriteManifest(path, results); err != nil {
		t.Fatalf("WriteManifest: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	if strings.Contains(string(data), `"outputs": null`) {
		t.Error("manifest has null outputs")
	}

	var entries []ManifestEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("decode manifest: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	if !entries[1].Skipped || len(entries[1].Outputs) != 0 {
		t.Errorf("skipped entry = %+v", entries[1])
	}
	if entries[2].Error == "" {
		t.Errorf("failed entry = %+v", entries[2])
	}
}
