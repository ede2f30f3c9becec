package batch

import (
	"encoding/json"
	"os"
)

// ManifestEntry represents one scenario in the output manifest.
type ManifestEntry struct {
	Scenario string   `json:"scenario"`
	Sequence int      `json:"sequence"`
	Outputs  []string `json:"outputs"`
	Skipped  bool     `json:"skipped,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// WriteManifest writes manifest.json for a finished run.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		outputs := r.Outputs
		if outputs == nil {
			outputs = []string{}
		}
		entries[i] = ManifestEntry{
			Scenario: r.Scenario,
			Sequence: r.Sequence,
			Outputs:  outputs,
			Skipped:  r.Skipped,
			Error:    r.Error,
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
