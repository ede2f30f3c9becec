// Package seed persists the engine seed artifacts: converted scenario
// records and campaign templates, written either as JSON seed files or
// into a SQLite database.
package seed

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jisaf/Hexhaven/internal/campaign"
	"github.com/jisaf/Hexhaven/internal/gameformat"
)

// Item is one scenario's seed record together with the identity the keyed
// stores index it by.
type Item struct {
	ID       string
	Sequence int
	Record   gameformat.Record
}

// Store receives converted seed data. Both implementations are safe to
// re-run over existing output.
type Store interface {
	SaveScenarios(items []Item) error
	SaveTemplates(templates []campaign.Template) error
	Close() error
}

// Seed file names the game backend imports.
const (
	ScenariosFile = "scenarios-campaigns.json"
	TemplatesFile = "campaign-templates.json"
)

// FileStore writes seed data as indented JSON files into a directory.
type FileStore struct {
	Dir string
}

// NewFileStore creates the output directory if needed and returns a store
// writing into it.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("seed: create %s: %w", dir, err)
	}
	return &FileStore{Dir: dir}, nil
}

// SaveScenarios writes all scenario records as one flat array, replacing
// any previous file.
func (fs *FileStore) SaveScenarios(items []Item) error {
	records := make([]gameformat.Record, len(items))
	for i, it := range items {
		records[i] = it.Record
	}
	return fs.writeJSON(ScenariosFile, records)
}

// SaveTemplates writes the campaign templates, replacing any previous
// file.
func (fs *FileStore) SaveTemplates(templates []campaign.Template) error {
	if templates == nil {
		templates = []campaign.Template{}
	}
	return fs.writeJSON(TemplatesFile, templates)
}

// Close is a no-op; each save already leaves a complete file behind.
func (fs *FileStore) Close() error {
	return nil
}

func (fs *FileStore) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("seed: encode %s: %w", name, err)
	}
	path := filepath.Join(fs.Dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("seed: write %s: %w", path, err)
	}
	return nil
}
