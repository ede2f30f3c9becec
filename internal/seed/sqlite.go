package seed

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/jisaf/Hexhaven/internal/campaign"
	"github.com/jisaf/Hexhaven/internal/gameformat"
)

// SQLiteStore seeds a SQLite database directly. Scenarios are keyed by id
// and campaigns by name, so re-seeding replaces rather than duplicates.
type SQLiteStore struct {
	conn *sqlx.DB
}

// OpenSQLite opens or creates the seed database at path and ensures the
// schema exists.
func OpenSQLite(path string) (*SQLiteStore, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("seed: open db: %w", err)
	}
	if strings.Contains(path, ":memory:") {
		// Each pooled connection would get its own empty in-memory
		// database; the schema must stay on the only one.
		conn.SetMaxOpenConns(1)
	}

	st := &SQLiteStore{conn: conn}
	if err := st.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("seed: migrate: %w", err)
	}
	return st, nil
}

// Close closes the database connection.
func (st *SQLiteStore) Close() error {
	return st.conn.Close()
}

func (st *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS scenarios (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		difficulty INTEGER,
		sequence INTEGER NOT NULL,
		record_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS campaigns (
		name TEXT PRIMARY KEY,
		description TEXT NOT NULL,
		death_mode TEXT NOT NULL,
		min_players INTEGER NOT NULL,
		max_players INTEGER NOT NULL,
		require_unique_classes INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS campaign_scenarios (
		campaign_name TEXT NOT NULL,
		scenario_id TEXT NOT NULL,
		name TEXT NOT NULL,
		description TEXT,
		unlocks_json TEXT NOT NULL,
		is_starting INTEGER NOT NULL,
		sequence INTEGER NOT NULL,
		PRIMARY KEY (campaign_name, sequence)
	);

	CREATE INDEX IF NOT EXISTS idx_scenarios_sequence ON scenarios(sequence);
	`
	_, err := st.conn.Exec(schema)
	return err
}

// SaveScenarios upserts all scenario records in one transaction.
func (st *SQLiteStore) SaveScenarios(items []Item) error {
	tx, err := st.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(`INSERT OR REPLACE INTO scenarios
		(id, name, difficulty, sequence, record_json)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, it := range items {
		recordJSON, err := json.Marshal(it.Record)
		if err != nil {
			return fmt.Errorf("seed: encode scenario %s: %w", it.ID, err)
		}
		if _, err := stmt.Exec(it.ID, it.Record.Name, it.Record.Difficulty, it.Sequence, string(recordJSON)); err != nil {
			return fmt.Errorf("seed: insert scenario %s: %w", it.ID, err)
		}
	}
	return tx.Commit()
}

// SaveTemplates upserts the campaign rows and fully replaces each
// campaign's scenario references.
func (st *SQLiteStore) SaveTemplates(templates []campaign.Template) error {
	tx, err := st.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, t := range templates {
		unique := 0
		if t.RequireUniqueClasses {
			unique = 1
		}
		if _, err := tx.Exec(`INSERT OR REPLACE INTO campaigns
			(name, description, death_mode, min_players, max_players, require_unique_classes)
			VALUES (?, ?, ?, ?, ?, ?)`,
			t.Name, t.Description, t.DeathMode, t.MinPlayers, t.MaxPlayers, unique,
		); err != nil {
			return fmt.Errorf("seed: insert campaign %s: %w", t.Name, err)
		}

		if _, err := tx.Exec("DELETE FROM campaign_scenarios WHERE campaign_name = ?", t.Name); err != nil {
			return err
		}
		for _, ref := range t.Scenarios {
			unlocksJSON, err := json.Marshal(ref.UnlocksScenarios)
			if err != nil {
				return fmt.Errorf("seed: encode scenario ref %s: %w", ref.ScenarioID, err)
			}
			starting := 0
			if ref.IsStarting {
				starting = 1
			}
			if _, err := tx.Exec(`INSERT INTO campaign_scenarios
				(campaign_name, scenario_id, name, description, unlocks_json, is_starting, sequence)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				t.Name, ref.ScenarioID, ref.Name, ref.Description, string(unlocksJSON), starting, ref.Sequence,
			); err != nil {
				return fmt.Errorf("seed: insert scenario ref %s/%d: %w", t.Name, ref.Sequence, err)
			}
		}
	}
	return tx.Commit()
}

// ScenarioCount returns the number of seeded scenarios.
func (st *SQLiteStore) ScenarioCount() (int, error) {
	var n int
	err := st.conn.Get(&n, "SELECT COUNT(*) FROM scenarios")
	return n, err
}

// Record loads one seeded scenario record by id.
func (st *SQLiteStore) Record(id string) (*gameformat.Record, error) {
	var raw string
	if err := st.conn.Get(&raw, "SELECT record_json FROM scenarios WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("seed: scenario %s: %w", id, err)
	}
	var rec gameformat.Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("seed: decode scenario %s: %w", id, err)
	}
	return &rec, nil
}

// CampaignNames returns the seeded campaign names in sorted order.
func (st *SQLiteStore) CampaignNames() ([]string, error) {
	var names []string
	err := st.conn.Select(&names, "SELECT name FROM campaigns ORDER BY name")
	return names, err
}

// RefCount returns how many scenario references a seeded campaign holds.
func (st *SQLiteStore) RefCount(campaignName string) (int, error) {
	var n int
	err := st.conn.Get(&n, "SELECT COUNT(*) FROM campaign_scenarios WHERE campaign_name = ?", campaignName)
	return n, err
}
