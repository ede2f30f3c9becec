package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/jisaf/Hexhaven/internal/campaign"
	"github.com/jisaf/Hexhaven/internal/config"
	"github.com/jisaf/Hexhaven/internal/gameformat"
	"github.com/jisaf/Hexhaven/internal/scenario"
	"github.com/jisaf/Hexhaven/internal/seed"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	campaignFile := flag.String("campaign", "", "Convert a single campaign file")
	dataDir := flag.String("data", "", "Path to base directory (default: auto-detect)")
	seedDir := flag.String("seed", "", "Seed output directory (default: backend/prisma/seed-data)")
	useDB := flag.Bool("db", false, "Also seed the SQLite database (path from config seed_db)")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		DataDir: *dataDir,
		SeedDir: *seedDir,
	})

	// Collect campaign files
	var files []string
	if *campaignFile != "" {
		files = []string{*campaignFile}
	} else {
		if cfg.BaseDir == "" {
			fmt.Fprintln(os.Stderr, "Error: cannot find campaigns directory. Use -data, -campaign or config.json.")
			os.Exit(1)
		}
		var err error
		files, err = cfg.CampaignFiles()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing campaigns: %v\n", err)
			os.Exit(1)
		}
	}
	if len(files) == 0 {
		fmt.Println("No campaign files to convert.")
		os.Exit(0)
	}
	if cfg.SeedDir == "" {
		fmt.Fprintln(os.Stderr, "Error: cannot determine seed output directory. Use -seed, -data or config.json.")
		os.Exit(1)
	}
	if *useDB && cfg.SeedDB == "" {
		fmt.Fprintln(os.Stderr, "Error: cannot determine seed database path. Use -data or config.json.")
		os.Exit(1)
	}

	fmt.Println("Hexhaven campaign loader")
	fmt.Printf("Campaigns: %d\n", len(files))
	fmt.Printf("Seed output: %s\n", cfg.SeedDir)
	fmt.Println("------------------------------------------------------------")

	var items []seed.Item
	var templates []campaign.Template
	skipped, failed := 0, 0

	for _, file := range files {
		c, err := campaign.Load(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			failed++
			continue
		}

		count := 0
		for i := range c.Scenarios {
			s := &c.Scenarios[i]
			rec, err := gameformat.Transform(s)
			if err != nil {
				if errors.Is(err, scenario.ErrNoCells) {
					slog.Warn("skipping scenario with empty map", "campaign", c.Name, "scenario", s.Name)
					skipped++
					continue
				}
				fmt.Fprintf(os.Stderr, "Error: %s seq %d: %v\n", c.Name, s.Sequence, err)
				failed++
				continue
			}
			if n := s.InvalidPositions(); n > 0 {
				slog.Warn("dropping unrecognized monster positions", "scenario", s.Name, "count", n)
			}
			items = append(items, seed.Item{ID: seedID(c.Name, s), Sequence: s.Sequence, Record: *rec})
			count++
		}
		fmt.Printf("%s: converted %d/%d scenarios\n", c.Name, count, len(c.Scenarios))

		templates = append(templates, c.Template())
	}

	// Write seed files
	store, err := seed.NewFileStore(cfg.SeedDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := store.SaveScenarios(items); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := store.SaveTemplates(templates); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	for _, name := range []string{seed.ScenariosFile, seed.TemplatesFile} {
		path := filepath.Join(cfg.SeedDir, name)
		if info, err := os.Stat(path); err == nil {
			fmt.Printf("Saved %s (%s)\n", path, humanize.Bytes(uint64(info.Size())))
		}
	}

	// Optionally seed the database
	if *useDB {
		db, err := seed.OpenSQLite(cfg.SeedDB)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := db.SaveScenarios(items); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := db.SaveTemplates(templates); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		n, _ := db.ScenarioCount()
		names, _ := db.CampaignNames()
		fmt.Printf("Database: %d scenarios, %d campaigns in %s\n", n, len(names), cfg.SeedDB)
	}

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Converted %s scenarios from %d campaigns (%d skipped)\n",
		humanize.Comma(int64(len(items))), len(templates), skipped)

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d scenarios failed\n", failed)
		os.Exit(1)
	}
}

// seedID keys a scenario in the seed stores: the authored id when present,
// otherwise the artifact stem.
func seedID(campaignName string, s *scenario.Scenario) string {
	if s.ID != "" {
		return s.ID
	}
	return campaign.Stem(campaignName, s)
}
