package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	BaseDir      string `json:"base_dir"`
	CampaignsDir string `json:"campaigns_dir"`
	MapsDir      string `json:"maps_dir"`
	SeedDir      string `json:"seed_dir"`
	SeedDB       string `json:"seed_db"`
	ArtworkDir   string `json:"artwork_dir"`

	// Render settings
	HexSize     float64 `json:"hex_size"`
	Margin      float64 `json:"margin"`
	Supersample int     `json:"supersample"`
	Workers     int     `json:"workers"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with auto-detected defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.DataDir != "" {
		c.BaseDir = flags.DataDir
	}
	if flags.OutputDir != "" {
		c.MapsDir = flags.OutputDir
	}
	if flags.SeedDir != "" {
		c.SeedDir = flags.SeedDir
	}
	if flags.SeedDB != "" {
		c.SeedDB = flags.SeedDB
	}
	if flags.HexSize > 0 {
		c.HexSize = flags.HexSize
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	// Auto-detect base dir if still empty
	if c.BaseDir == "" {
		c.BaseDir = detectBaseDir()
	}

	// Resolve relative paths against base dir
	if c.BaseDir != "" {
		if c.CampaignsDir == "" {
			c.CampaignsDir = filepath.Join(c.BaseDir, "campaigns")
		} else if !filepath.IsAbs(c.CampaignsDir) {
			c.CampaignsDir = filepath.Join(c.BaseDir, c.CampaignsDir)
		}

		if c.MapsDir == "" {
			c.MapsDir = filepath.Join(c.CampaignsDir, "hex-maps")
		} else if !filepath.IsAbs(c.MapsDir) {
			c.MapsDir = filepath.Join(c.BaseDir, c.MapsDir)
		}

		if c.SeedDir == "" {
			c.SeedDir = filepath.Join(c.BaseDir, "backend", "prisma", "seed-data")
		} else if !filepath.IsAbs(c.SeedDir) {
			c.SeedDir = filepath.Join(c.BaseDir, c.SeedDir)
		}

		if c.SeedDB == "" {
			c.SeedDB = filepath.Join(c.BaseDir, "hexhaven.db")
		} else if !filepath.IsAbs(c.SeedDB) {
			c.SeedDB = filepath.Join(c.BaseDir, c.SeedDB)
		}

		if c.ArtworkDir == "" {
			c.ArtworkDir = filepath.Join(c.CampaignsDir, "artwork")
		} else if !filepath.IsAbs(c.ArtworkDir) {
			c.ArtworkDir = filepath.Join(c.BaseDir, c.ArtworkDir)
		}
	}

	// Defaults for render settings
	if c.HexSize <= 0 {
		c.HexSize = 50
	}
	if c.Margin <= 0 {
		c.Margin = 30
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// CampaignFiles returns the campaign scenario files under CampaignsDir in
// sorted order.
func (c *Config) CampaignFiles() ([]string, error) {
	pattern := filepath.Join(c.CampaignsDir, "*-scenarios.json")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("config: glob %s: %w", pattern, err)
	}
	sort.Strings(files)
	return files, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	DataDir     string
	OutputDir   string
	SeedDir     string
	SeedDB      string
	HexSize     float64
	Supersample int
	Workers     int
}

func detectBaseDir() string {
	// Try relative to executable
	exe, _ := os.Executable()
	if exe != "" {
		dir := filepath.Dir(exe)
		for _, base := range []string{dir, filepath.Dir(dir), filepath.Join(dir, "..", "..")} {
			if hasCampaigns(base) {
				return base
			}
		}
	}

	// Try current working directory
	cwd, _ := os.Getwd()
	if hasCampaigns(cwd) {
		return cwd
	}

	// Try parent of cwd (if we're inside campaigns/ or a tool dir)
	parent := filepath.Dir(cwd)
	if hasCampaigns(parent) {
		return parent
	}

	return ""
}

func hasCampaigns(base string) bool {
	matches, err := filepath.Glob(filepath.Join(base, "campaigns", "*-scenarios.json"))
	return err == nil && len(matches) > 0
}
