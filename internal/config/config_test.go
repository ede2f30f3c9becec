package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"base_dir": "/data/hexhaven", "hex_size": 40, "workers": 3}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseDir != "/data/hexhaven" {
		t.Errorf("base dir = %q", cfg.BaseDir)
	}
	if cfg.HexSize != 40 {
		t.Errorf("hex size = %v, want 40", cfg.HexSize)
	}
	if cfg.Workers != 3 {
		t.Errorf("workers = %d, want 3", cfg.Workers)
	}
	if cfg.Supersample != 0 {
		t.Errorf("supersample = %d, want unset", cfg.Supersample)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("Load of missing file did not fail")
	}
}

func TestResolveDefaults(t *testing.T) {
	cfg := Config{BaseDir: "/data/hexhaven"}
	cfg.Resolve(Flags{})

	paths := []struct {
		name, got, want string
	}{
		{"campaigns", cfg.CampaignsDir, filepath.Join("/data/hexhaven", "campaigns")},
		{"maps", cfg.MapsDir, filepath.Join("/data/hexhaven", "campaigns", "hex-maps")},
		{"seed", cfg.SeedDir, filepath.Join("/data/hexhaven", "backend", "prisma", "seed-data")},
		{"seed db", cfg.SeedDB, filepath.Join("/data/hexhaven", "hexhaven.db")},
		{"artwork", cfg.ArtworkDir, filepath.Join("/data/hexhaven", "campaigns", "artwork")},
	}
	for _, p := range paths {
		if p.got != p.want {
			t.Errorf("%s dir = %q, want %q", p.name, p.got, p.want)
		}
	}

	if cfg.HexSize != 50 || cfg.Margin != 30 || cfg.Supersample != 2 {
		t.Errorf("render defaults = %v/%v/%v", cfg.HexSize, cfg.Margin, cfg.Supersample)
	}
	if cfg.Workers <= 0 {
		t.Errorf("workers = %d", cfg.Workers)
	}
}

func TestResolveFlagPriority(t *testing.T) {
	cfg := Config{BaseDir: "/file/base", MapsDir: "/file/maps", HexSize: 40, Workers: 2}
	cfg.Resolve(Flags{
		DataDir:     "/flag/base",
		OutputDir:   "/flag/maps",
		SeedDB:      "/flag/seed.db",
		HexSize:     60,
		Supersample: 4,
		Workers:     8,
	})

	if cfg.BaseDir != "/flag/base" {
		t.Errorf("base dir = %q", cfg.BaseDir)
	}
	if cfg.MapsDir != "/flag/maps" {
		t.Errorf("maps dir = %q", cfg.MapsDir)
	}
	if cfg.SeedDB != "/flag/seed.db" {
		t.Errorf("seed db = %q", cfg.SeedDB)
	}
	if cfg.HexSize != 60 || cfg.Supersample != 4 || cfg.Workers != 8 {
		t.Errorf("render settings = %v/%v/%v", cfg.HexSize, cfg.Supersample, cfg.Workers)
	}
}

func TestResolveRelativePaths(t *testing.T) {
	cfg := Config{
		BaseDir:      "/base",
		CampaignsDir: "content",
		MapsDir:      filepath.Join("out", "maps"),
		SeedDB:       filepath.Join("db", "seed.db"),
	}
	cfg.Resolve(Flags{})

	if want := filepath.Join("/base", "content"); cfg.CampaignsDir != want {
		t.Errorf("campaigns dir = %q, want %q", cfg.CampaignsDir, want)
	}
	if want := filepath.Join("/base", "out", "maps"); cfg.MapsDir != want {
		t.Errorf("maps dir = %q, want %q", cfg.MapsDir, want)
	}
	if want := filepath.Join("/base", "db", "seed.db"); cfg.SeedDB != want {
		t.Errorf("seed db = %q, want %q", cfg.SeedDB, want)
	}
}

func TestCampaignFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"void-expansion-scenarios.json",
		"arcane-conspiracy-scenarios.json",
		"notes.md",
		"config.json",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	cfg := Config{CampaignsDir: dir}
	files, err := cfg.CampaignFiles()
	if err != nil {
		t.Fatalf("CampaignFiles: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("files = %v, want 2 entries", files)
	}
	if filepath.Base(files[0]) != "arcane-conspiracy-scenarios.json" {
		t.Errorf("first file = %q, want arcane campaign", files[0])
	}
	if filepath.Base(files[1]) != "void-expansion-scenarios.json" {
		t.Errorf("second file = %q, want void campaign", files[1])
	}
}
