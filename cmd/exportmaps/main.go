package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jisaf/Hexhaven/internal/artwork"
	"github.com/jisaf/Hexhaven/internal/batch"
	"github.com/jisaf/Hexhaven/internal/campaign"
	"github.com/jisaf/Hexhaven/internal/config"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	campaignFile := flag.String("campaign", "", "Render a single campaign file")
	formats := flag.String("formats", "svg,webp", "Comma-separated output formats: svg, webp")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	dataDir := flag.String("data", "", "Path to base directory (default: auto-detect)")
	outputDir := flag.String("output", "", "Output directory (default: campaigns/hex-maps)")
	hexSize := flag.Float64("hexsize", 0, "Hex size in pixels (default: 50)")
	supersample := flag.Int("supersample", 0, "Raster supersampling factor (default: 2)")

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
		DataDir:     *dataDir,
		OutputDir:   *outputDir,
		HexSize:     *hexSize,
		Supersample: *supersample,
		Workers:     *workers,
	})

	wantSVG, wantWebP := false, false
	for _, f := range strings.Split(*formats, ",") {
		switch strings.TrimSpace(f) {
		case "svg":
			wantSVG = true
		case "webp":
			wantWebP = true
		case "":
		default:
			fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", f)
			os.Exit(1)
		}
	}
	if !wantSVG && !wantWebP {
		fmt.Fprintln(os.Stderr, "Error: no output formats selected")
		os.Exit(1)
	}

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
		fmt.Println("No campaign files to render.")
		os.Exit(0)
	}

	// Background artwork index (webp output only)
	var resolver artwork.Resolver
	if wantWebP {
		idx := artwork.BuildIndex(cfg.ArtworkDir)
		if idx.Len() > 0 {
			resolver = artwork.NewCache(idx)
		}
		fmt.Printf("Artwork: %d images indexed\n", idx.Len())
	}

	fmt.Printf("Hexhaven hex map exporter → %s\n", *formats)
	fmt.Printf("Campaigns: %d, Workers: %d\n", len(files), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.MapsDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	if err := os.MkdirAll(cfg.MapsDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output dir: %v\n", err)
		os.Exit(1)
	}

	total, rendered, skipped, failed := 0, 0, 0, 0
	var totalBytes int64
	var failures []batch.Result

	for _, file := range files {
		c, err := campaign.Load(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			failed++
			continue
		}
		fmt.Printf("%s: %d scenarios\n", c.Name, len(c.Scenarios))

		results := batch.Run(batch.Config{
			OutputDir:   cfg.MapsDir,
			SVG:         wantSVG,
			WebP:        wantWebP,
			HexSize:     cfg.HexSize,
			Margin:      cfg.Margin,
			Supersample: cfg.Supersample,
			Workers:     cfg.Workers,
			Artwork:     resolver,
		}, c)

		for _, r := range results {
			total++
			switch {
			case r.Skipped:
				skipped++
			case r.Success:
				rendered++
			default:
				failed++
				failures = append(failures, r)
			}
			for _, name := range r.Outputs {
				if info, err := os.Stat(filepath.Join(cfg.MapsDir, name)); err == nil {
					totalBytes += info.Size()
				}
			}
		}

		manifestPath := filepath.Join(cfg.MapsDir, campaign.Slug(c.Name)+"-manifest.json")
		if err := batch.WriteManifest(manifestPath, results); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
		}
	}

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())
	fmt.Printf("Rendered: %d/%d maps (%d skipped), %s written\n",
		rendered, total, skipped, humanize.Bytes(uint64(totalBytes)))

	if len(failures) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(failures) < limit {
			limit = len(failures)
		}
		for _, r := range failures[:limit] {
			fmt.Printf("  seq %d %s: %s\n", r.Sequence, r.Scenario, r.Error)
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}
