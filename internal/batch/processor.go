// Package batch renders campaign scenarios in parallel: a worker pool
// draws SVG and WebP maps per scenario, and a manifest records the run.
package batch

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"

	"github.com/jisaf/Hexhaven/internal/artwork"
	"github.com/jisaf/Hexhaven/internal/campaign"
	"github.com/jisaf/Hexhaven/internal/raster"
	"github.com/jisaf/Hexhaven/internal/scenario"
	"github.com/jisaf/Hexhaven/internal/svgmap"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir   string
	SVG         bool
	WebP        bool
	HexSize     float64
	Margin      float64
	Supersample int
	Workers     int
	Artwork     artwork.Resolver
}

// Result holds the outcome of processing one scenario. Skipped marks
// scenarios with an empty map, which is not a failure.
type Result struct {
	Scenario string
	Sequence int
	Outputs  []string
	Skipped  bool
	Success  bool
	Error    string
}

// Run renders every scenario of the campaign using a worker pool. Results
// line up with the campaign's scenario order.
func Run(cfg Config, c *campaign.Campaign) []Result {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	total := len(c.Scenarios)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f maps/sec\n", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	idxChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range idxChan {
				results[idx] = processScenario(cfg, c.Name, &c.Scenarios[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range c.Scenarios {
		idxChan <- i
	}
	close(idxChan)

	wg.Wait()
	close(done)

	return results
}

func processScenario(cfg Config, campaignName string, s *scenario.Scenario) Result {
	res := Result{Scenario: s.Name, Sequence: s.Sequence}

	if err := s.Validate(); err != nil {
		if errors.Is(err, scenario.ErrNoCells) {
			res.Skipped = true
			return res
		}
		res.Error = err.Error()
		return res
	}

	if n := s.InvalidPositions(); n > 0 {
		slog.Warn("dropping unrecognized monster positions", "scenario", s.Name, "count", n)
	}

	if cfg.SVG {
		name := campaign.OutputName(campaignName, s, "svg")
		if err := writeSVG(cfg, filepath.Join(cfg.OutputDir, name), s); err != nil {
			res.Error = err.Error()
			return res
		}
		res.Outputs = append(res.Outputs, name)
	}

	if cfg.WebP {
		name := campaign.OutputName(campaignName, s, "webp")
		if err := writeWebP(cfg, filepath.Join(cfg.OutputDir, name), campaignName, s); err != nil {
			res.Error = err.Error()
			return res
		}
		res.Outputs = append(res.Outputs, name)
	}

	res.Success = true
	return res
}

func writeSVG(cfg Config, path string, s *scenario.Scenario) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return svgmap.Render(f, s, svgmap.Options{HexSize: cfg.HexSize, Margin: cfg.Margin})
}

func writeWebP(cfg Config, path, campaignName string, s *scenario.Scenario) error {
	img, err := raster.RenderScenario(s, cfg.Artwork, raster.Options{
		HexSize:       cfg.HexSize,
		Margin:        cfg.Margin,
		Supersample:   cfg.Supersample,
		BackgroundRef: campaign.Stem(campaignName, s),
	})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return fmt.Errorf("webp encode: %v", err)
	}
	return nil
}
