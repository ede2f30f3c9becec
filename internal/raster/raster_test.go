package raster

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/jisaf/Hexhaven/internal/hexgrid"
	"github.com/jisaf/Hexhaven/internal/scenario"
)

func testScenario(cells ...scenario.HexCell) *scenario.Scenario {
	return &scenario.Scenario{
		Name:     "Test Map",
		Sequence: 1,
		MapHexes: cells,
	}
}

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(img.Pix); i += 4 {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

type stubResolver struct {
	images map[string]*image.NRGBA
	calls  []string
}

func (r *stubResolver) Resolve(name string) *image.NRGBA {
	r.calls = append(r.calls, name)
	return r.images[name]
}

func near(a, b uint8, tol int) bool {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	return d <= tol
}

func wantPixel(t *testing.T, img *image.NRGBA, x, y int, want color.NRGBA, tol int) {
	t.Helper()
	got := img.NRGBAAt(x, y)
	if !near(got.R, want.R, tol) || !near(got.G, want.G, tol) || !near(got.B, want.B, tol) || !near(got.A, want.A, tol) {
		t.Errorf("pixel (%d,%d) = %v, want %v (tolerance %d)", x, y, got, want, tol)
	}
}

// probeBelow returns a probe point a little under the cell center, clear of
// the coordinate label glyphs.
func probeBelow(a hexgrid.Axial, origin hexgrid.Point, size float64) (int, int) {
	p := a.ToPixel(origin, size)
	return int(p.X), int(p.Y) + 15
}

func TestRenderScenarioDims(t *testing.T) {
	s := testScenario(scenario.HexCell{Q: 0, R: 0})

	for _, ss := range []int{1, 2} {
		img, err := RenderScenario(s, nil, Options{Supersample: ss})
		if err != nil {
			t.Fatalf("supersample %d: RenderScenario: %v", ss, err)
		}
		// (0-0+2)*50*1.5 + 60 wide, ceil((0-0+2)*50*sqrt3 + 60) tall.
		if got := img.Bounds().Dx(); got != 210 {
			t.Errorf("supersample %d: width = %d, want 210", ss, got)
		}
		if got := img.Bounds().Dy(); got != 234 {
			t.Errorf("supersample %d: height = %d, want 234", ss, got)
		}
	}
}

func TestRenderScenarioTerrain(t *testing.T) {
	s := testScenario(
		scenario.HexCell{Q: 0, R: 0},
		scenario.HexCell{Q: 1, R: 0, Terrain: scenario.TerrainObstacle},
		scenario.HexCell{Q: 0, R: 1, Terrain: scenario.TerrainDifficult},
	)

	img, err := RenderScenario(s, nil, Options{Supersample: 1})
	if err != nil {
		t.Fatalf("RenderScenario: %v", err)
	}

	base := hexgrid.FitCanvas(hexgrid.BoundsOf(s.CellCoords()), DefaultHexSize, DefaultMargin)
	cases := []struct {
		cell hexgrid.Axial
		want color.NRGBA
	}{
		{hexgrid.Axial{Q: 0, R: 0}, colNormal},
		{hexgrid.Axial{Q: 1, R: 0}, colObstacle},
		{hexgrid.Axial{Q: 0, R: 1}, colDifficult},
	}
	for _, c := range cases {
		x, y := probeBelow(c.cell, base.Origin, DefaultHexSize)
		wantPixel(t, img, x, y, c.want, 2)
	}
}

func TestRenderScenarioCanvasCorners(t *testing.T) {
	s := testScenario(scenario.HexCell{Q: 0, R: 0})

	img, err := RenderScenario(s, nil, Options{Supersample: 1})
	if err != nil {
		t.Fatalf("RenderScenario: %v", err)
	}

	b := img.Bounds()
	wantPixel(t, img, 0, 0, colCanvas, 2)
	wantPixel(t, img, b.Dx()-1, b.Dy()-1, colCanvas, 2)
}

func TestRenderScenarioBackground(t *testing.T) {
	blue := color.NRGBA{0x00, 0x00, 0xFF, 0xFF}
	res := &stubResolver{images: map[string]*image.NRGBA{
		"castle": solidImage(10, 10, blue),
	}}

	opacity := 0.5
	s := testScenario(scenario.HexCell{Q: 0, R: 0})
	s.Background = &scenario.Background{Image: "castle", Opacity: &opacity}

	img, err := RenderScenario(s, res, Options{Supersample: 1})
	if err != nil {
		t.Fatalf("RenderScenario: %v", err)
	}

	// Half blue over the canvas gray in the margin.
	wantPixel(t, img, 0, 0, color.NRGBA{122, 122, 250, 255}, 3)

	// Hexes still paint opaquely over the artwork.
	base := hexgrid.FitCanvas(hexgrid.BoundsOf(s.CellCoords()), DefaultHexSize, DefaultMargin)
	x, y := probeBelow(hexgrid.Axial{Q: 0, R: 0}, base.Origin, DefaultHexSize)
	wantPixel(t, img, x, y, colNormal, 2)
}

func TestRenderScenarioBackgroundFallback(t *testing.T) {
	res := &stubResolver{}
	s := testScenario(scenario.HexCell{Q: 0, R: 0})
	s.Background = &scenario.Background{Image: "missing"}

	if _, err := RenderScenario(s, res, Options{BackgroundRef: "worldmap"}); err != nil {
		t.Fatalf("RenderScenario: %v", err)
	}
	if len(res.calls) != 2 || res.calls[0] != "missing" || res.calls[1] != "worldmap" {
		t.Errorf("resolver calls = %v, want [missing worldmap]", res.calls)
	}

	// No authored image and no fallback: the resolver is never consulted.
	res = &stubResolver{}
	s = testScenario(scenario.HexCell{Q: 0, R: 0})
	if _, err := RenderScenario(s, res, Options{}); err != nil {
		t.Fatalf("RenderScenario: %v", err)
	}
	if len(res.calls) != 0 {
		t.Errorf("resolver calls = %v, want none", res.calls)
	}
}

func TestRenderScenarioEmptyMap(t *testing.T) {
	s := testScenario()
	s.MapHexes = []scenario.HexCell{}

	img, err := RenderScenario(s, nil, Options{})
	if !errors.Is(err, scenario.ErrNoCells) {
		t.Fatalf("err = %v, want ErrNoCells", err)
	}
	if img != nil {
		t.Errorf("img = %v, want nil", img.Bounds())
	}
}

func TestRenderScenarioValidation(t *testing.T) {
	s := testScenario(scenario.HexCell{Q: 0, R: 0})
	s.Name = ""

	_, err := RenderScenario(s, nil, Options{})
	var missing *scenario.MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v, want MissingFieldError", err)
	}
	if missing.Field != "name" {
		t.Errorf("missing field = %q, want %q", missing.Field, "name")
	}
}

func TestRenderScenarioCoordLabels(t *testing.T) {
	s := testScenario(scenario.HexCell{Q: 0, R: 0})

	img, err := RenderScenario(s, nil, Options{Supersample: 1})
	if err != nil {
		t.Fatalf("RenderScenario: %v", err)
	}

	// Labels land after the downscale, so the glyph pixels carry the exact
	// label color.
	found := false
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y && !found; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.NRGBAAt(x, y) == colCoord {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("no coordinate label pixels found")
	}
}

func TestDownsample(t *testing.T) {
	opaque := color.NRGBA{200, 100, 50, 255}
	img := Downsample(solidImage(8, 8, opaque), 4, 4)
	if got := img.Bounds(); got.Dx() != 4 || got.Dy() != 4 {
		t.Fatalf("bounds = %v, want 4x4", got)
	}
	wantPixel(t, img, 1, 1, opaque, 1)

	// Translucent uniforms survive the premultiply round trip.
	translucent := color.NRGBA{200, 100, 50, 128}
	img = Downsample(solidImage(8, 8, translucent), 4, 4)
	wantPixel(t, img, 1, 1, translucent, 2)
}
