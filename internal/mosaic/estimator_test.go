package mosaic

import (
	"image/color"
	"math"
	"path/filepath"
	"testing"
)

func TestSuggestTileSize(t *testing.T) {
	cases := []struct {
		w, h, want int
	}{
		{1000, 2000, 10},  // 1000/100
		{3200, 4800, 32},  // 3200/100
		{200, 100, 8},     // clamped up from 1
		{20000, 30000, 128}, // clamped down from 200
	}
	for _, c := range cases {
		got := Suggest(c.w, c.h, 100)
		if got.TileSize != c.want {
			t.Errorf("Suggest(%d,%d): expected tile size %d, got %d", c.w, c.h, c.want, got.TileSize)
		}
	}
}

func TestSuggestPenalty(t *testing.T) {
	cases := []struct {
		count int
		want  float64
	}{
		{0, 50},
		{25, 20},   // 10 + 25/50*20
		{50, 30},   // boundary of the middle band
		{125, 50},  // 30 + 75/150*40
		{200, 70},  // boundary of the upper band
		{1000, 100},
		{5000, 100}, // capped at 1000
	}
	for _, c := range cases {
		got := Suggest(1000, 1000, c.count)
		if got.PenaltyFactor != c.want {
			t.Errorf("Suggest with %d tiles: expected penalty %v, got %v", c.count, c.want, got.PenaltyFactor)
		}
	}
}

func TestSuggestAlwaysFiniteAndPositive(t *testing.T) {
	for _, count := range []int{1, 7, 49, 51, 199, 201, 999, 100000} {
		s := Suggest(640, 480, count)
		if s.TileSize <= 0 {
			t.Errorf("Tile count %d: non-positive tile size %d", count, s.TileSize)
		}
		if s.PenaltyFactor <= 0 || math.IsNaN(s.PenaltyFactor) || math.IsInf(s.PenaltyFactor, 0) {
			t.Errorf("Tile count %d: bad penalty factor %v", count, s.PenaltyFactor)
		}
	}
}

func TestEstimateSettings(t *testing.T) {
	tiles := tileFixtureDir(t)
	targetDir := t.TempDir()
	target := filepath.Join(targetDir, "target.png")
	writeSolidPNG(t, target, 300, 200, color.NRGBA{128, 128, 128, 255})

	settings, err := EstimateSettings(target, tiles)
	if err != nil {
		t.Fatalf("EstimateSettings failed: %v", err)
	}

	if settings.TileCount != 3 {
		t.Errorf("Expected 3 countable tiles, got %d", settings.TileCount)
	}
	if settings.ImageWidth != 300 || settings.ImageHeight != 200 {
		t.Errorf("Expected 300x200 image, got %dx%d", settings.ImageWidth, settings.ImageHeight)
	}
	if settings.TileSize != 8 {
		t.Errorf("Expected minimum tile size 8 for a small image, got %d", settings.TileSize)
	}
}

func TestEstimateSettingsMissingTarget(t *testing.T) {
	if _, err := EstimateSettings("/no/such/image.png", t.TempDir()); err == nil {
		t.Error("Expected an error for a missing target image")
	}
}
