package mosaic

import (
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
)

func solidTile(size int, c color.NRGBA) *Tile {
	img := imaging.New(size, size, c)
	return &Tile{Color: averageColor(img), image: img}
}

func TestPlaceInteriorCopiesBaseBuffer(t *testing.T) {
	cp := NewCompositor(64, 64, 32)
	tile := solidTile(32, color.NRGBA{200, 10, 10, 255})

	cp.Place(Cell{X: 32, Y: 0, Width: 32, Height: 32}, tile)

	if cp.Resampled() != 0 {
		t.Errorf("Interior placement must not resample, got %d", cp.Resampled())
	}

	canvas := cp.Canvas()
	base := tile.Image()
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			got := canvas.NRGBAAt(32+x, y)
			want := base.NRGBAAt(x, y)
			if got != want {
				t.Fatalf("Pixel (%d,%d) differs from base buffer: got %v, want %v", 32+x, y, got, want)
			}
		}
	}
}

func TestPlaceEdgeResamples(t *testing.T) {
	cp := NewCompositor(36, 36, 32)
	tile := solidTile(32, color.NRGBA{10, 200, 10, 255})

	cp.Place(Cell{X: 32, Y: 0, Width: 4, Height: 32}, tile)
	cp.Place(Cell{X: 0, Y: 32, Width: 32, Height: 4}, tile)

	if cp.Resampled() != 2 {
		t.Errorf("Expected 2 resampled placements, got %d", cp.Resampled())
	}

	// Resampling a solid tile keeps the color
	got := cp.Canvas().NRGBAAt(33, 10)
	if got.G < 195 || got.R > 15 {
		t.Errorf("Edge cell should stay solid green, got %v", got)
	}
}

func TestCanvasMatchesTargetDimensions(t *testing.T) {
	cp := NewCompositor(101, 77, 32)
	bounds := cp.Canvas().Bounds()
	if bounds.Dx() != 101 || bounds.Dy() != 77 {
		t.Errorf("Expected 101x77 canvas, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestPlaceOutsidePixelsUntouched(t *testing.T) {
	cp := NewCompositor(64, 64, 32)
	tile := solidTile(32, color.NRGBA{255, 255, 255, 255})

	cp.Place(Cell{X: 0, Y: 0, Width: 32, Height: 32}, tile)

	if got := cp.Canvas().NRGBAAt(40, 40); got != (color.NRGBA{}) {
		t.Errorf("Pixel outside the placed cell should be untouched, got %v", got)
	}
}
