package mosaic

import (
	"image"
	"image/color"
	"testing"
)

func TestPartitionRowMajorCoverage(t *testing.T) {
	cells := Partition(100, 100, 32)

	if len(cells) != 16 {
		t.Fatalf("Expected 16 cells for 100x100 at tile size 32, got %d", len(cells))
	}

	// Row-major: the second cell sits to the right of the first
	if cells[0].X != 0 || cells[0].Y != 0 {
		t.Errorf("First cell should start at origin, got (%d,%d)", cells[0].X, cells[0].Y)
	}
	if cells[1].X != 32 || cells[1].Y != 0 {
		t.Errorf("Second cell should be at (32,0), got (%d,%d)", cells[1].X, cells[1].Y)
	}

	// Last cell of the first row shrinks to the remaining 4 pixels
	if cells[3].X != 96 || cells[3].Width != 4 || cells[3].Height != 32 {
		t.Errorf("Expected last cell of first row at x=96 with width 4, got %+v", cells[3])
	}

	// Bottom-right corner cell shrinks in both dimensions
	last := cells[len(cells)-1]
	if last.X != 96 || last.Y != 96 || last.Width != 4 || last.Height != 4 {
		t.Errorf("Expected 4x4 corner cell at (96,96), got %+v", last)
	}
}

func TestPartitionEdgeCellCount(t *testing.T) {
	cells := Partition(100, 100, 32)

	edge := 0
	for _, c := range cells {
		if c.Edge(32) {
			edge++
		}
	}

	// 4x4 grid: last column (4) plus last row (4) minus the shared corner
	if edge != 7 {
		t.Errorf("Expected 7 edge cells, got %d", edge)
	}
	if interior := len(cells) - edge; interior != 9 {
		t.Errorf("Expected 9 interior cells, got %d", interior)
	}
}

func TestPartitionExactFitHasNoEdgeCells(t *testing.T) {
	cells := Partition(64, 64, 32)

	if len(cells) != 4 {
		t.Fatalf("Expected 4 cells, got %d", len(cells))
	}
	for i, c := range cells {
		if c.Edge(32) {
			t.Errorf("Cell %d should not be an edge cell: %+v", i, c)
		}
	}
}

func TestGridSize(t *testing.T) {
	cols, rows := GridSize(100, 65, 32)
	if cols != 4 || rows != 3 {
		t.Errorf("Expected 4x3 grid, got %dx%d", cols, rows)
	}
}

func TestCellColorUniformMean(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.NRGBA{10, 20, 30, 255})
		}
	}

	got := CellColor(img, Cell{X: 0, Y: 0, Width: 4, Height: 4}, 0)
	want := [3]float64{10, 20, 30}
	if got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestCellColorMixedMean(t *testing.T) {
	// Left half black, right half white
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			v := uint8(0)
			if x >= 2 {
				v = 255
			}
			img.Set(x, y, color.NRGBA{v, v, v, 255})
		}
	}

	got := CellColor(img, Cell{X: 0, Y: 0, Width: 4, Height: 2}, 0)
	if got[0] != 127.5 || got[1] != 127.5 || got[2] != 127.5 {
		t.Errorf("Expected 127.5 per channel, got %v", got)
	}
}

func TestCellColorCenterWeighting(t *testing.T) {
	// Black image with a single white pixel at the image center. With
	// center weighting enabled the white pixel must dominate the average.
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.NRGBA{0, 0, 0, 255})
		}
	}
	img.Set(4, 4, color.NRGBA{255, 255, 255, 255})

	cell := Cell{X: 0, Y: 0, Width: 8, Height: 8}

	uniform := CellColor(img, cell, 0)
	weighted := CellColor(img, cell, 16) // sigma = 8/16 = 0.5, very tight

	if uniform[0] >= 10 {
		t.Errorf("Uniform mean should be near black, got %v", uniform)
	}
	if weighted[0] <= uniform[0]*10 {
		t.Errorf("Center weighting should boost the white center pixel: uniform %v, weighted %v", uniform, weighted)
	}
}

func TestCellColorUnderflowFallsBackToMean(t *testing.T) {
	// A cell far from the image center with an extremely tight sigma gets
	// all-zero weights; the result must be the uniform mean, not NaN.
	img := image.NewNRGBA(image.Rect(0, 0, 2048, 2048))
	for y := 2040; y < 2048; y++ {
		for x := 2040; x < 2048; x++ {
			img.Set(x, y, color.NRGBA{100, 100, 100, 255})
		}
	}

	cell := Cell{X: 2040, Y: 2040, Width: 8, Height: 8}
	got := CellColor(img, cell, 1e6)

	if got[0] != 100 || got[1] != 100 || got[2] != 100 {
		t.Errorf("Expected fallback mean of 100 per channel, got %v", got)
	}
}
