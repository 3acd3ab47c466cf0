package mosaic

import (
	"image"
	"image/draw"
	"sync/atomic"

	"github.com/disintegration/imaging"
)

// Compositor assembles the output canvas. Interior cells copy the selected
// tile's base buffer unmodified; only edge cells are resampled down to
// their exact extent, which avoids the per-cell resize the naive approach
// pays everywhere. Placements of distinct cells touch disjoint canvas
// regions and may run concurrently.
type Compositor struct {
	canvas    *image.NRGBA
	tileSize  int
	resampled atomic.Int64
}

// NewCompositor creates a compositor with a canvas matching the target
// image dimensions.
func NewCompositor(width, height, tileSize int) *Compositor {
	return &Compositor{
		canvas:   image.NewNRGBA(image.Rect(0, 0, width, height)),
		tileSize: tileSize,
	}
}

// Place writes the tile into the cell's rectangle on the canvas.
func (cp *Compositor) Place(cell Cell, tile *Tile) {
	src := tile.Image()
	if cell.Edge(cp.tileSize) {
		src = imaging.Resize(src, cell.Width, cell.Height, imaging.Lanczos)
		cp.resampled.Add(1)
	}

	rect := image.Rect(cell.X, cell.Y, cell.X+cell.Width, cell.Y+cell.Height)
	draw.Draw(cp.canvas, rect, src, src.Bounds().Min, draw.Src)
}

// Canvas returns the assembled output image.
func (cp *Compositor) Canvas() *image.NRGBA {
	return cp.canvas
}

// Resampled returns how many placements required edge resampling.
func (cp *Compositor) Resampled() int {
	return int(cp.resampled.Load())
}
