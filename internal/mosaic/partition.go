package mosaic

import (
	"image"
	"math"
)

// Cell is one rectangle of the target image partition. Width and Height
// equal the tile size except in the last column or row, where they shrink
// to the remaining image extent.
type Cell struct {
	X, Y          int
	Width, Height int
}

// Edge reports whether the cell is smaller than the base tile size.
func (c Cell) Edge(tileSize int) bool {
	return c.Width != tileSize || c.Height != tileSize
}

// Partition returns the cells covering a width×height image in row-major
// order, left to right then top to bottom.
func Partition(width, height, tileSize int) []Cell {
	cols := (width + tileSize - 1) / tileSize
	rows := (height + tileSize - 1) / tileSize

	cells := make([]Cell, 0, cols*rows)
	for y := 0; y < height; y += tileSize {
		for x := 0; x < width; x += tileSize {
			cells = append(cells, Cell{
				X:      x,
				Y:      y,
				Width:  min(tileSize, width-x),
				Height: min(tileSize, height-y),
			})
		}
	}
	return cells
}

// GridSize returns the column and row counts of the partition.
func GridSize(width, height, tileSize int) (cols, rows int) {
	cols = (width + tileSize - 1) / tileSize
	rows = (height + tileSize - 1) / tileSize
	return cols, rows
}

// CellColor computes the representative color of one cell. With
// sigmaDivisor zero each pixel counts equally. Otherwise pixels are
// Gaussian-weighted by their distance from the image center, with
// sigma = max(imageWidth, imageHeight) / sigmaDivisor, so cells near the
// center contribute a sharper focal region to the mosaic.
func CellColor(img *image.NRGBA, c Cell, sigmaDivisor float64) [3]float64 {
	bounds := img.Bounds()

	if sigmaDivisor <= 0 {
		return cellMean(img, c)
	}

	centerX := float64(bounds.Dx()) / 2
	centerY := float64(bounds.Dy()) / 2
	sigma := float64(max(bounds.Dx(), bounds.Dy())) / sigmaDivisor
	denom := 2 * sigma * sigma

	var r, g, b, total float64
	for y := c.Y; y < c.Y+c.Height; y++ {
		for x := c.X; x < c.X+c.Width; x++ {
			dx := float64(x) - centerX
			dy := float64(y) - centerY
			w := math.Exp(-(dx*dx + dy*dy) / denom)

			i := img.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)
			r += float64(img.Pix[i+0]) * w
			g += float64(img.Pix[i+1]) * w
			b += float64(img.Pix[i+2]) * w
			total += w
		}
	}

	// Weights underflow to zero far from the center; fall back to the
	// uniform mean rather than dividing by zero.
	if total == 0 {
		return cellMean(img, c)
	}
	return [3]float64{r / total, g / total, b / total}
}

func cellMean(img *image.NRGBA, c Cell) [3]float64 {
	bounds := img.Bounds()

	var r, g, b float64
	for y := c.Y; y < c.Y+c.Height; y++ {
		for x := c.X; x < c.X+c.Width; x++ {
			i := img.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)
			r += float64(img.Pix[i+0])
			g += float64(img.Pix[i+1])
			b += float64(img.Pix[i+2])
		}
	}

	n := float64(c.Width * c.Height)
	return [3]float64{r / n, g / n, b / n}
}
