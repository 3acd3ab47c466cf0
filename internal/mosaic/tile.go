package mosaic

import "image"

// Tile is one library entry: a base image resized to the library's tile
// size plus its average color. Tiles are immutable after loading and owned
// by their Library; the compositor copies pixels out, never aliases them.
type Tile struct {
	Path  string
	Color [3]float64

	image *image.NRGBA
}

// Image returns the tile's base buffer. Callers must treat it as read-only.
func (t *Tile) Image() *image.NRGBA {
	return t.image
}

// averageColor computes the plain per-channel mean over all pixels.
func averageColor(img *image.NRGBA) [3]float64 {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	var r, g, b float64
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := img.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)
			r += float64(img.Pix[i+0])
			g += float64(img.Pix[i+1])
			b += float64(img.Pix[i+2])
		}
	}

	n := float64(width * height)
	return [3]float64{r / n, g / n, b / n}
}
