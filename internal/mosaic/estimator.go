package mosaic

import (
	"fmt"
	"math"
)

// Settings is the advisory output of the adaptive estimator. It is a plain
// suggestion record; nothing applies it automatically.
type Settings struct {
	TileCount     int     `json:"tile_count"`
	TileSize      int     `json:"tile_size"`
	PenaltyFactor float64 `json:"penalty_factor"`
	ImageWidth    int     `json:"image_width"`
	ImageHeight   int     `json:"image_height"`
}

// Suggest derives generation parameters from the target dimensions and the
// tile library cardinality. The tile size targets roughly 100 cells along
// the shorter image dimension; the penalty grows with the library size,
// since a large library can afford to diversify where a small one must
// reuse tiles.
func Suggest(imageWidth, imageHeight, tileCount int) Settings {
	minDim := min(imageWidth, imageHeight)

	tileSize := int(math.Round(float64(minDim) / 100.0))
	if tileSize < 8 {
		tileSize = 8
	}
	if tileSize > 128 {
		tileSize = 128
	}

	var penalty float64
	switch {
	case tileCount == 0:
		penalty = 50
	case tileCount < 50:
		penalty = 10 + float64(tileCount)/50*20
	case tileCount < 200:
		penalty = 30 + float64(tileCount-50)/150*40
	default:
		penalty = 70 + float64(min(tileCount, 1000)-200)/800*30
	}

	return Settings{
		TileCount:     tileCount,
		TileSize:      tileSize,
		PenaltyFactor: math.Round(penalty),
		ImageWidth:    imageWidth,
		ImageHeight:   imageHeight,
	}
}

// EstimateSettings suggests parameters for a target image and a tile
// directory. The directory is only scanned for countable image files, not
// decoded, and no cached library state is touched.
func EstimateSettings(targetPath, tileDir string) (*Settings, error) {
	img, err := LoadImage(targetPath)
	if err != nil {
		return nil, err
	}

	paths, err := listTileFiles(tileDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan tile directory: %w", err)
	}

	s := Suggest(img.Bounds().Dx(), img.Bounds().Dy(), len(paths))
	return &s, nil
}
