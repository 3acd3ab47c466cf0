package mosaic

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"log/slog"
	"runtime"
	"time"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"
)

// ProgressFunc is called after each cell is decided. done counts decided
// cells, total is the cell count of the whole grid.
type ProgressFunc func(done, total int)

// Result carries a finished mosaic plus run statistics.
type Result struct {
	Image     *image.NRGBA
	Cols      int
	Rows      int
	Cells     int
	TileCount int
	Resampled int
	Elapsed   time.Duration
}

// Generate runs the full pipeline against an already-built library:
// partition the target, select one tile per cell in row-major order, then
// composite the canvas. Selection is sequential because every pick feeds
// the next through the usage counters; placement of decided cells runs in
// parallel. The context is checked between cells, so cancellation takes
// effect without finishing the grid.
func Generate(ctx context.Context, lib *Library, targetPath string, p Params, progress ProgressFunc) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	target, err := LoadImage(targetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load target image: %w", err)
	}

	start := time.Now()
	width := target.Bounds().Dx()
	height := target.Bounds().Dy()

	cells := Partition(width, height, lib.TileSize)
	cols, rows := GridSize(width, height, lib.TileSize)
	slog.Info("Generating mosaic",
		"target", targetPath,
		"grid", fmt.Sprintf("%dx%d", cols, rows),
		"cells", len(cells),
		"tiles", len(lib.Tiles),
	)

	selector := NewSelector(lib, p.PenaltyFactor)
	picks := make([]int, len(cells))
	for i, cell := range cells {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		picks[i] = selector.Pick(CellColor(target, cell, p.SigmaDivisor))
		if progress != nil {
			progress(i+1, len(cells))
		}
	}

	compositor := NewCompositor(width, height, lib.TileSize)
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, cell := range cells {
		i, cell := i, cell
		g.Go(func() error {
			compositor.Place(cell, &lib.Tiles[picks[i]])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	slog.Info("Mosaic complete",
		"cells", len(cells),
		"resampled", compositor.Resampled(),
		"elapsed", elapsed,
	)

	return &Result{
		Image:     compositor.Canvas(),
		Cols:      cols,
		Rows:      rows,
		Cells:     len(cells),
		TileCount: len(lib.Tiles),
		Resampled: compositor.Resampled(),
		Elapsed:   elapsed,
	}, nil
}

// LoadImage decodes an image with EXIF orientation applied and converts it
// to NRGBA with a zero-origin bounds.
func LoadImage(path string) (*image.NRGBA, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return imaging.Clone(img), nil
}

// EncodePNG encodes the image as PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// DataURL wraps PNG bytes in a data:image/png;base64 URL.
func DataURL(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}
