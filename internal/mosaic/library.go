package mosaic

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"
)

// Library is an immutable snapshot of a tile directory: every usable tile
// resized to TileSize plus a color index over the tiles' average colors.
// A Library is safe for concurrent use by any number of generations; any
// change to the directory or tile size produces a new Library instead.
type Library struct {
	Dir      string
	TileSize int
	Tiles    []Tile
	Index    ColorIndex
}

// LoadLibrary scans dir recursively for jpg/jpeg/png files, decodes and
// resizes each one to tileSize in parallel, and builds the color index.
// Individual files that fail to decode are logged and skipped; an empty
// result is ErrEmptyLibrary.
func LoadLibrary(ctx context.Context, dir string, tileSize int) (*Library, error) {
	if tileSize <= 0 {
		return nil, &InvalidParamsError{Reason: "tile_size must be positive"}
	}

	paths, err := listTileFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan tile directory: %w", err)
	}

	// Load slots are indexed by path position so the merged order is the
	// deterministic walk order regardless of load parallelism.
	loaded := make([]*Tile, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			img, err := imaging.Open(path, imaging.AutoOrientation(true))
			if err != nil {
				slog.Warn("Skipping unreadable tile", "path", path, "error", err)
				return nil
			}

			base := imaging.Fill(img, tileSize, tileSize, imaging.Center, imaging.Lanczos)
			loaded[i] = &Tile{
				Path:  path,
				Color: averageColor(base),
				image: base,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	tiles := make([]Tile, 0, len(loaded))
	for _, t := range loaded {
		if t != nil {
			tiles = append(tiles, *t)
		}
	}
	if len(tiles) == 0 {
		return nil, &EmptyLibraryError{Dir: dir}
	}

	colors := make([][3]float64, len(tiles))
	for i, t := range tiles {
		colors[i] = t.Color
	}

	slog.Info("Tile library loaded", "dir", dir, "tiles", len(tiles), "tile_size", tileSize)

	return &Library{
		Dir:      dir,
		TileSize: tileSize,
		Tiles:    tiles,
		Index:    NewColorIndex(colors),
	}, nil
}

// listTileFiles returns candidate tile paths in deterministic walk order.
func listTileFiles(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if supportedExtensions[strings.ToLower(filepath.Ext(path))] {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}
