package cmd

import (
	"fmt"
	"log/slog"

	"github.com/cwbudde/mosaicforge/internal/mosaic"
	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
)

var (
	targetPath   string
	tileDir      string
	outPath      string
	tileSize     int
	penalty      float64
	sigmaDivisor float64
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a single mosaic",
	Long:  `Builds the tile library, generates a mosaic for the target image and writes it to the output path.`,
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&targetPath, "target", "", "Target image path (required)")
	generateCmd.Flags().StringVar(&tileDir, "tiles", "", "Tile directory (required)")
	generateCmd.Flags().StringVar(&outPath, "out", "mosaic.png", "Output image path")
	generateCmd.Flags().IntVar(&tileSize, "tile-size", 32, "Tile edge length in pixels")
	generateCmd.Flags().Float64Var(&penalty, "penalty", 50, "Anti-repetition penalty factor")
	generateCmd.Flags().Float64Var(&sigmaDivisor, "sigma-divisor", 0, "Center weighting divisor (0 = uniform)")

	generateCmd.MarkFlagRequired("target")
	generateCmd.MarkFlagRequired("tiles")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	engine := mosaic.NewEngine()
	req := mosaic.Request{
		TargetImagePath: targetPath,
		TileDirectory:   tileDir,
		TileSize:        tileSize,
		PenaltyFactor:   penalty,
		SigmaDivisor:    sigmaDivisor,
	}

	result, err := engine.Generate(cmd.Context(), req, nil)
	if err != nil {
		return err
	}

	if err := imaging.Save(result.Image, outPath); err != nil {
		return fmt.Errorf("failed to save output: %w", err)
	}

	cps := float64(result.Cells) / result.Elapsed.Seconds()
	slog.Info("Mosaic written",
		"out", outPath,
		"grid", fmt.Sprintf("%dx%d", result.Cols, result.Rows),
		"tiles", result.TileCount,
		"resampled", result.Resampled,
		"elapsed", result.Elapsed,
		"cells_per_second", fmt.Sprintf("%.0f", cps),
	)

	fmt.Printf("Wrote %s (%dx%d grid, %d tiles, %.0f cells/sec)\n",
		outPath, result.Cols, result.Rows, result.TileCount, cps)

	return nil
}
