package cmd

import (
	"fmt"

	"github.com/cwbudde/mosaicforge/internal/mosaic"
	"github.com/spf13/cobra"
)

var (
	settingsTarget string
	settingsTiles  string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Suggest generation parameters",
	Long: `Derives suggested tile size and penalty factor from the target image
dimensions and the tile library size, without generating anything.`,
	RunE: runSettings,
}

func init() {
	settingsCmd.Flags().StringVar(&settingsTarget, "target", "", "Target image path (required)")
	settingsCmd.Flags().StringVar(&settingsTiles, "tiles", "", "Tile directory (required)")

	settingsCmd.MarkFlagRequired("target")
	settingsCmd.MarkFlagRequired("tiles")
	rootCmd.AddCommand(settingsCmd)
}

func runSettings(cmd *cobra.Command, args []string) error {
	settings, err := mosaic.EstimateSettings(settingsTarget, settingsTiles)
	if err != nil {
		return err
	}

	fmt.Printf("Image:          %dx%d\n", settings.ImageWidth, settings.ImageHeight)
	fmt.Printf("Tiles found:    %d\n", settings.TileCount)
	fmt.Printf("Tile size:      %d\n", settings.TileSize)
	fmt.Printf("Penalty factor: %.0f\n", settings.PenaltyFactor)

	return nil
}
