package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"

	"github.com/cwbudde/mosaicforge/internal/store"
	"github.com/spf13/cobra"
)

var (
	galleryDataDir string
	forceDelete    bool
)

var galleryCmd = &cobra.Command{
	Use:   "gallery",
	Short: "Manage persisted mosaics",
	Long:  `List, inspect and delete mosaics that the server persisted under the data directory.`,
}

var galleryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all persisted mosaics",
	RunE:  runGalleryList,
}

var galleryShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the record of one mosaic",
	Args:  cobra.ExactArgs(1),
	RunE:  runGalleryShow,
}

var galleryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a persisted mosaic",
	Args:  cobra.ExactArgs(1),
	RunE:  runGalleryDelete,
}

func init() {
	rootCmd.AddCommand(galleryCmd)
	galleryCmd.AddCommand(galleryListCmd)
	galleryCmd.AddCommand(galleryShowCmd)
	galleryCmd.AddCommand(galleryDeleteCmd)

	galleryCmd.PersistentFlags().StringVar(&galleryDataDir, "data-dir", "./data", "Base directory for persisted mosaics")
	galleryDeleteCmd.Flags().BoolVarP(&forceDelete, "force", "f", false, "Skip confirmation prompt")
}

func runGalleryList(cmd *cobra.Command, args []string) error {
	resultStore, err := store.NewFSStore(galleryDataDir)
	if err != nil {
		return fmt.Errorf("failed to open result store: %w", err)
	}

	records, err := resultStore.ListRecords()
	if err != nil {
		return fmt.Errorf("failed to list results: %w", err)
	}

	if len(records) == 0 {
		fmt.Println("No mosaics found.")
		return nil
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tGRID\tTILES\tELAPSED\tSIZE")
	fmt.Fprintln(w, "--\t-------\t----\t-----\t-------\t----")

	for _, rec := range records {
		dir := filepath.Join(galleryDataDir, "mosaics", rec.ID)
		size, err := getDirSize(dir)
		sizeStr := "unknown"
		if err == nil {
			sizeStr = formatBytes(size)
		}

		displayID := rec.ID
		if len(displayID) > 12 {
			displayID = displayID[:12] + "..."
		}

		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%d\t%.1fs\t%s\n",
			displayID,
			rec.CreatedAt.Format("2006-01-02 15:04:05"),
			rec.Cols, rec.Rows,
			rec.TileCount,
			rec.ElapsedSeconds,
			sizeStr,
		)
	}

	w.Flush()

	fmt.Printf("\nTotal mosaics: %d\n", len(records))
	return nil
}

func runGalleryShow(cmd *cobra.Command, args []string) error {
	resultStore, err := store.NewFSStore(galleryDataDir)
	if err != nil {
		return fmt.Errorf("failed to open result store: %w", err)
	}

	rec, err := resultStore.LoadRecord(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("ID:             %s\n", rec.ID)
	fmt.Printf("Created:        %s\n", rec.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Target:         %s\n", rec.TargetImagePath)
	fmt.Printf("Tile directory: %s\n", rec.TileDirectory)
	fmt.Printf("Tile size:      %d\n", rec.TileSize)
	fmt.Printf("Penalty factor: %g\n", rec.PenaltyFactor)
	fmt.Printf("Sigma divisor:  %g\n", rec.SigmaDivisor)
	fmt.Printf("Grid:           %dx%d (%d cells)\n", rec.Cols, rec.Rows, rec.Cells)
	fmt.Printf("Library tiles:  %d\n", rec.TileCount)
	fmt.Printf("Elapsed:        %.2fs\n", rec.ElapsedSeconds)
	fmt.Printf("Image:          %s\n", filepath.Join(galleryDataDir, "mosaics", rec.ID, "mosaic.png"))

	return nil
}

func runGalleryDelete(cmd *cobra.Command, args []string) error {
	resultStore, err := store.NewFSStore(galleryDataDir)
	if err != nil {
		return fmt.Errorf("failed to open result store: %w", err)
	}

	id := args[0]

	if !forceDelete {
		fmt.Printf("Delete mosaic %s? [y/N]: ", id)
		var response string
		fmt.Scanln(&response)
		if response != "y" && response != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := resultStore.DeleteResult(id); err != nil {
		return err
	}

	fmt.Printf("Deleted %s\n", id)
	return nil
}

// getDirSize calculates the total size of a directory
func getDirSize(path string) (int64, error) {
	var size int64
	err := filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			size += info.Size()
		}
		return nil
	})
	return size, err
}

// formatBytes formats bytes as human-readable string
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
