package store

import "time"

// Record describes one completed mosaic generation. It is the JSON
// metadata persisted next to the mosaic image; the pixel data itself is
// stored separately as mosaic.png.
type Record struct {
	// ID is the unique identifier of the generation (the job ID when the
	// mosaic was produced by the server).
	ID string `json:"id"`

	// TargetImagePath and TileDirectory identify the inputs.
	TargetImagePath string `json:"targetImagePath"`
	TileDirectory   string `json:"tileDirectory"`

	// Generation parameters as requested.
	TileSize      int     `json:"tileSize"`
	PenaltyFactor float64 `json:"penaltyFactor"`
	SigmaDivisor  float64 `json:"sigmaDivisor"`

	// Grid geometry and library statistics of the finished run.
	Cols      int `json:"cols"`
	Rows      int `json:"rows"`
	Cells     int `json:"cells"`
	TileCount int `json:"tileCount"`

	// ElapsedSeconds is the wall-clock generation time.
	ElapsedSeconds float64 `json:"elapsedSeconds"`

	// CreatedAt records when the result was saved.
	CreatedAt time.Time `json:"createdAt"`
}
