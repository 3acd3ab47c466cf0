package mosaic

// Tuning constants shared by the selector and the color index. Color
// distances are squared Euclidean over 8-bit channels, so a raw penalty
// factor in the 0-100 range is multiplied up to stay commensurate with them.
const (
	penaltyMultiplier = 50.0
	kMin              = 10
	kMax              = 100
	kDivisor          = 10
)

// supportedExtensions lists the file types the tile loader will decode.
var supportedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Params holds the numeric knobs for a single mosaic generation.
type Params struct {
	// TileSize is the edge length of the square tiles in pixels.
	TileSize int `json:"tile_size"`

	// PenaltyFactor scales the anti-repetition penalty. Zero disables it.
	PenaltyFactor float64 `json:"penalty_factor"`

	// SigmaDivisor controls center weighting of cell colors. Zero means
	// uniform weighting; larger values narrow the weighted region.
	SigmaDivisor float64 `json:"sigma_divisor"`
}

// Validate rejects parameter combinations before any library or image I/O.
func (p Params) Validate() error {
	if p.TileSize <= 0 {
		return &InvalidParamsError{Reason: "tile_size must be positive"}
	}
	if p.PenaltyFactor < 0 {
		return &InvalidParamsError{Reason: "penalty_factor must not be negative"}
	}
	if p.SigmaDivisor < 0 {
		return &InvalidParamsError{Reason: "sigma_divisor must not be negative"}
	}
	return nil
}
