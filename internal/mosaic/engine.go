package mosaic

import "context"

// Request mirrors the wire contract of the host boundary. The JSON field
// names are fixed; external callers depend on them bit-for-bit.
type Request struct {
	TargetImagePath string  `json:"target_image_path"`
	TileDirectory   string  `json:"tile_directory"`
	TileSize        int     `json:"tile_size"`
	PenaltyFactor   float64 `json:"penalty_factor"`
	SigmaDivisor    float64 `json:"sigma_divisor"`
}

// Params extracts the numeric generation parameters from the request.
func (r Request) Params() Params {
	return Params{
		TileSize:      r.TileSize,
		PenaltyFactor: r.PenaltyFactor,
		SigmaDivisor:  r.SigmaDivisor,
	}
}

// Engine is the long-lived mosaic service: the library cache plus the
// generation pipeline. One Engine serves any number of concurrent
// requests; each generation gets its own usage state while sharing the
// cached library snapshot read-only.
type Engine struct {
	cache *LibraryCache
}

// NewEngine creates an engine with an empty library cache.
func NewEngine() *Engine {
	return &Engine{cache: NewLibraryCache()}
}

// Cache exposes the library cache, mainly for observability in tests.
func (e *Engine) Cache() *LibraryCache {
	return e.cache
}

// Generate validates the request, resolves the library from the cache and
// runs the pipeline. Parameters are rejected before any library work.
func (e *Engine) Generate(ctx context.Context, req Request, progress ProgressFunc) (*Result, error) {
	if err := req.Params().Validate(); err != nil {
		return nil, err
	}

	lib, err := e.cache.Get(ctx, req.TileDirectory, req.TileSize)
	if err != nil {
		return nil, err
	}

	return Generate(ctx, lib, req.TargetImagePath, req.Params(), progress)
}

// GenerateMosaic implements the generate_mosaic command: it runs the
// pipeline and returns the mosaic as a base64 PNG data URL.
func (e *Engine) GenerateMosaic(ctx context.Context, req Request) (string, error) {
	result, err := e.Generate(ctx, req, nil)
	if err != nil {
		return "", err
	}

	png, err := EncodePNG(result.Image)
	if err != nil {
		return "", err
	}
	return DataURL(png), nil
}

// AdaptiveSettings implements the get_adaptive_settings command. It never
// touches the library cache.
func (e *Engine) AdaptiveSettings(targetImagePath, tileDirectory string) (*Settings, error) {
	return EstimateSettings(targetImagePath, tileDirectory)
}
