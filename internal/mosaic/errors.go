package mosaic

// ErrInvalidParams is returned when a request carries unusable parameters.
// Use errors.Is(err, ErrInvalidParams) to check for this error.
var ErrInvalidParams = &InvalidParamsError{}

// InvalidParamsError describes a parameter validation failure. It is
// produced before any filesystem or image work begins.
type InvalidParamsError struct {
	Reason string
}

func (e *InvalidParamsError) Error() string {
	if e.Reason != "" {
		return "invalid parameters: " + e.Reason
	}
	return "invalid parameters"
}

func (e *InvalidParamsError) Is(target error) bool {
	_, ok := target.(*InvalidParamsError)
	return ok
}

// ErrEmptyLibrary is returned when a tile directory yields no usable images.
// Use errors.Is(err, ErrEmptyLibrary) to check for this error.
var ErrEmptyLibrary = &EmptyLibraryError{}

// EmptyLibraryError reports a tile directory with zero decodable images.
type EmptyLibraryError struct {
	Dir string
}

func (e *EmptyLibraryError) Error() string {
	if e.Dir != "" {
		return "no usable images found in tile directory: " + e.Dir
	}
	return "no usable images found in tile directory"
}

func (e *EmptyLibraryError) Is(target error) bool {
	_, ok := target.(*EmptyLibraryError)
	return ok
}
