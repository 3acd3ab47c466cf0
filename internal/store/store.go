package store

// Store defines the interface for persisting finished mosaics.
// Implementations must be thread-safe and handle concurrent access
// gracefully.
//
// Error handling conventions:
//   - Return nil error on success
//   - Return ErrNotFound if a result doesn't exist (for Load/Delete)
//   - Return descriptive errors for I/O, serialization, or validation failures
//   - Wrap underlying errors with context using fmt.Errorf("context: %w", err)
type Store interface {
	// SaveResult atomically saves a generation record and its mosaic PNG.
	// An existing result for the same ID is overwritten. Implementations
	// should use atomic write strategies (temp file + rename) so a crash
	// never leaves a half-written result behind.
	SaveResult(rec *Record, png []byte) error

	// LoadRecord retrieves the record for the given result ID.
	// Returns ErrNotFound if no result exists for this ID.
	LoadRecord(id string) (*Record, error)

	// LoadImage retrieves the mosaic PNG bytes for the given result ID.
	// Returns ErrNotFound if no result exists for this ID.
	LoadImage(id string) ([]byte, error)

	// ListRecords returns the records of all stored results. The returned
	// slice may be empty if nothing has been stored yet.
	ListRecords() ([]Record, error)

	// DeleteResult removes the record and the mosaic image for the given
	// result ID. Returns ErrNotFound if no result exists for this ID.
	DeleteResult(id string) error
}

// ErrNotFound is returned when a requested result does not exist.
// Use errors.Is(err, ErrNotFound) to check for this error.
var ErrNotFound = &NotFoundError{}

// NotFoundError represents a missing result error.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return "result not found: " + e.ID
	}
	return "result not found"
}

func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}
