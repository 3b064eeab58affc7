// File: /models/errors.go
package models

import (
	"errors"
	"fmt"
)

// Typed outcomes of core operations. Controllers map these to HTTP status
// codes; nothing below this layer writes responses.
var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("post not found")
	ErrForbidden      = errors.New("insufficient privileges")
	ErrStorageFailure = errors.New("storage unavailable")
)

// MediaReleaseError records a failed media store release during deletion.
// It never blocks the deletion itself; it is reported separately.
type MediaReleaseError struct {
	StorageID string
	Err       error
}

func (e *MediaReleaseError) Error() string {
	return fmt.Sprintf("failed to release media object %s: %v", e.StorageID, e.Err)
}

func (e *MediaReleaseError) Unwrap() error {
	return e.Err
}
