package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrClipNotFound is returned when a clip name is not in the catalog.
	ErrClipNotFound = errors.New("clip not found")

	// ErrDuplicateClip is returned when a manifest names a clip twice.
	ErrDuplicateClip = errors.New("duplicate clip name")

	// ErrInvalidManifest is returned for manifests that cannot be used.
	ErrInvalidManifest = errors.New("invalid clip manifest")
)

// NotFoundError reports an unknown clip name with close matches.
type NotFoundError struct {
	Name        string
	Suggestions []string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("clip %q not found", e.Name)
	}
	return fmt.Sprintf("clip %q not found, did you mean %s?", e.Name, strings.Join(e.Suggestions, ", "))
}

// Unwrap returns ErrClipNotFound.
func (e *NotFoundError) Unwrap() error {
	return ErrClipNotFound
}
