package vectorconfig

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is matching. The concrete error values returned by this
// package carry more context (the missing key, the underlying cause).
var (
	// ErrConfigNotFound matches lookups for a key absent from an otherwise
	// valid catalog. Callers are expected to branch on this (e.g. fall back
	// to DefaultKey) rather than treat it as fatal.
	ErrConfigNotFound = errors.New("config not found")

	// ErrCatalogUnavailable matches failures to materialize the catalog at
	// all (manifest fetch failed, or the manifest did not decode).
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

// NotFoundError reports a key absent from a valid catalog.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("config for key %q not found", e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrConfigNotFound
}

// CatalogError reports that the catalog could not be constructed.
type CatalogError struct {
	Err error
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("cannot load catalog: %v", e.Err)
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}

func (e *CatalogError) Is(target error) bool {
	return target == ErrCatalogUnavailable
}
