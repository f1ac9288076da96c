package domain

import "errors"

var (
	// ErrEntryNotFound signals a missing catalog entry.
	ErrEntryNotFound = errors.New("catalog entry not found")
	// ErrCatalogEmpty signals a catalog with no usable entries at load time.
	ErrCatalogEmpty = errors.New("catalog is empty")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrVectorUnavailable signals that no embedding could be produced or
	// fetched; fusion proceeds without the vector signal.
	ErrVectorUnavailable = errors.New("vector scores unavailable")
)
