package vectorconfig

import (
	"context"
	"sync"
)

// Loader materializes a catalog from its Source at most once per Loader,
// even under concurrent first access, and serves all later reads lock-free.
//
// A failed materialization is sticky: the wrapped error is returned on every
// subsequent call. This layer performs no retry — callers that want another
// attempt construct a new Loader.
type Loader struct {
	source  Source
	once    sync.Once
	configs ConfigMap
	err     error
}

// NewLoader returns a Loader backed by source.
func NewLoader(source Source) *Loader {
	return &Loader{source: source}
}

// All returns the full catalog, materializing it on first use.
// Failures are wrapped in *CatalogError.
func (l *Loader) All(ctx context.Context) (ConfigMap, error) {
	l.once.Do(func() {
		configs, err := l.source.LoadCatalog(ctx)
		if err != nil {
			l.err = &CatalogError{Err: err}
			return
		}
		l.configs = configs
	})
	return l.configs, l.err
}

// ByKey returns the record stored under key.
// A missing key yields a *NotFoundError; a catalog that could not be
// materialized yields the Loader's *CatalogError.
func (l *Loader) ByKey(ctx context.Context, key string) (VectorConfig, error) {
	configs, err := l.All(ctx)
	if err != nil {
		return VectorConfig{}, err
	}
	cfg, ok := Lookup(configs, key)
	if !ok {
		return VectorConfig{}, &NotFoundError{Key: key}
	}
	return cfg, nil
}
