package vectorconfig

import (
	"context"
	"fmt"

	"github.com/BurntSushi/toml"
)

// Source materializes a catalog. Production code loads the remote TOML
// manifest; tests and embedded deployments can supply a StaticSource instead
// without changing any lookup or fetch contract.
type Source interface {
	LoadCatalog(ctx context.Context) (ConfigMap, error)
}

// FetchFunc retrieves the raw bytes behind url.
type FetchFunc func(ctx context.Context, url string) ([]byte, error)

// RemoteSource loads the catalog from the TOML manifest published alongside
// the vector collections.
type RemoteSource struct {
	ManifestURL string
	Fetch       FetchFunc
}

func (s *RemoteSource) LoadCatalog(ctx context.Context) (ConfigMap, error) {
	if s.Fetch == nil {
		return nil, fmt.Errorf("remote source has no fetch function")
	}
	raw, err := s.Fetch(ctx, s.ManifestURL)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch manifest %s: %w", s.ManifestURL, err)
	}
	return DecodeManifest(raw)
}

// StaticSource serves a fixed in-memory catalog.
type StaticSource struct {
	Configs ConfigMap
}

func (s *StaticSource) LoadCatalog(_ context.Context) (ConfigMap, error) {
	if len(s.Configs) == 0 {
		return nil, fmt.Errorf("static source has no entries")
	}
	return s.Configs, nil
}

// DecodeManifest parses raw manifest TOML into a ConfigMap.
//
// A manifest with no entries or with an entry missing its path is rejected:
// such a catalog could never resolve a download.
func DecodeManifest(raw []byte) (ConfigMap, error) {
	var m manifest
	if err := toml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("invalid manifest TOML: %w", err)
	}
	if len(m.TickerVectorConfig) == 0 {
		return nil, fmt.Errorf("manifest contains no ticker_vector_config entries")
	}
	for key, cfg := range m.TickerVectorConfig {
		if cfg.Path == "" {
			return nil, fmt.Errorf("manifest entry %q has an empty path", key)
		}
	}
	return m.TickerVectorConfig, nil
}
