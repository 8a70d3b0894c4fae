package fetch

import "strings"

const (
	// BaseURL is the fixed endpoint all relative resource paths resolve
	// against.
	BaseURL = "https://etfmatcher.com/data/"

	// ManifestFile is the catalog manifest published next to the datasets.
	ManifestFile = "ticker_vector_configs.toml"

	// SymbolMapFile maps ticker symbols to the identifiers used across
	// vector collections.
	SymbolMapFile = "ticker_symbol_map.flatbuffers.bin"
)

// ResourceURL joins a relative resource path to the fixed base endpoint.
// Exactly one separator appears between base and path, whether or not path
// starts with one. No validation and no network access: a malformed path
// yields a malformed URL string.
func ResourceURL(path string) string {
	return joinURL(BaseURL, path)
}

// ManifestURL returns the download URL of the catalog manifest.
func ManifestURL() string {
	return ResourceURL(ManifestFile)
}

// SymbolMapURL returns the download URL of the ticker symbol map.
func SymbolMapURL() string {
	return ResourceURL(SymbolMapFile)
}

// IsAbsoluteURL reports whether path is already a fully qualified http(s) URL
// rather than a relative resource path.
func IsAbsoluteURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
