package vectorconfig

// DefaultKey names the conventional fallback entry present in every catalog.
const DefaultKey = "default"

// VectorConfig describes one downloadable ticker-vector collection.
//
// Only Path is guaranteed. Every other field is optional in the manifest and
// stays absent (nil) when the manifest omits it — absence means "unknown",
// never zero. Fallback presentation (e.g. showing 0 features) is the caller's
// decision, not this package's.
type VectorConfig struct {
	// Path is the relative resource identifier of the collection file,
	// used verbatim when building the download URL.
	Path string `toml:"path"`

	// Description is a human-readable label for the dataset.
	Description *string `toml:"description"`

	// ProtoNotebook names the notebook that produced the dataset. The remote
	// manifest spells the key "proto_noteboook"; that spelling is the wire
	// contract, so it is preserved here.
	ProtoNotebook *string `toml:"proto_noteboook"`

	// LastTrainingTime is the timestamp of the last training run.
	LastTrainingTime *string `toml:"last_training_time"`

	// Features is the declared feature count used in training.
	Features *uint32 `toml:"features"`

	// VectorDimensions is the dimensionality of the vector representation.
	VectorDimensions *uint32 `toml:"vector_dimensions"`

	// TrainingSequenceLength is the sequence length used in training.
	TrainingSequenceLength *uint32 `toml:"training_sequence_length"`

	// TrainingDataSources lists the data sources used for training.
	TrainingDataSources []string `toml:"training_data_sources"`
}

// ConfigMap maps a configuration key (e.g. "default", "v5-sma-lstm-stacks")
// to its record. Once materialized, a ConfigMap is never mutated; callers
// must treat it as read-only.
type ConfigMap map[string]VectorConfig

// manifest mirrors the top-level layout of ticker_vector_configs.toml:
// one [ticker_vector_config.<key>] table per catalog entry.
type manifest struct {
	TickerVectorConfig ConfigMap `toml:"ticker_vector_config"`
}

// Lookup returns the record stored under key in an already-materialized
// catalog. Absence is reported via ok rather than an error so callers can
// branch on existence without error handling.
func Lookup(configs ConfigMap, key string) (VectorConfig, bool) {
	cfg, ok := configs[key]
	return cfg, ok
}
