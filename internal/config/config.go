package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/etfmatcher/etfv-cli/internal/fetch"
)

// envPrefix is the prefix for environment overrides, e.g. ETFV_BASE_URL.
const envPrefix = "ETFV"

// Duration is a time.Duration that (un)marshals as "30s"-style strings in
// both the yaml config file and ETFV_* environment variables.
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	*d = Duration(parsed)
	return nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// Settings is the resolved runtime configuration for etfv.
//
// Values are layered, lowest precedence first: built-in defaults,
// ~/.etfv/etfv.yaml, ~/.etfv/.env, then the process environment.
type Settings struct {
	// BaseURL is the endpoint resource paths resolve against.
	BaseURL string `yaml:"base_url" envconfig:"BASE_URL"`

	// ManifestURL overrides where the catalog manifest is fetched from.
	// Empty means the manifest file under BaseURL.
	ManifestURL string `yaml:"manifest_url,omitempty" envconfig:"MANIFEST_URL"`

	// HTTPTimeout bounds each HTTP call.
	HTTPTimeout Duration `yaml:"http_timeout" envconfig:"HTTP_TIMEOUT"`

	// DataDir is where fetched collections are written by default.
	DataDir string `yaml:"data_dir" envconfig:"DATA_DIR"`
}

// EtfvDir returns the absolute path to ~/.etfv/.
func EtfvDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".etfv"), nil
}

// ConfigPath returns the absolute path to ~/.etfv/etfv.yaml.
func ConfigPath() (string, error) {
	dir, err := EtfvDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "etfv.yaml"), nil
}

// DotEnvPath returns the absolute path to ~/.etfv/.env.
func DotEnvPath() (string, error) {
	dir, err := EtfvDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".env"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand ~: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// Defaults returns the built-in Settings used when nothing is configured.
func Defaults() Settings {
	return Settings{
		BaseURL:     fetch.BaseURL,
		HTTPTimeout: Duration(fetch.DefaultTimeout),
		DataDir:     filepath.Join("~", ".etfv", "data"),
	}
}

// Load resolves the effective Settings.
//
// The yaml file and the dotenv file may both be absent; only unreadable or
// invalid content is an error. Environment variables loaded from ~/.etfv/.env
// never override variables already set on the process.
func Load() (*Settings, error) {
	s := Defaults()

	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	}

	dotenvPath, err := DotEnvPath()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(dotenvPath); err == nil {
		// godotenv.Load does not overwrite existing process variables, so the
		// real environment keeps precedence over the dotenv file.
		if err := godotenv.Load(dotenvPath); err != nil {
			return nil, fmt.Errorf("cannot load dotenv file %s: %w", dotenvPath, err)
		}
	}

	if err := envconfig.Process(envPrefix, &s); err != nil {
		return nil, fmt.Errorf("invalid %s_* environment: %w", envPrefix, err)
	}

	s.DataDir, err = ExpandPath(s.DataDir)
	if err != nil {
		return nil, err
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks invariants that later layers rely on.
func (s *Settings) Validate() error {
	u, err := url.Parse(s.BaseURL)
	if err != nil || u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("base_url must be an http(s) URL, got %q", s.BaseURL)
	}
	if s.ManifestURL != "" {
		if _, err := url.Parse(s.ManifestURL); err != nil {
			return fmt.Errorf("invalid manifest_url %q: %w", s.ManifestURL, err)
		}
	}
	if s.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive, got %s", time.Duration(s.HTTPTimeout))
	}
	if s.DataDir == "" {
		return fmt.Errorf("data_dir cannot be empty")
	}
	return nil
}

// Save marshals s and writes it to ~/.etfv/etfv.yaml.
func Save(s *Settings) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write config %s: %w", path, err)
	}
	return nil
}

// EnsureDotEnvTemplate creates ~/.etfv/.env if it does not already exist.
//
// The template lists the supported keys with empty values so users can fill
// them in when they want to point etfv at a different endpoint.
func EnsureDotEnvTemplate() error {
	p, err := DotEnvPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(p); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("cannot stat dotenv file %s: %w", p, err)
	}

	body := "" +
		"ETFV_BASE_URL=\n" +
		"ETFV_MANIFEST_URL=\n" +
		"ETFV_HTTP_TIMEOUT=\n" +
		"ETFV_DATA_DIR=\n"
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		return fmt.Errorf("cannot write dotenv template %s: %w", p, err)
	}
	return nil
}
