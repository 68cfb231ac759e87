package feed

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPoolCap        = 50
	DefaultAdCadence      = 7
	DefaultPerSourceLimit = 15
)

// Config is the digest's static configuration: the ordered source list and
// the pipeline tunables.
type Config struct {
	Settings Settings `yaml:"settings"`
	Sources  []Source `yaml:"sources"`
}

type Settings struct {
	PoolCap        int `yaml:"pool_cap"`
	AdCadence      int `yaml:"ad_cadence"`
	PerSourceLimit int `yaml:"per_source_limit"`
}

func DefaultSources() []Source {
	return []Source{
		{Name: "The Hacker News", URL: "https://feeds.feedburner.com/TheHackersNews"},
		{Name: "BleepingComputer", URL: "https://www.bleepingcomputer.com/feed/"},
		{Name: "Krebs on Security", URL: "https://krebsonsecurity.com/feed/"},
		{Name: "Dark Reading", URL: "https://www.darkreading.com/rss.xml"},
		{Name: "Threatpost", URL: "https://threatpost.com/feed/"},
	}
}

func DefaultConfig() *Config {
	config := &Config{Sources: DefaultSources()}
	setDefaults(config)
	return config
}

// LoadSources reads the digest configuration from a YAML file. An empty path
// yields the built-in configuration.
func LoadSources(path string) (*Config, error) {
	if path == "" {
		slog.Debug("No configuration file given, using built-in sources")
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	config, err := ParseSources(data)
	if err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	slog.Debug("Configuration loaded", "file", path, "sources", len(config.Sources),
		"pool_cap", config.Settings.PoolCap, "ad_cadence", config.Settings.AdCadence)

	return config, nil
}

func ParseSources(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	setDefaults(&config)

	return &config, nil
}

func setDefaults(config *Config) {
	if config.Settings.PoolCap == 0 {
		config.Settings.PoolCap = DefaultPoolCap
	}
	if config.Settings.AdCadence == 0 {
		config.Settings.AdCadence = DefaultAdCadence
	}
	if config.Settings.PerSourceLimit == 0 {
		config.Settings.PerSourceLimit = DefaultPerSourceLimit
	}
}

func validateConfig(config *Config) error {
	nonNegativeFields := []struct {
		name  string
		value int
	}{
		{"pool cap", config.Settings.PoolCap},
		{"ad cadence", config.Settings.AdCadence},
		{"per source limit", config.Settings.PerSourceLimit},
	}

	for _, field := range nonNegativeFields {
		if field.value < 0 {
			return fmt.Errorf("%s must be non-negative", field.name)
		}
	}

	if len(config.Sources) == 0 {
		return fmt.Errorf("at least one source is required")
	}

	for i, source := range config.Sources {
		if source.Name == "" {
			return fmt.Errorf("source at index %d: name is required", i)
		}
		if source.URL == "" {
			return fmt.Errorf("source at index %d: url is required", i)
		}
		u, err := url.Parse(source.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("source at index %d: invalid url '%s'", i, source.URL)
		}
	}

	return nil
}
