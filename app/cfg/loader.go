package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Digest configuration
	ConfigFile string `long:"config" env:"DIGEST_CONFIG" description:"YAML file with sources and digest settings (built-in sources when empty)"`
	OutputDir  string `long:"output-dir" env:"OUTPUT_DIR" default:"public" description:"Directory the generated site is written to"`
	Timezone   string `long:"timezone" env:"DISPLAY_TZ" default:"America/New_York" description:"Timezone for the 'last updated' stamp"`
	SiteTitle  string `long:"site-title" env:"SITE_TITLE" default:"Cybersecurity News Digest" description:"Title of the generated page and feed"`
	BaseUrl    string `long:"base-url" env:"BASE_URL" description:"Public base URL of the generated site (e.g., https://news.example.com)"`

	// Fetch configuration
	UserAgent   string `long:"user-agent" env:"USER_AGENT" default:"RSS Digest/1.0" description:"User agent string for HTTP requests"`
	Timeout     int    `long:"timeout" env:"FETCH_TIMEOUT" default:"30" description:"Per-feed fetch timeout in seconds"`
	WorkerCount int    `long:"worker-count" env:"WORKER_COUNT" default:"1" description:"Number of feeds fetched concurrently"`

	// Preview server
	Serve bool   `long:"serve" env:"SERVE" description:"Serve the generated site after building it"`
	Port  string `long:"port" env:"PORT" default:"8080" description:"HTTP port for --serve"`

	Debug bool `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

func Load() (*Cfg, error) {
	return LoadArgs(nil)
}

// LoadArgs parses the given arguments instead of os.Args when args is non-nil.
func LoadArgs(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	var err error
	if args == nil {
		_, err = parser.Parse()
	} else {
		_, err = parser.ParseArgs(args)
	}
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if raw.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %d", raw.Timeout)
	}
	if raw.WorkerCount <= 0 {
		return nil, fmt.Errorf("worker count must be positive, got %d", raw.WorkerCount)
	}

	cfg := &Cfg{
		ConfigFile:  raw.ConfigFile,
		OutputDir:   raw.OutputDir,
		Timezone:    raw.Timezone,
		SiteTitle:   raw.SiteTitle,
		BaseUrl:     raw.BaseUrl,
		UserAgent:   raw.UserAgent,
		Timeout:     raw.Timeout,
		WorkerCount: raw.WorkerCount,
		Serve:       raw.Serve,
		Port:        raw.Port,
		Debug:       raw.Debug,
		Version:     GetVersion(),
	}

	return cfg, nil
}

// Location resolves the display timezone, falling back to UTC when it is unknown.
func (c *Cfg) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC, fmt.Errorf("invalid timezone '%s': %w", c.Timezone, err)
	}
	return loc, nil
}

func (c *Cfg) FetchTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}
