// Package config loads labelsheet settings from a TOML file and the
// environment.
//
// A config file is optional. It may set generation defaults, the API server
// address, the cache backend, and additional label formats:
//
//	[defaults]
//	format = "avery-l7160"
//	prefix = "BOX-"
//	padding = 3
//
//	[server]
//	addr = ":9090"
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//	ttl = "72h"
//
//	[[formats]]
//	id = "shelf-70x36"
//	name = "Shelf labels 70 x 36 mm"
//	label_width_mm = 70
//	label_height_mm = 36
//	columns = 3
//	rows = 8
//	margin_top_bottom_mm = 4.5
//
// Environment variables override the file: LABELSHEET_ADDR,
// LABELSHEET_CACHE and LABELSHEET_REDIS_URL. [LoadDotenv] reads them from a
// .env file without replacing variables that are already set.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	lerrors "github.com/matzehuels/labelsheet/pkg/errors"
	"github.com/matzehuels/labelsheet/pkg/format"
	"github.com/matzehuels/labelsheet/pkg/pipeline"
)

// Environment variables read by ApplyEnv.
const (
	EnvAddr     = "LABELSHEET_ADDR"
	EnvCache    = "LABELSHEET_CACHE"
	EnvRedisURL = "LABELSHEET_REDIS_URL"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// DefaultAddr is the API listen address when nothing else is configured.
const DefaultAddr = ":8080"

// Config is the parsed configuration file.
type Config struct {
	Defaults Defaults             `toml:"defaults"`
	Server   Server               `toml:"server"`
	Cache    Cache                `toml:"cache"`
	Formats  []format.LabelFormat `toml:"formats"`

	// Path is the file the configuration was read from, empty when built-in.
	Path string `toml:"-"`
}

// Defaults overrides generation defaults. Unset fields keep the built-in
// value, so pointers distinguish "unset" from zero.
type Defaults struct {
	Format         string   `toml:"format"`
	Prefix         *string  `toml:"prefix"`
	StartingNumber *int     `toml:"start"`
	PaddingZeros   *int     `toml:"padding"`
	Count          *int     `toml:"count"`
	QR             *bool    `toml:"qr"`
	QRSizeMm       *float64 `toml:"qr_size_mm"`
	QRTemplate     *string  `toml:"qr_template"`
	QRLevel        string   `toml:"qr_level"`
	FontSizePt     *float64 `toml:"font_size_pt"`
	Border         *bool    `toml:"border"`
	Output         string   `toml:"output"`
	MaxSheets      *int     `toml:"max_sheets"`
}

// Apply copies every set field onto opts.
func (d Defaults) Apply(opts *pipeline.Options) {
	if d.Format != "" {
		opts.Format = d.Format
	}
	if d.Prefix != nil {
		opts.Prefix = *d.Prefix
	}
	if d.StartingNumber != nil {
		opts.StartingNumber = *d.StartingNumber
	}
	if d.PaddingZeros != nil {
		opts.PaddingZeros = *d.PaddingZeros
	}
	if d.Count != nil {
		opts.Count = *d.Count
	}
	if d.QR != nil {
		opts.QR = *d.QR
	}
	if d.QRSizeMm != nil {
		opts.QRSizeMm = *d.QRSizeMm
	}
	if d.QRTemplate != nil {
		opts.QRTemplate = *d.QRTemplate
	}
	if d.QRLevel != "" {
		opts.QRLevel = d.QRLevel
	}
	if d.FontSizePt != nil {
		opts.FontSizePt = *d.FontSizePt
	}
	if d.Border != nil {
		opts.Border = *d.Border
	}
	if d.Output != "" {
		opts.Output = d.Output
	}
	if d.MaxSheets != nil {
		opts.MaxSheets = *d.MaxSheets
	}
}

// Options returns pipeline.DefaultOptions with the configured defaults
// applied.
func (c *Config) Options() pipeline.Options {
	opts := pipeline.DefaultOptions()
	c.Defaults.Apply(&opts)
	return opts
}

// Server configures the HTTP API.
type Server struct {
	Addr            string   `toml:"addr"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
	RequestTimeout  Duration `toml:"request_timeout"`
}

// Cache selects and configures the artifact cache.
type Cache struct {
	Backend  string   `toml:"backend"`
	Dir      string   `toml:"dir"`
	RedisURL string   `toml:"redis_url"`
	TTL      Duration `toml:"ttl"`
}

// Duration is a time.Duration written as a string such as "90s" or "72h".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: Server{
			Addr:            DefaultAddr,
			ShutdownTimeout: Duration{10 * time.Second},
			RequestTimeout:  Duration{60 * time.Second},
		},
		Cache: Cache{Backend: CacheFile},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/labelsheet/config.toml (or the
// platform equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "labelsheet", "config.toml"), nil
}

// Load reads the configuration at path. An empty path selects DefaultPath,
// and a missing default file yields the built-in configuration; a missing
// explicit file is an error. Unknown keys are rejected so typos surface.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, lerrors.Wrap(lerrors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, lerrors.New(lerrors.ErrCodeInvalidConfig,
			"config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the cache backend and durations. Formats are validated
// when registered.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisURL == "" {
			return lerrors.New(lerrors.ErrCodeInvalidConfig, "cache backend redis requires redis_url")
		}
	default:
		return lerrors.New(lerrors.ErrCodeInvalidConfig,
			"unknown cache backend %q (use file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 || c.Server.ShutdownTimeout.Duration < 0 || c.Server.RequestTimeout.Duration < 0 {
		return lerrors.New(lerrors.ErrCodeInvalidConfig, "durations must not be negative")
	}
	return nil
}

// ApplyEnv overrides settings from environment variables using getenv
// (os.Getenv when nil).
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := getenv(EnvRedisURL); v != "" {
		c.Cache.RedisURL = v
		if getenv(EnvCache) == "" {
			c.Cache.Backend = CacheRedis
		}
	}
	if v := getenv(EnvCache); v != "" {
		c.Cache.Backend = strings.ToLower(v)
	}
}

// Registry returns the built-in formats followed by the configured ones.
func (c *Config) Registry() (*format.Registry, error) {
	reg := format.Default()
	for _, f := range c.Formats {
		if err := reg.Register(f); err != nil {
			return nil, lerrors.Wrap(lerrors.ErrCodeInvalidConfig, err, "config format %q", f.ID)
		}
	}
	return reg, nil
}

// LoadDotenv loads variables from the given .env files (".env" when none
// are named). Missing files are skipped and existing variables win.
func LoadDotenv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	return godotenv.Load(present...)
}
