// Package config loads the template designer's settings.
//
// Settings live in a TOML file at $XDG_CONFIG_HOME/templatedesigner/config.toml
// (falling back to ~/.config). A missing file is not an error: [Default]
// gives a working file-based setup, and every key in the file is optional.
//
// A handful of environment variables override the file so containers can
// be configured without one:
//
//	TEMPLATEDESIGNER_STORE       store backend (file, sqlite, redis, mongo)
//	TEMPLATEDESIGNER_REDIS_ADDR  redis address for store and cache
//	TEMPLATEDESIGNER_MONGO_URI   mongo connection string
package config

import (
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/Pratikmalviya12/template-designer/pkg/errors"
	"github.com/Pratikmalviya12/template-designer/pkg/ident"
)

// AppName names the config, cache and data directories.
const AppName = "templatedesigner"

// Store backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Environment variables read by [Load].
const (
	EnvStore     = "TEMPLATEDESIGNER_STORE"
	EnvRedisAddr = "TEMPLATEDESIGNER_REDIS_ADDR"
	EnvMongoURI  = "TEMPLATEDESIGNER_MONGO_URI"
)

// =============================================================================
// Types
// =============================================================================

// Config is the whole settings file.
type Config struct {
	Store  Store  `toml:"store"`
	Cache  Cache  `toml:"cache"`
	IDs    IDs    `toml:"ids"`
	Export Export `toml:"export"`
	Server Server `toml:"server"`
}

// Store selects and configures the template store.
type Store struct {
	Backend string `toml:"backend"`
	Dir     string `toml:"dir"`         // file backend
	SQLite  string `toml:"sqlite_path"` // sqlite backend
	Redis   Redis  `toml:"redis"`
	Mongo   Mongo  `toml:"mongo"`
}

// Redis holds connection settings shared by the redis store and cache.
type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// Mongo holds connection settings for the mongo store.
type Mongo struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Cache configures the export artifact cache.
type Cache struct {
	Enabled bool          `toml:"enabled"`
	Backend string        `toml:"backend"` // file or redis
	Dir     string        `toml:"dir"`
	TTL     time.Duration `toml:"ttl"`
}

// IDs selects the identifier strategy for new templates, sections and components.
type IDs struct {
	Strategy string `toml:"strategy"`
}

// Export holds defaults for the export command.
type Export struct {
	Formats []string `toml:"formats"`
	OutDir  string   `toml:"out_dir"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"`
}

// =============================================================================
// Defaults & Paths
// =============================================================================

// Default returns the settings used when no file exists.
func Default() Config {
	return Config{
		Store: Store{
			Backend: BackendFile,
			Dir:     filepath.Join(DataDir(), "templates"),
			SQLite:  filepath.Join(DataDir(), "templates.db"),
			Redis:   Redis{Addr: "localhost:6379", Prefix: AppName + ":"},
			Mongo:   Mongo{URI: "mongodb://localhost:27017", Database: AppName, Collection: "templates"},
		},
		Cache: Cache{
			Enabled: true,
			Backend: BackendFile,
			Dir:     CacheDir(),
			TTL:     7 * 24 * time.Hour,
		},
		IDs:    IDs{Strategy: ident.StrategyUUID},
		Export: Export{Formats: []string{"html"}, OutDir: "."},
		Server: Server{Addr: "127.0.0.1:8080"},
	}
}

// Path returns the default config file location.
func Path() string {
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), AppName, "config.toml")
}

// CacheDir returns the default cache directory (~/.cache/templatedesigner).
func CacheDir() string {
	return filepath.Join(xdgDir("XDG_CACHE_HOME", ".cache"), AppName)
}

// DataDir returns the default data directory (~/.local/share/templatedesigner).
func DataDir() string {
	return filepath.Join(xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share")), AppName)
}

func xdgDir(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + AppName
	}
	return filepath.Join(home, fallback)
}

// =============================================================================
// Loading
// =============================================================================

// Load reads the config file at path over [Default]. An empty path means
// [Path]. A missing file yields the defaults; unknown keys are an error so
// typos do not go unnoticed. Environment overrides are applied last.
func Load(path string) (Config, error) {
	if path == "" {
		path = Path()
	}
	cfg := Default()

	md, err := toml.DecodeFile(path, &cfg)
	switch {
	case os.IsNotExist(err):
		cfg = Default()
	case err != nil:
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	default:
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return Config{}, errors.New(errors.ErrCodeInvalidInput,
				"config %s: unknown keys: %s", path, strings.Join(keys, ", "))
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode parses TOML from r over [Default] without touching the environment.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode config")
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvStore); v != "" {
		c.Store.Backend = v
	}
	if v := os.Getenv(EnvRedisAddr); v != "" {
		c.Store.Redis.Addr = v
	}
	if v := os.Getenv(EnvMongoURI); v != "" {
		c.Store.Mongo.URI = v
	}
}

// Validate checks backend and strategy names.
func (c Config) Validate() error {
	backends := []string{BackendFile, BackendSQLite, BackendRedis, BackendMongo}
	if !slices.Contains(backends, c.Store.Backend) {
		return errors.New(errors.ErrCodeInvalidInput,
			"unknown store backend %q (want %s)", c.Store.Backend, strings.Join(backends, ", "))
	}
	if c.Cache.Backend != BackendFile && c.Cache.Backend != BackendRedis {
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q (want file or redis)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache ttl cannot be negative")
	}
	if _, err := ident.ByName(c.IDs.Strategy); err != nil {
		return err
	}
	return nil
}

// Write encodes c as TOML.
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
