package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config is the root configuration for ftt, stored in ~/.ftt/config.json.
// The file supports single-line // comments for documentation purposes.
type Config struct {
	Storage  StorageConfig  `json:"storage"`
	Rotation RotationConfig `json:"rotation"`
	Share    ShareConfig    `json:"share"`
	Log      LogConfig      `json:"log"`
}

// StorageConfig selects where teams, clock state and preferences live.
type StorageConfig struct {
	// Backend is "file" or "redis".
	Backend string `json:"backend"`
	// Dir is the data directory of the file backend. Empty = ~/.ftt.
	Dir string `json:"dir"`
	// RedisURL is a redis:// URL, used when Backend is "redis".
	RedisURL string `json:"redis_url"`
	// RedisPrefix is prepended to every key in Redis.
	RedisPrefix string `json:"redis_prefix"`
}

// RotationConfig holds the rotation interval given to newly created teams.
type RotationConfig struct {
	DefaultMinutes int `json:"default_minutes"`
}

// ShareConfig holds share link settings.
type ShareConfig struct {
	// BaseURL is the page share links point at. The token goes into ?data=.
	BaseURL string `json:"base_url"`
	// QRSize is the edge length in pixels of generated QR codes.
	QRSize int `json:"qr_size"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is a zerolog level name: debug, info, warn, error.
	Level string `json:"level"`
}

const (
	BackendFile  = "file"
	BackendRedis = "redis"

	DefaultRedisURL        = "redis://localhost:6379/0"
	DefaultRedisPrefix     = "ftt:"
	DefaultRotationMinutes = 5
	DefaultShareBaseURL    = "https://field-time-tracker.app/"
	DefaultQRSize          = 256
	DefaultLogLevel        = "info"
)

// Environment variables that override the file. A .env file in the working
// directory is loaded first.
const (
	EnvStorage      = "FTT_STORAGE"
	EnvDataDir      = "FTT_DATA_DIR"
	EnvRedisURL     = "FTT_REDIS_URL"
	EnvLogLevel     = "FTT_LOG_LEVEL"
	EnvShareBaseURL = "FTT_SHARE_BASE_URL"
	EnvRotation     = "FTT_ROTATION_MINUTES"
)

// Default returns a Config pre-filled with the built-in defaults.
func Default() Config {
	return Config{
		Storage: StorageConfig{
			Backend:     BackendFile,
			RedisURL:    DefaultRedisURL,
			RedisPrefix: DefaultRedisPrefix,
		},
		Rotation: RotationConfig{DefaultMinutes: DefaultRotationMinutes},
		Share:    ShareConfig{BaseURL: DefaultShareBaseURL, QRSize: DefaultQRSize},
		Log:      LogConfig{Level: DefaultLogLevel},
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing.
const configTemplate = `// ftt configuration – ~/.ftt/config.json
//
// All settings are optional; the defaults below work out of the box.
// Environment variables (FTT_STORAGE, FTT_DATA_DIR, FTT_REDIS_URL,
// FTT_LOG_LEVEL, FTT_SHARE_BASE_URL, FTT_ROTATION_MINUTES) and a .env file in
// the working directory override these values.
{
  // ── Storage ──────────────────────────────────────────────────────────────
  "storage": {
    // "file"  – one JSON file per key under dir (default)
    // "redis" – keys in a Redis database, handy for sharing a bench tablet
    "backend": "file",

    // Data directory for the file backend. Leave empty for ~/.ftt.
    "dir": "",

    "redis_url": "redis://localhost:6379/0",
    "redis_prefix": "ftt:"
  },

  // ── Rotation ─────────────────────────────────────────────────────────────
  "rotation": {
    // Minutes on the field before a player is flagged for a sub.
    // Applies to newly created teams; change a team with: ftt prefs rotation <min>
    "default_minutes": 5
  },

  // ── Sharing ──────────────────────────────────────────────────────────────
  "share": {
    // Page that opens share links. The team token is appended as ?data=...
    "base_url": "https://field-time-tracker.app/",
    "qr_size": 256
  },

  "log": {
    // debug, info, warn or error. --verbose forces debug.
    "level": "info"
  }
}
`

// Path returns the path to ~/.ftt/config.json.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".ftt", "config.json"), nil
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads ~/.ftt/config.json, creating it with annotated defaults on first
// run, then applies .env and environment overrides.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	path, err := Path()
	if err != nil {
		return applyEnv(Default())
	}
	cfg, err := loadFile(path)
	if err != nil {
		return Default(), err
	}
	return applyEnv(cfg)
}

func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			log.Warn().Err(writeErr).Str("path", path).Msg("could not create config file")
		}
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(stripLineComments(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}
	fillDefaults(&cfg)
	return cfg, nil
}

// fillDefaults replaces zero-value fields with built-in defaults so callers
// always get a usable Config even if the file is only partially filled in.
func fillDefaults(cfg *Config) {
	def := Default()
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = def.Storage.Backend
	}
	if cfg.Storage.RedisURL == "" {
		cfg.Storage.RedisURL = def.Storage.RedisURL
	}
	if cfg.Storage.RedisPrefix == "" {
		cfg.Storage.RedisPrefix = def.Storage.RedisPrefix
	}
	if cfg.Rotation.DefaultMinutes <= 0 {
		cfg.Rotation.DefaultMinutes = def.Rotation.DefaultMinutes
	}
	if cfg.Share.BaseURL == "" {
		cfg.Share.BaseURL = def.Share.BaseURL
	}
	if cfg.Share.QRSize <= 0 {
		cfg.Share.QRSize = def.Share.QRSize
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
}

func applyEnv(cfg Config) (Config, error) {
	if v := os.Getenv(EnvStorage); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.Storage.Dir = v
	}
	if v := os.Getenv(EnvRedisURL); v != "" {
		cfg.Storage.RedisURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvShareBaseURL); v != "" {
		cfg.Share.BaseURL = v
	}
	if v := os.Getenv(EnvRotation); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("%s must be a positive number of minutes, got %q", EnvRotation, v)
		}
		cfg.Rotation.DefaultMinutes = n
	}

	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	switch cfg.Storage.Backend {
	case BackendFile, BackendRedis:
	default:
		return cfg, fmt.Errorf("unknown storage backend %q (want %q or %q)", cfg.Storage.Backend, BackendFile, BackendRedis)
	}
	return cfg, nil
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
