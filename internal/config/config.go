package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"

	"github.com/ironsheep/edge-tools-mcp/internal/canny"
	"github.com/ironsheep/edge-tools-mcp/internal/gradient"
	"github.com/ironsheep/edge-tools-mcp/internal/imaging"
)

// Environment variables that override the file.
const (
	EnvLogLevel   = "EDGE_MCP_LOG_LEVEL"
	EnvCacheLimit = "EDGE_MCP_CACHE_LIMIT"
)

// Config is the complete server configuration.
type Config struct {
	Log      LogConfig        `toml:"log"`
	Server   ServerConfig     `toml:"server"`
	Edge     canny.Config     `toml:"edge"`
	Gradient gradient.Options `toml:"gradient"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	// Level is a logrus level name: panic, fatal, error, warn, info, debug
	// or trace.
	Level string `toml:"level"`

	// Format is "json" or "text". Empty picks text at debug level and
	// JSON otherwise.
	Format string `toml:"format"`
}

// ServerConfig holds settings of the MCP server itself.
type ServerConfig struct {
	// CacheLimit bounds the number of decoded images kept in memory.
	// Zero means unbounded.
	CacheLimit int `toml:"cache_limit"`

	// AtanTableSteps, when positive, builds an arctangent lookup table
	// with that many steps and uses it for every gradient computation.
	AtanTableSteps int `toml:"atan_table_steps"`

	// Overlay holds the default colors of image_edge_overlay.
	Overlay imaging.OverlayOptions `toml:"overlay"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level: "info",
		},
		Server: ServerConfig{
			CacheLimit: 32,
			Overlay:    imaging.DefaultOverlayOptions(),
		},
		Edge:     canny.DefaultConfig(),
		Gradient: gradient.DefaultOptions(),
	}
}

// Load reads the TOML file at path on top of Default, applies environment
// overrides and validates the result. An empty path skips the file.
//
// Unknown keys in the file are rejected so typos do not silently fall back
// to defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return Config{}, fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvCacheLimit); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvCacheLimit, v, err)
		}
		c.Server.CacheLimit = n
	}
	return nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "", "json", "text":
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	if c.Server.CacheLimit < 0 {
		return errors.New("server.cache_limit must not be negative")
	}
	if c.Server.AtanTableSteps < 0 {
		return errors.New("server.atan_table_steps must not be negative")
	}
	if err := c.Edge.Validate(); err != nil {
		return fmt.Errorf("edge: %w", err)
	}
	if err := c.Gradient.Validate(); err != nil {
		return fmt.Errorf("gradient: %w", err)
	}
	return nil
}

// NewLogger builds the process logger writing to out.
func NewLogger(lc LogConfig, out io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(lc.Level)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(level)

	format := lc.Format
	if format == "" {
		format = "json"
		if level >= logrus.DebugLevel {
			format = "text"
		}
	}
	if format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}
	return logger, nil
}
