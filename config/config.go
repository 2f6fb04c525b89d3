package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	jsoniter "github.com/json-iterator/go"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported config file format")
	ErrInvalid           = errors.New("invalid config")
)

type (
	NET struct {
		// Addr is the address to listen on for incoming TCP connections.
		Addr string `toml:"addr" json:"addr"`
		// ReadBufferSize is the initial capacity of the per-connection read buffer. The buffer
		// grows when the request doesn't fit.
		ReadBufferSize int `toml:"read_buffer_size" json:"read_buffer_size"`
		// MaxRequestSize limits how far the read buffer is allowed to grow. Connections sending
		// more are terminated.
		MaxRequestSize int `toml:"max_request_size" json:"max_request_size"`
	}

	Files struct {
		// Directory is the base directory served by the /files/ routes. Empty disables them,
		// so that they always respond 404.
		Directory string `toml:"directory" json:"directory" test:"nullable"`
	}

	Log struct {
		// Level is one of zerolog's levels: trace, debug, info, warn, error, fatal, panic,
		// disabled.
		Level string `toml:"level" json:"level"`
	}

	Metrics struct {
		// Addr is the address of the Prometheus endpoint. Empty doesn't start it.
		Addr string `toml:"addr" json:"addr" test:"nullable"`
	}
)

// Config holds settings of the server. Connections are never timed out: a client that
// connects and keeps silent occupies its connection indefinitely.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because most likely this will result in ambiguous errors.
type Config struct {
	NET     NET     `toml:"net" json:"net"`
	Files   Files   `toml:"files" json:"files"`
	Log     Log     `toml:"log" json:"log"`
	Metrics Metrics `toml:"metrics" json:"metrics"`
}

// Default returns default config.
func Default() *Config {
	return &Config{
		NET: NET{
			Addr:           "127.0.0.1:4221",
			ReadBufferSize: 1024,
			MaxRequestSize: 1024 * 1024,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load decodes the file at path on top of the defaults. The format is chosen by the file
// extension: .toml or .json.
func Load(path string) (*Config, error) {
	cfg := Default()

	switch ext := filepath.Ext(path); ext {
	case ".toml":
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		if err = jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	return cfg, cfg.Validate()
}

// Validate reports the first misconfiguration found.
func (c *Config) Validate() error {
	switch {
	case c.NET.Addr == "":
		return fmt.Errorf("%w: empty listen address", ErrInvalid)
	case c.NET.ReadBufferSize <= 0:
		return fmt.Errorf("%w: read buffer size must be positive, got %d", ErrInvalid, c.NET.ReadBufferSize)
	case c.NET.MaxRequestSize < c.NET.ReadBufferSize:
		return fmt.Errorf(
			"%w: max request size (%d) is less than the read buffer size (%d)",
			ErrInvalid, c.NET.MaxRequestSize, c.NET.ReadBufferSize,
		)
	}

	return nil
}
