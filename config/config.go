// Package config handles rvec.toml project configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/tliron/commonlog"

	"github.com/chazu/rvec/vec"
)

// FileName is the name of the configuration file.
const FileName = "rvec.toml"

// Config represents an rvec.toml configuration.
type Config struct {
	// Coercion maps atomic kind names to the namespace names of their
	// coercion routines. Unlisted kinds keep their default names.
	Coercion map[string]string `toml:"coercion" json:"coercion"`
	Store    Store             `toml:"store" json:"store"`
	Server   Server            `toml:"server" json:"server"`
	Log      Log               `toml:"log" json:"log"`

	// Dir is the directory containing the rvec.toml file (set at load time).
	Dir string `toml:"-" json:"-"`
}

// Store configures the persistent vector store.
type Store struct {
	Driver string `toml:"driver" json:"driver"`
	DSN    string `toml:"dsn" json:"dsn"`
}

// Server configures the vector service.
type Server struct {
	Addr string `toml:"addr" json:"addr"`
}

// Log configures commonlog.
type Log struct {
	Verbosity int    `toml:"verbosity" json:"verbosity"`
	File      string `toml:"file" json:"file,omitempty"`
}

// Default returns the configuration used when no rvec.toml exists.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load parses an rvec.toml file from the given directory.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	c.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}
	return c, nil
}

// Parse decodes and validates configuration text.
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	c.applyDefaults()
	if err := Validate(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// FindAndLoad walks up from startDir to find an rvec.toml file, then loads
// and returns the configuration. Returns nil if no file is found.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

func (c *Config) applyDefaults() {
	names := make(map[string]string)
	for kind, name := range vec.DefaultCoercerNames() {
		names[kind.String()] = name
	}
	for k, name := range c.Coercion {
		names[k] = name
	}
	c.Coercion = names

	if c.Store.Driver == "" {
		c.Store.Driver = "sqlite"
	}
	if c.Store.DSN == "" {
		c.Store.DSN = filepath.Join(".rvec", "vectors.db")
	}
	if c.Server.Addr == "" {
		c.Server.Addr = "localhost:4568"
	}
}

// CoercerNames returns the coercion names keyed by kind.
func (c *Config) CoercerNames() (map[vec.Kind]string, error) {
	names := make(map[vec.Kind]string, len(c.Coercion))
	for k, name := range c.Coercion {
		kind, err := vec.ParseKind(k)
		if err != nil {
			return nil, fmt.Errorf("config: coercion: %w", err)
		}
		names[kind] = name
	}
	return names, nil
}

// StorePath returns the store DSN, resolved against Dir when it is a
// relative file path.
func (c *Config) StorePath() string {
	if c.Dir == "" || filepath.IsAbs(c.Store.DSN) || c.Store.DSN == ":memory:" {
		return c.Store.DSN
	}
	return filepath.Join(c.Dir, c.Store.DSN)
}

// ConfigureLogging applies the log section to commonlog.
func (c *Config) ConfigureLogging() {
	var path *string
	if c.Log.File != "" {
		path = &c.Log.File
	}
	commonlog.Configure(c.Log.Verbosity, path)
}
