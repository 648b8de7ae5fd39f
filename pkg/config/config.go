// Package config loads application settings from defaults, an optional
// archmap.toml, ARCHMAP_* environment variables, and command-line flags,
// in ascending priority.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config holds all settings for the archmap service.
type Config struct {
	Topology string `koanf:"topology"` // topology YAML path; empty uses the built-in pipeline
	Port     int    `koanf:"port"`
	Web      bool   `koanf:"web"`
	Watch    bool   `koanf:"watch"`
	Open     bool   `koanf:"open"`
	Verbose  int    `koanf:"verbose"`
	JSONLogs bool   `koanf:"json-logs"`

	// Layout spacing overrides; zero keeps the engine defaults.
	RankSep float64 `koanf:"ranksep"`
	NodeSep float64 `koanf:"nodesep"`
}

// Load builds the configuration. Priority: flags > env > config file >
// defaults. A missing archmap.toml is not an error.
func Load(f *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"topology":  "",
		"port":      8080,
		"web":       false,
		"watch":     false,
		"open":      true,
		"verbose":   0,
		"json-logs": false,
		"ranksep":   0.0,
		"nodesep":   0.0,
	}
	if err := k.Load(mapProvider(defaults), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	_ = k.Load(file.Provider("archmap.toml"), toml.Parser())

	if err := k.Load(env.Provider("ARCHMAP_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(
			strings.TrimPrefix(s, "ARCHMAP_")), "_", "-")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	if f != nil {
		if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// mapProvider adapts a plain map to koanf's provider interface.
type mapProvider map[string]interface{}

func (p mapProvider) Read() (map[string]interface{}, error) {
	return p, nil
}

func (p mapProvider) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("not implemented")
}
