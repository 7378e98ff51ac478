package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Configuration keys.
const (
	KeyAPIKey   = "api_key"  // Redmine API key
	KeyURL      = "url"      // Redmine base URL
	KeyRemote   = "remote"   // Git remote to branch from, empty = auto
	KeyInsecure = "insecure" // Disable TLS verification ("true"/"false")
)

// EnvPrefix is prepended to upper-cased keys for environment lookup:
// api_key reads REDBRANCH_API_KEY.
const EnvPrefix = "REDBRANCH_"

// appDir is the directory under ~/.config holding the global config.
const appDir = "redbranch"

// ValidKeys lists the keys accepted in the config file and by
// `redbranch config set`.
var ValidKeys = []string{KeyAPIKey, KeyURL, KeyRemote, KeyInsecure}

// defaults provides built-in values for every key.
var defaults = map[string]string{
	KeyAPIKey:   "",
	KeyURL:      "",
	KeyRemote:   "",
	KeyInsecure: "false",
}

// Resolver merges configuration sources for redbranch.
type Resolver struct {
	globalPath string

	// Warnings collects non-fatal issues during resolution.
	Warnings []string
}

// NewResolver creates a resolver reading the default global config path.
func NewResolver() *Resolver {
	r := &Resolver{}
	if home, err := os.UserHomeDir(); err == nil {
		r.globalPath = filepath.Join(home, ".config", appDir, "config.yaml")
	}
	return r
}

// NewResolverWithPath creates a resolver with an explicit global config
// path. This is useful for testing.
func NewResolverWithPath(globalPath string) *Resolver {
	return &Resolver{globalPath: globalPath}
}

// GlobalPath returns the path of the global config file.
func (r *Resolver) GlobalPath() string {
	return r.globalPath
}

// Resolved holds the final merged configuration.
type Resolved struct {
	values  map[string]string
	sources map[string]Source
}

// Get returns the value for a key, or empty string if not set.
func (c *Resolved) Get(key string) string {
	return c.values[key]
}

// Source returns the source of a key's value.
func (c *Resolved) Source(key string) Source {
	return c.sources[key]
}

// GetWithSource returns both the value and its source.
func (c *Resolved) GetWithSource(key string) (string, Source) {
	return c.values[key], c.sources[key]
}

// Override replaces a key's value and records where it came from. Used
// to layer sources the resolver does not read itself, like the keyring.
func (c *Resolved) Override(key, value string, source Source) {
	c.values[key] = value
	c.sources[key] = source
}

// Resolve builds the final config by merging all sources.
// Priority (highest to lowest): env > global file > defaults.
func (r *Resolver) Resolve() *Resolved {
	cfg := &Resolved{
		values:  make(map[string]string),
		sources: make(map[string]Source),
	}

	for key, value := range defaults {
		cfg.values[key] = value
		cfg.sources[key] = SourceDefault
	}

	r.applyGlobal(cfg)
	r.applyEnv(cfg)

	return cfg
}

// ResolveWithFlags resolves config and applies non-empty flag values on
// top.
func (r *Resolver) ResolveWithFlags(flags map[string]string) *Resolved {
	cfg := r.Resolve()

	for key, value := range flags {
		if value != "" {
			cfg.values[key] = value
			cfg.sources[key] = SourceFlag
		}
	}

	return cfg
}

func (r *Resolver) applyGlobal(cfg *Resolved) {
	if r.globalPath == "" {
		return
	}

	data, err := os.ReadFile(r.globalPath)
	if err != nil {
		return // Missing file is not an error
	}

	var parsed map[string]any
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		r.warn(fmt.Sprintf("could not parse %s: %v", r.globalPath, err))
		return
	}

	for key, value := range parsed {
		if !slices.Contains(ValidKeys, key) {
			r.warn(fmt.Sprintf("unknown key %q in %s", key, r.globalPath))
			continue
		}
		if strVal := toString(value); strVal != "" {
			cfg.values[key] = strVal
			cfg.sources[key] = SourceGlobal
		}
	}
}

func (r *Resolver) applyEnv(cfg *Resolved) {
	for _, key := range ValidKeys {
		envName := EnvPrefix + strings.ToUpper(key)
		if value := os.Getenv(envName); value != "" {
			cfg.values[key] = value
			cfg.sources[key] = SourceEnv
		}
	}
}

// warn records a non-fatal resolution issue.
func (r *Resolver) warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// toString converts YAML scalar values to their string form.
func toString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return fmt.Sprintf("%t", val)
	case int:
		return fmt.Sprintf("%d", val)
	case float64:
		return fmt.Sprintf("%g", val)
	default:
		return ""
	}
}
