package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// SaveGlobal writes a key-value pair to the global config file,
// preserving other keys. The key must be one of ValidKeys.
func (r *Resolver) SaveGlobal(key, value string) error {
	if r.globalPath == "" {
		return fmt.Errorf("global config path not configured")
	}

	if !slices.Contains(ValidKeys, key) {
		return fmt.Errorf("unknown config key: %s\n\nValid keys: %s",
			key, strings.Join(ValidKeys, ", "))
	}

	var existing map[string]any
	if data, err := os.ReadFile(r.globalPath); err == nil {
		_ = yaml.Unmarshal(data, &existing)
	}
	if existing == nil {
		existing = make(map[string]any)
	}

	existing[key] = value

	return r.writeGlobal(existing)
}

// EnsureGlobal creates the global config file with default values when
// it does not exist yet. Returns true when the file was created.
func (r *Resolver) EnsureGlobal() (bool, error) {
	if r.globalPath == "" {
		return false, fmt.Errorf("global config path not configured")
	}

	if _, err := os.Stat(r.globalPath); err == nil {
		return false, nil
	}

	initial := make(map[string]any, len(defaults))
	for key, value := range defaults {
		initial[key] = value
	}

	if err := r.writeGlobal(initial); err != nil {
		return false, err
	}
	return true, nil
}

// writeGlobal marshals values to the global config file, creating the
// directory as needed. The file holds an API key, so keep it private.
func (r *Resolver) writeGlobal(values map[string]any) error {
	if err := os.MkdirAll(filepath.Dir(r.globalPath), 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(values)
	if err != nil {
		return err
	}

	return os.WriteFile(r.globalPath, data, 0o600)
}
