// Package config resolves redbranch settings from defaults, the global
// YAML config file at ~/.config/redbranch/config.yaml, and REDBRANCH_*
// environment variables, in that order of increasing priority. Flag
// values are applied on top by the CLI.
//
// The first run writes a default config file with an empty api_key so
// the user has a place to put the key.
package config
