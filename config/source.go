package config

// Source indicates where a configuration value came from.
type Source string

// Configuration source constants.
const (
	// SourceDefault indicates the value is a built-in default.
	SourceDefault Source = "default"

	// SourceGlobal indicates the value came from
	// ~/.config/redbranch/config.yaml.
	SourceGlobal Source = "global"

	// SourceEnv indicates the value came from a REDBRANCH_* variable.
	SourceEnv Source = "env"

	// SourceKeyring indicates the value came from the system keyring.
	SourceKeyring Source = "keyring"

	// SourceFlag indicates the value was set via command-line flag.
	SourceFlag Source = "flag"
)
