package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/randalmurphal/redbranch"
	"github.com/randalmurphal/redbranch/config"
	"github.com/randalmurphal/redbranch/credential"
	"github.com/randalmurphal/redbranch/git"
	"github.com/randalmurphal/redbranch/prompt"
	"github.com/randalmurphal/redbranch/redmine"
)

// loadConfig resolves settings from defaults, the global file, the
// environment, the keyring and flags. The API key wins in the order
// flag > env > keyring > config file.
func loadConfig() (*config.Resolved, error) {
	resolver := config.NewResolver()

	created, err := resolver.EnsureGlobal()
	if err != nil {
		return nil, fmt.Errorf("create config file: %w", err)
	}
	if created {
		fmt.Fprintf(os.Stderr, "Created config file at %s\n", resolver.GlobalPath())
	}

	cfg := resolver.ResolveWithFlags(map[string]string{
		config.KeyAPIKey: flagAPIKey,
		config.KeyURL:    flagURL,
		config.KeyRemote: flagRemote,
	})

	// The keyring sits between env and the config file: consult it
	// unless a flag or env var already decided the key.
	if src := cfg.Source(config.KeyAPIKey); src != config.SourceFlag && src != config.SourceEnv {
		if key, err := credential.Get(credential.KeyAPIKey); err == nil && key != "" {
			cfg.Override(config.KeyAPIKey, key, config.SourceKeyring)
		}
	}

	for _, warning := range resolver.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
	}

	return cfg, nil
}

func runCreate() error {
	cfg, err := loadConfig()
	if err != nil {
		return fail(err, "")
	}
	serverURL := cfg.Get(config.KeyURL)

	tracker, err := redmine.NewClient(&redmine.Config{
		URL:      serverURL,
		APIKey:   cfg.Get(config.KeyAPIKey),
		Insecure: cfg.Get(config.KeyInsecure) == "true",
	})
	if err != nil {
		return fail(err, serverURL)
	}

	repo, err := git.NewContext(".")
	if err != nil {
		return fail(err, serverURL)
	}

	choose := redbranch.Chooser(prompt.Select)
	if flagNoInput {
		choose = prompt.FirstOption
	}

	wf := &redbranch.Workflow{
		Tracker: tracker,
		Repo:    repo,
		Choose:  choose,
		Remote:  cfg.Get(config.KeyRemote),
		Verbose: flagVerbose,
		DryRun:  flagDryRun,
	}

	if err := wf.Run(context.Background(), flagTicket); err != nil {
		return fail(err, serverURL)
	}
	return nil
}

func runConfigGet(key string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fail(err, "")
	}

	if key != "" {
		value, source := cfg.GetWithSource(key)
		if source == "" {
			return fail(fmt.Errorf("unknown config key: %s\n\nValid keys: %s",
				key, strings.Join(config.ValidKeys, ", ")), "")
		}
		fmt.Println(displayValue(key, value))
		return nil
	}

	for _, k := range config.ValidKeys {
		value, source := cfg.GetWithSource(k)
		fmt.Printf("%-10s %-12s (%s)\n", k, displayValue(k, value), source)
	}
	return nil
}

func runConfigSet(key, value string) error {
	resolver := config.NewResolver()

	if err := resolver.SaveGlobal(key, value); err != nil {
		return fail(err, "")
	}

	fmt.Printf("Saved %s to %s\n", key, resolver.GlobalPath())
	if key == config.KeyAPIKey {
		fmt.Println("Tip: 'redbranch auth login' stores the key in the system keyring instead of a file.")
	}
	return nil
}

func runAuthLogin(key string) error {
	if key == "" {
		var err error
		key, err = prompt.Secret("Redmine API key")
		if err != nil {
			return fail(err, "")
		}
	}
	if key == "" {
		return fail(errors.New("no API key entered"), "")
	}

	if err := credential.Set(credential.KeyAPIKey, key); err != nil {
		return fail(err, "")
	}

	fmt.Println("API key stored in the system keyring.")
	return nil
}

func runAuthLogout() error {
	err := credential.Delete(credential.KeyAPIKey)
	if errors.Is(err, credential.ErrNotFound) {
		fmt.Println("No API key stored.")
		return nil
	}
	if err != nil {
		return fail(err, "")
	}

	fmt.Println("API key removed from the system keyring.")
	return nil
}

// displayValue masks secrets in config output.
func displayValue(key, value string) string {
	if key != config.KeyAPIKey || value == "" {
		if value == "" {
			return "(unset)"
		}
		return value
	}
	if len(value) <= 4 {
		return "****"
	}
	return value[:4] + strings.Repeat("*", len(value)-4)
}
