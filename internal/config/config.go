// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Backend
	APIBaseURL string `json:"api_base_url,omitempty"` // Base URL of the career-harvester API
	Location   string `json:"location,omitempty"`     // Preferred job search location

	// Server
	APIKey string `json:"api_key,omitempty"` // Gemini API key (serve mode)
	Model  string `json:"model,omitempty"`   // Gemini model name (serve mode)

	// Behavior
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"` // HTTP timeout for API calls
	SavedJobsDB    string `json:"saved_jobs_db,omitempty"`   // Path to the saved-jobs SQLite database
	Enhanced       bool   `json:"enhanced,omitempty"`        // Request enhanced resume processing
	Verbose        bool   `json:"verbose,omitempty"`         // Print detailed output
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'timeout_seconds' must be non-negative")
	}
	if c.SavedJobsDB != "" {
		dir := filepath.Dir(c.SavedJobsDB)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("config error: saved-jobs directory not found: %s", dir)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIBaseURL == "" {
		result.APIBaseURL = defaults.APIBaseURL
	}
	if result.Location == "" {
		result.Location = defaults.Location
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.SavedJobsDB == "" {
		result.SavedJobsDB = defaults.SavedJobsDB
	}
	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
