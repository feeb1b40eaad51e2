package main

import (
	"fmt"
	"os"
	"time"

	"github.com/jonathan/career-harvester/internal/client"
	"github.com/jonathan/career-harvester/internal/config"
)

// defaultSavedJobsDB is where the saved-jobs database lives unless the
// config overrides it.
const defaultSavedJobsDB = "saved_jobs.db"

// defaultAPIBaseURL points at a locally running serve instance. The client
// package default is a relative prefix for same-origin use; a CLI always
// needs a full URL.
const defaultAPIBaseURL = "http://localhost:8080/api"

// loadConfig reads the optional config file and fills unset values with
// the client defaults.
func loadConfig(path string) (config.Config, error) {
	var cfg config.Config
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
	}

	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = os.Getenv("CAREER_API_BASE")
	}

	defaults := config.Config{
		APIBaseURL:     defaultAPIBaseURL,
		Location:       client.DefaultLocation,
		TimeoutSeconds: int(client.DefaultTimeout / time.Second),
		SavedJobsDB:    defaultSavedJobsDB,
	}
	return cfg.MergeWithDefaults(defaults), nil
}

// buildClient constructs the API client from merged configuration.
func buildClient(cfg config.Config) *client.Client {
	return client.New(client.Options{
		BaseURL:  cfg.APIBaseURL,
		Location: cfg.Location,
		Timeout:  time.Duration(cfg.TimeoutSeconds) * time.Second,
	})
}
