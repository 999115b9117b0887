package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Settings drive source selection and credentials.  They come from an
// optional YAML file; credentials can also arrive through the environment
// (a .env file is honoured), and the environment wins.
type Settings struct {
	// Comma-separated source names in priority order, or "all"/"both" to
	// try every enabled source.
	LookupSource string `yaml:"lookup_source"`

	CachePath string `yaml:"cache_path"`

	// Base URL overrides, mainly for tests.
	OpenLibraryURL string `yaml:"openlibrary_url"`
	GoogleBooksURL string `yaml:"googlebooks_url"`
	EuropeanaURL   string `yaml:"europeana_url"`

	ElasticURL string `yaml:"elasticsearch_url"`

	GoogleAPIKey    string `yaml:"google_api_key"`
	EuropeanaAPIKey string `yaml:"europeana_api_key"`
}

func DefaultSettings() Settings {
	return Settings{
		LookupSource: "openlibrary",
	}
}

func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return settings, fmt.Errorf("read settings: %w", err)
		}

		if err := yaml.Unmarshal(data, &settings); err != nil {
			return settings, fmt.Errorf("parse settings: %w", err)
		}
	}

	// Not having a .env is fine.
	_ = godotenv.Load()

	if v := os.Getenv("GOOGLE_BOOKS_API_KEY"); v != "" {
		settings.GoogleAPIKey = v
	}

	if v := os.Getenv("EUROPEANA_API_KEY"); v != "" {
		settings.EuropeanaAPIKey = v
	}

	if v := os.Getenv("ELASTICSEARCH_URL"); v != "" {
		settings.ElasticURL = v
	}

	return settings, nil
}

// BuildSources builds the source list in the configured priority order.  A
// source that can't be constructed (e.g. the local index without an
// address) is skipped, not fatal - configuration gaps degrade coverage,
// never the scan.
func (s Settings) BuildSources() []Source {
	names := []string{}

	switch strings.ToLower(strings.TrimSpace(s.LookupSource)) {
	case "all", "both", "":
		names = []string{"openlibrary", "googlebooks", "europeana", "localindex"}
	default:
		for _, name := range strings.Split(s.LookupSource, ",") {
			names = append(names, strings.ToLower(strings.TrimSpace(name)))
		}
	}

	sources := []Source{}

	for _, name := range names {
		switch name {
		case "openlibrary":
			sources = append(sources, NewOpenLibrary(s.OpenLibraryURL))
		case "googlebooks":
			sources = append(sources, NewGoogleBooks(s.GoogleBooksURL, s.GoogleAPIKey))
		case "europeana":
			sources = append(sources, NewEuropeana(s.EuropeanaURL, s.EuropeanaAPIKey))
		case "localindex":
			if s.ElasticURL == "" {
				sugar.Debugf("Local index not configured, skipping")
				continue
			}

			index, err := NewLocalIndex(s.ElasticURL)
			if err != nil {
				sugar.Warnf("Local index unavailable: %v", err)
				continue
			}

			sources = append(sources, index)
		default:
			sugar.Warnf("Unknown lookup source %q", name)
		}
	}

	return sources
}
