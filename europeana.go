package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
)

const EUROPEANA_URL = "https://api.europeana.eu"

// Preference order when resolving Europeana's language-keyed fields.
var europeanaLangs = []string{"nl", "en", "def"}

// Europeana is the cultural-heritage catalog source.  It requires an API
// key; without one it reports no matches rather than failing, so an
// unconfigured install just skips past it.
type Europeana struct {
	BaseURL string
	APIKey  string
	client  *http.Client
}

func NewEuropeana(baseURL, apiKey string) *Europeana {
	if baseURL == "" {
		baseURL = EUROPEANA_URL
	}

	return &Europeana{
		BaseURL: baseURL,
		APIKey:  apiKey,
		client:  newSourceClient(),
	}
}

func (s *Europeana) Name() string {
	return "europeana"
}

func (s *Europeana) RateLimited() bool {
	return false
}

func (s *Europeana) Search(ctx context.Context, query string) (*LookupResult, error) {
	if s.APIKey == "" {
		sugar.Debugf("Europeana key not configured, skipping")
		return nil, nil
	}

	searchURL := fmt.Sprintf("%s/record/v2/search.json?wskey=%s&query=%s&rows=%d&profile=rich",
		s.BaseURL, url.QueryEscape(s.APIKey), url.QueryEscape(query), MAX_SOURCE_CANDIDATES)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("europeana search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("europeana returned status %d", resp.StatusCode)
	}

	var payload struct {
		Items []struct {
			DcTitleLangAware       map[string][]string `json:"dcTitleLangAware"`
			DcCreatorLangAware     map[string][]string `json:"dcCreatorLangAware"`
			DcDescriptionLangAware map[string][]string `json:"dcDescriptionLangAware"`
			DcLanguage             []string            `json:"dcLanguage"`
			EdmPreview             []string            `json:"edmPreview"`
			Year                   []string            `json:"year"`
		} `json:"items"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("europeana decode: %w", err)
	}

	candidates := []CatalogRecord{}

	for _, item := range payload.Items {
		if len(candidates) == MAX_SOURCE_CANDIDATES {
			break
		}

		candidates = append(candidates, CatalogRecord{
			Title:       langAware(item.DcTitleLangAware),
			Author:      langAware(item.DcCreatorLangAware),
			Description: langAware(item.DcDescriptionLangAware),
			Language:    first(item.DcLanguage),
			Cover:       first(item.EdmPreview),
			Year:        first(item.Year),
		})
	}

	return resultFrom(candidates), nil
}

// langAware picks a value from a language-keyed map: nl, then en, then the
// "def" (undetermined) key, then whatever is available first.
func langAware(values map[string][]string) string {
	for _, lang := range europeanaLangs {
		if v := first(values[lang]); v != "" {
			return v
		}
	}

	// Sorted so the fallback is deterministic.
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if v := first(values[key]); v != "" {
			return v
		}
	}

	return ""
}
