package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

const GOOGLEBOOKS_URL = "https://www.googleapis.com"

// GoogleBooks is the general books catalog source.  An API key raises the
// quota but isn't required, so the source works unconfigured.
type GoogleBooks struct {
	BaseURL string
	APIKey  string
	client  *http.Client
}

func NewGoogleBooks(baseURL, apiKey string) *GoogleBooks {
	if baseURL == "" {
		baseURL = GOOGLEBOOKS_URL
	}

	return &GoogleBooks{
		BaseURL: baseURL,
		APIKey:  apiKey,
		client:  newSourceClient(),
	}
}

func (s *GoogleBooks) Name() string {
	return "googlebooks"
}

func (s *GoogleBooks) RateLimited() bool {
	return false
}

func (s *GoogleBooks) Search(ctx context.Context, query string) (*LookupResult, error) {
	searchURL := fmt.Sprintf("%s/books/v1/volumes?q=%s&maxResults=%d", s.BaseURL, url.QueryEscape(query), MAX_SOURCE_CANDIDATES)

	if s.APIKey != "" {
		searchURL += "&key=" + url.QueryEscape(s.APIKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("googlebooks search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("googlebooks returned status %d", resp.StatusCode)
	}

	var payload struct {
		Items []struct {
			VolumeInfo struct {
				Title               string   `json:"title"`
				Authors             []string `json:"authors"`
				IndustryIdentifiers []struct {
					Type       string `json:"type"`
					Identifier string `json:"identifier"`
				} `json:"industryIdentifiers"`
				ImageLinks struct {
					Thumbnail string `json:"thumbnail"`
				} `json:"imageLinks"`
				Publisher     string   `json:"publisher"`
				PublishedDate string   `json:"publishedDate"`
				Language      string   `json:"language"`
				Description   string   `json:"description"`
				Categories    []string `json:"categories"`
			} `json:"volumeInfo"`
		} `json:"items"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("googlebooks decode: %w", err)
	}

	candidates := []CatalogRecord{}

	for _, item := range payload.Items {
		if len(candidates) == MAX_SOURCE_CANDIDATES {
			break
		}

		info := item.VolumeInfo

		var isbn10, isbn13 string

		for _, identifier := range info.IndustryIdentifiers {
			switch identifier.Type {
			case "ISBN_10":
				isbn10 = identifier.Identifier
			case "ISBN_13":
				isbn13 = identifier.Identifier
			}
		}

		isbn := isbn13
		if isbn == "" {
			isbn = isbn10
		}

		year := info.PublishedDate
		if len(year) > 4 {
			// publishedDate may be a full date; the year is the leading part.
			year = year[:4]
		}

		candidates = append(candidates, CatalogRecord{
			Title:       info.Title,
			Author:      first(info.Authors),
			ISBN:        isbn,
			ISBNDigital: isbn13,
			Cover:       info.ImageLinks.Thumbnail,
			Publisher:   info.Publisher,
			Year:        year,
			Language:    info.Language,
			Description: info.Description,
			Subjects:    info.Categories,
		})
	}

	return resultFrom(candidates), nil
}
