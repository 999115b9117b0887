package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const OPENLIBRARY_URL = "https://openlibrary.org"
const OPENLIBRARY_COVERS_URL = "https://covers.openlibrary.org"

// OpenLibrary is the open catalog source.  Its usage policy asks for at
// most one request per second, so it goes through the rate limiter.
type OpenLibrary struct {
	BaseURL string
	client  *http.Client
}

func NewOpenLibrary(baseURL string) *OpenLibrary {
	if baseURL == "" {
		baseURL = OPENLIBRARY_URL
	}

	return &OpenLibrary{
		BaseURL: baseURL,
		client:  newSourceClient(),
	}
}

func (s *OpenLibrary) Name() string {
	return "openlibrary"
}

func (s *OpenLibrary) RateLimited() bool {
	return true
}

func (s *OpenLibrary) Search(ctx context.Context, query string) (*LookupResult, error) {
	searchURL := fmt.Sprintf("%s/search.json?q=%s&limit=%d", s.BaseURL, url.QueryEscape(query), MAX_SOURCE_CANDIDATES)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openlibrary search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openlibrary returned status %d", resp.StatusCode)
	}

	var payload struct {
		Docs []struct {
			Title       string   `json:"title"`
			AuthorName  []string `json:"author_name"`
			ISBN        []string `json:"isbn"`
			CoverID     int64    `json:"cover_i"`
			Publisher   []string `json:"publisher"`
			PublishYear []int    `json:"publish_year"`
			Language    []string `json:"language"`
			Subject     []string `json:"subject"`
		} `json:"docs"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("openlibrary decode: %w", err)
	}

	candidates := []CatalogRecord{}

	for _, doc := range payload.Docs {
		if len(candidates) == MAX_SOURCE_CANDIDATES {
			break
		}

		record := CatalogRecord{
			Title:    doc.Title,
			Author:   first(doc.AuthorName),
			ISBN:     first(doc.ISBN),
			Language: first(doc.Language),
			Subjects: doc.Subject,
		}

		// Prefer an ISBN-13 as the digital identifier when one is listed.
		for _, isbn := range doc.ISBN {
			if strings.HasPrefix(isbn, "978") {
				record.ISBNDigital = isbn
				break
			}
		}

		if doc.CoverID != 0 {
			record.Cover = fmt.Sprintf("%s/b/id/%d-M.jpg", OPENLIBRARY_COVERS_URL, doc.CoverID)
		}

		record.Publisher = first(doc.Publisher)

		if len(doc.PublishYear) > 0 {
			record.Year = strconv.Itoa(doc.PublishYear[0])
		}

		candidates = append(candidates, record)
	}

	return resultFrom(candidates), nil
}

func first(values []string) string {
	if len(values) > 0 {
		return values[0]
	}

	return ""
}
