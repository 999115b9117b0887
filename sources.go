package main

import (
	"context"
	"net/http"
	"time"
)

// Keep at most this many matches per source, in the order the source ranked
// them.  Sources are assumed to return results pre-ranked by relevance; we
// do no re-ranking of our own.
const MAX_SOURCE_CANDIDATES = 5

// CatalogRecord is a bibliographic result normalized from any source.
// Fields a source can't supply are empty strings, never omitted as nil, so
// downstream formatting doesn't have to care which source answered.
type CatalogRecord struct {
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	ISBN        string   `json:"isbn"`
	ISBNDigital string   `json:"isbn_digital"`
	Cover       string   `json:"cover"`
	Publisher   string   `json:"publisher,omitempty"`
	Year        string   `json:"year,omitempty"`
	Language    string   `json:"language,omitempty"`
	Description string   `json:"description,omitempty"`
	Subjects    []string `json:"subjects,omitempty"`
}

type LookupResult struct {
	Best       *CatalogRecord  `json:"best"`
	Candidates []CatalogRecord `json:"candidates"`
}

// Source is one external bibliographic catalog.  Search returns (nil, nil)
// when the source has no match, so resolution can move on to the next
// source; an error means the source itself failed.  A source that can't be
// used at all (e.g. missing credential) also answers (nil, nil) rather than
// erroring, so it is silently skipped.
type Source interface {
	Name() string

	// RateLimited reports whether the source's usage policy requires
	// client-side throttling between calls.
	RateLimited() bool

	Search(ctx context.Context, query string) (*LookupResult, error)
}

func newSourceClient() *http.Client {
	return &http.Client{
		Timeout: 30 * time.Second,
	}
}

func resultFrom(candidates []CatalogRecord) *LookupResult {
	if len(candidates) == 0 {
		return nil
	}

	if len(candidates) > MAX_SOURCE_CANDIDATES {
		candidates = candidates[:MAX_SOURCE_CANDIDATES]
	}

	return &LookupResult{
		Best:       &candidates[0],
		Candidates: candidates,
	}
}
