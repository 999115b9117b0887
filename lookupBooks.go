package main

import (
	"context"
	"fmt"
	"regexp"
)

const WORLDCAT_URL = "https://search.worldcat.org"

var nonDigitRE = regexp.MustCompile(`[^\d]`)

// Resolver runs candidates through the enabled sources, in their configured
// priority order, stopping at the first source that yields a titled match.
// Sources are never merged or cross-validated.
type Resolver struct {
	Sources []Source
	Cache   *LookupCache
	Limiter *RateLimiter
}

func NewResolver(sources []Source) *Resolver {
	return &Resolver{
		Sources: sources,
		Cache:   NewLookupCache(),
		Limiter: NewRateLimiter(),
	}
}

// Lookup fans through the sources for one query.  A source failing is not
// fatal - we log it and move on to the next source, so one flaky catalog
// can't sink the whole scan.
func (r *Resolver) Lookup(ctx context.Context, query string) *LookupResult {
	for _, source := range r.Sources {
		result, err := r.lookupSource(ctx, source, query)

		if err != nil {
			sugar.Warnf("Lookup on %s failed for %q: %v", source.Name(), query, err)
			continue
		}

		if result != nil && result.Best != nil {
			return result
		}
	}

	return nil
}

func (r *Resolver) lookupSource(ctx context.Context, source Source, query string) (*LookupResult, error) {
	if cached, found := r.Cache.Get(source.Name(), query); found {
		sugar.Debugf("Cache hit %s %q", source.Name(), query)
		return cached, nil
	}

	if source.RateLimited() {
		r.Limiter.Throttle(source.Name())
	}

	result, err := source.Search(ctx, query)

	if err != nil {
		return nil, err
	}

	if result != nil {
		r.Cache.Set(source.Name(), query, result)
	}

	return result, nil
}

// LookupBooks resolves parsed candidates into Books, strictly one at a
// time.  Sequential resolution is deliberate: it serializes the per-source
// rate limiter for free, at the cost of latency linear in candidate count.
func (r *Resolver) LookupBooks(ctx context.Context, candidates []ParsedCandidate) []Book {
	books := make([]Book, 0, len(candidates))

	for _, parsed := range candidates {
		query := parsed.PossibleTitle

		if query == "" {
			query = parsed.RawText
		}

		book := Book{
			ID:               newBookID(),
			RawOCR:           parsed.RawText,
			PreliminaryTitle: query,
			Author:           parsed.PossibleAuthor,
			Confidence:       ConfidenceNone,
		}

		if result := r.Lookup(ctx, query); result != nil && result.Best != nil {
			book.Candidates = result.Candidates
			book.Confidence = TitleSimilarity{}.Classify(query, result.Best)

			// Below the similarity floor the match is probably wrong, so
			// the catalog fields stay empty and only the candidate list is
			// kept for manual override.
			if book.Confidence != ConfidenceNone {
				best := result.Best
				book.BookTitle = best.Title

				if best.Author != "" {
					book.Author = best.Author
				}

				book.ISBN = best.ISBN
				book.ISBNDigital = best.ISBNDigital
				book.Cover = best.Cover
			}
		}

		books = append(books, book)
	}

	return books
}

// LookupISBNs is the barcode-mode path: the candidates are raw ISBN digit
// strings, so segmentation is skipped and sources are queried ISBN-scoped.
func (r *Resolver) LookupISBNs(ctx context.Context, codes []string) []Book {
	books := make([]Book, 0, len(codes))

	for _, raw := range codes {
		isbn := nonDigitRE.ReplaceAllString(raw, "")

		var best *CatalogRecord

		if isbn != "" {
			if result := r.Lookup(ctx, "isbn:"+isbn); result != nil {
				best = result.Best
			}
		}

		book := Book{
			ID:               newBookID(),
			RawOCR:           raw,
			PreliminaryTitle: raw,
			ISBN:             isbn,
			Confidence:       ISBNPresence{ISBN: isbn}.Classify(raw, best),
		}

		if best != nil {
			book.BookTitle = best.Title
			book.Author = best.Author
			book.ISBNDigital = best.ISBNDigital
			book.Cover = best.Cover
		} else if len(isbn) == 13 {
			// The code is probably valid even though no catalog knows it.
			// Leave a manual search URL where the title would go so a human
			// can follow up.
			book.BookTitle = worldcatSearchURL(isbn)
		}

		books = append(books, book)
	}

	return books
}

func worldcatSearchURL(isbn string) string {
	return fmt.Sprintf("%s/search?q=%s&offset=1", WORLDCAT_URL, isbn)
}
