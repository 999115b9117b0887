package main

import (
	"context"
	"strings"
)

// Anything shorter than this after trimming is "no text detected".
const MIN_SCAN_TEXT = 3

// Scanner ties the pipeline together: group (when positional data exists),
// segment, resolve, classify.
type Scanner struct {
	Resolver *Resolver
}

func NewScanner(resolver *Resolver) *Scanner {
	return &Scanner{Resolver: resolver}
}

// Scan runs the pipeline over free OCR text, which may carry the spine
// separator convention.  Degenerate input short-circuits to an empty result
// rather than an error - there just wasn't anything to read.
func (s *Scanner) Scan(ctx context.Context, text string) []Book {
	if len(strings.TrimSpace(text)) < MIN_SCAN_TEXT {
		sugar.Infof("No text detected")
		return []Book{}
	}

	candidates := ParseOCRText(text)

	sugar.Infof("Parsed %d candidates", len(candidates))

	return s.Resolver.LookupBooks(ctx, candidates)
}

// ScanBlocks runs the pipeline over structured OCR output, using the typed
// spine groups directly rather than the marker encoding.
func (s *Scanner) ScanBlocks(ctx context.Context, blocks []TextBlock) []Book {
	groups := GroupBlocks(blocks)

	sugar.Infof("Grouped %d blocks into %d spines", len(blocks), len(groups))

	candidates := ParseSpineGroups(groups)

	return s.Resolver.LookupBooks(ctx, candidates)
}

// BatchResult is the outcome for one input in a batch: its books, or the
// error that stopped it.
type BatchResult struct {
	Name  string `json:"name"`
	Books []Book `json:"books"`
	Error string `json:"error,omitempty"`
}

// ScanBatch processes inputs one after another - an item's full pipeline
// completes before the next begins.  A failing item is recorded and skipped;
// it never aborts the rest of the batch.
func (s *Scanner) ScanBatch(ctx context.Context, names []string, load func(string) (string, error)) []BatchResult {
	results := make([]BatchResult, 0, len(names))

	for _, name := range names {
		text, err := load(name)

		if err != nil {
			sugar.Warnf("Batch item %s failed: %v", name, err)
			results = append(results, BatchResult{Name: name, Error: err.Error()})
			continue
		}

		results = append(results, BatchResult{
			Name:  name,
			Books: s.Scan(ctx, text),
		})
	}

	return results
}
