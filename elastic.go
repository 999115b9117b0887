package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/elastic/go-elasticsearch/v7"
)

const ELASTIC_INDEX = "spinescan"

// LocalIndex is an optional Elasticsearch-backed catalog of known books,
// useful for collections (or languages) the public catalogs cover badly.
// It only participates when an address is configured.
type LocalIndex struct {
	es *elasticsearch.Client
}

func NewLocalIndex(address string) (*LocalIndex, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{address},
	})
	if err != nil {
		return nil, fmt.Errorf("local index client: %w", err)
	}

	return &LocalIndex{es: es}, nil
}

func (s *LocalIndex) Name() string {
	return "localindex"
}

func (s *LocalIndex) RateLimited() bool {
	return false
}

var (
	digitsRE   = regexp.MustCompile(`[0-9]`)
	drRE       = regexp.MustCompile(`Dr\.`)
	bracketsRE = regexp.MustCompile(`(.*)\(.*\)(.*)`)
	nonAlphaRE = regexp.MustCompile(`(?i)[^a-z ]+`)
	subtitleRE = regexp.MustCompile(`(.*?):.*`)
	nonAlnumRE = regexp.MustCompile(`(?i)[^a-z0-9 ]+`)
)

func NormalizeAuthor(author string) string {
	// Any numbers in an author are junk.
	author = digitsRE.ReplaceAllString(author, "")

	// Remove Dr. as this isn't always present.
	author = drRE.ReplaceAllString(author, "")

	// Anything in brackets should be removed - not part of the name, could
	// be "(writing as ...)".
	author = bracketsRE.ReplaceAllString(author, "$1$2")

	// Remove anything which isn't alphabetic.
	author = nonAlphaRE.ReplaceAllString(author, "")

	author = strings.TrimSpace(strings.ToLower(author))

	return removeShortWords(author)
}

func NormalizeTitle(title string) string {
	// Some books have a subtitle, and the catalogues are inconsistent about
	// whether that's included.
	title = subtitleRE.ReplaceAllString(title, "$1")

	// Anything in brackets should be removed - ditto.
	title = bracketsRE.ReplaceAllString(title, "$1$2")

	// Remove anything which isn't alphanumeric.
	title = nonAlnumRE.ReplaceAllString(title, "")

	title = strings.TrimSpace(strings.ToLower(title))

	return removeShortWords(title)
}

func removeShortWords(str string) string {
	words := strings.Split(strings.TrimSpace(str), " ")
	ret := []string{}

	for _, word := range words {
		word = strings.TrimSpace(word)

		if len(word) > 3 {
			ret = append(ret, word)
		}
	}

	return strings.Join(ret, " ")
}

func (s *LocalIndex) Search(ctx context.Context, query string) (*LookupResult, error) {
	normalized := NormalizeTitle(query)

	if len(normalized) < 4 {
		// Very short titles are more likely to just be junk.
		sugar.Debugf("Reject too short query %s", normalized)
		return nil, nil
	}

	// Empirical testing shows that a fuzziness of 2 gives good results for
	// spine text without pulling in unrelated books.
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"fuzzy": map[string]interface{}{
				"normaltitle": map[string]interface{}{
					"value":     normalized,
					"fuzziness": 2,
				},
			},
		},
	}

	var buf bytes.Buffer

	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("local index encode: %w", err)
	}

	res, err := s.es.Search(
		s.es.Search.WithContext(ctx),
		s.es.Search.WithIndex(ELASTIC_INDEX),
		s.es.Search.WithBody(&buf),
		s.es.Search.WithSize(MAX_SOURCE_CANDIDATES),
	)
	if err != nil {
		return nil, fmt.Errorf("local index search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("local index returned status %s", res.Status())
	}

	var payload struct {
		Hits struct {
			Hits []struct {
				Source struct {
					Title       string `json:"title"`
					Author      string `json:"author"`
					NormalTitle string `json:"normaltitle"`
					ISBN        string `json:"isbn"`
					Cover       string `json:"cover"`
					Publisher   string `json:"publisher"`
					Year        string `json:"year"`
					Language    string `json:"language"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("local index decode: %w", err)
	}

	candidates := []CatalogRecord{}

	for _, hit := range payload.Hits.Hits {
		doc := hit.Source

		// We see some matches where the author and title are basically the
		// same.  Might be true for autobiographies but more likely junk.
		normalAuthor := NormalizeAuthor(doc.Author)
		if normalAuthor != "" && doc.NormalTitle != "" &&
			(strings.Contains(normalAuthor, doc.NormalTitle) || strings.Contains(doc.NormalTitle, normalAuthor)) {
			sugar.Debugf("Reject suspect hit %s - %s", doc.Author, doc.Title)
			continue
		}

		candidates = append(candidates, CatalogRecord{
			Title:     doc.Title,
			Author:    doc.Author,
			ISBN:      doc.ISBN,
			Cover:     doc.Cover,
			Publisher: doc.Publisher,
			Year:      doc.Year,
			Language:  doc.Language,
		})
	}

	return resultFrom(candidates), nil
}
