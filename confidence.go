package main

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

type Confidence string

const (
	ConfidenceNone   Confidence = "none"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Similarity thresholds, strict > comparisons.
const (
	HIGH_SIMILARITY   = 0.85
	MEDIUM_SIMILARITY = 0.5
)

// Similarity is normalized edit distance: 1 - d/max(len), in runes.
// Identical strings score 1, fully different strings 0.
func Similarity(str1, str2 string) float64 {
	len1 := utf8.RuneCountInString(str1)
	len2 := utf8.RuneCountInString(str2)

	max := len1
	if len2 > max {
		max = len2
	}

	if max == 0 {
		return 1
	}

	dist := levenshtein.ComputeDistance(str1, str2)

	return 1 - float64(dist)/float64(max)
}

// MatchClassifier rates how trustworthy a resolved record is for the query
// that produced it.  Text lookups and ISBN lookups use different strategies:
// titles read off a spine are uncertain, so they're scored by string
// similarity; an ISBN, once read, is unambiguous, so presence of any match
// is enough.
type MatchClassifier interface {
	Classify(query string, record *CatalogRecord) Confidence
}

// TitleSimilarity classifies free-text lookups by case-insensitive
// similarity between the query and the resolved title.
type TitleSimilarity struct{}

func (TitleSimilarity) Classify(query string, record *CatalogRecord) Confidence {
	if record == nil || record.Title == "" {
		return ConfidenceNone
	}

	similarity := Similarity(strings.ToLower(query), strings.ToLower(record.Title))

	sugar.Debugf("Similarity %.3f for %s vs %s", similarity, query, record.Title)

	switch {
	case similarity > HIGH_SIMILARITY:
		return ConfidenceHigh
	case similarity > MEDIUM_SIMILARITY:
		return ConfidenceMedium
	default:
		return ConfidenceNone
	}
}

// ISBNPresence classifies barcode lookups.  Any titled match is high.  An
// unmatched but well-formed ISBN-13 is still probably a valid code, just one
// the catalogs don't know, so it rates medium rather than none.
type ISBNPresence struct {
	ISBN string
}

func (c ISBNPresence) Classify(query string, record *CatalogRecord) Confidence {
	if record != nil && record.Title != "" {
		return ConfidenceHigh
	}

	if len(c.ISBN) == 13 {
		return ConfidenceMedium
	}

	return ConfidenceNone
}
