package main

import (
	"regexp"
	"strings"
)

// Marker separating per-spine sections in legacy OCR provider output.
const SPINE_SEPARATOR = "\n---\n"

// Never hand more than this many candidates downstream; a single shelf photo
// doesn't contain more readable spines than this.
const MAX_CANDIDATES = 20

// ParsedCandidate is a tentative book entry extracted from spine text.
type ParsedCandidate struct {
	RawText        string
	PossibleTitle  string
	PossibleAuthor string
}

var (
	isbnRE      = regexp.MustCompile(`(?i)ISBN`)
	dottedNumRE = regexp.MustCompile(`\d+\.\d+`)
	leadZeroRE  = regexp.MustCompile(`0\d+`)
	shortNumRE  = regexp.MustCompile(`\b\d{1,3}\b`)
	dashWordRE  = regexp.MustCompile(`\s-\w+(\b|$)`)
	hashRE      = regexp.MustCompile(`\s#\s`)
	quotesRE    = regexp.MustCompile(`["']`)
	spacesRE    = regexp.MustCompile(`\s+`)
)

func CleanOCR(str string) string {
	newstr := str

	// ISBNs often appear on spines.
	newstr = isbnRE.ReplaceAllString(newstr, "")

	// Anything with digits separated by dots can't be a real word.
	newstr = dottedNumRE.ReplaceAllString(newstr, "")

	// Anything with leading zeros can't either.
	newstr = leadZeroRE.ReplaceAllString(newstr, "")

	// Remove all words that are 1, 2 or 3 digits.  These could legitimately
	// be in some titles but much more often they are page numbers, shelf
	// labels or ISBN junk.  Longer runs of digits survive, so numeric titles
	// like 1984 come through.
	newstr = shortNumRE.ReplaceAllString(newstr, "")

	// Nothing good starts with a dash.
	newstr = dashWordRE.ReplaceAllString(newstr, "")

	// # is not a word
	newstr = hashRE.ReplaceAllString(newstr, "")

	// Quotes confuse matters.
	newstr = quotesRE.ReplaceAllString(newstr, "")

	// Collapse multiple spaces.
	newstr = spacesRE.ReplaceAllString(newstr, " ")

	newstr = strings.TrimSpace(newstr)

	if str != newstr {
		sugar.Debugf("Cleaned %s => %s", str, newstr)
	}

	return newstr
}

// Spine text is usually "title, maybe author, maybe publisher".  A line is
// treated as a likely author if it fits any of these shapes.
var authorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[A-Z][a-z]+\s+[A-Z][a-z]+$`), // "John Smith"
	regexp.MustCompile(`^[A-Z]\.\s*[A-Z][a-z]+$`),     // "J. Smith"
	regexp.MustCompile(`^[A-Z][a-z]+,\s*[A-Z]`),       // "Smith, John"
}

// Note that three-token names such as "F. Scott Fitzgerald" deliberately do
// not match - see the pattern set above, which is reproduced as observed.
func IsLikelyAuthor(line string) bool {
	line = strings.TrimSpace(line)

	for _, pattern := range authorPatterns {
		if pattern.MatchString(line) {
			return true
		}
	}

	return false
}

// An initial followed by two name words, e.g. "F. Scott Fitzgerald".
// Slightly wider than the author patterns, which such names fail.
var nameLikeRE = regexp.MustCompile(`^[A-Z]\.\s+[A-Z][a-z]+\s+[A-Z][a-z]+$`)

// isNameLike reports whether a line reads as a person's name.  Such lines
// never become the title even when they're the longest in the section - a
// long author name shouldn't displace a short title.
func isNameLike(line string) bool {
	return IsLikelyAuthor(line) || nameLikeRE.MatchString(strings.TrimSpace(line))
}

// cleanLines splits a section into usable lines: trimmed, junk stripped,
// anything that cleans down to 2 characters or fewer dropped.
func cleanLines(section string) []string {
	lines := []string{}

	for _, line := range strings.Split(section, "\n") {
		cleaned := CleanOCR(strings.TrimSpace(line))

		if len(cleaned) > 2 {
			lines = append(lines, cleaned)
		}
	}

	return lines
}

// candidateFromLines picks the title and author for one spine section.  The
// longest non-author line wins as the title - titles are visually dominant
// on a spine, so length is a reasonable proxy.  Only the first author match
// is kept; a later match is more likely a false positive than a correction.
func candidateFromLines(lines []string) (ParsedCandidate, bool) {
	if len(lines) == 0 {
		return ParsedCandidate{}, false
	}

	var title, author string

	for _, line := range lines {
		if IsLikelyAuthor(line) {
			if author == "" {
				author = line
			}
		} else if !isNameLike(line) && len(line) > len(title) {
			title = line
		}
	}

	if title == "" {
		// Every line looked like a name.  Fall back to the first.
		title = lines[0]
	}

	return ParsedCandidate{
		RawText:        strings.Join(lines, " "),
		PossibleTitle:  title,
		PossibleAuthor: author,
	}, true
}

// ParseSpineGroups segments typed spine groups, one candidate per group.
func ParseSpineGroups(groups []SpineGroup) []ParsedCandidate {
	candidates := []ParsedCandidate{}

	for _, group := range groups {
		if candidate, ok := candidateFromLines(cleanLines(group.Text())); ok {
			candidates = append(candidates, candidate)
		}
	}

	return capCandidates(candidates)
}

// ParseOCRText segments free OCR text.  With the spine separator present
// each section is one book (structured mode).  Without it we fall back to a
// line heuristic: each substantial non-author line starts a new book and an
// author line attaches to the book being accumulated.  The fallback is
// knowingly coarser.
func ParseOCRText(text string) []ParsedCandidate {
	if strings.Contains(text, SPINE_SEPARATOR) {
		candidates := []ParsedCandidate{}

		for _, section := range strings.Split(text, SPINE_SEPARATOR) {
			if candidate, ok := candidateFromLines(cleanLines(section)); ok {
				candidates = append(candidates, candidate)
			}
		}

		return capCandidates(candidates)
	}

	candidates := []ParsedCandidate{}
	current := ParsedCandidate{}

	for _, line := range cleanLines(text) {
		if IsLikelyAuthor(line) {
			current.PossibleAuthor = line
		} else {
			if current.RawText != "" || current.PossibleAuthor != "" {
				candidates = append(candidates, current)
			}

			current = ParsedCandidate{
				RawText:       line,
				PossibleTitle: line,
			}
		}
	}

	if current.RawText != "" || current.PossibleAuthor != "" {
		candidates = append(candidates, current)
	}

	kept := []ParsedCandidate{}

	for _, candidate := range candidates {
		if candidate.PossibleTitle != "" || candidate.RawText != "" {
			kept = append(kept, candidate)
		}
	}

	return capCandidates(kept)
}

func capCandidates(candidates []ParsedCandidate) []ParsedCandidate {
	if len(candidates) > MAX_CANDIDATES {
		sugar.Debugf("Truncate %d candidates to %d", len(candidates), MAX_CANDIDATES)
		return candidates[:MAX_CANDIDATES]
	}

	return candidates
}
