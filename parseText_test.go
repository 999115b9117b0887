package main

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanOCR(t *testing.T) {
	assert.Equal(t, "Hi", CleanOCR("Hi ISBN"))
	assert.Equal(t, "Hi", CleanOCR(" # 0123.45 Hi\" -hi"))
	assert.Equal(t, "1984", CleanOCR("1984"))
	assert.Equal(t, "", CleanOCR("123"))
}

func TestIsLikelyAuthor(t *testing.T) {
	assert.True(t, IsLikelyAuthor("John Smith"))
	assert.True(t, IsLikelyAuthor("J. Smith"))
	assert.True(t, IsLikelyAuthor("Smith, John"))
	assert.False(t, IsLikelyAuthor("THE GREAT GATSBY"))
	assert.False(t, IsLikelyAuthor("F. Scott Fitzgerald"))
	assert.False(t, IsLikelyAuthor("1984"))
}

func TestParseStructured(t *testing.T) {
	candidates := ParseOCRText("THE GREAT GATSBY\nF. Scott Fitzgerald\n---\n1984\nGeorge Orwell")

	require.Len(t, candidates, 2)

	assert.Equal(t, "THE GREAT GATSBY", candidates[0].PossibleTitle)
	// Three-token names fail all the author patterns, so the first spine
	// keeps an empty author.
	assert.Equal(t, "", candidates[0].PossibleAuthor)

	assert.Equal(t, "1984", candidates[1].PossibleTitle)
	assert.Equal(t, "George Orwell", candidates[1].PossibleAuthor)
}

func TestParseStructuredTitlePicksLongest(t *testing.T) {
	candidates := ParseOCRText("Penguin\nThe Remains of the Day\n---\nother")

	require.Len(t, candidates, 2)
	assert.Equal(t, "The Remains of the Day", candidates[0].PossibleTitle)
	assert.Equal(t, "Penguin The Remains of the Day", candidates[0].RawText)
}

func TestParseStructuredAuthorOnlySection(t *testing.T) {
	// No non-name line at all: the first line becomes the title.
	candidates := ParseOCRText("John Smith\nJane Done\n---\nother")

	require.Len(t, candidates, 2)
	assert.Equal(t, "John Smith", candidates[0].PossibleTitle)
	assert.Equal(t, "John Smith", candidates[0].PossibleAuthor)
}

func TestParseStructuredFirstAuthorWins(t *testing.T) {
	// A second author-looking line is ignored rather than overwriting the
	// first match.
	candidates := ParseOCRText("A Long Enough Title\nJohn Smith\nJane Done\n---\nother")

	require.Len(t, candidates, 2)
	assert.Equal(t, "John Smith", candidates[0].PossibleAuthor)
}

func TestParseStructuredDropsJunkLines(t *testing.T) {
	candidates := ParseOCRText("12\nab\nReal Title Here\n---\nother")

	require.Len(t, candidates, 2)
	assert.Equal(t, "Real Title Here", candidates[0].PossibleTitle)
	assert.Equal(t, "Real Title Here", candidates[0].RawText)
}

func TestParseEmpty(t *testing.T) {
	assert.Empty(t, ParseOCRText(""))
	assert.Empty(t, ParseOCRText("\n---\n"))
}

func TestParseFallback(t *testing.T) {
	candidates := ParseOCRText("The Hobbit\nJohn Tolkien\nDune\nFrank Herbert")

	require.Len(t, candidates, 2)
	assert.Equal(t, "The Hobbit", candidates[0].PossibleTitle)
	assert.Equal(t, "John Tolkien", candidates[0].PossibleAuthor)
	assert.Equal(t, "Dune", candidates[1].PossibleTitle)
	assert.Equal(t, "Frank Herbert", candidates[1].PossibleAuthor)
}

func TestParseCandidateCap(t *testing.T) {
	sections := []string{}

	for i := 0; i < 25; i++ {
		sections = append(sections, fmt.Sprintf("Unique Book Title %c", 'A'+i))
	}

	candidates := ParseOCRText(strings.Join(sections, SPINE_SEPARATOR))

	require.Len(t, candidates, MAX_CANDIDATES)
	// Truncated, not resampled: original order preserved.
	assert.Equal(t, "Unique Book Title A", candidates[0].PossibleTitle)
	assert.Equal(t, "Unique Book Title T", candidates[19].PossibleTitle)
}

func TestParseIdempotentOnOwnOutput(t *testing.T) {
	first := ParseOCRText("THE GREAT GATSBY\nScribner\n---\nDune\nFrank Herbert")
	require.Len(t, first, 2)

	// Rebuild marker-joined text from the output and run it through again.
	rebuilt := []string{}
	for _, c := range first {
		section := c.PossibleTitle
		if c.PossibleAuthor != "" {
			section += "\n" + c.PossibleAuthor
		}
		rebuilt = append(rebuilt, section)
	}

	second := ParseOCRText(strings.Join(rebuilt, SPINE_SEPARATOR))
	require.Len(t, second, 2)

	for i := range first {
		assert.Equal(t, first[i].PossibleTitle, second[i].PossibleTitle)
		assert.Equal(t, first[i].PossibleAuthor, second[i].PossibleAuthor)
	}
}

func TestParseSpineGroups(t *testing.T) {
	groups := []SpineGroup{
		{Blocks: []TextBlock{{Text: "THE GREAT GATSBY"}, {Text: "Scribner"}}},
		{Blocks: []TextBlock{{Text: "Dune\nFrank Herbert"}}},
	}

	candidates := ParseSpineGroups(groups)

	require.Len(t, candidates, 2)
	assert.Equal(t, "THE GREAT GATSBY", candidates[0].PossibleTitle)
	assert.Equal(t, "Dune", candidates[1].PossibleTitle)
	assert.Equal(t, "Frank Herbert", candidates[1].PossibleAuthor)
}
