package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAuthor(t *testing.T) {
	assert.Equal(t, "james herriot", NormalizeAuthor("Dr. James Herriot 2"))
	assert.Equal(t, "rowling", NormalizeAuthor("J.K. Rowling (writing as Robert Galbraith)"))
}

func TestNormalizeTitle(t *testing.T) {
	assert.Equal(t, "remains", NormalizeTitle("The Remains of the Day: A Novel"))
	assert.Equal(t, "1984", NormalizeTitle("1984!"))
}

func TestRemoveShortWords(t *testing.T) {
	assert.Equal(t, "remains", removeShortWords("the remains of the day"))
}

func TestLocalIndexSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")

		w.Write([]byte(`{"hits": {"hits": [
			{"_source": {"title": "Dune", "author": "Frank Herbert", "normaltitle": "dune",
			 "isbn": "9780441172719", "cover": "http://covers/dune.jpg", "publisher": "Ace",
			 "year": "1965", "language": "en"}},
			{"_source": {"title": "Frank Herbert", "author": "Frank Herbert", "normaltitle": "frank herbert"}}
		]}}`))
	}))
	defer server.Close()

	source, err := NewLocalIndex(server.URL)
	require.NoError(t, err)

	result, err := source.Search(context.Background(), "Dune Chronicles")
	require.NoError(t, err)
	require.NotNil(t, result)

	// The author-equals-title hit is rejected as junk.
	require.Len(t, result.Candidates, 1)
	assert.Equal(t, "Dune", result.Best.Title)
	assert.Equal(t, "Frank Herbert", result.Best.Author)
	assert.Equal(t, "9780441172719", result.Best.ISBN)
}

func TestLocalIndexShortQuery(t *testing.T) {
	source, err := NewLocalIndex("http://unused.invalid")
	require.NoError(t, err)

	// Normalizes to nothing usable, so no search is attempted.
	result, err := source.Search(context.Background(), "the of a!")
	require.NoError(t, err)
	assert.Nil(t, result)
}
