package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []PointOfInterest {
	return []PointOfInterest{
		{Title: "Bukit Holbung", Subdistrict: "Harian", Address: "Jl. Holbung", Latitude: 2.68, Longitude: 98.8, Category: "Alam", Activity: "Hiking", Link: "http://x", Rating: 4.6, HasRating: true},
		{Title: "Air Terjun Efrata", Subdistrict: "Harian", Category: "Alam", Activity: "Berenang"},
		{Title: "Pantai Pasir Putih Parbaba", Subdistrict: "Pangururan", Category: "Alam", Activity: "Berenang"},
	}
}

func TestFindMentionsOffsets(t *testing.T) {
	mentions := FindMentions("dimana bukit holbung", testCatalog())
	require.Len(t, mentions, 1)
	assert.Equal(t, "Bukit Holbung", mentions[0].Entity.Title)
	assert.Equal(t, 7, mentions[0].Offset)
	assert.Equal(t, "bukit holbung", mentions[0].MatchedText)
}

func TestFindMentionsOrderedByOffset(t *testing.T) {
	mentions := FindMentions("air terjun efrata atau bukit holbung?", testCatalog())
	require.Len(t, mentions, 2)
	assert.Equal(t, "Air Terjun Efrata", mentions[0].Entity.Title)
	assert.Equal(t, "Bukit Holbung", mentions[1].Entity.Title)
}

func TestFindMentionsPrefersLongestTitleAtSameOffset(t *testing.T) {
	pois := []PointOfInterest{
		{Title: "Bukit"},
		{Title: "Bukit Holbung"},
	}
	mentions := FindMentions("info bukit holbung dong", pois)
	require.Len(t, mentions, 1)
	assert.Equal(t, "Bukit Holbung", mentions[0].Entity.Title)
}

func TestFindMentionsKeepsDisjointShortTitle(t *testing.T) {
	pois := []PointOfInterest{
		{Title: "Bukit"},
		{Title: "Bukit Holbung"},
	}
	mentions := FindMentions("bukit holbung dan bukit lain", pois)
	require.Len(t, mentions, 2)
	assert.Equal(t, "Bukit Holbung", mentions[0].Entity.Title)
	assert.Equal(t, "Bukit", mentions[1].Entity.Title)
	assert.Equal(t, 18, mentions[1].Offset)
}

func TestFindMentionsNoMatch(t *testing.T) {
	mentions := FindMentions("apa kabar", testCatalog())
	assert.Empty(t, mentions)
}

func TestSimilarityRatio(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("abc", "abc"))
	assert.Equal(t, 0.0, Similarity("abc", "xyz"))
	assert.InDelta(t, 0.8, Similarity("abcd", "abcde"), 0.1)
	assert.Equal(t, 1.0, Similarity("", ""))
}

func TestSimilaritySymmetricTotal(t *testing.T) {
	// Longest common block "bcd": 2*M/T = 2*3/9.
	got := Similarity("abcd", "bcdef")
	assert.InDelta(t, 2.0*3.0/9.0, got, 1e-9)
}

func TestFuzzySearchLocationShortCircuit(t *testing.T) {
	results := FuzzySearch("dimana letak bukit holbung", testCatalog())
	require.Len(t, results, 1)
	assert.Equal(t, ResultLocation, results[0].Type)
	assert.Equal(t, "Bukit Holbung", results[0].Entity.Title)
}

func TestFuzzySearchRatingShortCircuit(t *testing.T) {
	results := FuzzySearch("berapa rating bukit holbung", testCatalog())
	require.Len(t, results, 1)
	assert.Equal(t, ResultRating, results[0].Type)
}

func TestFuzzySearchGenericByField(t *testing.T) {
	results := FuzzySearch("tempat untuk berenang dong", testCatalog())
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, ResultGeneric, r.Type)
		assert.Equal(t, "Berenang", r.Entity.Activity)
	}
	// Catalog order is preserved, not similarity order.
	assert.Equal(t, "Air Terjun Efrata", results[0].Entity.Title)
}

func TestFuzzySearchHonorsExclusion(t *testing.T) {
	results := FuzzySearch("selain air terjun efrata, tempat berenang apa lagi", testCatalog())
	for _, r := range results {
		assert.NotEqual(t, "Air Terjun Efrata", r.Entity.Title)
	}
}

func TestFuzzySearchNoMatch(t *testing.T) {
	results := FuzzySearch("zzzz qqqq", testCatalog())
	assert.Empty(t, results)
}
