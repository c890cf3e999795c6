package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func passage(text string, md PassageMetadata) RetrievedPassage {
	return RetrievedPassage{Text: text, Metadata: md}
}

func TestRankContextScoresMetadataHits(t *testing.T) {
	passages := []RetrievedPassage{
		passage("plain", PassageMetadata{Title: "Tuktuk"}),
		passage("title hit", PassageMetadata{Title: "Bukit Holbung"}),
	}

	got := RankContext(passages, "dimana bukit holbung", 2)
	require.Len(t, got, 2)
	assert.Equal(t, "title hit", got[0])
	assert.Equal(t, "plain", got[1])
}

func TestRankContextAdditiveWeights(t *testing.T) {
	passages := []RetrievedPassage{
		passage("category only", PassageMetadata{Category: "Alam"}),
		passage("everything", PassageMetadata{Title: "Bukit Holbung", Category: "Alam", Activity: "Hiking", Subdistrict: "Harian", Rating: "4.6"}),
		passage("subdistrict only", PassageMetadata{Subdistrict: "Harian"}),
	}

	got := RankContext(passages, "bukit holbung di harian untuk hiking wisata alam", 3)
	require.Len(t, got, 3)
	assert.Equal(t, "everything", got[0])
	assert.Equal(t, "category only", got[1])
	assert.Equal(t, "subdistrict only", got[2])
}

func TestRankContextRatingBonus(t *testing.T) {
	passages := []RetrievedPassage{
		passage("low", PassageMetadata{Rating: "2.9"}),
		passage("mid", PassageMetadata{Rating: "3.5"}),
		passage("high", PassageMetadata{Rating: "4.0"}),
		passage("junk", PassageMetadata{Rating: "n/a"}),
	}

	got := RankContext(passages, "tempat bagus", 4)
	require.Len(t, got, 4)
	assert.Equal(t, "high", got[0])
	assert.Equal(t, "mid", got[1])
	// Zero-score passages keep their retrieval order.
	assert.Equal(t, []string{"low", "junk"}, got[2:])
}

func TestRankContextStableOnTies(t *testing.T) {
	passages := []RetrievedPassage{
		passage("first", PassageMetadata{}),
		passage("second", PassageMetadata{}),
		passage("third", PassageMetadata{}),
	}

	first := RankContext(passages, "anything", 3)
	second := RankContext(passages, "anything", 3)
	assert.Equal(t, []string{"first", "second", "third"}, first)
	assert.Equal(t, first, second)
}

func TestRankContextHonorsTopK(t *testing.T) {
	passages := []RetrievedPassage{
		passage("a", PassageMetadata{}),
		passage("b", PassageMetadata{}),
		passage("c", PassageMetadata{}),
	}

	assert.Len(t, RankContext(passages, "q", 2), 2)
	assert.Empty(t, RankContext(passages, "q", 0))
	assert.Len(t, RankContext(passages, "q", 10), 3)
}

func TestRankContextEmptyMetadataScoresZero(t *testing.T) {
	passages := []RetrievedPassage{
		passage("empty md", PassageMetadata{}),
		passage("real md", PassageMetadata{Title: "Bukit Holbung"}),
	}

	got := RankContext(passages, "bukit holbung", 2)
	assert.Equal(t, "real md", got[0])
}
