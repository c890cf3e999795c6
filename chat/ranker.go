package chat

import (
	"sort"
	"strconv"
	"strings"
)

// Field weights for the lexical re-ranking pass. Vector similarity already
// ordered the candidates; this pass only promotes passages whose metadata
// actually appears in the query, plus a small bonus for well-rated places.
const (
	titleWeight       = 3
	categoryWeight    = 2
	activityWeight    = 2
	subdistrictWeight = 1
)

// RankContext re-scores retrieved passages against the raw query and
// returns the text of the topK best. The sort is stable, so passages with
// equal combined scores keep their vector-similarity order.
func RankContext(passages []RetrievedPassage, query string, topK int) []string {
	if topK <= 0 {
		return nil
	}

	lower := strings.ToLower(query)

	type scored struct {
		score int
		text  string
	}

	ranked := make([]scored, len(passages))
	for i, p := range passages {
		ranked[i] = scored{score: scorePassage(p.Metadata, lower), text: p.Text}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if topK > len(ranked) {
		topK = len(ranked)
	}
	texts := make([]string, topK)
	for i := 0; i < topK; i++ {
		texts[i] = ranked[i].text
	}
	return texts
}

func scorePassage(md PassageMetadata, lowerQuery string) int {
	score := 0
	if fieldInQuery(lowerQuery, md.Title) {
		score += titleWeight
	}
	if fieldInQuery(lowerQuery, md.Category) {
		score += categoryWeight
	}
	if fieldInQuery(lowerQuery, md.Activity) {
		score += activityWeight
	}
	if fieldInQuery(lowerQuery, md.Subdistrict) {
		score += subdistrictWeight
	}
	if rating, err := strconv.ParseFloat(strings.TrimSpace(md.Rating), 64); err == nil {
		switch {
		case rating >= 4.0:
			score += 2
		case rating >= 3.0:
			score++
		}
	}
	return score
}

func fieldInQuery(lowerQuery, value string) bool {
	value = strings.ToLower(strings.TrimSpace(value))
	return value != "" && strings.Contains(lowerQuery, value)
}
