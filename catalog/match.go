package catalog

import (
	"sort"
	"strings"
)

// Mention is one occurrence of a catalog title inside a user message.
type Mention struct {
	Entity      PointOfInterest
	MatchedText string
	Offset      int
}

// FindMentions scans the query for catalog titles using exact lowercase
// substring containment. Every occurrence of a title is a candidate, so a
// short title swallowed by a longer mention early in the query still matches
// where it reappears on its own. Results are ordered by offset ascending;
// when two titles start at the same offset the longer one wins, a mention
// whose span lies entirely inside an already accepted mention is dropped,
// and entities are deduplicated by case-insensitive title.
func FindMentions(query string, pois []PointOfInterest) []Mention {
	lower := strings.ToLower(query)

	found := make([]Mention, 0)
	for _, poi := range pois {
		title := strings.ToLower(poi.Title)
		if title == "" {
			continue
		}
		for from := 0; from < len(lower); {
			idx := strings.Index(lower[from:], title)
			if idx < 0 {
				break
			}
			found = append(found, Mention{Entity: poi, MatchedText: title, Offset: from + idx})
			from += idx + len(title)
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		if found[i].Offset != found[j].Offset {
			return found[i].Offset < found[j].Offset
		}
		return len(found[i].MatchedText) > len(found[j].MatchedText)
	})

	accepted := make([]Mention, 0, len(found))
	seen := make(map[string]struct{}, len(found))
	for _, m := range found {
		key := strings.ToLower(m.Entity.Title)
		if _, ok := seen[key]; ok {
			continue
		}
		if containedInAny(m, accepted) {
			continue
		}
		seen[key] = struct{}{}
		accepted = append(accepted, m)
	}

	return accepted
}

func containedInAny(m Mention, accepted []Mention) bool {
	end := m.Offset + len(m.MatchedText)
	for _, a := range accepted {
		if m.Offset >= a.Offset && end <= a.Offset+len(a.MatchedText) {
			return true
		}
	}
	return false
}

// SearchResultType classifies what kind of answer a fuzzy-search hit calls for.
type SearchResultType string

const (
	ResultGeneric  SearchResultType = "generic"
	ResultLocation SearchResultType = "location"
	ResultRating   SearchResultType = "rating"
)

type SearchResult struct {
	Type   SearchResultType
	Entity PointOfInterest
}

var (
	locationCueWords = []string{"lokasi", "link", "dimana", "di mana", "letak", "alamat"}
	ratingCueWords   = []string{"rating", "bintang", "nilai"}
)

// FuzzySearch is the coarse fallback matcher used when no exact entity
// mention resolves the query. Titles excluded with "selain <title>" or
// "kecuali <title>" never appear in generic results. A title hit combined
// with a location or rating cue word short-circuits to a single typed
// result; otherwise every row whose searchable fields contain the query, or
// resemble it with similarity above 0.8, is returned in catalog order.
func FuzzySearch(query string, pois []PointOfInterest) []SearchResult {
	lower := strings.ToLower(query)

	excluded := make(map[string]struct{})
	for _, poi := range pois {
		title := strings.ToLower(poi.Title)
		if title == "" {
			continue
		}
		if strings.Contains(lower, "selain "+title) || strings.Contains(lower, "kecuali "+title) {
			excluded[title] = struct{}{}
		}
	}

	for _, poi := range pois {
		title := strings.ToLower(poi.Title)
		if title == "" || !strings.Contains(lower, title) {
			continue
		}
		if containsAny(lower, locationCueWords) {
			return []SearchResult{{Type: ResultLocation, Entity: poi}}
		}
		if containsAny(lower, ratingCueWords) {
			return []SearchResult{{Type: ResultRating, Entity: poi}}
		}
	}

	results := make([]SearchResult, 0)
	for _, poi := range pois {
		if _, skip := excluded[strings.ToLower(poi.Title)]; skip {
			continue
		}
		for _, field := range SearchFields {
			value := strings.ToLower(poi.FieldValue(field))
			if value == "" {
				continue
			}
			if strings.Contains(lower, value) || Similarity(value, lower) > 0.8 {
				results = append(results, SearchResult{Type: ResultGeneric, Entity: poi})
				break
			}
		}
	}

	return results
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

// Similarity is the matching-blocks ratio 2*M/T over the two strings, where
// M is the total length of the longest matching blocks and T the combined
// length. It reproduces the ratio the fuzzy threshold of 0.8 was tuned
// against; an edit-distance ratio would shift that threshold.
func Similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}
	return 2 * float64(matchedRunes(ra, rb)) / float64(total)
}

func matchedRunes(a, b []rune) int {
	ai, bi, size := longestCommonBlock(a, b)
	if size == 0 {
		return 0
	}
	return size +
		matchedRunes(a[:ai], b[:bi]) +
		matchedRunes(a[ai+size:], b[bi+size:])
}

func longestCommonBlock(a, b []rune) (ai, bi, size int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, 0
	}
	prev := make([]int, len(b)+1)
	for i := range a {
		cur := make([]int, len(b)+1)
		for j := range b {
			if a[i] != b[j] {
				continue
			}
			run := prev[j] + 1
			cur[j+1] = run
			if run > size {
				size = run
				ai = i - run + 1
				bi = j - run + 1
			}
		}
		prev = cur
	}
	return ai, bi, size
}
