package query

import (
	"fmt"
	"strings"

	"github.com/hasiholan/toba-guide/catalog"
)

// ParsedQuery is the multi-entity view of a message. Primary is the
// leftmost-mentioned entity; Additional preserves the left-to-right order
// of the remaining mentions.
type ParsedQuery struct {
	Primary    *catalog.PointOfInterest
	Additional []catalog.PointOfInterest
	WantsMore  bool
	Mentions   int
}

var morePhrases = []string{
	"selain itu", "apa lagi", "rekomendasi", "wisata lain", "tempat lain",
}

// Parse resolves every entity mention in the message. A returned error means
// the parser itself failed, which callers log and treat the same as "no
// structured match"; an empty ParsedQuery with a nil error means the message
// simply mentions nothing from the catalog.
func Parse(message string, pois []catalog.PointOfInterest) (ParsedQuery, error) {
	if strings.TrimSpace(message) == "" {
		return ParsedQuery{}, fmt.Errorf("empty message")
	}

	mentions := catalog.FindMentions(message, pois)

	parsed := ParsedQuery{
		WantsMore: containsAny(strings.ToLower(message), morePhrases),
		Mentions:  len(mentions),
	}
	if len(mentions) == 0 {
		return parsed, nil
	}

	primary := mentions[0].Entity
	parsed.Primary = &primary
	for _, m := range mentions[1:] {
		parsed.Additional = append(parsed.Additional, m.Entity)
	}

	return parsed, nil
}
