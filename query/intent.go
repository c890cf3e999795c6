// Package query turns free-text user messages into structured routing
// decisions: a coarse intent label and the set of catalog entities the
// message mentions.
package query

import (
	"strings"

	"github.com/hasiholan/toba-guide/catalog"
)

const (
	IntentGreeting       = "greeting"
	IntentOpinion        = "opinion"
	IntentRecommendation = "recommendation"
	IntentDetail         = "detail"
	IntentCategory       = "category"
	IntentActivity       = "activity"
	IntentUnknown        = "unknown"
)

type IntentResult struct {
	Intent   string
	Entities []catalog.PointOfInterest
	Excluded []catalog.PointOfInterest
	Category string
	Activity string
}

var (
	greetingPhrases = []string{
		"halo", "hai", "selamat pagi", "selamat siang", "selamat sore",
		"selamat malam", "assalamualaikum",
	}
	opinionPhrases = []string{
		"menurutmu", "bagi kamu", "kalau kamu", "apa yang menarik",
		"apa yang berkesan", "apa yang paling", "jika ya", "jika belum",
		"kamu pernah", "bagimu", "kenapa", "mengapa",
	}
	recommendationPhrases = []string{
		"rekomendasi", "wisata lain", "tempat lain", "apa lagi",
		"selain itu", "selain ", "kecuali ",
	}
)

// Classify assigns one intent label using ordered phrase rules; the first
// matching rule wins. Opinion questions always route to the RAG fallback,
// so no entity resolution happens for them here.
func Classify(message string, pois []catalog.PointOfInterest) IntentResult {
	lower := strings.ToLower(message)

	if containsAny(lower, greetingPhrases) {
		return IntentResult{Intent: IntentGreeting}
	}
	if containsAny(lower, opinionPhrases) {
		return IntentResult{Intent: IntentOpinion}
	}

	if containsAny(lower, recommendationPhrases) {
		result := IntentResult{Intent: IntentRecommendation}
		for _, poi := range pois {
			title := strings.ToLower(poi.Title)
			if title == "" {
				continue
			}
			if strings.Contains(lower, "selain "+title) || strings.Contains(lower, "kecuali "+title) {
				result.Excluded = append(result.Excluded, poi)
			}
		}
		// Last textual match wins for category and activity; that mirrors
		// how the classification behaved historically.
		for _, cat := range distinctValues(pois, catalog.FieldCategory) {
			if strings.Contains(lower, strings.ToLower(cat)) {
				result.Category = cat
			}
		}
		for _, act := range distinctValues(pois, catalog.FieldActivity) {
			if strings.Contains(lower, strings.ToLower(act)) {
				result.Activity = act
			}
		}
		return result
	}

	var mentioned []catalog.PointOfInterest
	for _, poi := range pois {
		title := strings.ToLower(poi.Title)
		if title != "" && strings.Contains(lower, title) {
			mentioned = append(mentioned, poi)
		}
	}
	if len(mentioned) > 0 {
		return IntentResult{Intent: IntentDetail, Entities: mentioned}
	}

	for _, cat := range distinctValues(pois, catalog.FieldCategory) {
		if strings.Contains(lower, strings.ToLower(cat)) {
			return IntentResult{Intent: IntentCategory, Category: cat}
		}
	}
	for _, act := range distinctValues(pois, catalog.FieldActivity) {
		if strings.Contains(lower, strings.ToLower(act)) {
			return IntentResult{Intent: IntentActivity, Activity: act}
		}
	}

	return IntentResult{Intent: IntentUnknown}
}

func distinctValues(pois []catalog.PointOfInterest, field catalog.Field) []string {
	seen := make(map[string]struct{}, len(pois))
	values := make([]string, 0, len(pois))
	for _, poi := range pois {
		v := poi.FieldValue(field)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		values = append(values, v)
	}
	return values
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
