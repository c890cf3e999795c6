package chat

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/hasiholan/toba-guide/catalog"
	"github.com/hasiholan/toba-guide/llm"
	"github.com/hasiholan/toba-guide/query"
	"github.com/hasiholan/toba-guide/respond"
)

// ErrEmptyMessage is the only error HandleMessage surfaces; everything else
// degrades into some textual answer.
var ErrEmptyMessage = errors.New("message cannot be empty")

const greetingReply = "Halo! Ada yang bisa saya bantu seputar wisata Danau Toba? \U0001F60A"

var popularKeywords = []string{"terkenal", "populer", "terbaik", "favorit"}

const topDestinationCount = 5

// Service is the hybrid routing pipeline. Each message is answered
// deterministically from the catalog when intent classification and entity
// matching resolve it, and falls back to the RAG orchestrator otherwise.
// The catalog is read-only shared state; the service holds no per-request
// mutable state, so one instance serves concurrent requests.
type Service struct {
	catalog  []catalog.PointOfInterest
	composer *respond.Composer
	rag      *RAG
	logger   *log.Logger
}

func NewService(pois []catalog.PointOfInterest, composer *respond.Composer, rag *RAG, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	if composer == nil {
		composer = respond.NewComposer(nil)
	}

	return &Service{
		catalog:  pois,
		composer: composer,
		rag:      rag,
		logger:   logger,
	}
}

// HandleMessage processes one chat turn. History is caller-owned, passed in
// and returned updated; the service keeps no conversation state between
// calls.
func (s *Service) HandleMessage(ctx context.Context, message string, history []llm.Message) (string, []llm.Message, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", history, ErrEmptyMessage
	}
	lower := strings.ToLower(message)

	// Without a catalog the service runs RAG-only.
	if len(s.catalog) > 0 {
		if containsAny(lower, popularKeywords) {
			reply := respond.TopDestinations(s.catalog, topDestinationCount)
			return reply, appendTurns(history, message, reply), nil
		}

		intent := query.Classify(message, s.catalog)
		switch intent.Intent {
		case query.IntentGreeting:
			return greetingReply, history, nil
		case query.IntentOpinion:
			// Opinion questions are never answered from structured data.
			reply, updated := s.rag.Answer(ctx, message, history)
			return reply, updated, nil
		}

		parsed, err := query.Parse(message, s.catalog)
		if err != nil {
			// Parser failure is logged but treated as "no structured match".
			s.logger.Printf("parse message: %v", err)
		} else if parsed.Mentions > 0 {
			if reply := s.composer.Compose(parsed, message, s.catalog); reply != "" {
				return reply, appendTurns(history, message, reply), nil
			}
		}

		if results := catalog.FuzzySearch(message, s.catalog); len(results) > 0 {
			reply := s.renderSearchResult(results[0])
			return reply, appendTurns(history, message, reply), nil
		}
	}

	reply, updated := s.rag.Answer(ctx, message, history)
	return reply, updated, nil
}

func (s *Service) renderSearchResult(result catalog.SearchResult) string {
	switch result.Type {
	case catalog.ResultLocation:
		return s.composer.Location(result.Entity)
	case catalog.ResultRating:
		return s.composer.Rating(result.Entity)
	default:
		return s.composer.Detail(result.Entity)
	}
}

func appendTurns(history []llm.Message, message, reply string) []llm.Message {
	return append(history,
		llm.Message{Role: llm.RoleUser, Content: message},
		llm.Message{Role: llm.RoleAssistant, Content: reply},
	)
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
