package chat

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hasiholan/toba-guide/config"
	"github.com/hasiholan/toba-guide/llm"
)

type stubRetriever struct {
	passages []RetrievedPassage
	err      error
	calls    int
}

func (s *stubRetriever) SimilarPassages(ctx context.Context, query string, k int) ([]RetrievedPassage, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.passages, nil
}

var _ Retriever = (*stubRetriever)(nil)

type stubLLM struct {
	answer string
	err    error
	last   []llm.Message
	calls  int
}

func (s *stubLLM) Generate(ctx context.Context, messages []llm.Message) (string, error) {
	s.calls++
	s.last = messages
	if s.err != nil {
		return "", s.err
	}
	return s.answer, nil
}

var _ llm.Client = (*stubLLM)(nil)

func discard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestAnswerSeedsSystemPromptForNewConversation(t *testing.T) {
	client := &stubLLM{answer: "jawaban"}
	rag := NewRAG(nil, client, PersonaByName(config.PersonaStrict), discard())

	answer, history := rag.Answer(context.Background(), "halo", nil)
	assert.Equal(t, "jawaban", answer)

	require.Len(t, history, 3)
	assert.Equal(t, llm.RoleSystem, history[0].Role)
	assert.Contains(t, history[0].Content, "Danau Toba")
	assert.Equal(t, llm.RoleUser, history[1].Role)
	assert.Equal(t, llm.RoleAssistant, history[2].Role)
}

func TestAnswerDegradedModeSendsHistoryPlusUserOnly(t *testing.T) {
	client := &stubLLM{answer: "ok"}
	rag := NewRAG(nil, client, PersonaByName(config.PersonaStrict), discard())

	seed := []llm.Message{
		{Role: llm.RoleSystem, Content: "persona"},
		{Role: llm.RoleUser, Content: "sebelumnya"},
		{Role: llm.RoleAssistant, Content: "balasan"},
	}
	_, _ = rag.Answer(context.Background(), "pertanyaan", seed)

	require.Len(t, client.last, 4)
	assert.Equal(t, seed, client.last[:3])
	assert.Equal(t, llm.Message{Role: llm.RoleUser, Content: "pertanyaan"}, client.last[3])
	for _, msg := range client.last {
		assert.NotContains(t, msg.Content, "KONTEKS")
	}
}

func TestAnswerBuildsContextBlock(t *testing.T) {
	retriever := &stubRetriever{passages: []RetrievedPassage{
		passage("Bukit Holbung adalah bukit.", PassageMetadata{Title: "Bukit Holbung"}),
		passage("Efrata adalah air terjun.", PassageMetadata{Title: "Air Terjun Efrata"}),
	}}
	client := &stubLLM{answer: "ok"}
	rag := NewRAG(retriever, client, PersonaByName(config.PersonaStrict), discard())

	_, _ = rag.Answer(context.Background(), "info bukit holbung", nil)

	require.NotEmpty(t, client.last)
	system := client.last[0]
	assert.Equal(t, llm.RoleSystem, system.Role)
	assert.Contains(t, system.Content, "KONTEKS:")
	assert.Contains(t, system.Content, "Bukit Holbung adalah bukit.")
	// Passages are joined with a blank line.
	assert.Contains(t, system.Content, "Bukit Holbung adalah bukit.\n\nEfrata adalah air terjun.")
}

func TestAnswerReplacesHistorySystemTurn(t *testing.T) {
	retriever := &stubRetriever{passages: []RetrievedPassage{passage("teks", PassageMetadata{})}}
	client := &stubLLM{answer: "ok"}
	rag := NewRAG(retriever, client, PersonaByName(config.PersonaStrict), discard())

	seed := []llm.Message{
		{Role: llm.RoleSystem, Content: "persona lama"},
		{Role: llm.RoleUser, Content: "hai"},
	}
	_, _ = rag.Answer(context.Background(), "pertanyaan", seed)

	for _, msg := range client.last {
		assert.NotEqual(t, "persona lama", msg.Content)
	}
	assert.Equal(t, llm.RoleSystem, client.last[0].Role)
}

func TestAnswerRetrievalErrorReturnsApology(t *testing.T) {
	retriever := &stubRetriever{err: errors.New("index down")}
	client := &stubLLM{answer: "never"}
	rag := NewRAG(retriever, client, PersonaByName(config.PersonaStrict), discard())

	answer, history := rag.Answer(context.Background(), "pertanyaan", nil)
	assert.Equal(t, Apology, answer)
	assert.Zero(t, client.calls)

	// Only the user turn is appended after the seeded system prompt.
	require.Len(t, history, 2)
	assert.Equal(t, llm.RoleUser, history[1].Role)
	assert.Equal(t, "pertanyaan", history[1].Content)
}

func TestAnswerLLMErrorReturnsApology(t *testing.T) {
	client := &stubLLM{err: errors.New("remote failure")}
	rag := NewRAG(nil, client, PersonaByName(config.PersonaStrict), discard())

	answer, history := rag.Answer(context.Background(), "pertanyaan", nil)
	assert.Equal(t, Apology, answer)
	require.Len(t, history, 2)
	assert.Equal(t, llm.RoleUser, history[1].Role)
}

func TestAnswerTrimsWhitespace(t *testing.T) {
	client := &stubLLM{answer: "  jawaban \n"}
	rag := NewRAG(nil, client, PersonaByName(config.PersonaGuide), discard())

	answer, _ := rag.Answer(context.Background(), "halo", nil)
	assert.Equal(t, "jawaban", answer)
}

func TestPersonaByName(t *testing.T) {
	assert.Equal(t, config.PersonaGuide, PersonaByName(config.PersonaGuide).Name)
	assert.Equal(t, config.PersonaStrict, PersonaByName(config.PersonaStrict).Name)
	assert.Equal(t, config.PersonaStrict, PersonaByName("something else").Name)
	assert.True(t, strings.Contains(PersonaByName(config.PersonaStrict).SystemPrompt, "HANYA"))
}
