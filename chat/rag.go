package chat

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/hasiholan/toba-guide/config"
	"github.com/hasiholan/toba-guide/llm"
)

const (
	defaultRetrievalK  = 20
	defaultContextTopK = 5

	// Apology is the fixed reply used whenever the remote side fails.
	Apology = "Maaf, saya sedang tidak bisa menjawab saat ini."

	refusal = "Maaf, saya adalah asisten khusus untuk pariwisata Danau Toba. " +
		"Saya hanya dapat membantu dengan informasi seputar destinasi wisata, " +
		"aktivitas, dan tips perjalanan di kawasan Danau Toba dan sekitarnya. " +
		"Apakah ada yang ingin Anda ketahui tentang wisata Danau Toba?"
)

// PersonaPolicy is configuration data, not a code path: the historical
// near-duplicate prompt variants collapse into these two selectable values.
type PersonaPolicy struct {
	Name         string
	SystemPrompt string
}

var strictPersona = PersonaPolicy{
	Name: config.PersonaStrict,
	SystemPrompt: "Anda adalah asisten AI khusus untuk pariwisata Danau Toba dan sekitarnya. " +
		"PENTING: Anda HANYA boleh menjawab pertanyaan yang berkaitan dengan:" +
		"\n- Destinasi wisata di kawasan Danau Toba dan Pulau Samosir" +
		"\n- Aktivitas wisata (berenang, hiking, fotografi, kuliner lokal)" +
		"\n- Informasi praktis (lokasi, jam buka, biaya masuk, akomodasi)" +
		"\n- Rekomendasi perjalanan dan tips wisata" +
		"\n- Budaya dan sejarah lokal Batak" +
		"\n- Transportasi menuju dan di sekitar Danau Toba" +
		"\n\nJika user bertanya tentang topik di luar pariwisata Danau Toba " +
		"(seperti politik, berita umum, teknologi, dll), jawab dengan:\n'" + refusal + "'" +
		"\n\nGunakan informasi dari konteks yang diberikan sebagai referensi utama. " +
		"Jawab dengan gaya ramah dan informatif seperti pemandu wisata lokal.",
}

var guidePersona = PersonaPolicy{
	Name: config.PersonaGuide,
	SystemPrompt: "Anda adalah asisten AI untuk Toba Guide. Tugas Anda adalah memberikan informasi " +
		"pariwisata Danau Toba dan sekitarnya (termasuk Pulau Samosir). Gunakan informasi dari " +
		"'Konteks:' yang akan diberikan. Jika 'Konteks:' tidak mencukupi, katakan terus terang bahwa " +
		"Anda tidak memiliki informasi spesifik tersebut. Jawaban Anda harus terdengar alami, seperti " +
		"seorang pemandu wisata yang sedang menjelaskan dengan ramah dan informatif.",
}

// PersonaByName resolves a persona policy; unknown names fall back to strict.
func PersonaByName(name string) PersonaPolicy {
	if name == config.PersonaGuide {
		return guidePersona
	}
	return strictPersona
}

// RAG is the fallback orchestrator: it owns retrieval, context ranking,
// prompt assembly, and the remote completion call, and it absorbs every
// remote failure into the fixed apology.
type RAG struct {
	retriever Retriever
	llm       llm.Client
	persona   PersonaPolicy
	logger    *log.Logger

	retrievalK  int
	contextTopK int
}

func NewRAG(retriever Retriever, llmClient llm.Client, persona PersonaPolicy, logger *log.Logger) *RAG {
	if logger == nil {
		logger = log.Default()
	}
	if persona.SystemPrompt == "" {
		persona = strictPersona
	}

	return &RAG{
		retriever:   retriever,
		llm:         llmClient,
		persona:     persona,
		logger:      logger,
		retrievalK:  defaultRetrievalK,
		contextTopK: defaultContextTopK,
	}
}

// SetRetrievalSizes overrides the candidate-set size and re-ranked top-K.
func (r *RAG) SetRetrievalSizes(retrievalK, contextTopK int) {
	if retrievalK > 0 {
		r.retrievalK = retrievalK
	}
	if contextTopK > 0 {
		r.contextTopK = contextTopK
	}
}

// Answer runs the retrieval-augmented fallback. History is caller-owned and
// returned updated: user plus assistant turns on success, only the user turn
// when the remote side fails. Errors never propagate to the caller.
func (r *RAG) Answer(ctx context.Context, message string, history []llm.Message) (string, []llm.Message) {
	if len(history) == 0 {
		history = []llm.Message{{Role: llm.RoleSystem, Content: r.persona.SystemPrompt}}
	}

	userTurn := llm.Message{Role: llm.RoleUser, Content: message}

	var messages []llm.Message
	if r.retriever == nil {
		// Degraded mode: no vector index, the model answers from history alone.
		messages = append(append(messages, history...), userTurn)
	} else {
		passages, err := r.retriever.SimilarPassages(ctx, message, r.retrievalK)
		if err != nil {
			r.logger.Printf("similarity search failed: %v", err)
			return Apology, append(history, userTurn)
		}

		contextBlock := strings.Join(RankContext(passages, message, r.contextTopK), "\n\n")
		systemTurn := llm.Message{Role: llm.RoleSystem, Content: buildRAGPrompt(contextBlock, message)}

		messages = append(messages, systemTurn)
		messages = append(messages, trimSystemTurn(history)...)
		messages = append(messages, userTurn)
	}

	answer, err := r.llm.Generate(ctx, messages)
	if err != nil {
		r.logger.Printf("llm generate failed: %v", err)
		return Apology, append(history, userTurn)
	}

	answer = strings.TrimSpace(answer)
	history = append(history, userTurn, llm.Message{Role: llm.RoleAssistant, Content: answer})
	return answer, history
}

// trimSystemTurn drops the history's own seed system message; the
// synthesized RAG prompt replaces it for this call.
func trimSystemTurn(history []llm.Message) []llm.Message {
	if len(history) > 0 && history[0].Role == llm.RoleSystem {
		return history[1:]
	}
	return history
}

func buildRAGPrompt(contextBlock, question string) string {
	return fmt.Sprintf(`Anda adalah asisten wisata khusus untuk kawasan Danau Toba.

IMPORTANT: HANYA jawab pertanyaan tentang pariwisata Danau Toba dan sekitarnya.
Jika pertanyaan di luar topik wisata Danau Toba, gunakan respons penolakan yang telah ditentukan.

KONTEKS:
%s

PEDOMAN MENJAWAB:
- Periksa apakah pertanyaan berkaitan dengan pariwisata Danau Toba
- Jika TIDAK berkaitan dengan wisata Danau Toba, jawab: "%s"
- Jika berkaitan dengan wisata Danau Toba, berikan jawaban lengkap berdasarkan konteks
- Jangan menyalin konteks kata per kata; jawab dengan gaya percakapan
- Untuk informasi yang tidak tersedia dalam konteks, sampaikan dengan jujur

PERTANYAAN USER:
%s

JAWABAN:`, contextBlock, refusal, question)
}
