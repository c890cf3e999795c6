package chat

import "context"

// PassageMetadata carries the catalog attributes stored alongside each
// indexed passage. Rating stays a string: rows without one index an empty
// value and the ranker simply scores it zero.
type PassageMetadata struct {
	Title       string
	Category    string
	Activity    string
	Subdistrict string
	Rating      string
}

// RetrievedPassage is one vector-search hit, already ordered by similarity.
type RetrievedPassage struct {
	Text     string
	Metadata PassageMetadata
}

// Retriever is the external vector index. A nil Retriever puts the RAG
// orchestrator in degraded mode: no context block is built at all.
type Retriever interface {
	SimilarPassages(ctx context.Context, query string, k int) ([]RetrievedPassage, error)
}
