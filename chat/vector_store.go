package chat

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/hasiholan/toba-guide/embeddings"
)

// PostgresPassageStore retrieves catalog passages by embedding similarity
// from the pgvector-backed passage table.
type PostgresPassageStore struct {
	pool     *pgxpool.Pool
	embedder embeddings.Embedder
}

func NewPostgresPassageStore(pool *pgxpool.Pool, embedder embeddings.Embedder) *PostgresPassageStore {
	return &PostgresPassageStore{pool: pool, embedder: embedder}
}

func (s *PostgresPassageStore) SimilarPassages(ctx context.Context, query string, k int) ([]RetrievedPassage, error) {
	if s.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	if s.embedder == nil {
		return nil, fmt.Errorf("embedder is nil")
	}
	if k <= 0 {
		k = 20
	}

	vectors, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("embedder returned no vectors")
	}

	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	probes := k / 2
	if probes < 10 {
		probes = 10
	}
	if _, err := conn.Exec(ctx, fmt.Sprintf("SET ivfflat.probes = %d", probes)); err != nil {
		return nil, fmt.Errorf("set ivfflat probes: %w", err)
	}

	rows, err := conn.Query(ctx, `
        SELECT content, title, category, activity, subdistrict, rating
        FROM poi_passages
        ORDER BY embedding <-> $1::vector
        LIMIT $2
    `, pgvector.NewVector(vectors[0]), k)
	if err != nil {
		return nil, fmt.Errorf("query similar passages: %w", err)
	}
	defer rows.Close()

	results := make([]RetrievedPassage, 0, k)
	for rows.Next() {
		var p RetrievedPassage
		if scanErr := rows.Scan(&p.Text, &p.Metadata.Title, &p.Metadata.Category, &p.Metadata.Activity, &p.Metadata.Subdistrict, &p.Metadata.Rating); scanErr != nil {
			return nil, fmt.Errorf("scan similar passage: %w", scanErr)
		}
		results = append(results, p)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return results, nil
}

var _ Retriever = (*PostgresPassageStore)(nil)
