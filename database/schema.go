package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsurePassageSchema creates the pgvector extension and the passage table.
// One passage corresponds to one catalog row; the metadata columns feed the
// lexical re-ranking pass at query time.
func EnsurePassageSchema(ctx context.Context, pool *pgxpool.Pool, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("embedding dimension must be positive")
	}

	stmts := []string{
		"CREATE EXTENSION IF NOT EXISTS vector",
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS poi_passages (
			id UUID PRIMARY KEY,
			title TEXT UNIQUE NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			activity TEXT NOT NULL DEFAULT '',
			subdistrict TEXT NOT NULL DEFAULT '',
			rating TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL,
			embedding VECTOR(%d) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, dimension),
		"CREATE INDEX IF NOT EXISTS idx_poi_passages_embedding ON poi_passages USING ivfflat (embedding vector_l2_ops)",
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("execute schema statement: %w", err)
		}
	}

	return nil
}
