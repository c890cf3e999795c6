// Package ingestion turns catalog rows into embedded passages in Postgres.
// The unit of indexing is one point of interest: its detail text is embedded
// once and stored together with the metadata the context ranker scores.
package ingestion

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/hasiholan/toba-guide/catalog"
	"github.com/hasiholan/toba-guide/database"
	"github.com/hasiholan/toba-guide/embeddings"
	"github.com/hasiholan/toba-guide/respond"
)

const embedBatchSize = 32

type Service struct {
	pool      *pgxpool.Pool
	embedder  embeddings.Embedder
	logger    *log.Logger
	dimension int
}

func NewService(pool *pgxpool.Pool, embedder embeddings.Embedder, logger *log.Logger, dimension int) *Service {
	if logger == nil {
		logger = log.Default()
	}

	return &Service{
		pool:      pool,
		embedder:  embedder,
		logger:    logger,
		dimension: dimension,
	}
}

// IngestCatalog embeds every catalog row and upserts it into the passage
// table, keyed by title so re-ingesting a refreshed catalog replaces rows
// in place.
func (s *Service) IngestCatalog(ctx context.Context, pois []catalog.PointOfInterest) (err error) {
	if s.embedder == nil {
		return fmt.Errorf("embedder not configured")
	}
	if err := database.EnsurePassageSchema(ctx, s.pool, s.dimension); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	if len(pois) == 0 {
		s.logger.Printf("catalog is empty, nothing to ingest")
		return nil
	}

	texts := make([]string, len(pois))
	for i, poi := range pois {
		texts[i] = passageText(poi)
	}

	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, embErr := s.embedder.Embed(ctx, texts[start:end])
		if embErr != nil {
			return fmt.Errorf("generate embeddings: %w", embErr)
		}
		vectors = append(vectors, batch...)
	}

	if len(vectors) != len(pois) {
		return fmt.Errorf("embedding count mismatch: have %d rows, %d embeddings", len(pois), len(vectors))
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Printf("rollback error: %v", rbErr)
			}
		}
	}()

	for i, poi := range pois {
		if _, err = tx.Exec(ctx, `
			INSERT INTO poi_passages (id, title, category, activity, subdistrict, rating, content, embedding)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (title) DO UPDATE SET
				category = EXCLUDED.category,
				activity = EXCLUDED.activity,
				subdistrict = EXCLUDED.subdistrict,
				rating = EXCLUDED.rating,
				content = EXCLUDED.content,
				embedding = EXCLUDED.embedding,
				updated_at = NOW()
		`, uuid.NewString(), poi.Title, poi.Category, poi.Activity, poi.Subdistrict, poi.RatingString(), texts[i], pgvector.NewVector(vectors[i])); err != nil {
			return fmt.Errorf("upsert passage %q: %w", poi.Title, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	s.logger.Printf("ingested %d catalog passages", len(pois))
	return nil
}

func passageText(poi catalog.PointOfInterest) string {
	text := respond.DetailBlock(poi)
	if rating := poi.RatingString(); rating != "" {
		text += fmt.Sprintf("Rating: %s\n", rating)
	}
	if poi.Address != "" {
		text += fmt.Sprintf("Alamat: %s\n", poi.Address)
	}
	if poi.Link != "" {
		text += fmt.Sprintf("Link: %s\n", poi.Link)
	}
	return text
}
