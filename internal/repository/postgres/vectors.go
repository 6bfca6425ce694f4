package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/kaverma/forumdex/internal/domain"
	"github.com/kaverma/forumdex/internal/domain/forum"
)

// SemanticSearch runs a cosine nearest-neighbor query over post embeddings.
// Posts without an embedding are excluded; rows below the floor are filtered
// by the query itself.
func (r *Repository) SemanticSearch(ctx context.Context, embedding []float32, q forum.SemanticQuery) ([]forum.PostHit, error) {
	vec := encodeVector(embedding)

	var filter string
	args := []any{vec, q.MinSimilarity}
	if q.CategoryID > 0 {
		args = append(args, q.CategoryID)
		filter = fmt.Sprintf("AND topics.category_id = $%d", len(args))
	}
	args = append(args, q.Limit)

	query := fmt.Sprintf(`SELECT %s %s
WHERE posts.content_embedding IS NOT NULL
  %s
  AND (1 - (posts.content_embedding <=> $1::vector)) >= $2
ORDER BY similarity DESC
LIMIT $%d`,
		strings.Replace(postHitColumns,
			"0::float8 AS similarity",
			"(1 - (posts.content_embedding <=> $1::vector))::float8 AS similarity", 1),
		postHitJoins, filter, len(args))

	hits := []forum.PostHit{}
	if err := r.db.SelectContext(ctx, &hits, query, args...); err != nil {
		return nil, fmt.Errorf("semantic search: %w", err)
	}
	return hits, nil
}

// SimilarPosts finds neighbors of a stored post by its own embedding,
// excluding the post itself. Returns ErrNoEmbedding when the reference post
// has no stored embedding (or does not exist).
func (r *Repository) SimilarPosts(ctx context.Context, postID int64, minSimilarity float64, limit int) ([]forum.PostHit, error) {
	const refQuery = `
SELECT content_embedding::text
FROM posts
WHERE id = $1 AND content_embedding IS NOT NULL`

	var refVec string
	if err := r.db.GetContext(ctx, &refVec, refQuery, postID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoEmbedding
		}
		return nil, fmt.Errorf("get reference embedding %d: %w", postID, err)
	}

	query := fmt.Sprintf(`SELECT %s %s
WHERE posts.id != $2
  AND posts.content_embedding IS NOT NULL
  AND (1 - (posts.content_embedding <=> $1::vector)) >= $3
ORDER BY similarity DESC
LIMIT $4`,
		strings.Replace(postHitColumns,
			"0::float8 AS similarity",
			"(1 - (posts.content_embedding <=> $1::vector))::float8 AS similarity", 1),
		postHitJoins)

	hits := []forum.PostHit{}
	if err := r.db.SelectContext(ctx, &hits, query, refVec, postID, minSimilarity, limit); err != nil {
		return nil, fmt.Errorf("similar posts %d: %w", postID, err)
	}
	return hits, nil
}
