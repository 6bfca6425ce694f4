package search

import (
	"context"

	"github.com/kaverma/forumdex/internal/domain"
	"github.com/kaverma/forumdex/internal/domain/forum"
)

// Store defines the storage contract for retrieval sub-queries.
type Store interface {
	SearchPosts(ctx context.Context, q forum.LexicalQuery) ([]forum.PostHit, error)
	SemanticSearch(ctx context.Context, embedding []float32, q forum.SemanticQuery) ([]forum.PostHit, error)
	SimilarPosts(ctx context.Context, postID int64, minSimilarity float64, limit int) ([]forum.PostHit, error)
	SearchUsers(ctx context.Context, pattern string, limit int) ([]forum.UserHit, error)
}

// Embedder vectorizes query text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
