package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kaverma/forumdex/internal/domain"
	"github.com/kaverma/forumdex/internal/domain/forum"
	"github.com/kaverma/forumdex/internal/domain/search/method"
	"github.com/kaverma/forumdex/internal/domain/search/request"
	"github.com/kaverma/forumdex/internal/domain/search/result"
)

// Similar finds the nearest neighbors of a stored post. A reference post
// without an embedding is an expected condition (embeddings are backfilled
// out of band) and yields an empty list, not an error.
func (s *Service) Similar(ctx context.Context, req *request.SimilarRequest) ([]result.Result, error) {
	hits, err := s.store.SimilarPosts(ctx, req.PostID(), req.MinSimilarity(), req.Limit())
	if err != nil {
		if errors.Is(err, domain.ErrNoEmbedding) {
			s.logger.Warn("Reference post has no embedding",
				zap.Int64("post_id", req.PostID()))
			return []result.Result{}, nil
		}
		return nil, fmt.Errorf("similar posts: %w", err)
	}

	results := make([]result.Result, 0, len(hits))
	for _, h := range hits {
		results = append(results, result.New(toFields(h), h.Similarity, h.Similarity, method.Semantic))
	}
	return results, nil
}

// SearchUsers matches forum users by username or display name.
func (s *Service) SearchUsers(ctx context.Context, query string, limit int) ([]forum.UserHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}
	if limit <= 0 {
		limit = request.DefaultLimit
	}
	if limit > request.MaxLimit {
		limit = request.MaxLimit
	}

	hits, err := s.store.SearchUsers(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return hits, nil
}
