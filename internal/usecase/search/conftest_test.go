package search

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kaverma/forumdex/internal/domain"
	"github.com/kaverma/forumdex/internal/domain/forum"
)

// mockStore serves lexical queries from an in-memory post list and delegates
// the vector queries to configurable functions.
type mockStore struct {
	posts []forum.PostHit

	lexicalErr error
	// lexicalHook intercepts a sub-query by pattern; returning true means the
	// hook's results/error are used instead of in-memory matching.
	lexicalHook func(ctx context.Context, q forum.LexicalQuery) ([]forum.PostHit, error, bool)

	semanticFn func(ctx context.Context, embedding []float32, q forum.SemanticQuery) ([]forum.PostHit, error)
	similarFn  func(ctx context.Context, postID int64, minSimilarity float64, limit int) ([]forum.PostHit, error)
	usersFn    func(ctx context.Context, pattern string, limit int) ([]forum.UserHit, error)
}

func (m *mockStore) SearchPosts(ctx context.Context, q forum.LexicalQuery) ([]forum.PostHit, error) {
	if m.lexicalHook != nil {
		if hits, err, ok := m.lexicalHook(ctx, q); ok {
			return hits, err
		}
	}
	if m.lexicalErr != nil {
		return nil, m.lexicalErr
	}

	pattern := strings.ToLower(q.Pattern)
	var hits []forum.PostHit
	for _, p := range m.posts {
		var haystack string
		if q.TitleOnly {
			haystack = strings.ToLower(p.TopicTitle)
		} else {
			haystack = strings.ToLower(p.Raw + " " + p.Cooked + " " + p.TopicTitle)
		}
		if !strings.Contains(haystack, pattern) {
			continue
		}
		if q.CategoryID > 0 && p.CategoryID != q.CategoryID {
			continue
		}
		if q.TopicID > 0 && p.TopicID != q.TopicID {
			continue
		}
		hits = append(hits, p)
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].CreatedAt.After(hits[j].CreatedAt)
	})
	if q.Limit > 0 && len(hits) > q.Limit {
		hits = hits[:q.Limit]
	}
	return hits, nil
}

func (m *mockStore) SemanticSearch(ctx context.Context, embedding []float32, q forum.SemanticQuery) ([]forum.PostHit, error) {
	if m.semanticFn != nil {
		return m.semanticFn(ctx, embedding, q)
	}
	return nil, nil
}

func (m *mockStore) SimilarPosts(ctx context.Context, postID int64, minSimilarity float64, limit int) ([]forum.PostHit, error) {
	if m.similarFn != nil {
		return m.similarFn(ctx, postID, minSimilarity, limit)
	}
	return nil, nil
}

func (m *mockStore) SearchUsers(ctx context.Context, pattern string, limit int) ([]forum.UserHit, error) {
	if m.usersFn != nil {
		return m.usersFn(ctx, pattern, limit)
	}
	return nil, nil
}

type mockEmbedder struct {
	result domain.EmbeddingResult
	err    error
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	return m.result, m.err
}

func newTestService(store *mockStore, embed Embedder, cfg Config) *Service {
	return New(store, embed, cfg, zap.NewNop())
}

func postHit(id, topicID int64, title, raw string, createdAt time.Time) forum.PostHit {
	return forum.PostHit{
		PostID:     id,
		TopicID:    topicID,
		TopicTitle: title,
		TopicSlug:  "t",
		CategoryID: 1,
		Raw:        raw,
		Cooked:     "<p>" + raw + "</p>",
		CreatedAt:  createdAt,
	}
}
