// Package browse exposes the non-ranked read paths: topic detail, topic
// posts, single posts, the category list, and corpus statistics.
package browse

import (
	"context"
	"fmt"

	"github.com/kaverma/forumdex/internal/domain/forum"
)

// Pagination bounds for topic post listings.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Service answers browse queries.
type Service struct {
	store Store
}

// New creates a browse service.
func New(store Store) *Service {
	return &Service{store: store}
}

// Topic returns one topic by id.
func (s *Service) Topic(ctx context.Context, id int64) (forum.Topic, error) {
	return s.store.GetTopic(ctx, id)
}

// TopicPosts returns a page of a topic's posts in thread order. The topic
// must exist: an empty page for a missing topic would be indistinguishable
// from an empty thread.
func (s *Service) TopicPosts(ctx context.Context, topicID int64, limit, offset int) ([]forum.PostHit, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	if _, err := s.store.GetTopic(ctx, topicID); err != nil {
		return nil, err
	}

	posts, err := s.store.TopicPosts(ctx, topicID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("topic posts: %w", err)
	}
	return posts, nil
}

// Post returns one post by id.
func (s *Service) Post(ctx context.Context, id int64) (forum.PostHit, error) {
	return s.store.GetPost(ctx, id)
}

// Categories returns every category.
func (s *Service) Categories(ctx context.Context) ([]forum.Category, error) {
	return s.store.Categories(ctx)
}

// Stats returns corpus-wide counters.
func (s *Service) Stats(ctx context.Context) (forum.Stats, error) {
	return s.store.Stats(ctx)
}
