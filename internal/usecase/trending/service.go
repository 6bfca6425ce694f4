// Package trending ranks recently created topics by their activity inside a
// sliding window. The store hands back raw aggregates; scoring and ordering
// live here so the ranking rules are unit-testable without a database.
package trending

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/kaverma/forumdex/internal/domain/forum"
	"github.com/kaverma/forumdex/internal/domain/search/request"
	"github.com/kaverma/forumdex/internal/domain/search/result"
)

// Service ranks trending topics.
type Service struct {
	store  Store
	logger *zap.Logger
}

// New creates a trending service.
func New(store Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Trending returns the hottest topics for the request's window, most active
// first. Topics without a single post inside the window never rank, no
// matter how active they were before it.
func (s *Service) Trending(ctx context.Context, req *request.TrendingRequest) ([]result.Trend, error) {
	rows, err := s.store.TopicActivity(ctx, req.WindowDays(), req.CategoryID())
	if err != nil {
		return nil, fmt.Errorf("topic activity: %w", err)
	}

	active := make([]forum.TopicActivity, 0, len(rows))
	for _, row := range rows {
		if row.RecentPosts > 0 {
			active = append(active, row)
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		return trendLess(active[j], active[i])
	})

	if len(active) > req.Limit() {
		active = active[:req.Limit()]
	}

	trends := make([]result.Trend, 0, len(active))
	for _, row := range active {
		var last time.Time
		if row.LastActivity != nil {
			last = *row.LastActivity
		}
		trends = append(trends, result.NewTrend(
			row.TopicID, row.Title, row.Slug, row.CategoryName,
			row.RecentPosts, row.TotalLikes, last, row.UniqueParticipants,
		))
	}
	return trends, nil
}

// trendLess orders ascending by (recent posts, likes, last activity); the
// sort above reverses it.
func trendLess(a, b forum.TopicActivity) bool {
	if a.RecentPosts != b.RecentPosts {
		return a.RecentPosts < b.RecentPosts
	}
	if a.TotalLikes != b.TotalLikes {
		return a.TotalLikes < b.TotalLikes
	}
	at, bt := activityTime(a), activityTime(b)
	return at.Before(bt)
}

func activityTime(t forum.TopicActivity) time.Time {
	if t.LastActivity == nil {
		return time.Time{}
	}
	return *t.LastActivity
}
