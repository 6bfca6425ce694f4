package trending

import (
	"context"

	"github.com/kaverma/forumdex/internal/domain/forum"
)

// Store supplies raw per-topic activity aggregates.
type Store interface {
	// TopicActivity returns unranked aggregates for topics created within
	// twice the window, counting posts inside the window only.
	TopicActivity(ctx context.Context, windowDays int, categoryID int64) ([]forum.TopicActivity, error)
}
