package browse

import (
	"context"

	"github.com/kaverma/forumdex/internal/domain/forum"
)

// Store serves the plain read queries behind topic and post browsing.
type Store interface {
	GetTopic(ctx context.Context, id int64) (forum.Topic, error)
	TopicPosts(ctx context.Context, topicID int64, limit, offset int) ([]forum.PostHit, error)
	GetPost(ctx context.Context, id int64) (forum.PostHit, error)
	Categories(ctx context.Context) ([]forum.Category, error)
	Stats(ctx context.Context) (forum.Stats, error)
}
