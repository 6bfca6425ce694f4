package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kaverma/forumdex/internal/domain"
	"github.com/kaverma/forumdex/internal/domain/forum"
)

// TopicActivity aggregates per-topic post activity over two windows: topics
// created within 2*windowDays, posts counted within windowDays. Eligibility
// and ordering of the trend list are applied by the caller.
func (r *Repository) TopicActivity(ctx context.Context, windowDays int, categoryID int64) ([]forum.TopicActivity, error) {
	var filter string
	args := []any{windowDays, windowDays * 2}
	if categoryID > 0 {
		args = append(args, categoryID)
		filter = fmt.Sprintf("AND topics.category_id = $%d", len(args))
	}

	query := fmt.Sprintf(`
SELECT
	topics.id,
	topics.title,
	topics.slug,
	categories.name AS category_name,
	COUNT(posts.id) AS recent_posts,
	COALESCE(SUM(posts.like_count), 0) AS total_likes,
	MAX(posts.created_at) AS last_activity,
	COUNT(DISTINCT posts.user_id) AS unique_participants
FROM topics
JOIN categories ON topics.category_id = categories.id
LEFT JOIN posts ON topics.id = posts.topic_id
	AND posts.created_at >= NOW() - make_interval(days => $1)
WHERE topics.created_at >= NOW() - make_interval(days => $2)
%s
GROUP BY topics.id, topics.title, topics.slug, categories.name`, filter)

	rows := []forum.TopicActivity{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("topic activity: %w", err)
	}
	return rows, nil
}

// GetTopic returns one topic by id.
func (r *Repository) GetTopic(ctx context.Context, id int64) (forum.Topic, error) {
	const query = `
SELECT id, title, slug, category_id, COALESCE(user_id, 0) AS user_id,
	COALESCE(posts_count, 0) AS posts_count, COALESCE(views, 0) AS views,
	COALESCE(likes, 0) AS likes, created_at, last_posted_at
FROM topics
WHERE id = $1`

	var t forum.Topic
	if err := r.db.GetContext(ctx, &t, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return forum.Topic{}, domain.ErrTopicNotFound
		}
		return forum.Topic{}, fmt.Errorf("get topic %d: %w", id, err)
	}
	return t, nil
}

// TopicPosts returns a topic's posts in thread order.
func (r *Repository) TopicPosts(ctx context.Context, topicID int64, limit, offset int) ([]forum.PostHit, error) {
	query := fmt.Sprintf(`SELECT %s %s
WHERE posts.topic_id = $1
ORDER BY posts.post_number, posts.id
LIMIT $2 OFFSET $3`, postHitColumns, postHitJoins)

	hits := []forum.PostHit{}
	if err := r.db.SelectContext(ctx, &hits, query, topicID, limit, offset); err != nil {
		return nil, fmt.Errorf("topic posts %d: %w", topicID, err)
	}
	return hits, nil
}

// Categories lists all categories.
func (r *Repository) Categories(ctx context.Context) ([]forum.Category, error) {
	const query = `SELECT id, name, COALESCE(slug, '') AS slug FROM categories ORDER BY name`

	cats := []forum.Category{}
	if err := r.db.SelectContext(ctx, &cats, query); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

// Stats counts store contents for the diagnostics endpoint.
func (r *Repository) Stats(ctx context.Context) (forum.Stats, error) {
	const query = `
SELECT
	(SELECT COUNT(*) FROM users) AS users,
	(SELECT COUNT(*) FROM categories) AS categories,
	(SELECT COUNT(*) FROM topics) AS topics,
	(SELECT COUNT(*) FROM posts) AS posts,
	(SELECT COUNT(*) FROM posts WHERE content_embedding IS NOT NULL) AS posts_with_embedding`

	var s forum.Stats
	if err := r.db.GetContext(ctx, &s, query); err != nil {
		return forum.Stats{}, fmt.Errorf("store stats: %w", err)
	}
	return s, nil
}
