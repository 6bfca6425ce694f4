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

const postHitColumns = `
	posts.id,
	posts.topic_id,
	topics.title AS topic_title,
	topics.slug AS topic_slug,
	categories.id AS category_id,
	categories.name AS category_name,
	COALESCE(posts.user_id, 0) AS user_id,
	COALESCE(users.username, '') AS username,
	posts.raw,
	posts.cooked,
	COALESCE(posts.reply_count, 0) AS reply_count,
	COALESCE(posts.like_count, 0) AS like_count,
	posts.created_at,
	0::float8 AS similarity`

const postHitJoins = `
FROM posts
JOIN topics ON posts.topic_id = topics.id
JOIN categories ON topics.category_id = categories.id
LEFT JOIN users ON posts.user_id = users.id`

// SearchPosts runs one pattern-containment query. With TitleOnly set the
// pattern is matched against the topic title alone; otherwise against the raw
// and cooked content and the title. Rows come back newest first.
func (r *Repository) SearchPosts(ctx context.Context, q forum.LexicalQuery) ([]forum.PostHit, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	pattern := "%" + q.Pattern + "%"
	if q.TitleOnly {
		conds = append(conds, fmt.Sprintf("topics.title ILIKE %s", arg(pattern)))
	} else {
		p := arg(pattern)
		conds = append(conds, fmt.Sprintf(
			"(posts.cooked ILIKE %s OR posts.raw ILIKE %s OR topics.title ILIKE %s)", p, p, p))
	}
	if q.CategoryID > 0 {
		conds = append(conds, fmt.Sprintf("topics.category_id = %s", arg(q.CategoryID)))
	}
	if q.TopicID > 0 {
		conds = append(conds, fmt.Sprintf("posts.topic_id = %s", arg(q.TopicID)))
	}

	order := "posts.created_at DESC"
	if q.TitleOnly {
		order = "topics.created_at DESC, posts.id"
	}

	query := fmt.Sprintf(`SELECT %s %s
WHERE %s
ORDER BY %s
LIMIT %s OFFSET %s`,
		postHitColumns, postHitJoins,
		strings.Join(conds, " AND "), order,
		arg(q.Limit), arg(q.Offset))

	hits := []forum.PostHit{}
	if err := r.db.SelectContext(ctx, &hits, query, args...); err != nil {
		return nil, fmt.Errorf("search posts: %w", err)
	}
	return hits, nil
}

// GetPost returns one post joined out to its topic and category.
func (r *Repository) GetPost(ctx context.Context, id int64) (forum.PostHit, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE posts.id = $1`, postHitColumns, postHitJoins)

	var hit forum.PostHit
	if err := r.db.GetContext(ctx, &hit, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return forum.PostHit{}, domain.ErrPostNotFound
		}
		return forum.PostHit{}, fmt.Errorf("get post %d: %w", id, err)
	}
	return hit, nil
}
