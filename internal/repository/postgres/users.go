package postgres

import (
	"context"
	"fmt"

	"github.com/kaverma/forumdex/internal/domain/forum"
)

// SearchUsers matches users by username or display name, most active first.
func (r *Repository) SearchUsers(ctx context.Context, pattern string, limit int) ([]forum.UserHit, error) {
	const query = `
SELECT
	users.id,
	users.username,
	users.name,
	users.avatar_template,
	users.title AS user_title,
	COUNT(posts.id) AS post_count,
	COALESCE(SUM(posts.like_count), 0) AS total_likes,
	MAX(posts.created_at) AS last_post_at
FROM users
LEFT JOIN posts ON users.id = posts.user_id
WHERE users.username ILIKE $1
   OR users.name ILIKE $1
GROUP BY users.id, users.username, users.name, users.avatar_template, users.title
ORDER BY post_count DESC, total_likes DESC
LIMIT $2`

	hits := []forum.UserHit{}
	if err := r.db.SelectContext(ctx, &hits, query, "%"+pattern+"%", limit); err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return hits, nil
}
