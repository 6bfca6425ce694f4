package postgres

import (
	"context"
	"fmt"

	"github.com/kaverma/forumdex/internal/domain/forum"
)

// Write path. Used only by the loader; the search engine itself never writes.

// UpsertCategory inserts or refreshes one category.
func (r *Repository) UpsertCategory(ctx context.Context, c forum.Category) error {
	const query = `
INSERT INTO categories (id, name, slug)
VALUES ($1, $2, $3)
ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, slug = EXCLUDED.slug`

	if _, err := r.db.ExecContext(ctx, query, c.ID, c.Name, c.Slug); err != nil {
		return fmt.Errorf("upsert category %d: %w", c.ID, err)
	}
	return nil
}

// UpsertUser inserts or refreshes one user.
func (r *Repository) UpsertUser(ctx context.Context, u forum.User) error {
	const query = `
INSERT INTO users (id, username, name, avatar_template, title)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE SET
	username = EXCLUDED.username,
	name = EXCLUDED.name,
	avatar_template = EXCLUDED.avatar_template,
	title = EXCLUDED.title`

	if _, err := r.db.ExecContext(ctx, query, u.ID, u.Username, u.Name, u.AvatarTemplate, u.Title); err != nil {
		return fmt.Errorf("upsert user %d: %w", u.ID, err)
	}
	return nil
}

// UpsertTopic inserts or refreshes one topic.
func (r *Repository) UpsertTopic(ctx context.Context, t forum.Topic) error {
	const query = `
INSERT INTO topics (id, title, slug, category_id, user_id, posts_count, views, likes, created_at, last_posted_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (id) DO UPDATE SET
	title = EXCLUDED.title,
	slug = EXCLUDED.slug,
	category_id = EXCLUDED.category_id,
	posts_count = EXCLUDED.posts_count,
	views = EXCLUDED.views,
	likes = EXCLUDED.likes,
	last_posted_at = EXCLUDED.last_posted_at`

	if _, err := r.db.ExecContext(ctx, query,
		t.ID, t.Title, t.Slug, t.CategoryID, t.UserID,
		t.PostsCount, t.Views, t.Likes, t.CreatedAt, t.LastPostedAt); err != nil {
		return fmt.Errorf("upsert topic %d: %w", t.ID, err)
	}
	return nil
}

// UpsertPost inserts or refreshes one post. The embedding column is left
// untouched so a re-import does not wipe backfilled vectors.
func (r *Repository) UpsertPost(ctx context.Context, p forum.Post) error {
	const query = `
INSERT INTO posts (id, topic_id, user_id, raw, cooked, post_number, reply_count, like_count, score, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (id) DO UPDATE SET
	raw = EXCLUDED.raw,
	cooked = EXCLUDED.cooked,
	reply_count = EXCLUDED.reply_count,
	like_count = EXCLUDED.like_count,
	score = EXCLUDED.score,
	updated_at = EXCLUDED.updated_at`

	if _, err := r.db.ExecContext(ctx, query,
		p.ID, p.TopicID, p.UserID, p.Raw, p.Cooked, p.PostNumber,
		p.ReplyCount, p.LikeCount, p.Score, p.CreatedAt, p.UpdatedAt); err != nil {
		return fmt.Errorf("upsert post %d: %w", p.ID, err)
	}
	return nil
}

// PostsMissingEmbedding returns the next batch of posts without a stored
// embedding, id-ascending starting after afterID. The cursor lets the caller
// walk past posts it chose to skip without refetching them forever.
func (r *Repository) PostsMissingEmbedding(ctx context.Context, afterID int64, limit int) ([]forum.Post, error) {
	const query = `
SELECT id, topic_id, COALESCE(user_id, 0) AS user_id, raw, cooked,
	COALESCE(post_number, 0) AS post_number, COALESCE(reply_count, 0) AS reply_count,
	COALESCE(like_count, 0) AS like_count, COALESCE(score, 0) AS score,
	created_at, updated_at
FROM posts
WHERE content_embedding IS NULL AND id > $1
ORDER BY id
LIMIT $2`

	posts := []forum.Post{}
	if err := r.db.SelectContext(ctx, &posts, query, afterID, limit); err != nil {
		return nil, fmt.Errorf("posts missing embedding: %w", err)
	}
	return posts, nil
}

// UpdatePostEmbedding stores a backfilled embedding for one post.
func (r *Repository) UpdatePostEmbedding(ctx context.Context, postID int64, embedding []float32) error {
	const query = `UPDATE posts SET content_embedding = $2::vector WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, postID, encodeVector(embedding)); err != nil {
		return fmt.Errorf("update post embedding %d: %w", postID, err)
	}
	return nil
}
