// Package forum holds the read-side row shapes of the Discourse-style forum
// store. The ranking engine only reads these; all mutation happens in the
// loader or outside this system entirely.
package forum

import "time"

// Post is a single forum post. Raw is the author markdown, Cooked the
// rendered HTML; lexical matching runs over both.
type Post struct {
	ID         int64      `db:"id"`
	TopicID    int64      `db:"topic_id"`
	UserID     int64      `db:"user_id"`
	Raw        string     `db:"raw"`
	Cooked     string     `db:"cooked"`
	PostNumber int        `db:"post_number"`
	ReplyCount int        `db:"reply_count"`
	LikeCount  int        `db:"like_count"`
	Score      float64    `db:"score"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  *time.Time `db:"updated_at"`
}

// Topic is a forum thread.
type Topic struct {
	ID           int64      `db:"id"`
	Title        string     `db:"title"`
	Slug         string     `db:"slug"`
	CategoryID   int64      `db:"category_id"`
	UserID       int64      `db:"user_id"`
	PostsCount   int        `db:"posts_count"`
	Views        int        `db:"views"`
	Likes        int        `db:"likes"`
	CreatedAt    time.Time  `db:"created_at"`
	LastPostedAt *time.Time `db:"last_posted_at"`
}

// Category is a display/filter attribute only; it is never ranked.
type Category struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
	Slug string `db:"slug"`
}

// User is a forum author row.
type User struct {
	ID             int64   `db:"id"`
	Username       string  `db:"username"`
	Name           *string `db:"name"`
	AvatarTemplate *string `db:"avatar_template"`
	Title          *string `db:"user_title"`
}

// PostHit is one post row returned by a retrieval query, joined out to its
// topic and category. Similarity is set only by vector queries; lexical
// queries leave it zero.
type PostHit struct {
	PostID       int64     `db:"id"`
	TopicID      int64     `db:"topic_id"`
	TopicTitle   string    `db:"topic_title"`
	TopicSlug    string    `db:"topic_slug"`
	CategoryID   int64     `db:"category_id"`
	CategoryName string    `db:"category_name"`
	UserID       int64     `db:"user_id"`
	Username     string    `db:"username"`
	Raw          string    `db:"raw"`
	Cooked       string    `db:"cooked"`
	ReplyCount   int       `db:"reply_count"`
	LikeCount    int       `db:"like_count"`
	CreatedAt    time.Time `db:"created_at"`
	Similarity   float64   `db:"similarity"`
}

// LexicalQuery describes one pattern-containment sub-query.
// Pattern is matched case-insensitively as a substring of the post raw and
// cooked content and the topic title; with TitleOnly set, of the title alone.
type LexicalQuery struct {
	Pattern    string
	CategoryID int64 // 0 = no filter
	TopicID    int64 // 0 = no filter
	TitleOnly  bool
	Limit      int
	Offset     int
}

// SemanticQuery describes one nearest-neighbor sub-query over post embeddings.
type SemanticQuery struct {
	CategoryID    int64 // 0 = no filter
	MinSimilarity float64
	Limit         int
}

// TopicActivity is the raw two-window aggregate for one topic. RecentPosts
// and the other counters cover the activity window only; eligibility (topic
// age) is enforced by the query, scoring by the trend scorer.
type TopicActivity struct {
	TopicID            int64      `db:"id"`
	Title              string     `db:"title"`
	Slug               string     `db:"slug"`
	CategoryName       string     `db:"category_name"`
	RecentPosts        int        `db:"recent_posts"`
	TotalLikes         int        `db:"total_likes"`
	LastActivity       *time.Time `db:"last_activity"`
	UniqueParticipants int        `db:"unique_participants"`
}

// UserHit is one row of a user search, with aggregate posting stats.
type UserHit struct {
	UserID         int64      `db:"id"`
	Username       string     `db:"username"`
	Name           *string    `db:"name"`
	AvatarTemplate *string    `db:"avatar_template"`
	Title          *string    `db:"user_title"`
	PostCount      int        `db:"post_count"`
	TotalLikes     int        `db:"total_likes"`
	LastPostAt     *time.Time `db:"last_post_at"`
}

// Stats summarizes store contents for the diagnostics endpoint.
type Stats struct {
	Users              int64 `db:"users"`
	Categories         int64 `db:"categories"`
	Topics             int64 `db:"topics"`
	Posts              int64 `db:"posts"`
	PostsWithEmbedding int64 `db:"posts_with_embedding"`
}
