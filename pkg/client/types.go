package forumdex

import "time"

// SearchRequest is the body of POST /api/search.
type SearchRequest struct {
	Query         string  `json:"query"`
	Mode          string  `json:"mode,omitempty"`
	CategoryID    int64   `json:"category_id,omitempty"`
	TopicID       int64   `json:"topic_id,omitempty"`
	Limit         int     `json:"limit,omitempty"`
	MinSimilarity float64 `json:"min_similarity,omitempty"`
}

// SearchResult is a single ranked post returned by search endpoints.
type SearchResult struct {
	PostID       int64     `json:"post_id"`
	TopicID      int64     `json:"topic_id"`
	TopicTitle   string    `json:"topic_title"`
	TopicSlug    string    `json:"topic_slug"`
	CategoryID   int64     `json:"category_id,omitempty"`
	CategoryName string    `json:"category_name,omitempty"`
	Snippet      string    `json:"snippet"`
	ReplyCount   int       `json:"reply_count"`
	CreatedAt    time.Time `json:"created_at"`
	Score        float64   `json:"score"`
	Method       string    `json:"method"`
}

// SearchResponse wraps search results with the total count.
type SearchResponse struct {
	Items []SearchResult `json:"items"`
	Total int            `json:"total"`
}

// TrendingTopic describes recent activity on a topic.
type TrendingTopic struct {
	TopicID            int64      `json:"topic_id"`
	Title              string     `json:"title"`
	Slug               string     `json:"slug"`
	CategoryName       string     `json:"category_name,omitempty"`
	RecentPosts        int        `json:"recent_posts"`
	TotalLikes         int        `json:"total_likes"`
	LastActivity       *time.Time `json:"last_activity,omitempty"`
	UniqueParticipants int        `json:"unique_participants"`
}

// TrendingResponse wraps trending topics with the applied window.
type TrendingResponse struct {
	Items      []TrendingTopic `json:"items"`
	WindowDays int             `json:"window_days"`
}

// User is a forum user matched by a profile search.
type User struct {
	UserID     int64      `json:"user_id"`
	Username   string     `json:"username"`
	Name       *string    `json:"name,omitempty"`
	Title      *string    `json:"title,omitempty"`
	PostCount  int        `json:"post_count"`
	TotalLikes int        `json:"total_likes"`
	LastPostAt *time.Time `json:"last_post_at,omitempty"`
}

// UserSearchResponse wraps user search results.
type UserSearchResponse struct {
	Items []User `json:"items"`
	Total int    `json:"total"`
}

// Topic is a forum topic with aggregate counters.
type Topic struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	CategoryID   int64      `json:"category_id"`
	PostsCount   int        `json:"posts_count"`
	Views        int        `json:"views"`
	Likes        int        `json:"likes"`
	CreatedAt    time.Time  `json:"created_at"`
	LastPostedAt *time.Time `json:"last_posted_at,omitempty"`
}

// Post is a single forum post with rendered content.
type Post struct {
	PostID       int64     `json:"post_id"`
	TopicID      int64     `json:"topic_id"`
	TopicTitle   string    `json:"topic_title"`
	TopicSlug    string    `json:"topic_slug"`
	CategoryID   int64     `json:"category_id,omitempty"`
	CategoryName string    `json:"category_name,omitempty"`
	Username     string    `json:"username,omitempty"`
	Cooked       string    `json:"cooked"`
	ReplyCount   int       `json:"reply_count"`
	LikeCount    int       `json:"like_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// TopicPostsResponse is one page of a topic thread.
type TopicPostsResponse struct {
	Items  []Post `json:"items"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

// Category is a forum category.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Stats reports corpus-wide row counts.
type Stats struct {
	Users              int64 `json:"users"`
	Categories         int64 `json:"categories"`
	Topics             int64 `json:"topics"`
	Posts              int64 `json:"posts"`
	PostsWithEmbedding int64 `json:"posts_with_embedding"`
}

// Link points at a forum topic cited by an answer.
type Link struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

// Answer is a generated answer with its source links.
type Answer struct {
	Answer string `json:"answer"`
	Links  []Link `json:"links"`
}

// Health reports overall status and per-component checks.
type Health struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
