package httpapi

import "time"

// Error codes returned in errorResponse.Code.
const (
	codeBadRequest             = "bad_request"
	codeEmptyQuery             = "empty_query"
	codeInvalidThreshold       = "invalid_threshold"
	codeInvalidWindow          = "invalid_window"
	codePostNotFound           = "post_not_found"
	codeTopicNotFound          = "topic_not_found"
	codeEmbeddingProviderError = "embedding_provider_error"
	codeAnswerProviderError    = "answer_provider_error"
	codeStoreUnavailable       = "store_unavailable"
	codeInternalError          = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type searchRequest struct {
	Query         string  `json:"query"`
	Mode          string  `json:"mode,omitempty"`
	CategoryID    int64   `json:"category_id,omitempty"`
	TopicID       int64   `json:"topic_id,omitempty"`
	Limit         int     `json:"limit,omitempty"`
	MinSimilarity float64 `json:"min_similarity,omitempty"`
}

type searchResultItem struct {
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

type searchResponse struct {
	Items []searchResultItem `json:"items"`
	Total int                `json:"total"`
}

type trendingItem struct {
	TopicID            int64      `json:"topic_id"`
	Title              string     `json:"title"`
	Slug               string     `json:"slug"`
	CategoryName       string     `json:"category_name,omitempty"`
	RecentPosts        int        `json:"recent_posts"`
	TotalLikes         int        `json:"total_likes"`
	LastActivity       *time.Time `json:"last_activity,omitempty"`
	UniqueParticipants int        `json:"unique_participants"`
}

type trendingResponse struct {
	Items      []trendingItem `json:"items"`
	WindowDays int            `json:"window_days"`
}

type userItem struct {
	UserID     int64      `json:"user_id"`
	Username   string     `json:"username"`
	Name       *string    `json:"name,omitempty"`
	Title      *string    `json:"title,omitempty"`
	PostCount  int        `json:"post_count"`
	TotalLikes int        `json:"total_likes"`
	LastPostAt *time.Time `json:"last_post_at,omitempty"`
}

type userSearchResponse struct {
	Items []userItem `json:"items"`
	Total int        `json:"total"`
}

type topicResponse struct {
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

type postResponse struct {
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

type topicPostsResponse struct {
	Items  []postResponse `json:"items"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

type categoryItem struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type categoriesResponse struct {
	Items []categoryItem `json:"items"`
}

type statsResponse struct {
	Users              int64 `json:"users"`
	Categories         int64 `json:"categories"`
	Topics             int64 `json:"topics"`
	Posts              int64 `json:"posts"`
	PostsWithEmbedding int64 `json:"posts_with_embedding"`
}

type askRequest struct {
	Question string `json:"question"`
}

type askLink struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

type askResponse struct {
	Answer string    `json:"answer"`
	Links  []askLink `json:"links"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
