// Package result holds the engine's output records. A Result is created
// fresh per query and never persisted.
package result

import (
	"time"

	"github.com/kaverma/forumdex/internal/domain/search/method"
)

// Fields carries the content identity and display attributes of a hit.
// Scores are attached separately so the normalizer and merger can rebuild
// a result without touching identity.
type Fields struct {
	PostID       int64
	TopicID      int64
	TopicTitle   string
	TopicSlug    string
	CategoryID   int64
	CategoryName string
	Snippet      string
	ReplyCount   int
	CreatedAt    time.Time
}

// Result is a single scored search hit.
type Result struct {
	fields   Fields
	rawScore float64
	score    float64
	method   method.Method
}

// New creates a search result. rawScore is the strategy's native signal
// (cosine similarity, rank score, or the fixed weight itself); score is the
// normalized [0,1] value used for merging and ordering.
func New(f Fields, rawScore, score float64, m method.Method) Result {
	return Result{fields: f, rawScore: rawScore, score: score, method: m}
}

// WithScore returns a copy carrying new scores and method tag.
func (r Result) WithScore(rawScore, score float64, m method.Method) Result {
	return Result{fields: r.fields, rawScore: rawScore, score: score, method: m}
}

// PostID returns the content identity used for deduplication.
func (r *Result) PostID() int64 { return r.fields.PostID }

// TopicID returns the owning topic id.
func (r *Result) TopicID() int64 { return r.fields.TopicID }

// TopicTitle returns the owning topic title.
func (r *Result) TopicTitle() string { return r.fields.TopicTitle }

// TopicSlug returns the owning topic slug.
func (r *Result) TopicSlug() string { return r.fields.TopicSlug }

// CategoryID returns the category id.
func (r *Result) CategoryID() int64 { return r.fields.CategoryID }

// CategoryName returns the category name.
func (r *Result) CategoryName() string { return r.fields.CategoryName }

// Snippet returns the cleaned, truncated content excerpt.
func (r *Result) Snippet() string { return r.fields.Snippet }

// ReplyCount returns the post reply count.
func (r *Result) ReplyCount() int { return r.fields.ReplyCount }

// CreatedAt returns the post creation time.
func (r *Result) CreatedAt() time.Time { return r.fields.CreatedAt }

// RawScore returns the strategy's native score.
func (r *Result) RawScore() float64 { return r.rawScore }

// Score returns the normalized [0,1] score.
func (r *Result) Score() float64 { return r.score }

// Method returns the strategy tag.
func (r *Result) Method() method.Method { return r.method }
