// Package request holds validated, normalized query parameter objects.
// Construction is the only place limits are clamped; downstream layers can
// rely on every field being in range.
package request

import (
	"strings"

	"github.com/kaverma/forumdex/internal/domain"
	"github.com/kaverma/forumdex/internal/domain/search/mode"
)

// Bounds applied during construction.
const (
	DefaultLimit = 20
	MaxLimit     = 200
)

// Request is a validated search query.
type Request struct {
	query         string
	mode          mode.Mode
	categoryID    int64
	topicID       int64
	limit         int
	minSimilarity float64
}

// New validates and normalizes search parameters.
// The query must be non-blank: an empty query is a contract violation, not a
// request for everything. minSimilarity must lie in [0,1]; the limit is
// clamped into [1, MaxLimit] rather than rejected.
func New(
	query string, m mode.Mode,
	categoryID, topicID int64,
	limit int, minSimilarity float64,
) (Request, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Request{}, domain.ErrEmptyQuery
	}
	if !m.IsValid() {
		m = mode.Comprehensive
	}
	if minSimilarity < 0 || minSimilarity > 1 {
		return Request{}, domain.ErrInvalidThreshold
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if categoryID < 0 {
		categoryID = 0
	}
	if topicID < 0 {
		topicID = 0
	}

	return Request{
		query:         query,
		mode:          m,
		categoryID:    categoryID,
		topicID:       topicID,
		limit:         limit,
		minSimilarity: minSimilarity,
	}, nil
}

// Query returns the trimmed query text.
func (r *Request) Query() string { return r.query }

// Mode returns the requested search mode.
func (r *Request) Mode() mode.Mode { return r.mode }

// CategoryID returns the category filter, 0 meaning none.
func (r *Request) CategoryID() int64 { return r.categoryID }

// TopicID returns the topic filter, 0 meaning none.
func (r *Request) TopicID() int64 { return r.topicID }

// Limit returns the clamped maximum result count.
func (r *Request) Limit() int { return r.limit }

// MinSimilarity returns the semantic similarity floor.
func (r *Request) MinSimilarity() float64 { return r.minSimilarity }
