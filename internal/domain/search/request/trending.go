package request

import (
	"github.com/kaverma/forumdex/internal/domain"
)

// Trending defaults and bounds.
const (
	DefaultTrendWindowDays = 7
	MaxTrendWindowDays     = 90
	DefaultTrendLimit      = 10
)

// TrendingRequest is a validated trending-topics query.
type TrendingRequest struct {
	windowDays int
	limit      int
	categoryID int64
}

// NewTrending validates and normalizes trending parameters.
// A zero windowDays falls back to the default; a negative one is rejected.
func NewTrending(windowDays, limit int, categoryID int64) (TrendingRequest, error) {
	if windowDays < 0 {
		return TrendingRequest{}, domain.ErrInvalidWindow
	}
	if windowDays == 0 {
		windowDays = DefaultTrendWindowDays
	}
	if windowDays > MaxTrendWindowDays {
		windowDays = MaxTrendWindowDays
	}
	if limit <= 0 {
		limit = DefaultTrendLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if categoryID < 0 {
		categoryID = 0
	}

	return TrendingRequest{
		windowDays: windowDays,
		limit:      limit,
		categoryID: categoryID,
	}, nil
}

// WindowDays returns the activity window in days. Topic eligibility spans
// twice this window.
func (r *TrendingRequest) WindowDays() int { return r.windowDays }

// Limit returns the clamped maximum result count.
func (r *TrendingRequest) Limit() int { return r.limit }

// CategoryID returns the category filter, 0 meaning none.
func (r *TrendingRequest) CategoryID() int64 { return r.categoryID }
