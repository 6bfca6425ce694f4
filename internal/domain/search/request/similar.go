package request

import (
	"fmt"

	"github.com/kaverma/forumdex/internal/domain"
)

// DefaultSimilarLimit bounds "find similar posts" result sets.
const DefaultSimilarLimit = 10

// SimilarRequest is a validated "find similar posts" query.
type SimilarRequest struct {
	postID        int64
	limit         int
	minSimilarity float64
}

// NewSimilar validates and normalizes similar-post parameters.
func NewSimilar(postID int64, limit int, minSimilarity float64) (SimilarRequest, error) {
	if postID <= 0 {
		return SimilarRequest{}, fmt.Errorf("post id must be positive, got %d", postID)
	}
	if minSimilarity < 0 || minSimilarity > 1 {
		return SimilarRequest{}, domain.ErrInvalidThreshold
	}
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return SimilarRequest{
		postID:        postID,
		limit:         limit,
		minSimilarity: minSimilarity,
	}, nil
}

// PostID returns the reference post id.
func (r *SimilarRequest) PostID() int64 { return r.postID }

// Limit returns the clamped maximum result count.
func (r *SimilarRequest) Limit() int { return r.limit }

// MinSimilarity returns the similarity floor.
func (r *SimilarRequest) MinSimilarity() float64 { return r.minSimilarity }
