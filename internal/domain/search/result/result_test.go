package result

import (
	"testing"
	"time"

	"github.com/kaverma/forumdex/internal/domain/search/method"
)

func TestNewAndGetters(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	f := Fields{
		PostID:       7,
		TopicID:      3,
		TopicTitle:   "GA4 dashboard scores",
		TopicSlug:    "ga4-dashboard-scores",
		CategoryID:   2,
		CategoryName: "Announcements",
		Snippet:      "If a student scores 10/10...",
		ReplyCount:   4,
		CreatedAt:    created,
	}
	r := New(f, 0.8, 0.8, method.Keyword)

	if r.PostID() != 7 || r.TopicID() != 3 {
		t.Errorf("identity mismatch: post=%d topic=%d", r.PostID(), r.TopicID())
	}
	if r.TopicTitle() != f.TopicTitle || r.CategoryName() != f.CategoryName {
		t.Error("display fields mismatch")
	}
	if r.Score() != 0.8 || r.RawScore() != 0.8 {
		t.Errorf("scores mismatch: %g/%g", r.RawScore(), r.Score())
	}
	if r.Method() != method.Keyword {
		t.Errorf("method = %s", r.Method())
	}
	if !r.CreatedAt().Equal(created) {
		t.Error("created_at mismatch")
	}
}

func TestWithScore_PreservesIdentity(t *testing.T) {
	r := New(Fields{PostID: 1, TopicID: 2, Snippet: "s"}, 0.6, 0.6, method.KeywordBroadening)
	blended := r.WithScore(0.91, 0.786, method.Hybrid)

	if blended.PostID() != 1 || blended.Snippet() != "s" {
		t.Error("identity fields should be preserved")
	}
	if blended.Score() != 0.786 || blended.RawScore() != 0.91 {
		t.Errorf("scores not replaced: %g/%g", blended.RawScore(), blended.Score())
	}
	if blended.Method() != method.Hybrid {
		t.Errorf("method = %s", blended.Method())
	}
	// The original is unchanged.
	if r.Score() != 0.6 {
		t.Error("WithScore must not mutate the receiver")
	}
}
