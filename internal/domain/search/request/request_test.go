package request

import (
	"errors"
	"testing"

	"github.com/kaverma/forumdex/internal/domain"
	"github.com/kaverma/forumdex/internal/domain/search/mode"
)

func TestNew_EmptyQueryRejected(t *testing.T) {
	for _, q := range []string{"", "   ", "\t\n"} {
		_, err := New(q, mode.Comprehensive, 0, 0, 10, 0.3)
		if !errors.Is(err, domain.ErrEmptyQuery) {
			t.Errorf("query %q: expected ErrEmptyQuery, got %v", q, err)
		}
	}
}

func TestNew_TrimsQuery(t *testing.T) {
	r, err := New("  podman rootless  ", mode.Text, 0, 0, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Query() != "podman rootless" {
		t.Errorf("query not trimmed: %q", r.Query())
	}
}

func TestNew_ThresholdBounds(t *testing.T) {
	for _, s := range []float64{-0.1, 1.01, 2} {
		_, err := New("q", mode.Semantic, 0, 0, 10, s)
		if !errors.Is(err, domain.ErrInvalidThreshold) {
			t.Errorf("threshold %g: expected ErrInvalidThreshold, got %v", s, err)
		}
	}
}

func TestNew_LimitClamped(t *testing.T) {
	r, err := New("q", mode.Comprehensive, 0, 0, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if r.Limit() != DefaultLimit {
		t.Errorf("zero limit: got %d, want %d", r.Limit(), DefaultLimit)
	}

	r, err = New("q", mode.Comprehensive, 0, 0, 5000, 0)
	if err != nil {
		t.Fatal(err)
	}
	if r.Limit() != MaxLimit {
		t.Errorf("oversized limit: got %d, want %d", r.Limit(), MaxLimit)
	}
}

func TestNew_InvalidModeDefaultsToComprehensive(t *testing.T) {
	r, err := New("q", mode.Mode("fuzzy"), 0, 0, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if r.Mode() != mode.Comprehensive {
		t.Errorf("got mode %s, want comprehensive", r.Mode())
	}
}

func TestNewSimilar(t *testing.T) {
	if _, err := NewSimilar(0, 10, 0.5); err == nil {
		t.Error("expected error for post id 0")
	}
	if _, err := NewSimilar(1, 10, 1.5); !errors.Is(err, domain.ErrInvalidThreshold) {
		t.Error("expected ErrInvalidThreshold")
	}

	r, err := NewSimilar(42, 0, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if r.Limit() != DefaultSimilarLimit {
		t.Errorf("got limit %d, want %d", r.Limit(), DefaultSimilarLimit)
	}
	if r.PostID() != 42 {
		t.Errorf("got post id %d", r.PostID())
	}
}

func TestNewTrending(t *testing.T) {
	if _, err := NewTrending(-1, 10, 0); !errors.Is(err, domain.ErrInvalidWindow) {
		t.Error("expected ErrInvalidWindow for negative window")
	}

	r, err := NewTrending(0, 0, -3)
	if err != nil {
		t.Fatal(err)
	}
	if r.WindowDays() != DefaultTrendWindowDays {
		t.Errorf("got window %d, want %d", r.WindowDays(), DefaultTrendWindowDays)
	}
	if r.Limit() != DefaultTrendLimit {
		t.Errorf("got limit %d, want %d", r.Limit(), DefaultTrendLimit)
	}
	if r.CategoryID() != 0 {
		t.Errorf("negative category should normalize to 0, got %d", r.CategoryID())
	}

	r, err = NewTrending(365, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if r.WindowDays() != MaxTrendWindowDays {
		t.Errorf("got window %d, want %d", r.WindowDays(), MaxTrendWindowDays)
	}
}
