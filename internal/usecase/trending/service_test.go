package trending

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kaverma/forumdex/internal/domain/forum"
	"github.com/kaverma/forumdex/internal/domain/search/request"
)

type mockStore struct {
	rows []forum.TopicActivity
	err  error

	gotWindow   int
	gotCategory int64
}

func (m *mockStore) TopicActivity(_ context.Context, windowDays int, categoryID int64) ([]forum.TopicActivity, error) {
	m.gotWindow = windowDays
	m.gotCategory = categoryID
	return m.rows, m.err
}

func mustTrending(t *testing.T, windowDays, limit int, categoryID int64) *request.TrendingRequest {
	t.Helper()
	req, err := request.NewTrending(windowDays, limit, categoryID)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	return &req
}

func tp(t time.Time) *time.Time { return &t }

func activity(id int64, title string, recentPosts, likes int, last *time.Time) forum.TopicActivity {
	return forum.TopicActivity{
		TopicID:      id,
		Title:        title,
		Slug:         "t",
		RecentPosts:  recentPosts,
		TotalLikes:   likes,
		LastActivity: last,
	}
}

func TestTrending_RanksByActivity(t *testing.T) {
	now := time.Now()
	store := &mockStore{rows: []forum.TopicActivity{
		activity(1, "quiet", 2, 0, tp(now.Add(-time.Hour))),
		activity(2, "busy", 9, 1, tp(now)),
		activity(3, "middling", 5, 3, tp(now.Add(-2*time.Hour))),
	}}
	svc := New(store, zap.NewNop())

	trends, err := svc.Trending(context.Background(), mustTrending(t, 7, 10, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trends) != 3 {
		t.Fatalf("expected 3 trends, got %d", len(trends))
	}
	want := []int64{2, 3, 1}
	for i, id := range want {
		if trends[i].TopicID() != id {
			t.Errorf("position %d: got topic %d, want %d", i, trends[i].TopicID(), id)
		}
	}
}

func TestTrending_ExcludesTopicsIdleInsideWindow(t *testing.T) {
	// A topic whose activity all predates the window comes back from the
	// aggregate with zero recent posts; it must not rank.
	now := time.Now()
	store := &mockStore{rows: []forum.TopicActivity{
		activity(1, "stale", 0, 50, nil),
		activity(2, "alive", 1, 0, tp(now)),
	}}
	svc := New(store, zap.NewNop())

	trends, err := svc.Trending(context.Background(), mustTrending(t, 7, 10, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trends) != 1 || trends[0].TopicID() != 2 {
		t.Fatalf("expected only the active topic, got %v", trends)
	}
}

func TestTrending_TieBreaksOnLikesThenActivity(t *testing.T) {
	now := time.Now()
	store := &mockStore{rows: []forum.TopicActivity{
		activity(1, "older", 4, 2, tp(now.Add(-time.Hour))),
		activity(2, "liked", 4, 7, tp(now.Add(-3*time.Hour))),
		activity(3, "fresher", 4, 2, tp(now)),
	}}
	svc := New(store, zap.NewNop())

	trends, err := svc.Trending(context.Background(), mustTrending(t, 7, 10, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int64{2, 3, 1}
	for i, id := range want {
		if trends[i].TopicID() != id {
			t.Errorf("position %d: got topic %d, want %d", i, trends[i].TopicID(), id)
		}
	}
}

func TestTrending_AppliesLimit(t *testing.T) {
	now := time.Now()
	var rows []forum.TopicActivity
	for i := int64(1); i <= 20; i++ {
		rows = append(rows, activity(i, "t", int(i), 0, tp(now)))
	}
	store := &mockStore{rows: rows}
	svc := New(store, zap.NewNop())

	trends, err := svc.Trending(context.Background(), mustTrending(t, 7, 5, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trends) != 5 {
		t.Fatalf("expected 5 trends, got %d", len(trends))
	}
	if trends[0].RecentPosts() != 20 {
		t.Errorf("truncation must keep the top entries, got %d recent posts first", trends[0].RecentPosts())
	}
}

func TestTrending_PropagatesWindowAndCategory(t *testing.T) {
	store := &mockStore{}
	svc := New(store, zap.NewNop())

	if _, err := svc.Trending(context.Background(), mustTrending(t, 14, 10, 3)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.gotWindow != 14 || store.gotCategory != 3 {
		t.Errorf("request not propagated: window=%d category=%d", store.gotWindow, store.gotCategory)
	}
}

func TestTrending_StoreError(t *testing.T) {
	storeErr := errors.New("db offline")
	svc := New(&mockStore{err: storeErr}, zap.NewNop())

	if _, err := svc.Trending(context.Background(), mustTrending(t, 7, 10, 0)); !errors.Is(err, storeErr) {
		t.Fatalf("expected the store error, got: %v", err)
	}
}
