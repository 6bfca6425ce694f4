package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kaverma/forumdex/internal/domain"
	"github.com/kaverma/forumdex/internal/domain/forum"
	answeruc "github.com/kaverma/forumdex/internal/usecase/answer"
	browseuc "github.com/kaverma/forumdex/internal/usecase/browse"
	healthuc "github.com/kaverma/forumdex/internal/usecase/health"
	searchuc "github.com/kaverma/forumdex/internal/usecase/search"
	trendinguc "github.com/kaverma/forumdex/internal/usecase/trending"
)

// mockStore backs every usecase behind the API with canned data.
type mockStore struct {
	hits       []forum.PostHit
	lexicalErr error

	similarHits []forum.PostHit
	similarErr  error

	users []forum.UserHit

	activity []forum.TopicActivity

	topic    forum.Topic
	topicErr error
	post     forum.PostHit
	postErr  error
	topics   []forum.PostHit

	categories []forum.Category
	stats      forum.Stats

	pingErr error
}

func (m *mockStore) SearchPosts(_ context.Context, q forum.LexicalQuery) ([]forum.PostHit, error) {
	if m.lexicalErr != nil {
		return nil, m.lexicalErr
	}
	hits := m.hits
	if q.Limit > 0 && len(hits) > q.Limit {
		hits = hits[:q.Limit]
	}
	return hits, nil
}

func (m *mockStore) SemanticSearch(_ context.Context, _ []float32, _ forum.SemanticQuery) ([]forum.PostHit, error) {
	return nil, nil
}

func (m *mockStore) SimilarPosts(_ context.Context, _ int64, _ float64, _ int) ([]forum.PostHit, error) {
	return m.similarHits, m.similarErr
}

func (m *mockStore) SearchUsers(_ context.Context, _ string, _ int) ([]forum.UserHit, error) {
	return m.users, nil
}

func (m *mockStore) TopicActivity(_ context.Context, _ int, _ int64) ([]forum.TopicActivity, error) {
	return m.activity, nil
}

func (m *mockStore) GetTopic(_ context.Context, _ int64) (forum.Topic, error) {
	return m.topic, m.topicErr
}

func (m *mockStore) TopicPosts(_ context.Context, _ int64, _, _ int) ([]forum.PostHit, error) {
	return m.topics, nil
}

func (m *mockStore) GetPost(_ context.Context, _ int64) (forum.PostHit, error) {
	return m.post, m.postErr
}

func (m *mockStore) Categories(_ context.Context) ([]forum.Category, error) {
	return m.categories, nil
}

func (m *mockStore) Stats(_ context.Context) (forum.Stats, error) {
	return m.stats, nil
}

func (m *mockStore) Ping(_ context.Context) error { return m.pingErr }

type mockEmbedder struct{}

func (mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	return domain.EmbeddingResult{Embedding: []float32{0.1, 0.2}}, nil
}

type mockChat struct {
	reply string
	err   error
}

func (m *mockChat) Complete(_ context.Context, _, _ string) (string, error) {
	return m.reply, m.err
}

// newTestHandler assembles the full router over one mock store.
func newTestHandler(store *mockStore) http.Handler {
	logger := zap.NewNop()

	searchSvc := searchuc.New(store, mockEmbedder{}, searchuc.Config{}, logger)
	trendingSvc := trendinguc.New(store, logger)
	answerSvc := answeruc.New(searchSvc, &mockChat{reply: "generated answer"},
		answeruc.Config{ForumBaseURL: "https://forum.example.com"}, logger)
	browseSvc := browseuc.New(store)
	healthSvc := healthuc.New(store, nil, nil)

	server := NewServer(searchSvc, trendingSvc, answerSvc, browseSvc, healthSvc, Config{
		MinSimilarity: 0.3,
		NeighborFloor: 0.5,
	}, logger)

	r := chi.NewRouter()
	server.Routes(r)
	return r
}

func fixtureHit(id, topicID int64) forum.PostHit {
	return forum.PostHit{
		PostID:     id,
		TopicID:    topicID,
		TopicTitle: "Container runtimes",
		TopicSlug:  "container-runtimes",
		CategoryID: 1,
		Raw:        "podman is recommended",
		Cooked:     "<p>podman is recommended</p>",
		CreatedAt:  time.Now(),
	}
}
