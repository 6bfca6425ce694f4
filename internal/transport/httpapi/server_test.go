package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kaverma/forumdex/internal/domain"
	"github.com/kaverma/forumdex/internal/domain/forum"
)

func doRequest(t *testing.T, handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	return resp
}

func TestSearch_OK(t *testing.T) {
	handler := newTestHandler(&mockStore{hits: []forum.PostHit{fixtureHit(1, 10)}})

	rr := doRequest(t, handler, "POST", "/api/search", `{"query":"podman","mode":"comprehensive","limit":10}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var resp searchResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 1 || len(resp.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", resp.Total)
	}
	item := resp.Items[0]
	if item.PostID != 1 || item.TopicSlug != "container-runtimes" {
		t.Errorf("unexpected item: %+v", item)
	}
	if item.Snippet == "" || strings.Contains(item.Snippet, "<p>") {
		t.Errorf("snippet must be stripped of HTML, got %q", item.Snippet)
	}
}

func TestSearch_EmptyQuery_400(t *testing.T) {
	handler := newTestHandler(&mockStore{})

	rr := doRequest(t, handler, "POST", "/api/search", `{"query":"  "}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if resp := decodeError(t, rr); resp.Code != codeEmptyQuery {
		t.Errorf("error code: got %s, want %s", resp.Code, codeEmptyQuery)
	}
}

func TestSearch_InvalidThreshold_400(t *testing.T) {
	handler := newTestHandler(&mockStore{})

	rr := doRequest(t, handler, "POST", "/api/search", `{"query":"podman","min_similarity":1.5}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if resp := decodeError(t, rr); resp.Code != codeInvalidThreshold {
		t.Errorf("error code: got %s, want %s", resp.Code, codeInvalidThreshold)
	}
}

func TestSearch_MalformedBody_400(t *testing.T) {
	handler := newTestHandler(&mockStore{})

	rr := doRequest(t, handler, "POST", "/api/search", `{"query":`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if resp := decodeError(t, rr); resp.Code != codeBadRequest {
		t.Errorf("error code: got %s, want %s", resp.Code, codeBadRequest)
	}
}

func TestSearch_StoreDown_503(t *testing.T) {
	handler := newTestHandler(&mockStore{lexicalErr: errors.New("connection refused")})

	rr := doRequest(t, handler, "POST", "/api/search", `{"query":"podman","mode":"comprehensive"}`)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("got %d, want %d: %s", rr.Code, http.StatusServiceUnavailable, rr.Body.String())
	}
	if resp := decodeError(t, rr); resp.Code != codeStoreUnavailable {
		t.Errorf("error code: got %s, want %s", resp.Code, codeStoreUnavailable)
	}
}

func TestSimilarPosts_OK(t *testing.T) {
	store := &mockStore{
		post:        fixtureHit(42, 10),
		similarHits: []forum.PostHit{fixtureHit(7, 11)},
	}
	store.similarHits[0].Similarity = 0.87
	handler := newTestHandler(store)

	rr := doRequest(t, handler, "GET", "/api/posts/42/similar?limit=5", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var resp searchResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].Score != 0.87 {
		t.Fatalf("unexpected items: %+v", resp.Items)
	}
}

func TestSimilarPosts_BadID_400(t *testing.T) {
	handler := newTestHandler(&mockStore{})

	rr := doRequest(t, handler, "GET", "/api/posts/abc/similar", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestSimilarPosts_MissingPost_404(t *testing.T) {
	handler := newTestHandler(&mockStore{postErr: domain.ErrPostNotFound})

	rr := doRequest(t, handler, "GET", "/api/posts/42/similar", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusNotFound)
	}
	if resp := decodeError(t, rr); resp.Code != codePostNotFound {
		t.Errorf("error code: got %s, want %s", resp.Code, codePostNotFound)
	}
}

func TestSimilarPosts_NoEmbedding_EmptyList(t *testing.T) {
	handler := newTestHandler(&mockStore{
		post:       fixtureHit(42, 10),
		similarErr: domain.ErrNoEmbedding,
	})

	rr := doRequest(t, handler, "GET", "/api/posts/42/similar", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	var resp searchResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 0 {
		t.Errorf("expected empty result set, got %d", resp.Total)
	}
}

func TestTrending_OK(t *testing.T) {
	now := time.Now()
	handler := newTestHandler(&mockStore{activity: []forum.TopicActivity{
		{TopicID: 1, Title: "hot", Slug: "hot", RecentPosts: 5, LastActivity: &now},
		{TopicID: 2, Title: "cold", Slug: "cold", RecentPosts: 0},
	}})

	rr := doRequest(t, handler, "GET", "/api/topics/trending", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var resp trendingResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.WindowDays != 7 {
		t.Errorf("default window: got %d, want 7", resp.WindowDays)
	}
	if len(resp.Items) != 1 || resp.Items[0].TopicID != 1 {
		t.Fatalf("unexpected items: %+v", resp.Items)
	}
}

func TestTrending_NegativeWindow_400(t *testing.T) {
	handler := newTestHandler(&mockStore{})

	rr := doRequest(t, handler, "GET", "/api/topics/trending?window_days=-1", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if resp := decodeError(t, rr); resp.Code != codeInvalidWindow {
		t.Errorf("error code: got %s, want %s", resp.Code, codeInvalidWindow)
	}
}

func TestSearchUsers_MissingQuery_400(t *testing.T) {
	handler := newTestHandler(&mockStore{})

	rr := doRequest(t, handler, "GET", "/api/users/search", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if resp := decodeError(t, rr); resp.Code != codeEmptyQuery {
		t.Errorf("error code: got %s, want %s", resp.Code, codeEmptyQuery)
	}
}

func TestSearchUsers_OK(t *testing.T) {
	handler := newTestHandler(&mockStore{users: []forum.UserHit{
		{UserID: 1, Username: "alice", PostCount: 12, TotalLikes: 3},
	}})

	rr := doRequest(t, handler, "GET", "/api/users/search?q=ali", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var resp userSearchResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 1 || resp.Items[0].Username != "alice" {
		t.Fatalf("unexpected items: %+v", resp.Items)
	}
}

func TestGetTopic_Missing_404(t *testing.T) {
	handler := newTestHandler(&mockStore{topicErr: domain.ErrTopicNotFound})

	rr := doRequest(t, handler, "GET", "/api/topics/42", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusNotFound)
	}
	if resp := decodeError(t, rr); resp.Code != codeTopicNotFound {
		t.Errorf("error code: got %s, want %s", resp.Code, codeTopicNotFound)
	}
}

func TestTopicPosts_OK(t *testing.T) {
	handler := newTestHandler(&mockStore{
		topic:  forum.Topic{ID: 10, Title: "Container runtimes"},
		topics: []forum.PostHit{fixtureHit(1, 10), fixtureHit(2, 10)},
	})

	rr := doRequest(t, handler, "GET", "/api/topics/10/posts?limit=50&offset=0", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var resp topicPostsResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Items) != 2 || resp.Limit != 50 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestCategoriesAndStats(t *testing.T) {
	handler := newTestHandler(&mockStore{
		categories: []forum.Category{{ID: 1, Name: "General", Slug: "general"}},
		stats:      forum.Stats{Users: 10, Posts: 200, PostsWithEmbedding: 150},
	})

	rr := doRequest(t, handler, "GET", "/api/categories", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("categories: got %d, want %d", rr.Code, http.StatusOK)
	}
	var cats categoriesResponse
	if err := json.NewDecoder(rr.Body).Decode(&cats); err != nil {
		t.Fatalf("decode categories: %v", err)
	}
	if len(cats.Items) != 1 || cats.Items[0].Name != "General" {
		t.Errorf("unexpected categories: %+v", cats.Items)
	}

	rr = doRequest(t, handler, "GET", "/api/stats", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("stats: got %d, want %d", rr.Code, http.StatusOK)
	}
	var stats statsResponse
	if err := json.NewDecoder(rr.Body).Decode(&stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.Posts != 200 || stats.PostsWithEmbedding != 150 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestAsk_OK(t *testing.T) {
	handler := newTestHandler(&mockStore{hits: []forum.PostHit{fixtureHit(1, 10)}})

	rr := doRequest(t, handler, "POST", "/api/ask", `{"question":"docker or podman?"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var resp askResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Answer != "generated answer" {
		t.Errorf("unexpected answer: %q", resp.Answer)
	}
	if len(resp.Links) == 0 || !strings.HasPrefix(resp.Links[0].URL, "https://forum.example.com/t/") {
		t.Errorf("unexpected links: %+v", resp.Links)
	}
}

func TestAsk_EmptyQuestion_400(t *testing.T) {
	handler := newTestHandler(&mockStore{})

	rr := doRequest(t, handler, "POST", "/api/ask", `{"question":""}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if resp := decodeError(t, rr); resp.Code != codeEmptyQuery {
		t.Errorf("error code: got %s, want %s", resp.Code, codeEmptyQuery)
	}
}

func TestHealthz(t *testing.T) {
	handler := newTestHandler(&mockStore{})
	rr := doRequest(t, handler, "GET", "/healthz", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("healthy: got %d, want %d", rr.Code, http.StatusOK)
	}

	handler = newTestHandler(&mockStore{pingErr: errors.New("conn refused")})
	rr = doRequest(t, handler, "GET", "/healthz", "")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("degraded: got %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}

	var resp healthResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "degraded" || resp.Checks["database"] != "error" {
		t.Errorf("unexpected health report: %+v", resp)
	}
}
