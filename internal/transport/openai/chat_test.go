package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/kaverma/forumdex/internal/domain"
)

func TestChatClient_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "test",
			"object": "chat.completion",
			"model":  "test-model",
			"choices": []map[string]any{
				{
					"index":         0,
					"message":       map[string]any{"role": "assistant", "content": "the answer"},
					"finish_reason": "stop",
				},
			},
		})
	}))
	defer server.Close()

	c := NewChatClient(&ChatConfig{
		APIKey:    "test-key",
		BaseURL:   server.URL,
		Model:     "test-model",
		MaxTokens: 100,
		Logger:    zap.NewNop(),
	})

	got, err := c.Complete(context.Background(), "system prompt", "user prompt")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if got != "the answer" {
		t.Errorf("expected %q, got %q", "the answer", got)
	}
}

func TestChatClient_APIErrorWrapsSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "backend exploded", "type": "server_error"},
		})
	}))
	defer server.Close()

	c := NewChatClient(&ChatConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "test-model",
		Logger:  zap.NewNop(),
	})

	_, err := c.Complete(context.Background(), "sys", "user")
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if !errors.Is(err, domain.ErrAnswerProviderError) {
		t.Errorf("expected ErrAnswerProviderError, got %v", err)
	}
}
