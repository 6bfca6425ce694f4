package forumdex

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors mapped from API error codes.
// Use errors.Is() to check.
var (
	ErrEmptyQuery             = errors.New("query is empty")
	ErrInvalidThreshold       = errors.New("similarity threshold must be between 0 and 1")
	ErrInvalidWindow          = errors.New("trend window must be positive")
	ErrPostNotFound           = errors.New("post not found")
	ErrTopicNotFound          = errors.New("topic not found")
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	ErrAnswerProviderError    = errors.New("answer provider error")
	ErrStoreUnavailable       = errors.New("forum store unavailable")
	ErrUnauthorized           = errors.New("unauthorized")
)

var codeSentinels = map[string]error{
	"empty_query":              ErrEmptyQuery,
	"invalid_threshold":        ErrInvalidThreshold,
	"invalid_window":           ErrInvalidWindow,
	"post_not_found":           ErrPostNotFound,
	"topic_not_found":          ErrTopicNotFound,
	"embedding_provider_error": ErrEmbeddingProviderError,
	"answer_provider_error":    ErrAnswerProviderError,
	"store_unavailable":        ErrStoreUnavailable,
}

// APIError carries the HTTP status and error payload of a failed request.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("forumdex: %s (%s, status %d)", e.Message, e.Code, e.StatusCode)
}

// Is matches the sentinel error associated with the API error code.
func (e *APIError) Is(target error) bool {
	if target == ErrUnauthorized {
		return e.StatusCode == http.StatusUnauthorized
	}
	s, ok := codeSentinels[e.Code]
	return ok && s == target
}
