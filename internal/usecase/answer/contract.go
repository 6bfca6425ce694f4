package answer

import (
	"context"

	"github.com/kaverma/forumdex/internal/domain/search/request"
	"github.com/kaverma/forumdex/internal/domain/search/result"
)

// Searcher retrieves the forum posts used as answer context.
type Searcher interface {
	Search(ctx context.Context, req *request.Request) ([]result.Result, error)
}

// ChatClient generates a completion from a system and user prompt.
type ChatClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
