package github

import (
	"context"

	"github.com/fumiya-kume/ccrefactor/internal/types"
)

// ContentFetcher defines the read-only GitHub operations ccrefactor needs
type ContentFetcher interface {
	FetchContent(ctx context.Context, ref types.FileRef) (string, error)
}

// Ensure our Client implements the interface
var _ ContentFetcher = (*Client)(nil)
