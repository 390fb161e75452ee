package scrape

import (
	"context"

	"github.com/dazhuang0717-violet/communicationscorer/pkg/reader"
)

// ReadableFetcher adapts the extraction-proxy client as a Fetcher.
type ReadableFetcher struct {
	client reader.Client
}

// NewReadableFetcher wraps a reader client.
func NewReadableFetcher(client reader.Client) *ReadableFetcher {
	return &ReadableFetcher{client: client}
}

func (r *ReadableFetcher) Name() string { return "readable" }

// Fetch requests the proxy's plain-text rendering of targetURL.
func (r *ReadableFetcher) Fetch(ctx context.Context, targetURL string) (string, error) {
	resp, err := r.client.Extract(ctx, targetURL)
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}
