// Package scrape acquires best-effort plain text for coverage URLs.
// A readable-extraction proxy is tried first, then a direct fetch; both
// failing yields empty content, never an error.
package scrape

import (
	"context"
	"net/url"
	"unicode/utf8"

	"go.uber.org/zap"
)

const (
	// MinContentLength is the shortest extract considered usable.
	MinContentLength = 100
	// MaxContentLength caps what is handed to the judge.
	MaxContentLength = 10000
)

// Fetcher retrieves a raw plain-text extract for a URL.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context, targetURL string) (string, error)
}

// Chain tries fetchers in priority order and returns the first extract
// that passes the minimum-length check.
type Chain struct {
	fetchers []Fetcher
}

// NewChain creates a Chain. Fetchers are tried in the given order.
func NewChain(fetchers ...Fetcher) *Chain {
	return &Chain{fetchers: fetchers}
}

// Fetch returns a length-capped plain-text extract for targetURL, or ""
// when the URL is unusable or every fetcher fails. Content acquisition
// is best-effort: errors are logged and swallowed.
func (c *Chain) Fetch(ctx context.Context, targetURL string) string {
	if !IsHTTPURL(targetURL) {
		return ""
	}

	for _, f := range c.fetchers {
		text, err := f.Fetch(ctx, targetURL)
		if err != nil {
			zap.L().Debug("scrape: fetcher failed, trying next",
				zap.String("fetcher", f.Name()),
				zap.String("url", targetURL),
				zap.Error(err),
			)
			continue
		}
		if utf8.RuneCountInString(text) <= MinContentLength {
			zap.L().Debug("scrape: extract too short, trying next",
				zap.String("fetcher", f.Name()),
				zap.String("url", targetURL),
				zap.Int("length", len(text)),
			)
			continue
		}
		return clipRunes(text, MaxContentLength)
	}

	return ""
}

// IsHTTPURL reports whether s is an absolute http(s) URL.
func IsHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func clipRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
