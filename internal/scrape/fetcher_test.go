package scrape

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// mockFetcher implements Fetcher for testing.
type mockFetcher struct {
	name  string
	text  string
	err   error
	calls int
}

func (m *mockFetcher) Name() string { return m.name }
func (m *mockFetcher) Fetch(_ context.Context, _ string) (string, error) {
	m.calls++
	return m.text, m.err
}

func longText(n int) string {
	return strings.Repeat("a", n)
}

func TestChain_Fetch_FirstSuccess(t *testing.T) {
	primary := &mockFetcher{name: "readable", text: longText(200)}
	fallback := &mockFetcher{name: "direct", text: longText(300)}

	chain := NewChain(primary, fallback)
	got := chain.Fetch(context.Background(), "https://example.com/a")

	assert.Equal(t, longText(200), got)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 0, fallback.calls)
}

func TestChain_Fetch_FallbackOnError(t *testing.T) {
	primary := &mockFetcher{name: "readable", err: errors.New("proxy down")}
	fallback := &mockFetcher{name: "direct", text: longText(300)}

	chain := NewChain(primary, fallback)
	got := chain.Fetch(context.Background(), "https://example.com/a")

	assert.Equal(t, longText(300), got)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestChain_Fetch_FallbackOnShortBody(t *testing.T) {
	primary := &mockFetcher{name: "readable", text: "too short"}
	fallback := &mockFetcher{name: "direct", text: longText(300)}

	chain := NewChain(primary, fallback)
	got := chain.Fetch(context.Background(), "https://example.com/a")

	assert.Equal(t, longText(300), got)
}

func TestChain_Fetch_AllFail(t *testing.T) {
	primary := &mockFetcher{name: "readable", err: errors.New("down")}
	fallback := &mockFetcher{name: "direct", text: "tiny"}

	chain := NewChain(primary, fallback)
	assert.Equal(t, "", chain.Fetch(context.Background(), "https://example.com/a"))
}

func TestChain_Fetch_BadURLSkipsNetwork(t *testing.T) {
	primary := &mockFetcher{name: "readable", text: longText(200)}
	chain := NewChain(primary)

	for _, u := range []string{"", "not-a-url", "ftp://example.com/x", "/relative/path", "https://"} {
		assert.Equal(t, "", chain.Fetch(context.Background(), u), "url %q", u)
	}
	assert.Equal(t, 0, primary.calls)
}

func TestChain_Fetch_Truncates(t *testing.T) {
	primary := &mockFetcher{name: "readable", text: longText(MaxContentLength + 500)}
	chain := NewChain(primary)

	got := chain.Fetch(context.Background(), "https://example.com/a")
	assert.Len(t, got, MaxContentLength)
}

func TestIsHTTPURL(t *testing.T) {
	assert.True(t, IsHTTPURL("https://example.com/a?b=c"))
	assert.True(t, IsHTTPURL("http://example.com"))
	assert.False(t, IsHTTPURL("example.com"))
	assert.False(t, IsHTTPURL("mailto:a@b.com"))
	assert.False(t, IsHTTPURL(""))
}
