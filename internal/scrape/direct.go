package scrape

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
)

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// DirectFetcher fetches the page itself and extracts paragraph text.
// It is the fallback for pages the extraction proxy cannot render.
type DirectFetcher struct {
	client *http.Client
}

// NewDirectFetcher creates a DirectFetcher with a bounded timeout.
func NewDirectFetcher(timeout time.Duration) *DirectFetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &DirectFetcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
	}
}

func (d *DirectFetcher) Name() string { return "direct" }

// Fetch GETs the URL with a browser-like user agent and joins the text
// of all paragraph elements.
func (d *DirectFetcher) Fetch(ctx context.Context, targetURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return "", eris.Wrap(err, "direct: create request")
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return "", eris.Wrap(err, "direct: fetch")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", eris.Errorf("direct: status %d from %s", resp.StatusCode, targetURL)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", eris.Wrap(err, "direct: parse html")
	}

	var parts []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})

	return strings.Join(parts, " "), nil
}
