package scrape

import (
	"testing"

	"github.com/dazhuang0717-violet/communicationscorer/pkg/reader"
)

func newTestReaderClient(t *testing.T, baseURL string) reader.Client {
	t.Helper()
	return reader.NewClient("", reader.WithBaseURL(baseURL))
}
