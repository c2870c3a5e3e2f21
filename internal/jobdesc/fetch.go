package jobdesc

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kmanav329/ai-resume-screener/internal/shared/telemetry"
)

// DefaultReaderProxyURL front-ends job postings with a text-extraction proxy
// so we get readable prose instead of markup.
const DefaultReaderProxyURL = "https://r.jina.ai/"

const fetchTimeout = 10 * time.Second

// maxFetchBytes caps how much of a job page we keep. Postings are short;
// anything beyond this is boilerplate.
const maxFetchBytes = 1 << 20

// Fetcher retrieves the text of a job posting URL through the reader proxy.
// Fetching is best effort: any failure yields an empty string so the caller
// can fall back to pasted text.
type Fetcher struct {
	ProxyURL string
	Client   *http.Client
}

func NewFetcher(proxyURL string) *Fetcher {
	if proxyURL == "" {
		proxyURL = DefaultReaderProxyURL
	}
	return &Fetcher{
		ProxyURL: proxyURL,
		Client:   &http.Client{Timeout: fetchTimeout},
	}
}

// Fetch returns the extracted text of the posting at url, or "" on any
// failure.
func (f *Fetcher) Fetch(ctx context.Context, url string) string {
	if strings.TrimSpace(url) == "" {
		return ""
	}

	target := strings.TrimSuffix(f.ProxyURL, "/") + "/" + url
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		telemetry.Warn("job url fetch failed", map[string]any{"url": url, "error": err.Error()})
		return ""
	}
	req.Header.Set("Accept", "text/plain")

	resp, err := f.Client.Do(req)
	if err != nil {
		telemetry.Warn("job url fetch failed", map[string]any{"url": url, "error": err.Error()})
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		telemetry.Warn("job url fetch failed", map[string]any{"url": url, "status": resp.StatusCode})
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		telemetry.Warn("job url fetch failed", map[string]any{"url": url, "error": err.Error()})
		return ""
	}
	return strings.TrimSpace(string(body))
}
