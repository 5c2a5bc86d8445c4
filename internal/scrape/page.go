// Package scrape fetches job posting pages over HTTP and strips them to
// plaintext suitable for LLM extraction.
package scrape

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// Options configures the page fetcher.
type Options struct {
	UserAgent string
	Timeout   time.Duration
	HostRate  rate.Limit // requests per second per host
	MaxBody   int64      // response body cap in bytes
}

// PageFetcher fetches HTML via net/http with a per-host rate limit and
// converts it to plaintext. One fetch per identifier, no retries: a failed
// fetch skips that identifier only.
type PageFetcher struct {
	client *http.Client
	opts   Options

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewPageFetcher creates a PageFetcher with sensible defaults.
func NewPageFetcher(opts Options) *PageFetcher {
	if opts.Timeout == 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "Mozilla/5.0 (compatible; JobScoutBot/1.0)"
	}
	if opts.HostRate == 0 {
		opts.HostRate = 2
	}
	if opts.MaxBody == 0 {
		opts.MaxBody = 512 * 1024
	}
	return &PageFetcher{
		client: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		opts:     opts,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Fetch retrieves targetURL and returns its text content with scripts,
// styles, and chrome stripped.
func (p *PageFetcher) Fetch(ctx context.Context, targetURL string) (string, error) {
	if err := p.limiter(targetURL).Wait(ctx); err != nil {
		return "", eris.Wrap(err, "scrape: rate limit wait")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return "", eris.Wrap(err, "scrape: create request")
	}
	req.Header.Set("User-Agent", p.opts.UserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", eris.Wrap(err, "scrape: fetch")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, p.opts.MaxBody))
	if err != nil {
		return "", eris.Wrap(err, "scrape: read body")
	}

	if resp.StatusCode >= 400 {
		return "", eris.Errorf("scrape: status %d", resp.StatusCode)
	}

	text := StripHTML(string(body))
	if text == "" {
		return "", eris.New("scrape: empty page")
	}
	return text, nil
}

// limiter returns the rate limiter for targetURL's host, creating it on
// first use. Unparseable URLs share the "" limiter; the fetch itself will
// surface the real error.
func (p *PageFetcher) limiter(targetURL string) *rate.Limiter {
	host := ""
	if u, err := url.Parse(targetURL); err == nil {
		host = u.Host
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	l, ok := p.limiters[host]
	if !ok {
		l = rate.NewLimiter(p.opts.HostRate, 1)
		p.limiters[host] = l
	}
	return l
}

// StripHTML removes script/style/nav/footer blocks, strips tags, decodes
// common entities, and collapses whitespace.
func StripHTML(html string) string {
	for _, tag := range []string{"script", "style", "nav", "footer"} {
		re := regexp.MustCompile(`(?is)<` + tag + `[^>]*>.*?</` + tag + `>`)
		html = re.ReplaceAllString(html, "")
	}

	tagRe := regexp.MustCompile(`<[^>]+>`)
	html = tagRe.ReplaceAllString(html, " ")

	r := strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
		"&nbsp;", " ",
	)
	html = r.Replace(html)

	spaceRe := regexp.MustCompile(`[ \t]+`)
	html = spaceRe.ReplaceAllString(html, " ")

	nlRe := regexp.MustCompile(`\n{3,}`)
	html = nlRe.ReplaceAllString(html, "\n\n")

	return strings.TrimSpace(html)
}
