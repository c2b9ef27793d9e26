package scrape

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/teranos/recruitiq/errors"
	"github.com/teranos/recruitiq/internal/httpclient"
	"github.com/teranos/recruitiq/sym"
)

// FetcherOptions configures a Fetcher
type FetcherOptions struct {
	Delay        time.Duration // minimum gap between requests; 0 disables the delay
	Timeout      time.Duration
	UserAgent    string
	AllowPrivate bool // permit loopback targets (local fixtures)
}

// Fetcher is the HTTP side shared by every scraper: one SSRF-guarded
// client and one politeness limiter, so the delay holds across sources.
type Fetcher struct {
	client  *httpclient.SaferClient
	limiter *rate.Limiter
	timeout time.Duration
	logger  *zap.SugaredLogger
}

// NewFetcher creates a fetcher
func NewFetcher(opts FetcherOptions, logger *zap.SugaredLogger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	limit := rate.Inf
	if opts.Delay > 0 {
		limit = rate.Every(opts.Delay)
	}
	return &Fetcher{
		client: httpclient.NewSaferClient(httpclient.Options{
			Timeout:      opts.Timeout,
			UserAgent:    opts.UserAgent,
			AllowPrivate: opts.AllowPrivate,
		}),
		limiter: rate.NewLimiter(limit, 1),
		timeout: opts.Timeout,
		logger:  logger,
	}
}

// Wait blocks until the politeness delay allows another request
func (f *Fetcher) Wait(ctx context.Context) error {
	start := time.Now()
	if err := f.limiter.Wait(ctx); err != nil {
		return errors.Wrap(err, "politeness delay interrupted")
	}
	if waited := time.Since(start); waited > time.Millisecond {
		f.logger.Debugw("Waited for politeness delay", "duration_ms", waited.Milliseconds(), "symbol", sym.Limiter)
	}
	return nil
}

// GetJSON waits for the limiter and decodes a JSON document from rawURL
func (f *Fetcher) GetJSON(ctx context.Context, rawURL string, out interface{}) error {
	if err := f.Wait(ctx); err != nil {
		return err
	}
	f.logger.Debugw("GET", "url", rawURL)
	return f.client.GetJSON(ctx, rawURL, out)
}

// NewCollector returns a synchronous colly collector that shares the
// fetcher's guarded transport and User-Agent
func (f *Fetcher) NewCollector() *colly.Collector {
	c := colly.NewCollector(
		colly.UserAgent(f.client.UserAgent()),
		colly.AllowURLRevisit(),
	)
	c.WithTransport(f.client.Transport())
	if f.timeout > 0 {
		c.SetRequestTimeout(f.timeout)
	}
	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		r.Headers.Set("Accept-Language", "en-US,en;q=0.9")
	})
	return c
}

// Visit waits for the limiter, validates rawURL and visits it with c.
// Non-2xx responses are returned as errors.
func (f *Fetcher) Visit(ctx context.Context, c *colly.Collector, rawURL string) error {
	if err := f.Wait(ctx); err != nil {
		return err
	}
	if _, err := f.client.ValidateURL(rawURL); err != nil {
		return errors.Wrap(err, "request blocked by SSRF protection")
	}
	f.logger.Debugw("Visit", "url", rawURL)
	if err := c.Visit(rawURL); err != nil {
		return errors.Wrapf(err, "visit %s", rawURL)
	}
	return nil
}

// ResolveURL makes href absolute against base and drops fragments
func ResolveURL(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := b.ResolveReference(ref)
	resolved.Fragment = ""
	return resolved.String()
}
