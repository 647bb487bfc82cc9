// Package pipeline wires fetching, record building and the per-cycle
// collection orchestration together.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"

	"github.com/hsolkim/seaboard/internal/model"
)

// ErrRobotsDisallowed marks a source skipped for robots.txt compliance, so
// the collector can report it as skipped rather than failed.
var ErrRobotsDisallowed = errors.New("disallowed by robots.txt")

// Fetcher performs bounded outbound GETs: fixed user agent, per-domain
// rate limiting, capped redirects and body size, optional robots.txt
// compliance, and charset decoding (the Korean sources are not always
// UTF-8).
type Fetcher struct {
	client    *http.Client
	userAgent string
	maxBytes  int64
	robots    *robotsChecker

	mu           sync.Mutex
	limiters     map[string]*rate.Limiter
	defaultRate  rate.Limit
	defaultBurst int
}

// NewFetcher creates a fetcher from the HTTP configuration.
func NewFetcher(cfg model.HTTPConfig) *Fetcher {
	f := &Fetcher{
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: proxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent:    cfg.UserAgent,
		maxBytes:     cfg.MaxBodyBytes,
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  rate.Limit(cfg.RequestsPerSecond),
		defaultBurst: cfg.Burst,
	}
	if f.defaultRate <= 0 {
		f.defaultRate = 2
	}
	if f.defaultBurst <= 0 {
		f.defaultBurst = 4
	}
	if cfg.RespectRobots {
		f.robots = newRobotsChecker(cfg.UserAgent, cfg.Timeout)
	}
	return f
}

// Fetch retrieves the body of rawURL, decoded to UTF-8. checkRobots is off
// for the RSS endpoint, which is addressed like an API.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, checkRobots bool) ([]byte, error) {
	if err := f.wait(ctx, rawURL); err != nil {
		return nil, err
	}

	if checkRobots && f.robots != nil && !f.robots.allowed(ctx, rawURL) {
		return nil, fmt.Errorf("%s: %w", rawURL, ErrRobotsDisallowed)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ko-KR,ko;q=0.9,en-US;q=0.8,en;q=0.7")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	reader, err := charset.NewReader(io.LimitReader(resp.Body, f.maxBytes), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("charset: %w", err)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// wait blocks on the per-domain rate limiter.
func (f *Fetcher) wait(ctx context.Context, rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse URL: %w", err)
	}

	f.mu.Lock()
	limiter, ok := f.limiters[parsed.Host]
	if !ok {
		limiter = rate.NewLimiter(f.defaultRate, f.defaultBurst)
		f.limiters[parsed.Host] = limiter
	}
	f.mu.Unlock()

	return limiter.Wait(ctx)
}

// proxyFunc honors explicit proxy settings and falls back to the
// environment.
func proxyFunc(httpProxy, httpsProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}
	return func(req *http.Request) (*url.URL, error) {
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}
