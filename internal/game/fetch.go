package game

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/gamedock/gamedock/internal/infrastructure/resilience"
)

// Fetcher loads game markup from a remote URL. A circuit breaker guards
// the outbound path so a flapping origin fails fast instead of holding
// request handlers on retries.
type Fetcher struct {
	client   *resty.Client
	breaker  *resilience.Breaker
	maxBytes int
}

// NewFetcher creates a fetcher with retry, timeout, and breaker limits.
func NewFetcher(timeout time.Duration, maxBytes int) *Fetcher {
	if maxBytes <= 0 || maxBytes > MaxHTMLSize {
		maxBytes = MaxHTMLSize
	}
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)
	breaker := resilience.NewBreaker(resilience.Settings{
		FailureThreshold: 5,
		Cooldown:         30 * time.Second,
	})
	return &Fetcher{client: client, breaker: breaker, maxBytes: maxBytes}
}

// Fetch retrieves game HTML from rawURL and wraps it as GameData. The
// title falls back to the URL's base path segment.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (GameData, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return GameData{}, fmt.Errorf("invalid game url %q", rawURL)
	}

	var body []byte
	err = f.breaker.Do(func() error {
		resp, reqErr := f.client.R().SetContext(ctx).Get(rawURL)
		if reqErr != nil {
			return fmt.Errorf("fetch game: %w", reqErr)
		}
		if resp.IsError() {
			return fmt.Errorf("fetch game: unexpected status %s", resp.Status())
		}
		body = resp.Body()
		return nil
	})
	if err != nil {
		return GameData{}, err
	}

	if len(body) == 0 {
		return GameData{}, fmt.Errorf("fetch game: empty response")
	}
	if len(body) > f.maxBytes {
		return GameData{}, fmt.Errorf("fetch game: response exceeds %d bytes", f.maxBytes)
	}

	title := strings.TrimSuffix(path.Base(u.Path), path.Ext(u.Path))
	if title == "" || title == "." || title == "/" {
		title = u.Host
	}

	return GameData{
		HTML: string(body),
		Meta: Metadata{Title: title, Type: "remote", Generated: false},
	}, nil
}
