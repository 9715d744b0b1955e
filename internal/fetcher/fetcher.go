// Package fetcher retrieves product pages from the origin site while looking
// as much like a regular desktop browser session as possible.
package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"golang.org/x/net/html/charset"

	"topcare/listingworker/logger"
	errs "topcare/listingworker/pkg/errors"
	"topcare/listingworker/services/blocklist"
)

const (
	// retryDelay is the flat backoff for network errors and non-403 statuses
	retryDelay = 2 * time.Second
	// blockedBackoffUnit scales with the attempt number on 403 responses
	blockedBackoffUnit = 2 * time.Second
	// warmupDelayBase paces the gap between the warm-up and the real request
	warmupDelayBase = time.Second
	warmupDelayStep = 500 * time.Millisecond
)

// Page is the raw result of a successful fetch. Transient; discarded after
// extraction.
type Page struct {
	Body     string
	FinalURL string
}

// Options configures a Fetcher
type Options struct {
	Timeout   time.Duration
	Attempts  int
	BlockTTL  time.Duration
	Blocklist blocklist.Store
}

// Fetcher fetches single product pages with a persistent cookie session,
// browser-impersonation headers and bounded retry with backoff.
type Fetcher struct {
	origin     string
	originHost string
	client     *http.Client
	attempts   int
	blockTTL   time.Duration
	blocklist  blocklist.Store
	log        *logger.Logger
	sleep      func(time.Duration)
}

// New creates a fetcher for the given origin site root
func New(originURL string, opts Options) (*Fetcher, error) {
	parsed, err := url.Parse(originURL)
	if err != nil {
		return nil, fmt.Errorf("parse origin url: %w", err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("origin url must include a host")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	attempts := opts.Attempts
	if attempts <= 0 {
		attempts = 3
	}

	// Cookie jar carries the warm-up cookies into the product request.
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	return &Fetcher{
		origin:     parsed.Scheme + "://" + parsed.Host,
		originHost: parsed.Host,
		client: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		attempts:  attempts,
		blockTTL:  opts.BlockTTL,
		blocklist: opts.Blocklist,
		log:       logger.ForFetcher(),
		sleep:     time.Sleep,
	}, nil
}

// HTTPClient exposes the underlying client so tests can swap its transport
func (f *Fetcher) HTTPClient() *http.Client {
	return f.client
}

// Fetch retrieves one product page. Success is exactly HTTP 200; anything
// else is retried per the backoff policy and turned into a typed error once
// attempts are exhausted.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*Page, error) {
	if f.blocklist != nil {
		blocked, err := f.blocklist.Blocked(f.originHost)
		if err != nil {
			f.log.Debug().Err(err).Msg("Blocklist lookup failed")
		} else if blocked {
			return nil, errs.NewBlocked(pageURL, fmt.Sprintf("%s is marked blocked, skipping fetch", f.originHost))
		}
	}

	var lastStatus int
	var lastErr error

	for attempt := 0; attempt < f.attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, errs.NewTransport(pageURL, "fetch cancelled", err)
		}

		if attempt == 0 {
			// Warm-up against the site root so cookie challenges are answered
			// before the product request.
			if err := f.warmUp(ctx); err != nil {
				f.log.Warn().Err(err).Msg("Warm-up request failed")
				lastErr = err
				lastStatus = 0
				if attempt < f.attempts-1 {
					f.sleep(retryDelay)
				}
				continue
			}
			f.sleep(warmupDelayBase + time.Duration(attempt)*warmupDelayStep)
		}

		f.log.Debug().
			Str("url", pageURL).
			Int("attempt", attempt+1).
			Int("max_attempts", f.attempts).
			Msg("Fetching product page")

		page, status, err := f.get(ctx, pageURL)
		if err != nil {
			lastErr = err
			lastStatus = 0
			if attempt < f.attempts-1 {
				f.sleep(retryDelay)
			}
			continue
		}

		if status == http.StatusOK {
			return page, nil
		}

		lastStatus = status
		lastErr = nil
		if attempt < f.attempts-1 {
			if status == http.StatusForbidden {
				f.sleep(time.Duration(attempt+1) * blockedBackoffUnit)
			} else {
				f.sleep(retryDelay)
			}
		}
	}

	if lastStatus == http.StatusForbidden {
		if f.blocklist != nil && f.blockTTL > 0 {
			if err := f.blocklist.Block(f.originHost, f.blockTTL); err != nil {
				f.log.Debug().Err(err).Msg("Failed to set block marker")
			}
		}
		return nil, errs.NewBlocked(pageURL, "origin kept answering 403 after retries")
	}
	if lastErr != nil {
		return nil, errs.NewTransport(pageURL, "request failed after retries", lastErr)
	}
	return nil, errs.NewFetch(pageURL, lastStatus)
}

// warmUp visits the origin root to acquire session cookies. The status code
// does not matter here, only transport-level failures do.
func (f *Fetcher) warmUp(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.origin, nil)
	if err != nil {
		return err
	}
	f.setHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return nil
}

func (f *Fetcher) get(ctx context.Context, pageURL string) (*Page, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, 0, err
	}
	f.setHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, resp.StatusCode, nil
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response body: %w", err)
	}

	body, err := toUTF8(bodyBytes, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, resp.StatusCode, err
	}

	finalURL := pageURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &Page{Body: body, FinalURL: finalURL}, resp.StatusCode, nil
}

// setHeaders applies the fixed desktop-browser header set. The Referer points
// at the origin root so product requests look like in-site navigation.
func (f *Fetcher) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8,application/signed-exchange;v=b3;q=0.7")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("DNT", "1")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "none")
	req.Header.Set("Sec-Fetch-User", "?1")
	req.Header.Set("Cache-Control", "max-age=0")
	req.Header.Set("Referer", f.origin+"/")
}

// toUTF8 converts the body to UTF-8 based on Content-Type and sniffing
func toUTF8(body []byte, contentType string) (string, error) {
	encoding, name, _ := charset.DetermineEncoding(body, contentType)
	if name == "utf-8" || name == "UTF-8" {
		return string(body), nil
	}

	utf8Reader := encoding.NewDecoder().Reader(bytes.NewReader(body))
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, utf8Reader); err != nil {
		return "", fmt.Errorf("convert body to UTF-8: %w", err)
	}
	return buf.String(), nil
}
