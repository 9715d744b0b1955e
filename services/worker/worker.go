// Package worker drives the batch pipeline: fetch each product URL, assemble
// a draft, submit it, and report which URLs failed.
package worker

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"time"

	"topcare/listingworker/internal/client"
	"topcare/listingworker/internal/fetcher"
	"topcare/listingworker/internal/listing"
	"topcare/listingworker/logger"
	"topcare/listingworker/services/publisher"
)

// Fetcher retrieves one product page
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (*fetcher.Page, error)
}

// Assembler turns a fetched page into a listing draft
type Assembler interface {
	Assemble(page *fetcher.Page) (*listing.Draft, error)
}

// Submitter creates a listing from a draft
type Submitter interface {
	CreateListing(ctx context.Context, draft *listing.Draft) (*client.CreatedListing, error)
}

// Failure records one URL that did not produce a listing
type Failure struct {
	URL string
	Err error
}

// Result summarizes a batch run
type Result struct {
	Success int
	Failed  []Failure
}

// FailedURLs returns the failed URLs in batch order
func (r *Result) FailedURLs() []string {
	urls := make([]string, 0, len(r.Failed))
	for _, f := range r.Failed {
		urls = append(urls, f.URL)
	}
	return urls
}

// Worker processes a batch of product URLs sequentially. Pacing between URLs
// is a random delay in [minDelay, maxDelay) so the batch does not hammer the
// source site.
type Worker struct {
	fetcher   Fetcher
	assembler Assembler
	submitter Submitter
	publisher publisher.Publisher
	minDelay  time.Duration
	maxDelay  time.Duration
	log       *logger.Logger
	sleep     func(time.Duration)
}

// NewWorker creates a new worker. The publisher may be nil, in which case
// created listings are not announced on any stream.
func NewWorker(
	f Fetcher,
	a Assembler,
	s Submitter,
	pub publisher.Publisher,
	minDelay time.Duration,
	maxDelay time.Duration,
) *Worker {
	return &Worker{
		fetcher:   f,
		assembler: a,
		submitter: s,
		publisher: pub,
		minDelay:  minDelay,
		maxDelay:  maxDelay,
		log:       logger.ForWorker(),
		sleep:     time.Sleep,
	}
}

// Run processes the URLs in order and returns the batch result. One URL
// failing never aborts the rest of the batch; context cancellation does.
func (w *Worker) Run(ctx context.Context, urls []string) *Result {
	result := &Result{}

	for i, pageURL := range urls {
		if ctx.Err() != nil {
			w.log.Warn().Int("remaining", len(urls)-i).Msg("Batch interrupted")
			for _, rest := range urls[i:] {
				result.Failed = append(result.Failed, Failure{URL: rest, Err: ctx.Err()})
			}
			break
		}

		if i > 0 {
			w.sleep(w.delay())
		}

		w.log.Info().Int("index", i+1).Int("total", len(urls)).Str("url", pageURL).Msg("Processing URL")

		created, err := w.processOne(ctx, pageURL)
		if err != nil {
			w.log.WithError(err).Error().Str("url", pageURL).Msg("Listing failed")
			result.Failed = append(result.Failed, Failure{URL: pageURL, Err: err})
			continue
		}

		result.Success++
		w.announce(created)
	}

	w.trim()
	return result
}

// processOne runs the fetch, assemble, submit sequence for a single URL
func (w *Worker) processOne(ctx context.Context, pageURL string) (*client.CreatedListing, error) {
	page, err := w.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	draft, err := w.assembler.Assemble(page)
	if err != nil {
		return nil, err
	}

	return w.submitter.CreateListing(ctx, draft)
}

// announce publishes the created listing to the stream, if one is configured
func (w *Worker) announce(created *client.CreatedListing) {
	if w.publisher == nil {
		return
	}

	data, err := json.Marshal(created)
	if err != nil {
		logger.LogError("publisher", err, "failed to encode created listing %d", created.ID)
		return
	}
	if err := w.publisher.Publish(data); err != nil {
		logger.LogError("publisher", err, "failed to publish created listing %d", created.ID)
	}
}

func (w *Worker) trim() {
	if w.publisher == nil {
		return
	}
	if err := w.publisher.TrimStream(); err != nil {
		logger.LogError("publisher", err, "failed to trim stream")
	}
}

func (w *Worker) delay() time.Duration {
	if w.maxDelay <= w.minDelay {
		return w.minDelay
	}
	return w.minDelay + rand.N(w.maxDelay-w.minDelay)
}
