package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/alnah/go-simtex/internal/assets"
	"github.com/alnah/go-simtex/internal/yamlutil"
)

// ErrFetch indicates a default configuration could not be obtained.
var ErrFetch = errors.New("cannot fetch default config")

// BranchPlaceholder is replaced by the branch name in RemoteConfig.URL.
const BranchPlaceholder = "{branch}"

// Fetch defaults.
const (
	DefaultAttempts     = 3
	DefaultFetchTimeout = 10 * time.Second
	defaultBackoff      = 500 * time.Millisecond
)

// Fetcher supplies a complete default configuration file.
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// EmbeddedFetcher serves the configuration compiled into the binary.
type EmbeddedFetcher struct{}

// Fetch returns the embedded default configuration.
func (EmbeddedFetcher) Fetch(context.Context) ([]byte, error) {
	return assets.DefaultConfig(), nil
}

// HTTPFetcher downloads the default configuration from a repository, trying
// the main branch then the fallback branch.
type HTTPFetcher struct {
	url      string
	branches []string
	attempts int
	backoff  time.Duration
	client   *http.Client
	logger   zerolog.Logger
}

// HTTPOption configures an HTTPFetcher.
type HTTPOption func(*HTTPFetcher)

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(f *HTTPFetcher) {
		f.client = c
	}
}

// WithBackoff sets the pause between attempts on the same branch.
func WithBackoff(d time.Duration) HTTPOption {
	return func(f *HTTPFetcher) {
		f.backoff = d
	}
}

// WithFetchLogger sets the logger for fetch attempts.
func WithFetchLogger(log zerolog.Logger) HTTPOption {
	return func(f *HTTPFetcher) {
		f.logger = log
	}
}

// NewHTTPFetcher creates a fetcher for the remote section of a configuration.
func NewHTTPFetcher(r RemoteConfig, opts ...HTTPOption) *HTTPFetcher {
	f := &HTTPFetcher{
		url:      r.URL,
		attempts: r.Attempts,
		backoff:  defaultBackoff,
		client:   &http.Client{Timeout: DefaultFetchTimeout},
		logger:   zerolog.Nop(),
	}
	if f.attempts <= 0 {
		f.attempts = DefaultAttempts
	}
	for _, b := range []string{r.Branch, r.FallbackBranch} {
		if b != "" && (len(f.branches) == 0 || f.branches[0] != b) {
			f.branches = append(f.branches, b)
		}
	}
	if len(f.branches) == 0 {
		f.branches = []string{"main"}
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads the configuration. Each branch is tried up to the
// configured number of attempts; client errors (4xx) move on to the next
// branch immediately.
func (f *HTTPFetcher) Fetch(ctx context.Context) ([]byte, error) {
	if f.url == "" {
		return nil, fmt.Errorf("%w: remote.url is empty", ErrFetch)
	}

	var lastErr error
	for _, branch := range f.branches {
		url := strings.ReplaceAll(f.url, BranchPlaceholder, branch)

		for attempt := 1; attempt <= f.attempts; attempt++ {
			data, retry, err := f.get(ctx, url)
			if err == nil {
				f.logger.Debug().Str("url", url).Int("attempt", attempt).Msg("config fetched")
				return data, nil
			}
			lastErr = err
			f.logger.Debug().Err(err).Str("url", url).Int("attempt", attempt).Msg("config fetch failed")

			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %w", ErrFetch, ctx.Err())
			}
			if !retry {
				break
			}
			if attempt < f.attempts {
				if err := sleep(ctx, f.backoff); err != nil {
					return nil, fmt.Errorf("%w: %w", ErrFetch, err)
				}
			}
		}
	}
	return nil, fmt.Errorf("%w: %w", ErrFetch, lastErr)
}

// get performs one request. retry reports whether the failure is transient.
func (f *HTTPFetcher) get(ctx context.Context, url string) (data []byte, retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		transient := resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
		return nil, transient, fmt.Errorf("GET %s: %s", url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, int64(yamlutil.MaxInputSize)+1))
	if err != nil {
		return nil, true, err
	}
	if len(body) > yamlutil.MaxInputSize {
		return nil, false, fmt.Errorf("GET %s: %w", url, yamlutil.ErrInputTooLarge)
	}
	if _, err := Parse(body); err != nil {
		return nil, false, fmt.Errorf("GET %s: %w", url, err)
	}
	return body, false, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// chain tries each fetcher in order.
type chain []Fetcher

// Chain returns a Fetcher that returns the first successful result of
// fetchers.
func Chain(fetchers ...Fetcher) Fetcher {
	return chain(fetchers)
}

func (c chain) Fetch(ctx context.Context) ([]byte, error) {
	var errs []error
	for _, f := range c {
		data, err := f.Fetch(ctx)
		if err == nil {
			return data, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil, fmt.Errorf("%w: no source configured", ErrFetch)
	}
	return nil, errors.Join(errs...)
}
