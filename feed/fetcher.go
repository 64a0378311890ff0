package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// Fetcher retrieves the article collection.
type Fetcher interface {
	Fetch(ctx context.Context) ([]Article, error)
}

// FetcherFunc adapts a plain function to the Fetcher interface.
type FetcherFunc func(ctx context.Context) ([]Article, error)

// Fetch calls fn(ctx).
func (fn FetcherFunc) Fetch(ctx context.Context) ([]Article, error) {
	return fn(ctx)
}

// HTTPFetcher issues a single GET against the articles endpoint per call.
// It applies no timeout and no retry; the caller's context is the only way
// to abandon a request.
type HTTPFetcher struct {
	endpoint string
	client   *http.Client
	logger   echo.Logger
}

// FetcherOption configures an HTTPFetcher.
type FetcherOption func(*HTTPFetcher)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(c *http.Client) FetcherOption {
	return func(f *HTTPFetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// WithFetcherLogger sets the logger used for failure diagnostics.
func WithFetcherLogger(l echo.Logger) FetcherOption {
	return func(f *HTTPFetcher) {
		if l != nil {
			f.logger = l
		}
	}
}

// NewHTTPFetcher creates a fetcher for endpoint.
func NewHTTPFetcher(endpoint string, opts ...FetcherOption) *HTTPFetcher {
	f := &HTTPFetcher{
		endpoint: endpoint,
		client:   &http.Client{},
		logger:   log.New("feed"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Endpoint returns the configured articles URL.
func (f *HTTPFetcher) Endpoint() string {
	return f.endpoint
}

// Fetch performs the GET and decodes the JSON array of articles. Every
// failure is returned as a *FetchError.
func (f *HTTPFetcher) Fetch(ctx context.Context) ([]Article, error) {
	articles, err := f.fetch(ctx)
	if err != nil {
		if ctx.Err() != nil {
			f.logger.Debugf("fetch %s abandoned: %v", f.endpoint, err)
		} else {
			f.logger.Errorf("Error fetching articles from %s: %v", f.endpoint, err)
		}
		return nil, err
	}
	return articles, nil
}

func (f *HTTPFetcher) fetch(ctx context.Context) ([]Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint, http.NoBody)
	if err != nil {
		return nil, &FetchError{Kind: KindTransport, Err: err}
	}
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &FetchError{
			Kind:       KindHTTPStatus,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("GET %s: %s", f.endpoint, resp.Status),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Kind: KindTransport, Err: err}
	}
	return DecodeArticles(body)
}

// DecodeArticles decodes a JSON array of articles. Any other JSON shape,
// including null, is a decode failure.
func DecodeArticles(body []byte) ([]Article, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &FetchError{Kind: KindDecode, Err: errors.New("response is not a JSON array")}
	}
	articles := []Article{}
	if err := json.Unmarshal(trimmed, &articles); err != nil {
		return nil, &FetchError{Kind: KindDecode, Err: err}
	}
	return articles, nil
}
