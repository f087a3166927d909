// Package client is the Go client of the catalog API. Reads are cached by
// their canonical query string and retried once; mutations are validated
// locally with the server's rules before they are sent.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"nettileffa/movie"
	"nettileffa/pkg/logger"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

const maxErrorBody = 64 << 10

var _ movie.Service = (*Client)(nil)

type Option func(c *Client)

// WithHTTPClient sets the transport used for both reads and writes.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.reads.HTTPClient = hc
			c.writes = hc
		}
	}
}

func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Client) {
		if l != nil {
			c.reads.Logger = leveledLogger{l}
		}
	}
}

// WithRetryWait bounds the pause before the single read retry.
func WithRetryWait(min, max time.Duration) Option {
	return func(c *Client) {
		c.reads.RetryWaitMin = min
		c.reads.RetryWaitMax = max
	}
}

// WithCacheSize bounds the cached response bodies, in bytes.
func WithCacheSize(size int64) Option {
	return func(c *Client) {
		if size > 0 {
			c.cacheSize = size
		}
	}
}

// WithCacheTTL bounds how long a cached response is served. Zero keeps
// entries until they are evicted.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		if ttl >= 0 {
			c.cacheTTL = ttl
		}
	}
}

type Client struct {
	base      *url.URL
	reads     *retryablehttp.Client
	writes    *http.Client
	cacheSize int64
	cacheTTL  time.Duration
	cache     *responseCache
}

func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", baseURL)
	}

	reads := retryablehttp.NewClient()
	reads.RetryMax = 1
	reads.RetryWaitMin = 100 * time.Millisecond
	reads.RetryWaitMax = 500 * time.Millisecond
	reads.ErrorHandler = retryablehttp.PassthroughErrorHandler
	reads.Logger = leveledLogger{logger.NOOPLogger}

	c := &Client{
		base:      base,
		reads:     reads,
		writes:    cleanhttp.DefaultPooledClient(),
		cacheSize: defaultCacheSize,
		cacheTTL:  defaultCacheTTL,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.cache, err = newResponseCache(c.cacheSize, c.cacheTTL)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Close releases the cache.
func (c *Client) Close() {
	c.cache.close()
}

// BuildListQuery encodes q with every default made explicit, so two
// queries that mean the same thing produce the same string.
func BuildListQuery(q movie.ListQuery) url.Values {
	q = q.Normalize()
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	v.Set("sort", string(q.Sort))
	v.Set("order", string(q.Order))
	v.Set("limit", strconv.Itoa(q.Limit))
	v.Set("offset", strconv.Itoa(q.Offset))
	return v
}

func (c *Client) ListMovies(ctx context.Context, q movie.ListQuery) (movie.Page, error) {
	if err := q.Normalize().Validate(); err != nil {
		return movie.Page{}, err
	}

	var page movie.Page
	err := c.cachedGet(ctx, "/api/movies", BuildListQuery(q), derived, &page)
	return page, err
}

func (c *Client) GetMovie(ctx context.Context, id int64) (movie.Movie, error) {
	if id <= 0 {
		return movie.Movie{}, movie.ErrMovieNotFound
	}

	var m movie.Movie
	err := c.cachedGet(ctx, moviePath(id), nil, stable, &m)
	return m, err
}

func (c *Client) ListGenres(ctx context.Context) ([]string, error) {
	genres := []string{}
	err := c.cachedGet(ctx, "/api/genres", nil, derived, &genres)
	return genres, err
}

func (c *Client) SearchActors(ctx context.Context, query string) ([]movie.Person, error) {
	return c.searchPeople(ctx, "/api/actors", query)
}

func (c *Client) SearchDirectors(ctx context.Context, query string) ([]movie.Person, error) {
	return c.searchPeople(ctx, "/api/directors", query)
}

func (c *Client) searchPeople(ctx context.Context, path, query string) ([]movie.Person, error) {
	v := url.Values{}
	if query = strings.TrimSpace(query); query != "" {
		v.Set("search", query)
	}

	people := []movie.Person{}
	err := c.cachedGet(ctx, path, v, derived, &people)
	return people, err
}

func (c *Client) CreateMovie(ctx context.Context, in movie.MovieInput) (movie.Movie, error) {
	return c.mutate(ctx, http.MethodPost, "/api/movies", in)
}

// UpdateMovie replaces every field of the movie, like the server does.
func (c *Client) UpdateMovie(ctx context.Context, id int64, in movie.MovieInput) (movie.Movie, error) {
	if id <= 0 {
		return movie.Movie{}, movie.ErrMovieNotFound
	}
	return c.mutate(ctx, http.MethodPut, moviePath(id), in)
}

func (c *Client) mutate(ctx context.Context, method, path string, in movie.MovieInput) (movie.Movie, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return movie.Movie{}, err
	}

	body, err := json.Marshal(in)
	if err != nil {
		return movie.Movie{}, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path, nil), bytes.NewReader(body))
	if err != nil {
		return movie.Movie{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.writes.Do(req)
	if err != nil {
		return movie.Movie{}, err
	}
	raw, err := readBody(resp)
	if err != nil {
		return movie.Movie{}, err
	}

	var m movie.Movie
	if err := json.Unmarshal(raw, &m); err != nil {
		return movie.Movie{}, fmt.Errorf("decode movie: %w", err)
	}

	c.cache.commit(stableKey(moviePath(m.ID)), raw)
	return m, nil
}

type cacheScope int

const (
	// stable entries are refreshed by writes to the same resource and
	// expire after the cache TTL.
	stable cacheScope = iota
	// derived entries depend on the whole catalog and are dropped on any
	// successful write.
	derived
)

func (c *Client) cachedGet(ctx context.Context, path string, query url.Values, scope cacheScope, out interface{}) error {
	target := path
	if encoded := query.Encode(); encoded != "" {
		target += "?" + encoded
	}

	generation := c.cache.snapshot()
	key := stableKey(target)
	if scope == derived {
		key = derivedKey(generation, target)
	}

	if raw, ok := c.cache.get(key); ok {
		return json.Unmarshal(raw, out)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.url(path, query), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	// After the last attempt the passthrough handler returns the final
	// response together with the retry error; the response wins.
	resp, err := c.reads.Do(req)
	if resp == nil {
		return err
	}
	raw, err := readBody(resp)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	// A write that finished while this read was in flight may already
	// have stored a newer body; the older one is returned but not cached.
	c.cache.fill(generation, key, raw)
	return nil
}

func (c *Client) url(path string, query url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(c.base.Path, "/") + path
	u.RawQuery = query.Encode()
	return u.String()
}

func readBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return io.ReadAll(resp.Body)
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return nil, newAPIError(resp.StatusCode, raw)
}

func moviePath(id int64) string {
	return "/api/movies/" + strconv.FormatInt(id, 10)
}

// leveledLogger adapts zap to retryablehttp.LeveledLogger.
type leveledLogger struct {
	l *zap.SugaredLogger
}

func (l leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.l.Errorw(msg, keysAndValues...)
}

func (l leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.l.Infow(msg, keysAndValues...)
}

func (l leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.l.Debugw(msg, keysAndValues...)
}

func (l leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.l.Warnw(msg, keysAndValues...)
}
