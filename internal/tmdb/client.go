package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"moviehub/internal/domain"
)

const (
	DefaultBaseURL     = "https://api.themoviedb.org/3/"
	DefaultTimeout     = 15 * time.Second
	DefaultCacheMaxAge = 2 * time.Hour
	DefaultLanguage    = "en"

	maxErrorBody = 4 << 10
)

var listingPaths = map[domain.ListingKind]string{
	domain.ListingNowPlaying: "movie/now_playing",
	domain.ListingPopular:    "movie/popular",
	domain.ListingTopRated:   "movie/top_rated",
	domain.ListingUpcoming:   "movie/upcoming",
	domain.ListingTrending:   "trending/movie/day",
}

type Options struct {
	BaseURL     string
	Token       string
	Language    string
	Timeout     time.Duration
	CacheMaxAge time.Duration
	// RateLimit is requests per second; zero disables limiting.
	RateLimit float64
	// Transport overrides the underlying round tripper (tests).
	Transport http.RoundTripper
}

// Client maps catalog calls onto the TMDB v3 REST API. It performs exactly
// one HTTP attempt per call; retrying is the caller's decision.
type Client struct {
	baseURL  *url.URL
	language string
	http     *http.Client
	limiter  *rate.Limiter
}

func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(opts.BaseURL, "/") {
		opts.BaseURL += "/"
	}
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("tmdb: invalid base url: %w", err)
	}
	if opts.Token == "" {
		return nil, errors.New("tmdb: token is empty")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Language == "" {
		opts.Language = DefaultLanguage
	}

	next := opts.Transport
	if next == nil {
		next = &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   opts.Timeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   opts.Timeout,
			ResponseHeaderTimeout: opts.Timeout,
			MaxIdleConnsPerHost:   8,
			IdleConnTimeout:       90 * time.Second,
		}
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RateLimit > 0 {
		burst := int(opts.RateLimit)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	return &Client{
		baseURL:  base,
		language: opts.Language,
		http: &http.Client{
			Timeout:   opts.Timeout,
			Transport: newAuthTransport(next, opts.Token, opts.CacheMaxAge),
		},
		limiter: limiter,
	}, nil
}

// Listing fetches one page of a home feed listing.
func (c *Client) Listing(ctx context.Context, kind domain.ListingKind, page int) ([]domain.ListingItem, error) {
	path, ok := listingPaths[kind]
	if !ok {
		return nil, &FetchError{Kind: KindUnknown, Op: "listing", Err: fmt.Errorf("unknown listing kind %q", kind)}
	}
	var dto moviesDTO
	if err := c.get(ctx, "listing "+string(kind), path, pageQuery(page), &dto); err != nil {
		return nil, err
	}
	return mapAll(dto.Results, (*movieResultDTO).toDomain), nil
}

func (c *Client) Search(ctx context.Context, query string, page int) ([]domain.SearchResult, error) {
	q := pageQuery(page)
	q.Set("query", query)
	q.Set("include_adult", "false")

	var dto searchDTO
	if err := c.get(ctx, "search", "search/movie", q, &dto); err != nil {
		return nil, err
	}
	return mapAll(dto.Results, (*searchResultDTO).toDomain), nil
}

func (c *Client) Detail(ctx context.Context, movieID int) (*domain.MovieDetail, error) {
	var dto movieDetailDTO
	if err := c.get(ctx, "detail", "movie/"+strconv.Itoa(movieID), nil, &dto); err != nil {
		return nil, err
	}
	detail := dto.toDomain()
	return &detail, nil
}

func (c *Client) Images(ctx context.Context, movieID int) ([]domain.BackdropImage, error) {
	q := url.Values{}
	q.Set("language", c.language)

	var dto imagesDTO
	if err := c.get(ctx, "images", "movie/"+strconv.Itoa(movieID)+"/images", q, &dto); err != nil {
		return nil, err
	}
	return mapAll(dto.Backdrops, (*backdropDTO).toDomain), nil
}

func (c *Client) Credits(ctx context.Context, movieID int) ([]domain.CastMember, error) {
	var dto creditsDTO
	if err := c.get(ctx, "credits", "movie/"+strconv.Itoa(movieID)+"/credits", nil, &dto); err != nil {
		return nil, err
	}
	return mapAll(dto.Cast, (*castDTO).toDomain), nil
}

func (c *Client) Genres(ctx context.Context) ([]domain.Genre, error) {
	var dto genresDTO
	if err := c.get(ctx, "genres", "genre/movie/list", nil, &dto); err != nil {
		return nil, err
	}
	return mapAll(dto.Genres, (*namedDTO).toGenre), nil
}

func (c *Client) Collection(ctx context.Context, collectionID int) (*domain.Collection, error) {
	var dto collectionDTO
	if err := c.get(ctx, "collection", "collection/"+strconv.Itoa(collectionID), nil, &dto); err != nil {
		return nil, err
	}
	collection := dto.toDomain()
	return &collection, nil
}

func pageQuery(page int) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	return q
}

func (c *Client) get(ctx context.Context, op, path string, query url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &FetchError{Kind: KindNetwork, Op: op, Err: err}
	}

	u := c.baseURL.ResolveReference(&url.URL{Path: path})
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return &FetchError{Kind: KindUnknown, Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &FetchError{Kind: KindNetwork, Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &FetchError{
			Kind:       KindProtocol,
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        errors.New(statusMessage(resp.StatusCode, body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if isTransportError(err) {
			return &FetchError{Kind: KindNetwork, Op: op, Err: err}
		}
		return &FetchError{Kind: KindUnknown, Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

func statusMessage(code int, body []byte) string {
	var status statusDTO
	if err := json.Unmarshal(body, &status); err == nil && status.StatusMessage != "" {
		return status.StatusMessage
	}
	return http.StatusText(code)
}

// isTransportError reports whether a body read failed because the
// connection broke or a deadline fired, as opposed to malformed JSON.
func isTransportError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
