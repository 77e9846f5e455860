package api

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

	"github.com/termle/admin-console/dto"
)

const defaultTimeout = 15 * time.Second

// maxErrorBody bounds how much of an error response is read for a message.
const maxErrorBody = 8 << 10

// Client is a typed HTTP client for the game backend's admin API. It does
// not retry, cache, or deduplicate; every failure surfaces as *Error.
type Client struct {
	base *url.URL
	http *http.Client
}

// NewClient builds a Client for the given base URL, e.g.
// "https://api.termle.example".
func NewClient(baseURL string) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q missing scheme or host", baseURL)
	}
	return &Client{
		base: u,
		http: &http.Client{Timeout: defaultTimeout},
	}, nil
}

// do performs one JSON request. credential may be empty for the OAuth
// endpoints; out may be nil when the response body is irrelevant.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, credential string, body, out any) error {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindTransport, Message: "encode request: " + err.Error()}
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return &Error{Kind: KindTransport, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	if credential != "" {
		req.Header.Set("Authorization", "Bearer "+credential)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindTransport, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &Error{
			Kind:    classify(resp.StatusCode),
			Status:  resp.StatusCode,
			Message: errorMessage(resp.StatusCode, raw),
		}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindTransport, Status: resp.StatusCode, Message: "decode response: " + err.Error()}
	}
	return nil
}

// AuthURL asks the backend for a provider authorization URL and the state
// value to carry across the redirect.
func (c *Client) AuthURL(ctx context.Context, redirectURI string) (*dto.AuthURLResponse, error) {
	q := url.Values{"redirect_uri": {redirectURI}}
	var out dto.AuthURLResponse
	if err := c.do(ctx, http.MethodGet, "/auth/google/auth-url", q, "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExchangeCode trades an authorization code (plus the state from AuthURL)
// for a bearer credential.
func (c *Client) ExchangeCode(ctx context.Context, code, state, redirectURI string) (*dto.ExchangeResponse, error) {
	body := dto.ExchangeRequest{Code: code, State: state, RedirectURI: redirectURI}
	var out dto.ExchangeResponse
	if err := c.do(ctx, http.MethodPost, "/auth/google/callback", nil, "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me fetches the admin identity, validating the credential as a side effect.
func (c *Client) Me(ctx context.Context, credential string) (*dto.Identity, error) {
	var out dto.Identity
	if err := c.do(ctx, http.MethodGet, "/admin/me", nil, credential, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Stats fetches aggregate game statistics including the "today" summary.
func (c *Client) Stats(ctx context.Context, credential string) (*dto.Stats, error) {
	var out dto.Stats
	if err := c.do(ctx, http.MethodGet, "/admin/stats", nil, credential, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Daily fetches the attempt distribution for one date (YYYY-MM-DD).
func (c *Client) Daily(ctx context.Context, credential, date string) (*dto.DailyStats, error) {
	var out dto.DailyStats
	if err := c.do(ctx, http.MethodGet, "/admin/daily/"+url.PathEscape(date), nil, credential, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Words lists scheduled words. year and month are optional filters; zero
// omits them.
func (c *Client) Words(ctx context.Context, credential string, year, month, limit, offset int) (*dto.WordsPage, error) {
	q := url.Values{
		"limit":  {strconv.Itoa(limit)},
		"offset": {strconv.Itoa(offset)},
	}
	if year > 0 {
		q.Set("year", strconv.Itoa(year))
	}
	if month > 0 {
		q.Set("month", strconv.Itoa(month))
	}
	var out dto.WordsPage
	if err := c.do(ctx, http.MethodGet, "/admin/words", q, credential, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PutWord creates or updates the word for a date. The backend takes the
// values as query parameters on the PUT.
func (c *Client) PutWord(ctx context.Context, credential, date, word string, difficultyRank int) (*dto.SaveWordResponse, error) {
	q := url.Values{
		"word":            {word},
		"difficulty_rank": {strconv.Itoa(difficultyRank)},
	}
	var out dto.SaveWordResponse
	if err := c.do(ctx, http.MethodPut, "/admin/words/"+url.PathEscape(date), q, credential, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Users lists registered users with streak stats.
func (c *Client) Users(ctx context.Context, credential string, limit, offset int) (*dto.UsersPage, error) {
	q := url.Values{
		"limit":  {strconv.Itoa(limit)},
		"offset": {strconv.Itoa(offset)},
	}
	var out dto.UsersPage
	if err := c.do(ctx, http.MethodGet, "/admin/users", q, credential, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Leaderboard fetches the all-time ranking.
func (c *Client) Leaderboard(ctx context.Context, credential string, limit int) (*dto.Leaderboard, error) {
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	var out dto.Leaderboard
	if err := c.do(ctx, http.MethodGet, "/admin/leaderboard", q, credential, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LeaderboardToday fetches today's ranking.
func (c *Client) LeaderboardToday(ctx context.Context, credential string, limit int) (*dto.TodayLeaderboard, error) {
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	var out dto.TodayLeaderboard
	if err := c.do(ctx, http.MethodGet, "/admin/leaderboard/today", q, credential, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
