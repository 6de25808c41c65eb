// Package fantasycritic implements the remote league API boundary:
// credential login, transparent token refresh and the snapshot fetches
// the diff engine runs on.
package fantasycritic

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
	"sync"
	"time"

	"fantasy-critic-bot/internal/adapters/metrics"
	"fantasy-critic-bot/internal/core/domain"
	"fantasy-critic-bot/internal/core/ports"
)

// ErrAuthExpired is re-exported so callers of this package don't need
// to import the ports package for error checks.
var ErrAuthExpired = ports.ErrAuthExpired

type Client struct {
	httpClient *http.Client
	baseURL    string

	mu        sync.Mutex
	auth      *domain.AuthCredentials
	onRefresh func(*domain.AuthCredentials)
}

func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: NewMetricsRoundTripper(http.DefaultTransport),
		},
		baseURL: baseURL,
	}
}

// NewTestClient creates a client without the metrics transport for use
// against httptest servers.
func NewTestClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
	}
}

func (c *Client) Login(ctx context.Context, emailAddress, password string) error {
	auth, err := c.postCredentials(ctx, "/account/login", map[string]string{
		"emailAddress": emailAddress,
		"password":     password,
	})
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	c.setAuthAndNotify(auth)
	return nil
}

func (c *Client) Authenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.auth != nil
}

func (c *Client) Auth() *domain.AuthCredentials {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.auth == nil {
		return nil
	}
	copied := *c.auth
	return &copied
}

// SetAuth installs previously persisted credentials without notifying
// the refresh hook.
func (c *Client) SetAuth(auth *domain.AuthCredentials) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.auth = auth
}

func (c *Client) OnAuthRefresh(fn func(*domain.AuthCredentials)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onRefresh = fn
}

func (c *Client) GetLeagueYear(ctx context.Context, league domain.League) (*domain.LeagueYear, error) {
	u := fmt.Sprintf("%s/League/GetLeagueYear?leagueID=%s&year=%d",
		c.baseURL, url.QueryEscape(league.ID), league.Year)

	var data domain.LeagueYear
	if err := c.getAndDecode(ctx, u, &data); err != nil {
		return nil, fmt.Errorf("fetch league year: %w", err)
	}
	return &data, nil
}

func (c *Client) GetLeagueActions(ctx context.Context, league domain.League) ([]domain.LeagueAction, error) {
	u := fmt.Sprintf("%s/League/GetLeagueActions?leagueID=%s&year=%d",
		c.baseURL, url.QueryEscape(league.ID), league.Year)

	var data []domain.LeagueAction
	if err := c.getAndDecode(ctx, u, &data); err != nil {
		return nil, fmt.Errorf("fetch league actions: %w", err)
	}
	return data, nil
}

func (c *Client) GetMasterGameYear(ctx context.Context, year int) ([]domain.MasterGameYear, error) {
	u := c.baseURL + "/game/MasterGameYear/" + strconv.Itoa(year)

	var data []domain.MasterGameYear
	if err := c.getAndDecode(ctx, u, &data); err != nil {
		return nil, fmt.Errorf("fetch master game list: %w", err)
	}
	return data, nil
}

func (c *Client) GetLeagueUpcoming(ctx context.Context, league domain.League) ([]domain.UpcomingGame, error) {
	u := fmt.Sprintf("%s/League/GetLeagueUpcoming?leagueID=%s&year=%d",
		c.baseURL, url.QueryEscape(league.ID), league.Year)

	var data []domain.UpcomingGame
	if err := c.getAndDecode(ctx, u, &data); err != nil {
		return nil, fmt.Errorf("fetch upcoming games: %w", err)
	}
	return data, nil
}

// getAndDecode performs an authenticated GET. A forbidden response
// triggers exactly one token refresh and retry; a second failure
// surfaces to the caller.
func (c *Client) getAndDecode(ctx context.Context, url string, dest any) error {
	auth := c.Auth()
	if auth == nil {
		return fmt.Errorf("not logged in")
	}

	status, err := c.doGet(ctx, url, auth.Token, dest)
	if err != nil {
		return err
	}
	if status == http.StatusOK {
		return nil
	}

	if status == http.StatusForbidden || status == http.StatusUnauthorized {
		refreshed, err := c.refresh(ctx, auth)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrAuthExpired, err)
		}
		status, err = c.doGet(ctx, url, refreshed.Token, dest)
		if err != nil {
			return err
		}
		if status == http.StatusOK {
			return nil
		}
	}

	return fmt.Errorf("unexpected status code: %d", status)
}

func (c *Client) doGet(ctx context.Context, url, token string, dest any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	return resp.StatusCode, nil
}

func (c *Client) refresh(ctx context.Context, auth *domain.AuthCredentials) (*domain.AuthCredentials, error) {
	refreshed, err := c.postCredentials(ctx, "/token/refresh", map[string]string{
		"token":        auth.Token,
		"refreshToken": auth.RefreshToken,
	})
	if err != nil {
		return nil, err
	}

	c.setAuthAndNotify(refreshed)
	return refreshed, nil
}

func (c *Client) postCredentials(ctx context.Context, path string, body map[string]string) (*domain.AuthCredentials, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var auth domain.AuthCredentials
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return nil, fmt.Errorf("decode credentials: %w", err)
	}
	if auth.Token == "" {
		return nil, fmt.Errorf("response carried no token")
	}
	return &auth, nil
}

func (c *Client) setAuthAndNotify(auth *domain.AuthCredentials) {
	c.mu.Lock()
	c.auth = auth
	fn := c.onRefresh
	c.mu.Unlock()

	if fn != nil {
		fn(auth)
	}
}

// -- Middleware --

type MetricsRoundTripper struct {
	Proxied http.RoundTripper
}

func NewMetricsRoundTripper(proxied http.RoundTripper) *MetricsRoundTripper {
	if proxied == nil {
		proxied = http.DefaultTransport
	}
	return &MetricsRoundTripper{Proxied: proxied}
}

func (mrt *MetricsRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := mrt.Proxied.RoundTrip(req)
	duration := time.Since(start).Seconds()

	status := "error"
	if err == nil {
		status = fmt.Sprintf("%d", resp.StatusCode)
	}

	endpoint := "unknown"
	path := req.URL.Path
	switch {
	case strings.Contains(path, "/account/login"):
		endpoint = "login"
	case strings.Contains(path, "/token/refresh"):
		endpoint = "refresh"
	case strings.Contains(path, "/League/GetLeagueYear"):
		endpoint = "league_year"
	case strings.Contains(path, "/League/GetLeagueActions"):
		endpoint = "league_actions"
	case strings.Contains(path, "/League/GetLeagueUpcoming"):
		endpoint = "league_upcoming"
	case strings.Contains(path, "/game/MasterGameYear/"):
		endpoint = "master_game_year"
	}

	metrics.FantasyCriticRequestDuration.WithLabelValues(endpoint, status).Observe(duration)
	metrics.FantasyCriticRequests.WithLabelValues(endpoint, status).Inc()

	return resp, err
}
