package riot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultMatchCount = 20

	// Upper bound on consecutive 429 responses for one request
	maxRateLimitRetries = 5
)

// Client is a rate-limited Riot TFT API client
type Client struct {
	apiKey     string
	httpClient *http.Client
	policy     Policy
	log        zerolog.Logger
	matchCount int

	perSecond int
	per2Min   int
	cacheTTL  time.Duration

	limiter *rateLimiter
	cache   *responseCache

	platformURL func(Platform) string
	regionURL   func(Region) string
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL routes every platform and region to one host (useful for testing)
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.platformURL = func(Platform) string { return base }
		c.regionURL = func(Region) string { return base }
	}
}

// WithTimeout sets the HTTP client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithRateLimit overrides the per-second and per-two-minute request budgets
func WithRateLimit(perSecond, per2Min int) Option {
	return func(c *Client) {
		c.perSecond = perSecond
		c.per2Min = per2Min
	}
}

// WithCacheTTL sets how long successful responses are reused. Zero disables caching.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.cacheTTL = ttl
	}
}

// WithPolicy replaces the status handling policy
func WithPolicy(p Policy) Option {
	return func(c *Client) {
		c.policy = p
	}
}

// WithLogger sets the logger used for rate limit, retry and cache events
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithMatchCount sets how many match IDs are requested from match history
func WithMatchCount(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.matchCount = n
		}
	}
}

// NewClient creates a new Riot API client
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key cannot be empty")
	}

	c := &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		policy:      DefaultPolicy(),
		log:         zerolog.Nop(),
		matchCount:  defaultMatchCount,
		platformURL: platformBaseURL,
		regionURL:   regionBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.limiter = newRateLimiter(c.perSecond, c.per2Min, c.log)
	c.cache = newResponseCache(c.cacheTTL)
	return c, nil
}

// doRequest makes a rate-limited GET, applying the status policy, and decodes the body into result
func (c *Client) doRequest(ctx context.Context, url string, result interface{}) error {
	if body, ok := c.cache.get(url); ok {
		c.log.Debug().Str("url", url).Msg("cache hit")
		return json.Unmarshal(body, result)
	}

	throttled := 0
	for attempt := 1; ; {
		if err := c.limiter.wait(ctx); err != nil {
			return err
		}

		status, header, body, err := c.get(ctx, url)
		if err != nil {
			return err
		}

		if status == http.StatusOK {
			c.cache.put(url, body)
			if err := json.Unmarshal(body, result); err != nil {
				return fmt.Errorf("failed to decode %s: %w", url, err)
			}
			return nil
		}

		if status == http.StatusTooManyRequests && throttled < maxRateLimitRetries {
			throttled++
			waitTime := 10 * time.Second
			if seconds, err := strconv.Atoi(header.Get("Retry-After")); err == nil {
				waitTime = time.Duration(seconds) * time.Second
			}
			c.log.Warn().Str("url", url).Dur("wait", waitTime).Msg("429 rate limited")
			if err := sleep(ctx, waitTime); err != nil {
				return err
			}
			continue
		}

		waitTime, ok := c.policy.delay(status, attempt)
		if !ok {
			return &APIError{StatusCode: status, URL: url}
		}
		c.log.Debug().
			Str("url", url).
			Int("status", status).
			Int("attempt", attempt).
			Dur("wait", waitTime).
			Msg("retrying request")
		if err := sleep(ctx, waitTime); err != nil {
			return err
		}
		attempt++
	}
}

func (c *Client) get(ctx context.Context, url string) (int, http.Header, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Riot-Token", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, resp.Header, body, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// GetAccountByRiotID fetches account info by Riot ID (gameName#tagLine)
func (c *Client) GetAccountByRiotID(ctx context.Context, region Region, gameName, tagLine string) (*AccountResponse, error) {
	u := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s",
		c.regionURL(region), url.PathEscape(gameName), url.PathEscape(tagLine))

	var account AccountResponse
	if err := c.doRequest(ctx, u, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// GetAccountByPUUID fetches account info for a PUUID
func (c *Client) GetAccountByPUUID(ctx context.Context, region Region, puuid string) (*AccountResponse, error) {
	u := fmt.Sprintf("%s/riot/account/v1/accounts/by-puuid/%s", c.regionURL(region), url.PathEscape(puuid))

	var account AccountResponse
	if err := c.doRequest(ctx, u, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// GetSummonerByName fetches a TFT summoner by legacy summoner name
func (c *Client) GetSummonerByName(ctx context.Context, platform Platform, name string) (*SummonerResponse, error) {
	u := fmt.Sprintf("%s/tft/summoner/v1/summoners/by-name/%s", c.platformURL(platform), url.PathEscape(name))

	var summoner SummonerResponse
	if err := c.doRequest(ctx, u, &summoner); err != nil {
		return nil, err
	}
	return &summoner, nil
}

// GetMatchHistory fetches TFT match IDs for a player, oldest first so the
// most recent match is the last element.
func (c *Client) GetMatchHistory(ctx context.Context, region Region, puuid string) ([]string, error) {
	u := fmt.Sprintf("%s/tft/match/v1/matches/by-puuid/%s/ids?count=%d",
		c.regionURL(region), url.PathEscape(puuid), c.matchCount)

	var matchIDs []string
	if err := c.doRequest(ctx, u, &matchIDs); err != nil {
		return nil, err
	}

	// Riot lists newest first
	for i, j := 0, len(matchIDs)-1; i < j; i, j = i+1, j-1 {
		matchIDs[i], matchIDs[j] = matchIDs[j], matchIDs[i]
	}
	return matchIDs, nil
}

// GetMatch fetches TFT match details
func (c *Client) GetMatch(ctx context.Context, region Region, matchID string) (*MatchResponse, error) {
	u := fmt.Sprintf("%s/tft/match/v1/matches/%s", c.regionURL(region), url.PathEscape(matchID))

	var match MatchResponse
	if err := c.doRequest(ctx, u, &match); err != nil {
		return nil, err
	}
	return &match, nil
}

// LookupPlayer resolves a player by "GameName#TagLine" Riot ID, or by legacy
// summoner name when no tag is given.
func (c *Client) LookupPlayer(ctx context.Context, platform Platform, region Region, name string) (Identity, error) {
	if gameName, tagLine, ok := strings.Cut(name, "#"); ok {
		account, err := c.GetAccountByRiotID(ctx, region, strings.TrimSpace(gameName), strings.TrimSpace(tagLine))
		if err != nil {
			return Identity{}, err
		}
		return Identity{PUUID: account.PUUID, GameName: account.GameName, TagLine: account.TagLine}, nil
	}

	summoner, err := c.GetSummonerByName(ctx, platform, strings.TrimSpace(name))
	if err != nil {
		return Identity{}, err
	}
	return Identity{PUUID: summoner.PUUID, SummonerName: summoner.Name}, nil
}

// ResolveParticipant resolves the identity behind a match participant's PUUID
func (c *Client) ResolveParticipant(ctx context.Context, region Region, puuid string) (Identity, error) {
	account, err := c.GetAccountByPUUID(ctx, region, puuid)
	if err != nil {
		return Identity{}, err
	}
	return Identity{PUUID: account.PUUID, GameName: account.GameName, TagLine: account.TagLine}, nil
}
