package riot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/aurorabot/aurora/pkg/metrics"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	DefaultTimeout       = 10 * time.Second
	DefaultRatePerSecond = 15
	maxRetryAfter        = 5 * time.Second
)

type Options struct {
	APIKey string
	// TFTKey scopes the TFT endpoints; empty falls back to APIKey.
	TFTKey        string
	Timeout       time.Duration
	RatePerSecond float64
	// BaseURL replaces https://{host}.api.riotgames.com with BaseURL/{host}.
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zap.Logger
	Recorder   metrics.Recorder
}

// Client talks to the Riot Games API. Every call shares one request budget.
type Client struct {
	apiKey   string
	tftKey   string
	baseURL  string
	http     *http.Client
	limiter  *rate.Limiter
	log      *zap.Logger
	recorder metrics.Recorder
}

func NewClient(opts Options) *Client {
	if opts.TFTKey == "" {
		opts.TFTKey = opts.APIKey
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.Nop{}
	}
	limit := rate.Inf
	burst := 1
	if opts.RatePerSecond > 0 {
		limit = rate.Limit(opts.RatePerSecond)
		burst = int(opts.RatePerSecond)
		if burst < 1 {
			burst = 1
		}
	}
	return &Client{
		apiKey:   opts.APIKey,
		tftKey:   opts.TFTKey,
		baseURL:  opts.BaseURL,
		http:     opts.HTTPClient,
		limiter:  rate.NewLimiter(limit, burst),
		log:      opts.Logger.Named("riot"),
		recorder: opts.Recorder,
	}
}

func (c *Client) host(h string) string {
	if c.baseURL != "" {
		return c.baseURL + "/" + h
	}
	return "https://" + h + ".api.riotgames.com"
}

func (c *Client) AccountByRiotID(ctx context.Context, gameName, tagLine string) (*Account, error) {
	return c.accountByRiotID(ctx, c.apiKey, "account-by-riot-id", gameName, tagLine)
}

// TFTAccountByRiotID resolves the same identity under the TFT key; the puuid it
// returns only works with TFT endpoints.
func (c *Client) TFTAccountByRiotID(ctx context.Context, gameName, tagLine string) (*Account, error) {
	return c.accountByRiotID(ctx, c.tftKey, "tft-account-by-riot-id", gameName, tagLine)
}

func (c *Client) accountByRiotID(ctx context.Context, key, endpoint, gameName, tagLine string) (*Account, error) {
	u := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s",
		c.host(RoutingAmericas), url.PathEscape(gameName), url.PathEscape(tagLine))
	var acct Account
	if err := c.get(ctx, key, endpoint, u, &acct); err != nil {
		return nil, err
	}
	return &acct, nil
}

func (c *Client) AccountByPUUID(ctx context.Context, puuid Handle) (*Account, error) {
	u := fmt.Sprintf("%s/riot/account/v1/accounts/by-puuid/%s", c.host(RoutingAmericas), url.PathEscape(string(puuid)))
	var acct Account
	if err := c.get(ctx, c.apiKey, "account-by-puuid", u, &acct); err != nil {
		return nil, err
	}
	return &acct, nil
}

func (c *Client) SummonerByPUUID(ctx context.Context, platform string, puuid Handle) (*Summoner, error) {
	u := fmt.Sprintf("%s/lol/summoner/v4/summoners/by-puuid/%s", c.host(platform), url.PathEscape(string(puuid)))
	var s Summoner
	if err := c.get(ctx, c.apiKey, "summoner-by-puuid", u, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) LeagueEntries(ctx context.Context, platform string, puuid Handle) ([]LeagueEntry, error) {
	u := fmt.Sprintf("%s/lol/league/v4/entries/by-puuid/%s", c.host(platform), url.PathEscape(string(puuid)))
	var entries []LeagueEntry
	if err := c.get(ctx, c.apiKey, "league-entries-by-puuid", u, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) TFTSummonerByPUUID(ctx context.Context, platform string, puuid TFTHandle) (*Summoner, error) {
	u := fmt.Sprintf("%s/tft/summoner/v1/summoners/by-puuid/%s", c.host(platform), url.PathEscape(string(puuid)))
	var s Summoner
	if err := c.get(ctx, c.tftKey, "tft-summoner-by-puuid", u, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) TFTLeagueEntries(ctx context.Context, platform string, puuid TFTHandle) ([]LeagueEntry, error) {
	u := fmt.Sprintf("%s/tft/league/v1/by-puuid/%s", c.host(platform), url.PathEscape(string(puuid)))
	var entries []LeagueEntry
	if err := c.get(ctx, c.tftKey, "tft-league-by-puuid", u, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) TopMasteries(ctx context.Context, platform string, puuid Handle, count int) ([]ChampionMastery, error) {
	u := fmt.Sprintf("%s/lol/champion-mastery/v4/champion-masteries/by-puuid/%s/top?count=%d",
		c.host(platform), url.PathEscape(string(puuid)), count)
	var masteries []ChampionMastery
	if err := c.get(ctx, c.apiKey, "top-masteries-by-puuid", u, &masteries); err != nil {
		return nil, err
	}
	return masteries, nil
}

func (c *Client) MatchIDs(ctx context.Context, routing string, puuid Handle, start, count int) ([]string, error) {
	u := fmt.Sprintf("%s/lol/match/v5/matches/by-puuid/%s/ids?start=%d&count=%d",
		c.host(routing), url.PathEscape(string(puuid)), start, count)
	var ids []string
	if err := c.get(ctx, c.apiKey, "match-ids-by-puuid", u, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (c *Client) Match(ctx context.Context, routing, matchID string) (*Match, error) {
	u := fmt.Sprintf("%s/lol/match/v5/matches/%s", c.host(routing), url.PathEscape(matchID))
	var m Match
	if err := c.get(ctx, c.apiKey, "match-detail", u, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *Client) get(ctx context.Context, key, endpoint, rawURL string, out interface{}) error {
	c.recorder.RecordEvent(ctx, metrics.RiotRequest)
	err := c.do(ctx, key, endpoint, rawURL, out)
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		c.recorder.RecordEvent(ctx, metrics.RiotNotFound)
	default:
		c.recorder.RecordEvent(ctx, metrics.RiotTransient)
		c.log.Debug("request failed", zap.String("endpoint", endpoint), zap.Error(err))
	}
	return err
}

func (c *Client) do(ctx context.Context, key, endpoint, rawURL string, out interface{}) error {
	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return &TransientError{Endpoint: endpoint, Err: err}
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return &TransientError{Endpoint: endpoint, Err: err}
		}
		req.Header.Set("X-Riot-Token", key)

		resp, err := c.http.Do(req)
		if err != nil {
			return &TransientError{Endpoint: endpoint, Err: err}
		}

		if resp.StatusCode == http.StatusOK {
			err = json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			if err != nil {
				return &TransientError{Endpoint: endpoint, Err: fmt.Errorf("decode: %w", err)}
			}
			return nil
		}

		wait := retryAfter(resp.Header.Get("Retry-After"))
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return fmt.Errorf("%s: %w", endpoint, ErrNotFound)
		case resp.StatusCode == http.StatusTooManyRequests && attempt == 0:
			c.log.Info("rate limited, retrying once", zap.String("endpoint", endpoint), zap.Duration("wait", wait))
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return &TransientError{Endpoint: endpoint, Err: ctx.Err()}
			case <-timer.C:
			}
		default:
			return &TransientError{Endpoint: endpoint, StatusCode: resp.StatusCode}
		}
	}
}

func retryAfter(header string) time.Duration {
	secs, err := strconv.Atoi(header)
	if err != nil || secs < 0 {
		return time.Second
	}
	d := time.Duration(secs) * time.Second
	if d > maxRetryAfter {
		return maxRetryAfter
	}
	return d
}
