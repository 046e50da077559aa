package riot

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/aurorabot/aurora/pkg/metrics"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *metrics.Counter) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	counter := metrics.NewCounter()
	return NewClient(Options{
		APIKey:   "lol-key",
		TFTKey:   "tft-key",
		BaseURL:  srv.URL,
		Recorder: counter,
	}), counter
}

func TestAccountByRiotID(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/americas/riot/account/v1/accounts/by-riot-id/Some Name/LAN" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("X-Riot-Token") != "lol-key" {
			t.Errorf("unexpected token %s", r.Header.Get("X-Riot-Token"))
		}
		_, _ = w.Write([]byte(`{"puuid":"p1","gameName":"Some Name","tagLine":"LAN"}`))
	})

	acct, err := c.AccountByRiotID(context.Background(), "Some Name", "LAN")
	if err != nil {
		t.Fatal(err)
	}
	if acct.PUUID != "p1" || acct.RiotID() != "Some Name#LAN" {
		t.Errorf("unexpected account %+v", acct)
	}
}

func TestTFTEndpointsUseTFTKey(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Riot-Token") != "tft-key" {
			t.Errorf("unexpected token %s for %s", r.Header.Get("X-Riot-Token"), r.URL.Path)
		}
		_, _ = w.Write([]byte(`[{"queueType":"RANKED_TFT","tier":"GOLD","rank":"IV","leaguePoints":3}]`))
	})

	entries, err := c.TFTLeagueEntries(context.Background(), "la1", "tp1")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Tier != "GOLD" {
		t.Errorf("unexpected entries %+v", entries)
	}
}

func TestTFTKeyFallsBackToAPIKey(t *testing.T) {
	c := NewClient(Options{APIKey: "only"})
	if c.tftKey != "only" {
		t.Errorf("expected tft key fallback, got %q", c.tftKey)
	}
}

func TestNotFound(t *testing.T) {
	c, counter := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.AccountByPUUID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if IsTransient(err) {
		t.Error("not found must not be transient")
	}
	if n, _ := counter.EventCount(context.Background(), metrics.RiotNotFound); n != 1 {
		t.Errorf("expected 1 not found event, got %d", n)
	}
}

func TestServerErrorIsTransient(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.SummonerByPUUID(context.Background(), "la1", "p1")
	var te *TransientError
	if !errors.As(err, &te) {
		t.Fatalf("expected transient error, got %v", err)
	}
	if te.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("unexpected status %d", te.StatusCode)
	}
}

func TestRateLimitRetriesOnce(t *testing.T) {
	var calls int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`["LA1_1","LA1_2"]`))
	})

	ids, err := c.MatchIDs(context.Background(), RoutingAmericas, "p1", 0, 20)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 || atomic.LoadInt32(&calls) != 2 {
		t.Errorf("expected 2 ids after 2 calls, got %v after %d", ids, calls)
	}
}

func TestRateLimitTwiceIsTransient(t *testing.T) {
	var calls int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Retry-After", "0")
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.Match(context.Background(), RoutingAmericas, "LA1_1")
	if !IsTransient(err) {
		t.Fatalf("expected transient error, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("expected exactly 2 calls, got %d", calls)
	}
}

func TestMalformedBodyIsTransient(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})

	_, err := c.TopMasteries(context.Background(), "la1", "p1", 3)
	if !IsTransient(err) {
		t.Fatalf("expected transient error, got %v", err)
	}
}

func TestRetryAfter(t *testing.T) {
	if retryAfter("") != 1e9 {
		t.Errorf("missing header should wait one second")
	}
	if retryAfter("120") != maxRetryAfter {
		t.Errorf("long waits should be capped")
	}
	if retryAfter("2") != 2e9 {
		t.Errorf("expected two seconds")
	}
}
