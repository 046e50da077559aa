package ddragon

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

const championJSON = `{"data":{
	"MonkeyKing":{"id":"MonkeyKing","key":"62","name":"Wukong"},
	"Ahri":{"id":"Ahri","key":"103","name":"Ahri"}
}}`

func newServer(t *testing.T, loads *int32, fail *atomic.Bool) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail != nil && fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		switch r.URL.Path {
		case "/api/versions.json":
			atomic.AddInt32(loads, 1)
			_, _ = w.Write([]byte(`["14.1.1","14.0.1"]`))
		case "/cdn/14.1.1/data/en_US/champion.json":
			_, _ = w.Write([]byte(championJSON))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestChampionName(t *testing.T) {
	var loads int32
	srv := newServer(t, &loads, nil)
	c := NewCatalog(Options{BaseURL: srv.URL})
	ctx := context.Background()

	if got := c.ChampionName(ctx, 62); got != "Wukong" {
		t.Errorf("expected Wukong, got %s", got)
	}
	if got := c.ChampionName(ctx, 9999); got != "Champion 9999" {
		t.Errorf("expected fallback name, got %s", got)
	}
	if atomic.LoadInt32(&loads) != 1 {
		t.Errorf("expected a single load, got %d", loads)
	}
}

func TestLookup(t *testing.T) {
	var loads int32
	srv := newServer(t, &loads, nil)
	c := NewCatalog(Options{BaseURL: srv.URL})
	ctx := context.Background()

	for _, name := range []string{"wukong", "  MONKEYKING ", "Wukong"} {
		champ, ok, err := c.Lookup(ctx, name)
		if err != nil || !ok || champ.Key != 62 {
			t.Errorf("Lookup(%q) = %+v %v %v", name, champ, ok, err)
		}
	}
	if _, ok, _ := c.Lookup(ctx, "Teemo"); ok {
		t.Error("Teemo is not in the fixture")
	}
}

func TestReloadAfterTTL(t *testing.T) {
	var loads int32
	var fail atomic.Bool
	srv := newServer(t, &loads, &fail)
	clock := clockwork.NewFakeClock()
	c := NewCatalog(Options{BaseURL: srv.URL, Clock: clock, TTL: time.Hour})
	ctx := context.Background()

	c.ChampionName(ctx, 103)
	clock.Advance(30 * time.Minute)
	c.ChampionName(ctx, 103)
	if atomic.LoadInt32(&loads) != 1 {
		t.Fatalf("expected cached list, got %d loads", loads)
	}

	clock.Advance(time.Hour)
	fail.Store(true)
	if got := c.ChampionName(ctx, 103); got != "Ahri" {
		t.Errorf("stale list should keep serving, got %s", got)
	}
	fail.Store(false)
	c.ChampionName(ctx, 103)
	if atomic.LoadInt32(&loads) != 2 {
		t.Errorf("expected a reload after the ttl, got %d loads", loads)
	}
}

func TestLookupWithoutData(t *testing.T) {
	var loads int32
	var fail atomic.Bool
	fail.Store(true)
	srv := newServer(t, &loads, &fail)
	c := NewCatalog(Options{BaseURL: srv.URL})

	if _, _, err := c.Lookup(context.Background(), "Ahri"); err == nil {
		t.Error("expected an error when nothing was ever loaded")
	}
}

func TestProfileIconURL(t *testing.T) {
	var loads int32
	srv := newServer(t, &loads, nil)
	c := NewCatalog(Options{BaseURL: srv.URL})
	want := srv.URL + "/cdn/14.1.1/img/profileicon/29.png"
	if got := c.ProfileIconURL(context.Background(), 29); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}
