// Package ddragon resolves static League of Legends assets from Data Dragon.
package ddragon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultBaseURL = "https://ddragon.leagueoflegends.com"
	DefaultLocale  = "en_US"
	DefaultTTL     = 24 * time.Hour
)

var ErrNoVersions = errors.New("ddragon: empty version list")

type Champion struct {
	ID   string // "MonkeyKing"
	Key  int    // 62
	Name string // "Wukong"
}

type Options struct {
	BaseURL    string
	Locale     string
	TTL        time.Duration
	HTTPClient *http.Client
	Clock      clockwork.Clock
	Logger     *zap.Logger
}

// Catalog lazily loads the champion list of the latest patch and reloads it once
// the TTL has elapsed. A failed reload keeps serving the previous list.
type Catalog struct {
	baseURL string
	locale  string
	ttl     time.Duration
	http    *http.Client
	clock   clockwork.Clock
	log     *zap.Logger
	group   singleflight.Group

	lock     sync.RWMutex
	version  string
	byKey    map[int]Champion
	byName   map[string]Champion
	loadedAt time.Time
}

func NewCatalog(opts Options) *Catalog {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Locale == "" {
		opts.Locale = DefaultLocale
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Catalog{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		locale:  opts.Locale,
		ttl:     opts.TTL,
		http:    opts.HTTPClient,
		clock:   opts.Clock,
		log:     opts.Logger.Named("ddragon"),
	}
}

// ChampionName never fails; unknown ids render as "Champion N".
func (c *Catalog) ChampionName(ctx context.Context, key int) string {
	if err := c.ensure(ctx); err != nil {
		c.log.Warn("champion list unavailable", zap.Error(err))
	}
	c.lock.RLock()
	defer c.lock.RUnlock()
	if champ, ok := c.byKey[key]; ok {
		return champ.Name
	}
	return fmt.Sprintf("Champion %d", key)
}

// Lookup matches a display name or internal id, ignoring case and surrounding space.
func (c *Catalog) Lookup(ctx context.Context, name string) (Champion, bool, error) {
	if err := c.ensure(ctx); err != nil {
		c.lock.RLock()
		empty := c.byName == nil
		c.lock.RUnlock()
		if empty {
			return Champion{}, false, err
		}
	}
	c.lock.RLock()
	defer c.lock.RUnlock()
	champ, ok := c.byName[normalize(name)]
	return champ, ok, nil
}

// Version is the patch the catalog was loaded from, or "" before the first load.
func (c *Catalog) Version(ctx context.Context) string {
	_ = c.ensure(ctx)
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.version
}

func (c *Catalog) ProfileIconURL(ctx context.Context, iconID int) string {
	v := c.Version(ctx)
	if v == "" {
		return ""
	}
	return fmt.Sprintf("%s/cdn/%s/img/profileicon/%d.png", c.baseURL, v, iconID)
}

func (c *Catalog) SplashURL(champ Champion) string {
	return fmt.Sprintf("%s/cdn/img/champion/splash/%s_0.jpg", c.baseURL, champ.ID)
}

func (c *Catalog) fresh() bool {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.byKey != nil && c.clock.Since(c.loadedAt) < c.ttl
}

func (c *Catalog) ensure(ctx context.Context) error {
	if c.fresh() {
		return nil
	}
	_, err, _ := c.group.Do("load", func() (interface{}, error) {
		if c.fresh() {
			return nil, nil
		}
		return nil, c.load(ctx)
	})
	return err
}

type championFile struct {
	Data map[string]struct {
		ID   string `json:"id"`
		Key  string `json:"key"`
		Name string `json:"name"`
	} `json:"data"`
}

func (c *Catalog) load(ctx context.Context) error {
	var versions []string
	if err := c.getJSON(ctx, c.baseURL+"/api/versions.json", &versions); err != nil {
		return err
	}
	if len(versions) == 0 {
		return ErrNoVersions
	}
	version := versions[0]

	var file championFile
	u := fmt.Sprintf("%s/cdn/%s/data/%s/champion.json", c.baseURL, version, c.locale)
	if err := c.getJSON(ctx, u, &file); err != nil {
		return err
	}

	byKey := make(map[int]Champion, len(file.Data))
	byName := make(map[string]Champion, 2*len(file.Data))
	for _, raw := range file.Data {
		key, err := strconv.Atoi(raw.Key)
		if err != nil {
			continue
		}
		champ := Champion{ID: raw.ID, Key: key, Name: raw.Name}
		byKey[key] = champ
		byName[normalize(raw.Name)] = champ
		byName[normalize(raw.ID)] = champ
	}

	c.lock.Lock()
	c.version = version
	c.byKey = byKey
	c.byName = byName
	c.loadedAt = c.clock.Now()
	c.lock.Unlock()

	c.log.Info("champion list loaded", zap.String("version", version), zap.Int("champions", len(byKey)))
	return nil
}

func (c *Catalog) getJSON(ctx context.Context, u string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ddragon: %s answered %d", u, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
