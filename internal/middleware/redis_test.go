package middleware

import (
    "context"
    "net/http"
    "net/http/httptest"
    "strings"
    "sync/atomic"
    "testing"
    "time"

    "github.com/alicebob/miniredis/v2"
    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/property-booking/internal/config"
)

func newRedis(t *testing.T) *redis.Client {
    t.Helper()
    mr := miniredis.RunT(t)
    rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
    t.Cleanup(func() { _ = rdb.Close() })
    return rdb
}

func do(e *echo.Echo, method, target string) *httptest.ResponseRecorder {
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
    return rec
}

func testCacheConfig() config.CacheConfig {
    return config.CacheConfig{
        Enabled:      true,
        Methods:      map[string]bool{http.MethodGet: true},
        TTL:          time.Minute,
        KeyStrategy:  "route_query",
        Prefix:       "test:cache",
        MaxBodyBytes: 1 << 20,
    }
}

func TestRedisCacheHitAndMiss(t *testing.T) {
    rdb := newRedis(t)
    cfg := testCacheConfig()

    var calls int32
    e := echo.New()
    e.GET("/properties/:id", func(c echo.Context) error {
        atomic.AddInt32(&calls, 1)
        return c.JSON(http.StatusOK, echo.Map{"id": c.Param("id")})
    }, NewRedisCache(cfg, rdb))

    first := do(e, http.MethodGet, "/properties/a")
    if first.Header().Get("X-Cache") != "MISS" {
        t.Fatalf("first X-Cache = %q", first.Header().Get("X-Cache"))
    }
    second := do(e, http.MethodGet, "/properties/a")
    if second.Header().Get("X-Cache") != "HIT" {
        t.Fatalf("second X-Cache = %q", second.Header().Get("X-Cache"))
    }
    if second.Body.String() != first.Body.String() {
        t.Fatalf("cached body %q != %q", second.Body, first.Body)
    }
    if ct := second.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, echo.MIMEApplicationJSON) {
        t.Fatalf("cached content type = %q", ct)
    }

    // A different id must not be served from a's entry.
    other := do(e, http.MethodGet, "/properties/b")
    if other.Header().Get("X-Cache") != "MISS" || !strings.Contains(other.Body.String(), `"b"`) {
        t.Fatalf("other id: X-Cache=%q body=%s", other.Header().Get("X-Cache"), other.Body)
    }
    if got := atomic.LoadInt32(&calls); got != 2 {
        t.Fatalf("handler calls = %d, want 2", got)
    }
}

func TestRedisCacheSkipsErrors(t *testing.T) {
    rdb := newRedis(t)
    var calls int32
    e := echo.New()
    e.GET("/properties/:id", func(c echo.Context) error {
        atomic.AddInt32(&calls, 1)
        return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
    }, NewRedisCache(testCacheConfig(), rdb))

    do(e, http.MethodGet, "/properties/x")
    do(e, http.MethodGet, "/properties/x")
    if got := atomic.LoadInt32(&calls); got != 2 {
        t.Fatalf("404 was cached: handler calls = %d", got)
    }
}

func TestCachePurgerDropsEntriesAfterWrite(t *testing.T) {
    rdb := newRedis(t)
    cfg := testCacheConfig()

    e := echo.New()
    e.GET("/properties", func(c echo.Context) error {
        return c.JSON(http.StatusOK, []string{"p1"})
    }, NewRedisCache(cfg, rdb))
    e.POST("/properties", func(c echo.Context) error {
        return c.JSON(http.StatusCreated, echo.Map{"id": "p2"})
    }, NewCachePurger(cfg, rdb))
    e.POST("/broken", func(c echo.Context) error {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad"})
    }, NewCachePurger(cfg, rdb))

    do(e, http.MethodGet, "/properties")
    if n := len(rdb.Keys(context.Background(), cfg.Prefix+":*").Val()); n != 1 {
        t.Fatalf("cached keys = %d, want 1", n)
    }

    do(e, http.MethodPost, "/broken")
    if n := len(rdb.Keys(context.Background(), cfg.Prefix+":*").Val()); n != 1 {
        t.Fatalf("failed write purged the cache: keys = %d", n)
    }

    do(e, http.MethodPost, "/properties")
    if n := len(rdb.Keys(context.Background(), cfg.Prefix+":*").Val()); n != 0 {
        t.Fatalf("keys after write = %d, want 0", n)
    }
    if rec := do(e, http.MethodGet, "/properties"); rec.Header().Get("X-Cache") != "MISS" {
        t.Fatalf("after purge X-Cache = %q", rec.Header().Get("X-Cache"))
    }
}

func TestCacheWithoutRedisPassesThrough(t *testing.T) {
    e := echo.New()
    e.GET("/properties", func(c echo.Context) error {
        return c.String(http.StatusOK, "ok")
    }, NewRedisCache(testCacheConfig(), nil), NewCachePurger(testCacheConfig(), nil))

    rec := do(e, http.MethodGet, "/properties")
    if rec.Code != http.StatusOK || rec.Header().Get("X-Cache") != "" {
        t.Fatalf("status=%d X-Cache=%q", rec.Code, rec.Header().Get("X-Cache"))
    }
}

func TestTokenBucketLimits(t *testing.T) {
    rdb := newRedis(t)
    cfg := config.RateLimitConfig{
        Enabled:        true,
        Capacity:       2,
        RefillTokens:   1,
        RefillInterval: time.Hour,
        TTL:            2 * time.Hour,
        KeyStrategy:    "ip_route",
        Prefix:         "test:rl",
    }
    e := echo.New()
    e.POST("/auth/login", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, NewTokenBucket(cfg, rdb))

    for i := 0; i < 2; i++ {
        if rec := do(e, http.MethodPost, "/auth/login"); rec.Code != http.StatusOK {
            t.Fatalf("request %d: status = %d", i+1, rec.Code)
        }
    }
    rec := do(e, http.MethodPost, "/auth/login")
    if rec.Code != http.StatusTooManyRequests {
        t.Fatalf("third request: status = %d, want 429", rec.Code)
    }
    if rec.Header().Get("Retry-After") == "" {
        t.Fatal("missing Retry-After")
    }
    if rec.Header().Get("X-RateLimit-Remaining") != "0" {
        t.Fatalf("remaining = %q", rec.Header().Get("X-RateLimit-Remaining"))
    }
}

func TestRateKeyUsesCaller(t *testing.T) {
    cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "user"}
    e := echo.New()
    c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
    if got := buildRateKey(cfg, c); got != "rl:user:anon" {
        t.Fatalf("anonymous key = %q", got)
    }
    c.Set(CtxUserID, "u1")
    if got := buildRateKey(cfg, c); got != "rl:user:u1" {
        t.Fatalf("user key = %q", got)
    }
}
