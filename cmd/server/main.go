package main // Entry point package

import (
    "context"
    "errors"
    "net/http"
    "os"
    "os/signal"
    "strings"
    "syscall"
    "time"

    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"
    "github.com/labstack/gommon/log"

    "github.com/iliyamo/property-booking/internal/config"
    "github.com/iliyamo/property-booking/internal/database"
    "github.com/iliyamo/property-booking/internal/handler"
    "github.com/iliyamo/property-booking/internal/jobs"
    "github.com/iliyamo/property-booking/internal/media"
    "github.com/iliyamo/property-booking/internal/middleware"
    "github.com/iliyamo/property-booking/internal/notify"
    "github.com/iliyamo/property-booking/internal/queue"
    "github.com/iliyamo/property-booking/internal/router"
    "github.com/iliyamo/property-booking/internal/service"
)

const version = "1.0.0"

func main() {
    cfg := config.Load()
    if cfg.Env != "prod" {
        log.SetLevel(log.DEBUG)
    }

    ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
    defer stop()

    store, err := database.OpenStore(cfg)
    if err != nil {
        log.Fatal(err)
    }
    defer func() {
        if store.Close != nil {
            if err := store.Close(context.Background()); err != nil {
                log.Warnf("close store: %v", err)
            }
        }
    }()

    notifier := newNotifier(ctx, cfg)

    auth := service.NewAuthService(store.Users, notifier, service.AuthConfig{
        Secret:     cfg.JWTSecret,
        TokenTTL:   cfg.TokenTTL,
        BcryptCost: cfg.BcryptCost,
    })
    properties := service.NewPropertyService(store.Properties)
    bookings := service.NewBookingService(store, notifier)
    reviews := service.NewReviewService(store)
    payments := service.NewPaymentService(store, notifier)

    if cfg.SeedAdminEmail != "" && cfg.SeedAdminPassword != "" {
        seedCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
        u, created, err := auth.EnsureAdmin(seedCtx, cfg.SeedAdminName, cfg.SeedAdminEmail, cfg.SeedAdminPassword)
        cancel()
        switch {
        case err != nil:
            log.Errorf("seed admin: %v", err)
        case created:
            log.Infof("seed admin: created %s", u.Email)
        default:
            log.Infof("seed admin: %s is admin", u.Email)
        }
    }

    sched, err := jobs.NewScheduler(cfg.ReminderCron, bookings)
    if err != nil {
        log.Fatalf("reminder schedule %q: %v", cfg.ReminderCron, err)
    }
    sched.Start()
    defer sched.Stop()

    signer, err := media.NewSigner(cfg.CloudinaryURL, cfg.CloudinaryFolder)
    if err != nil {
        if !errors.Is(err, media.ErrNotConfigured) {
            log.Errorf("cloudinary: %v", err)
        }
        signer = nil
    }

    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Warn("redis unavailable: listing cache and rate limiting disabled")
    } else {
        defer rdb.Close()
    }
    cacheCfg := config.LoadCacheConfig()
    rlCfg := config.LoadRateLimitConfig()

    e := echo.New()
    e.HideBanner = true
    e.Logger.SetLevel(log.Level())
    e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
        LogMethod:   true,
        LogURI:      true,
        LogStatus:   true,
        LogLatency:  true,
        LogError:    true,
        HandleError: true,
        LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
            if v.Error != nil {
                log.Errorf("%s %s %d %s: %v", v.Method, v.URI, v.Status, v.Latency, v.Error)
                return nil
            }
            log.Infof("%s %s %d %s", v.Method, v.URI, v.Status, v.Latency)
            return nil
        },
    }))
    e.Use(echomw.Recover())
    e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
        AllowOrigins: cfg.CORSOrigins,
        AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
    }))
    if cfg.WebDir != "" {
        // Serve the web client for everything outside the API.
        e.Use(echomw.StaticWithConfig(echomw.StaticConfig{
            Root:  cfg.WebDir,
            HTML5: true,
            Skipper: func(c echo.Context) bool {
                p := c.Request().URL.Path
                return strings.HasPrefix(p, router.APIPrefix) || p == "/healthz"
            },
        }))
    }

    router.Setup(e, router.Handlers{
        Auth:       handler.NewAuthHandler(auth),
        Properties: handler.NewPropertyHandler(properties),
        Uploads:    handler.NewUploadHandler(signer),
        Bookings:   handler.NewBookingHandler(bookings),
        Reviews:    handler.NewReviewHandler(reviews),
        Payments:   handler.NewPaymentHandler(payments),
        Info:       handler.Info{Name: "Property Booking API", Version: version, Docs: router.APIPrefix},
    }, router.Guards{
        JWTSecret: cfg.JWTSecret,
        RateLimit: middleware.NewTokenBucket(rlCfg, rdb),
        AuthLimit: middleware.NewTokenBucket(rlCfg.ForAuth(), rdb),
        Cache:     middleware.NewRedisCache(cacheCfg, rdb),
        Purge:     middleware.NewCachePurger(cacheCfg, rdb),
    })

    addr := ":" + cfg.Port
    go func() {
        log.Infof("listening on %s (env=%s, store=%s)", addr, cfg.Env, cfg.StoreDriver)
        if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
            log.Fatal(err)
        }
    }()

    <-ctx.Done()
    log.Info("shutting down")
    shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()
    if err := e.Shutdown(shutdownCtx); err != nil {
        log.Errorf("shutdown: %v", err)
    }
}

// newNotifier returns the log notifier, or with NOTIFY_DRIVER=queue a
// RabbitMQ publisher that falls back to the log, plus the consumer that
// drains the queue into NOTIFY_LOG_DIR.
func newNotifier(ctx context.Context, cfg config.Config) notify.Notifier {
    if cfg.NotifyDriver != config.NotifyQueue {
        return notify.LogNotifier{}
    }
    go queue.StartNotificationConsumer(ctx, cfg.RabbitURL, cfg.NotifyQueue, cfg.NotifyLogDir)
    return notify.Fallback{
        Primary:   queue.NewPublisher(cfg.RabbitURL, cfg.NotifyQueue),
        Secondary: notify.LogNotifier{},
    }
}
