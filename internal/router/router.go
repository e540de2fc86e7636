package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/property-booking/internal/handler"
    "github.com/iliyamo/property-booking/internal/middleware"
)

// APIPrefix is the mount point of every JSON endpoint.
const APIPrefix = "/api/v1"

// Guards carries the middleware shared by the Register* functions.  Nil
// middlewares are replaced by pass-throughs.
type Guards struct {
    JWTSecret string
    RateLimit echo.MiddlewareFunc // every API route
    AuthLimit echo.MiddlewareFunc // register and login
    Cache     echo.MiddlewareFunc // public listing reads
    Purge     echo.MiddlewareFunc // writes that change listing results
}

func (g Guards) normalize() Guards {
    g.RateLimit = orPass(g.RateLimit)
    g.AuthLimit = orPass(g.AuthLimit)
    g.Cache = orPass(g.Cache)
    g.Purge = orPass(g.Purge)
    return g
}

func orPass(m echo.MiddlewareFunc) echo.MiddlewareFunc {
    if m != nil {
        return m
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
}

// authed requires a valid access token, optionally restricted to roles.
func (g Guards) authed(roles ...string) []echo.MiddlewareFunc {
    mws := []echo.MiddlewareFunc{middleware.JWTAuth(g.JWTSecret)}
    if len(roles) > 0 {
        mws = append(mws, middleware.RequireRole(roles...))
    }
    return mws
}

// Handlers groups the endpoint implementations wired by Setup.
type Handlers struct {
    Auth       *handler.AuthHandler
    Properties *handler.PropertyHandler
    Uploads    *handler.UploadHandler
    Bookings   *handler.BookingHandler
    Reviews    *handler.ReviewHandler
    Payments   *handler.PaymentHandler
    Info       handler.Info
}

// Configure installs the request validator and the JSON error handler.
func Configure(e *echo.Echo) {
    e.Validator = handler.NewValidator()
    e.HTTPErrorHandler = handler.ErrorHandler
}

// Setup configures e and registers every route.
func Setup(e *echo.Echo, h Handlers, g Guards) {
    Configure(e)
    RegisterRoutes(e, h.Info)

    g = g.normalize()
    api := e.Group(APIPrefix, g.RateLimit)
    RegisterAuth(api, h.Auth, g)
    RegisterProperties(api, h.Properties, h.Uploads, g)
    RegisterBookings(api, h.Bookings, g)
    RegisterReviews(api, h.Reviews, g)
    RegisterPayments(api, h.Payments)
}

// RegisterRoutes registers the unauthenticated service routes: the health
// check and the service description at / and at the API root.
func RegisterRoutes(e *echo.Echo, info handler.Info) {
    e.GET("/healthz", handler.Health)
    e.GET("/", handler.Root(info))
    e.GET(APIPrefix, handler.Root(info))
}

// RegisterAuth registers registration, login and the profile endpoint.
// Credential endpoints get their own, tighter rate limit.
func RegisterAuth(api *echo.Group, a *handler.AuthHandler, g Guards) {
    g = g.normalize()
    auth := api.Group("/auth")
    auth.POST("/register", a.Register, g.AuthLimit)
    auth.POST("/login", a.Login, g.AuthLimit)
    auth.GET("/me", a.Me, g.authed()...)
}
