package router

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/property-booking/internal/handler"
    "github.com/iliyamo/property-booking/internal/model"
)

// RegisterBookings registers the booking endpoints.  Availability is
// public; everything else needs a token and /all needs the admin role.
// Creating or cancelling a booking changes date-filtered search results,
// so both purge the listing cache.
func RegisterBookings(api *echo.Group, b *handler.BookingHandler, g Guards) {
    g = g.normalize()
    bookings := api.Group("/bookings")

    bookings.GET("/property/:id/availability", b.Availability)
    bookings.POST("", b.Create, append(g.authed(), g.Purge)...)
    bookings.GET("/my", b.Mine, g.authed()...)
    bookings.GET("/all", b.All, g.authed(model.RoleAdmin)...)
    bookings.PUT("/:id/cancel", b.Cancel, append(g.authed(), g.Purge)...)
}

// RegisterReviews registers review submission and the per-property list.
// A new review changes the property's rating, so it purges the cache.
func RegisterReviews(api *echo.Group, r *handler.ReviewHandler, g Guards) {
    g = g.normalize()
    reviews := api.Group("/reviews")

    reviews.POST("", r.Create, append(g.authed(), g.Purge)...)
    reviews.GET("/property/:id", r.ByProperty)
}

// RegisterPayments registers the mock payment endpoint.  It needs no
// token: the booking id identifies what is paid.
func RegisterPayments(api *echo.Group, p *handler.PaymentHandler) {
    api.POST("/payment/mock", p.Mock)
}
