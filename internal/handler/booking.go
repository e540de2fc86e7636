package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/property-booking/internal/service"
)

// BookingHandler serves the booking endpoints.  Routes other than
// Availability run behind JWTAuth.
type BookingHandler struct {
    Bookings *service.BookingService
}

func NewBookingHandler(b *service.BookingService) *BookingHandler {
    return &BookingHandler{Bookings: b}
}

type createBookingReq struct {
    PropertyID string `json:"property_id" validate:"required"`
    CheckIn    string `json:"check_in" validate:"required"`
    CheckOut   string `json:"check_out" validate:"required"`
}

// Create handles POST /bookings.  The booking is confirmed immediately
// when the dates are free.
func (h *BookingHandler) Create(c echo.Context) error {
    who, ok := identity(c)
    if !ok {
        return unauthorized(c)
    }
    var req createBookingReq
    if err := bindAndValidate(c, &req); err != nil {
        return respondError(c, err)
    }
    r, err := parseRange(req.CheckIn, req.CheckOut)
    if err != nil {
        return respondError(c, err)
    }
    ctx, cancel := requestContext(c)
    defer cancel()

    b, err := h.Bookings.Create(ctx, who.UserID, service.BookingInput{
        PropertyID: req.PropertyID,
        CheckIn:    r.CheckIn,
        CheckOut:   r.CheckOut,
    })
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusCreated, b)
}

// Mine handles GET /bookings/my.
func (h *BookingHandler) Mine(c echo.Context) error {
    who, ok := identity(c)
    if !ok {
        return unauthorized(c)
    }
    ctx, cancel := requestContext(c)
    defer cancel()

    items, err := h.Bookings.ListMine(ctx, who.UserID)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, items)
}

// All handles GET /bookings/all (admin).
func (h *BookingHandler) All(c echo.Context) error {
    ctx, cancel := requestContext(c)
    defer cancel()

    items, err := h.Bookings.ListAll(ctx)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, items)
}

// Cancel handles PUT /bookings/:id/cancel.  The owner or an admin may
// cancel; the service enforces it.
func (h *BookingHandler) Cancel(c echo.Context) error {
    who, ok := identity(c)
    if !ok {
        return unauthorized(c)
    }
    ctx, cancel := requestContext(c)
    defer cancel()

    b, err := h.Bookings.Cancel(ctx, who, c.Param("id"))
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, b)
}

// Availability handles GET /bookings/property/:id/availability?check_in=&check_out=.
func (h *BookingHandler) Availability(c echo.Context) error {
    in, out := c.QueryParam("check_in"), c.QueryParam("check_out")
    if in == "" || out == "" {
        return respondError(c, service.Validation("check_in and check_out are required"))
    }
    r, err := parseRange(in, out)
    if err != nil {
        return respondError(c, err)
    }
    ctx, cancel := requestContext(c)
    defer cancel()

    ok, err := h.Bookings.IsAvailable(ctx, c.Param("id"), r.CheckIn, r.CheckOut)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"available": ok})
}
