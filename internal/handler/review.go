package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/property-booking/internal/service"
)

type ReviewHandler struct {
    Reviews *service.ReviewService
}

func NewReviewHandler(r *service.ReviewService) *ReviewHandler {
    return &ReviewHandler{Reviews: r}
}

type createReviewReq struct {
    PropertyID string `json:"property_id" validate:"required"`
    Rating     int    `json:"rating" validate:"required,min=1,max=5"`
    Comment    string `json:"comment" validate:"required"`
}

// Create handles POST /reviews.  Only guests with a confirmed booking of
// the property may review it, once.
func (h *ReviewHandler) Create(c echo.Context) error {
    who, ok := identity(c)
    if !ok {
        return unauthorized(c)
    }
    var req createReviewReq
    if err := bindAndValidate(c, &req); err != nil {
        return respondError(c, err)
    }
    ctx, cancel := requestContext(c)
    defer cancel()

    r, err := h.Reviews.Create(ctx, who.UserID, service.ReviewInput{
        PropertyID: req.PropertyID,
        Rating:     req.Rating,
        Comment:    req.Comment,
    })
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusCreated, r)
}

// ByProperty handles GET /reviews/property/:id.
func (h *ReviewHandler) ByProperty(c echo.Context) error {
    ctx, cancel := requestContext(c)
    defer cancel()

    items, err := h.Reviews.ListByProperty(ctx, c.Param("id"))
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, items)
}
