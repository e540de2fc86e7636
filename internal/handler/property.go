package handler

import (
    "net/http"
    "strconv"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/property-booking/internal/model"
    "github.com/iliyamo/property-booking/internal/service"
)

// PropertyHandler serves listing search and the admin CRUD endpoints.
type PropertyHandler struct {
    Properties *service.PropertyService
}

func NewPropertyHandler(p *service.PropertyService) *PropertyHandler {
    return &PropertyHandler{Properties: p}
}

type createPropertyReq struct {
    Name          string   `json:"name" validate:"required"`
    Description   string   `json:"description"`
    Location      string   `json:"location" validate:"required"`
    PricePerNight float64  `json:"price_per_night" validate:"required,gt=0"`
    Amenities     []string `json:"amenities"`
    Images        []string `json:"images"`
    MaxGuests     int      `json:"max_guests" validate:"omitempty,min=1"`
}

// updatePropertyReq uses pointers so absent fields stay untouched.
type updatePropertyReq struct {
    Name          *string   `json:"name" validate:"omitempty,min=1"`
    Description   *string   `json:"description"`
    Location      *string   `json:"location" validate:"omitempty,min=1"`
    PricePerNight *float64  `json:"price_per_night" validate:"omitempty,gt=0"`
    Amenities     *[]string `json:"amenities"`
    Images        *[]string `json:"images"`
    MaxGuests     *int      `json:"max_guests" validate:"omitempty,min=1"`
}

// Search handles GET /properties.
//
// Query: location, min_price, max_price, amenities (comma separated),
// min_rating, guests, check_in + check_out, sort_by.
func (h *PropertyHandler) Search(c echo.Context) error {
    f, err := parsePropertyFilter(c)
    if err != nil {
        return respondError(c, err)
    }
    ctx, cancel := requestContext(c)
    defer cancel()

    items, err := h.Properties.Search(ctx, f)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, items)
}

func parsePropertyFilter(c echo.Context) (model.PropertyFilter, error) {
    f := model.PropertyFilter{
        Location: strings.TrimSpace(c.QueryParam("location")),
        Sort:     strings.TrimSpace(c.QueryParam("sort_by")),
    }
    var err error
    if f.MinPrice, err = floatParam(c, "min_price"); err != nil {
        return f, err
    }
    if f.MaxPrice, err = floatParam(c, "max_price"); err != nil {
        return f, err
    }
    if f.MinRating, err = floatParam(c, "min_rating"); err != nil {
        return f, err
    }
    if raw := c.QueryParam("guests"); raw != "" {
        n, err := strconv.Atoi(raw)
        if err != nil {
            return f, service.Validation("guests must be an integer")
        }
        f.Guests = &n
    }
    for _, a := range strings.Split(c.QueryParam("amenities"), ",") {
        if a = strings.TrimSpace(a); a != "" {
            f.Amenities = append(f.Amenities, a)
        }
    }

    in, out := c.QueryParam("check_in"), c.QueryParam("check_out")
    switch {
    case in == "" && out == "":
    case in == "" || out == "":
        return f, service.Validation("check_in and check_out must be given together")
    default:
        r, err := parseRange(in, out)
        if err != nil {
            return f, err
        }
        f.Available = &r
    }
    return f, nil
}

func floatParam(c echo.Context, name string) (*float64, error) {
    raw := c.QueryParam(name)
    if raw == "" {
        return nil, nil
    }
    v, err := strconv.ParseFloat(raw, 64)
    if err != nil {
        return nil, service.Validation("%s must be a number", name)
    }
    return &v, nil
}

func parseRange(checkIn, checkOut string) (model.DateRange, error) {
    in, err := service.ParseDate(checkIn)
    if err != nil {
        return model.DateRange{}, service.Validation("invalid check_in date")
    }
    out, err := service.ParseDate(checkOut)
    if err != nil {
        return model.DateRange{}, service.Validation("invalid check_out date")
    }
    return model.DateRange{CheckIn: in, CheckOut: out}, nil
}

// Get handles GET /properties/:id.
func (h *PropertyHandler) Get(c echo.Context) error {
    ctx, cancel := requestContext(c)
    defer cancel()

    p, err := h.Properties.Get(ctx, c.Param("id"))
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, p)
}

// Create handles POST /properties (admin).  The caller becomes the owner.
func (h *PropertyHandler) Create(c echo.Context) error {
    who, ok := identity(c)
    if !ok {
        return unauthorized(c)
    }
    var req createPropertyReq
    if err := bindAndValidate(c, &req); err != nil {
        return respondError(c, err)
    }
    ctx, cancel := requestContext(c)
    defer cancel()

    p, err := h.Properties.Create(ctx, who.UserID, service.PropertyInput{
        Name:          req.Name,
        Description:   req.Description,
        Location:      req.Location,
        PricePerNight: req.PricePerNight,
        Amenities:     req.Amenities,
        Images:        req.Images,
        MaxGuests:     req.MaxGuests,
    })
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusCreated, p)
}

// Update handles PUT /properties/:id (admin).
func (h *PropertyHandler) Update(c echo.Context) error {
    var req updatePropertyReq
    if err := bindAndValidate(c, &req); err != nil {
        return respondError(c, err)
    }
    ctx, cancel := requestContext(c)
    defer cancel()

    p, err := h.Properties.Update(ctx, c.Param("id"), model.PropertyPatch{
        Name:          req.Name,
        Description:   req.Description,
        Location:      req.Location,
        PricePerNight: req.PricePerNight,
        Amenities:     req.Amenities,
        Images:        req.Images,
        MaxGuests:     req.MaxGuests,
    })
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /properties/:id (admin).
func (h *PropertyHandler) Delete(c echo.Context) error {
    ctx, cancel := requestContext(c)
    defer cancel()

    if err := h.Properties.Delete(ctx, c.Param("id")); err != nil {
        return respondError(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}
