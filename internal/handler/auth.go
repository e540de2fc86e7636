package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/property-booking/internal/service"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
    Auth *service.AuthService
}

func NewAuthHandler(a *service.AuthService) *AuthHandler {
    return &AuthHandler{Auth: a}
}

// ----- DTOs -----

type registerReq struct {
    Name     string `json:"name" validate:"required"`
    Email    string `json:"email" validate:"required,email"`
    Password string `json:"password" validate:"required,min=6"`
}

type loginReq struct {
    Email    string `json:"email" validate:"required"`
    Password string `json:"password" validate:"required"`
}

// Register creates a user account and returns a token immediately.
func (h *AuthHandler) Register(c echo.Context) error {
    var req registerReq
    if err := bindAndValidate(c, &req); err != nil {
        return respondError(c, err)
    }
    ctx, cancel := requestContext(c)
    defer cancel()

    res, err := h.Auth.Register(ctx, service.RegisterInput{
        Name:     req.Name,
        Email:    req.Email,
        Password: req.Password,
    })
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusCreated, res)
}

// Login exchanges email and password for an access token.
func (h *AuthHandler) Login(c echo.Context) error {
    var req loginReq
    if err := bindAndValidate(c, &req); err != nil {
        return respondError(c, err)
    }
    ctx, cancel := requestContext(c)
    defer cancel()

    res, err := h.Auth.Login(ctx, service.LoginInput{Email: req.Email, Password: req.Password})
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, res)
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c echo.Context) error {
    who, ok := identity(c)
    if !ok {
        return unauthorized(c)
    }
    ctx, cancel := requestContext(c)
    defer cancel()

    u, err := h.Auth.Me(ctx, who.UserID)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, u)
}
