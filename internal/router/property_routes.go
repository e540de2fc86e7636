package router

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/property-booking/internal/handler"
    "github.com/iliyamo/property-booking/internal/model"
)

// RegisterProperties registers listing search (public, cached) and the
// admin-only listing management endpoints.
func RegisterProperties(api *echo.Group, p *handler.PropertyHandler, u *handler.UploadHandler, g Guards) {
    g = g.normalize()
    props := api.Group("/properties")

    props.GET("", p.Search, g.Cache)
    props.GET("/:id", p.Get, g.Cache)

    admin := append(g.authed(model.RoleAdmin), g.Purge)
    props.POST("", p.Create, admin...)
    props.PUT("/:id", p.Update, admin...)
    props.DELETE("/:id", p.Delete, admin...)
    props.POST("/uploads/signature", u.Signature, g.authed(model.RoleAdmin)...)
}
