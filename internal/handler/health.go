package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"
)

// Health is used by load balancers to check the process is up.
func Health(c echo.Context) error {
    return c.String(http.StatusOK, "ok")
}

// Info describes the service at GET /.
type Info struct {
    Name    string `json:"name"`
    Version string `json:"version"`
    Docs    string `json:"docs"`
}

// Root returns a handler answering with info.
func Root(info Info) echo.HandlerFunc {
    return func(c echo.Context) error {
        return c.JSON(http.StatusOK, info)
    }
}
