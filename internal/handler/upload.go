package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"
    "github.com/labstack/gommon/log"

    "github.com/iliyamo/property-booking/internal/media"
)

// UploadHandler hands out signed Cloudinary upload parameters.  Signer
// is nil when CLOUDINARY_URL is unset.
type UploadHandler struct {
    Signer *media.Signer
}

func NewUploadHandler(s *media.Signer) *UploadHandler {
    return &UploadHandler{Signer: s}
}

// Signature handles POST /properties/uploads/signature (admin).
func (h *UploadHandler) Signature(c echo.Context) error {
    if h.Signer == nil {
        return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": media.ErrNotConfigured.Error()})
    }
    sig, err := h.Signer.Sign()
    if err != nil {
        log.Errorf("[upload] sign: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
    }
    return c.JSON(http.StatusOK, sig)
}
