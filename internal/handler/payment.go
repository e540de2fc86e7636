package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/property-booking/internal/service"
)

type PaymentHandler struct {
    Payments *service.PaymentService
}

func NewPaymentHandler(p *service.PaymentService) *PaymentHandler {
    return &PaymentHandler{Payments: p}
}

type mockPaymentReq struct {
    BookingID  string  `json:"booking_id" validate:"required"`
    Amount     float64 `json:"amount" validate:"required,gt=0"`
    CardNumber string  `json:"card_number" validate:"required,numeric,min=12,max=19"`
}

// Mock handles POST /payment/mock.  It is stricter than a bare
// acknowledgement: an unknown booking is 404 and a booking that is
// already paid or cancelled is 409.
func (h *PaymentHandler) Mock(c echo.Context) error {
    var req mockPaymentReq
    if err := bindAndValidate(c, &req); err != nil {
        return respondError(c, err)
    }
    ctx, cancel := requestContext(c)
    defer cancel()

    res, err := h.Payments.Mock(ctx, service.MockPaymentInput{
        BookingID:  req.BookingID,
        Amount:     req.Amount,
        CardNumber: req.CardNumber,
    })
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, res)
}
