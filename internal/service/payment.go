package service

import (
    "context"
    "errors"
    "fmt"
    "time"

    "github.com/labstack/gommon/log"

    "github.com/iliyamo/property-booking/internal/model"
    "github.com/iliyamo/property-booking/internal/notify"
    "github.com/iliyamo/property-booking/internal/repository"
)

const paymentCurrency = "USD"

type PaymentService struct {
    payments repository.PaymentRepository
    bookings repository.BookingRepository
    users    repository.UserRepository
    notifier notify.Notifier
    locks    *keyedMutex
    now      func() time.Time
}

func NewPaymentService(store *repository.Store, n notify.Notifier) *PaymentService {
    return &PaymentService{
        payments: store.Payments,
        bookings: store.Bookings,
        users:    store.Users,
        notifier: n,
        locks:    newKeyedMutex(),
        now:      time.Now,
    }
}

type MockPaymentInput struct {
    BookingID  string
    Amount     float64
    CardNumber string
}

// MockPaymentResult is the acknowledgement returned to the client.
type MockPaymentResult struct {
    Success       bool   `json:"success"`
    TransactionID string `json:"transaction_id"`
    Message       string `json:"message"`
}

// Mock records a synthetic payment for a booking.  No money moves; only
// the last four card digits are stored.  The card format is checked at
// the HTTP boundary.
func (s *PaymentService) Mock(ctx context.Context, in MockPaymentInput) (*MockPaymentResult, error) {
    card := in.CardNumber
    switch {
    case in.BookingID == "":
        return nil, Validation("booking_id is required")
    case in.Amount <= 0:
        return nil, Validation("amount must be greater than 0")
    case len(card) < 4:
        return nil, Validation("card_number must have at least 4 digits")
    }

    unlock := s.locks.Lock(in.BookingID)
    defer unlock()

    b, err := s.bookings.GetByID(ctx, in.BookingID)
    if errors.Is(err, repository.ErrNotFound) {
        return nil, NotFound("booking not found")
    }
    if err != nil {
        return nil, storeErr("get booking", err)
    }
    if b.Status == model.BookingCancelled {
        return nil, Conflict("booking is cancelled")
    }
    if b.PaymentStatus == model.PaymentPaid {
        return nil, Conflict("booking already paid")
    }

    p := &model.Payment{
        ID:        newID(),
        BookingID: b.ID,
        Amount:    in.Amount,
        Currency:  paymentCurrency,
        CardLast4: card[len(card)-4:],
        Status:    model.PaymentPaid,
        CreatedAt: s.now().UTC(),
    }
    if err := s.payments.Create(ctx, p); err != nil {
        return nil, storeErr("record payment", err)
    }
    if err := s.bookings.SetPaymentStatus(ctx, b.ID, model.PaymentPaid); err != nil {
        return nil, storeErr("mark booking paid", err)
    }
    b.PaymentStatus = model.PaymentPaid

    if u, err := s.users.GetByID(ctx, b.UserID); err == nil {
        deliver(ctx, s.notifier, notify.PaymentReceipt(*u, *b, *p))
    } else {
        log.Warnf("[payment] booking %s: owner %s not loaded: %v", b.ID, b.UserID, err)
    }
    return &MockPaymentResult{
        Success:       true,
        TransactionID: p.ID,
        Message:       fmt.Sprintf("Payment of %.2f %s received for booking %s", p.Amount, p.Currency, b.ID),
    }, nil
}
