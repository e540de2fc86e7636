package service

import (
    "context"
    "errors"
    "math"
    "time"

    "github.com/labstack/gommon/log"

    "github.com/iliyamo/property-booking/internal/model"
    "github.com/iliyamo/property-booking/internal/notify"
    "github.com/iliyamo/property-booking/internal/repository"
)

type BookingService struct {
    bookings   repository.BookingRepository
    properties repository.PropertyRepository
    users      repository.UserRepository
    notifier   notify.Notifier
    locks      *keyedMutex
    now        func() time.Time
}

func NewBookingService(store *repository.Store, n notify.Notifier) *BookingService {
    return &BookingService{
        bookings:   store.Bookings,
        properties: store.Properties,
        users:      store.Users,
        notifier:   n,
        locks:      newKeyedMutex(),
        now:        time.Now,
    }
}

type BookingInput struct {
    PropertyID string
    CheckIn    time.Time
    CheckOut   time.Time
}

// MaxNights caps the length of a single stay.
const MaxNights = 365

// validStay checks that [checkIn, checkOut) is non-empty and no longer
// than MaxNights calendar days.
func validStay(checkIn, checkOut time.Time) error {
    if !checkOut.After(checkIn) {
        return Validation("check_out must be after check_in")
    }
    if checkOut.After(checkIn.AddDate(0, 0, MaxNights)) {
        return Validation("stay cannot exceed %d nights", MaxNights)
    }
    return nil
}

// Nights counts started 24h periods between check-in and check-out.
// Callers bound the range with validStay first.
func Nights(checkIn, checkOut time.Time) int {
    return int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
}

func (s *BookingService) getProperty(ctx context.Context, id string) (*model.Property, error) {
    p, err := s.properties.GetByID(ctx, id)
    if errors.Is(err, repository.ErrNotFound) {
        return nil, NotFound("property not found")
    }
    if err != nil {
        return nil, storeErr("get property", err)
    }
    return p, nil
}

// IsAvailable reports whether no confirmed booking of the property
// overlaps [checkIn, checkOut).
func (s *BookingService) IsAvailable(ctx context.Context, propertyID string, checkIn, checkOut time.Time) (bool, error) {
    if err := validStay(checkIn, checkOut); err != nil {
        return false, err
    }
    if _, err := s.getProperty(ctx, propertyID); err != nil {
        return false, err
    }
    overlap, err := s.bookings.HasOverlap(ctx, propertyID, checkIn.UTC(), checkOut.UTC())
    if err != nil {
        return false, storeErr("check availability", err)
    }
    return !overlap, nil
}

// Create books a property for userID.  The availability check and the
// insert run under the property's lock so two overlapping requests
// cannot both succeed.
func (s *BookingService) Create(ctx context.Context, userID string, in BookingInput) (*model.Booking, error) {
    checkIn, checkOut := in.CheckIn.UTC(), in.CheckOut.UTC()
    if in.PropertyID == "" {
        return nil, Validation("property_id is required")
    }
    if err := validStay(checkIn, checkOut); err != nil {
        return nil, err
    }
    user, err := loadUser(ctx, s.users, userID)
    if err != nil {
        return nil, err
    }
    prop, err := s.getProperty(ctx, in.PropertyID)
    if err != nil {
        return nil, err
    }

    unlock := s.locks.Lock(prop.ID)
    defer unlock()

    overlap, err := s.bookings.HasOverlap(ctx, prop.ID, checkIn, checkOut)
    if err != nil {
        return nil, storeErr("check availability", err)
    }
    if overlap {
        return nil, Conflict("property not available for selected dates")
    }

    nights := Nights(checkIn, checkOut)
    b := &model.Booking{
        ID:            newID(),
        UserID:        user.ID,
        PropertyID:    prop.ID,
        PropertyName:  prop.Name,
        CheckIn:       checkIn,
        CheckOut:      checkOut,
        Nights:        nights,
        TotalPrice:    float64(nights) * prop.PricePerNight,
        Status:        model.BookingConfirmed,
        PaymentStatus: model.PaymentUnpaid,
        CreatedAt:     s.now().UTC(),
    }
    if err := s.bookings.Create(ctx, b); err != nil {
        return nil, storeErr("create booking", err)
    }
    deliver(ctx, s.notifier, notify.BookingConfirmed(*user, *b))
    return b, nil
}

// Cancel flips a confirmed booking to cancelled.  Only the booking's
// owner or an admin may cancel; cancelling twice is a conflict.
func (s *BookingService) Cancel(ctx context.Context, who Identity, bookingID string) (*model.Booking, error) {
    b, err := s.bookings.GetByID(ctx, bookingID)
    if errors.Is(err, repository.ErrNotFound) {
        return nil, NotFound("booking not found")
    }
    if err != nil {
        return nil, storeErr("get booking", err)
    }
    if b.UserID != who.UserID && !who.IsAdmin() {
        return nil, Forbidden("not authorized to cancel this booking")
    }

    switch err := s.bookings.UpdateStatus(ctx, b.ID, model.BookingConfirmed, model.BookingCancelled); {
    case errors.Is(err, repository.ErrConflict):
        return nil, Conflict("booking already cancelled")
    case errors.Is(err, repository.ErrNotFound):
        return nil, NotFound("booking not found")
    case err != nil:
        return nil, storeErr("cancel booking", err)
    }
    b.Status = model.BookingCancelled

    if owner, err := s.users.GetByID(ctx, b.UserID); err == nil {
        deliver(ctx, s.notifier, notify.BookingCancelled(*owner, *b))
    } else {
        log.Warnf("[booking] cancel %s: owner %s not loaded: %v", b.ID, b.UserID, err)
    }
    return b, nil
}

// ListMine returns the caller's bookings, newest first.
func (s *BookingService) ListMine(ctx context.Context, userID string) ([]model.Booking, error) {
    out, err := s.bookings.ListByUser(ctx, userID)
    if err != nil {
        return nil, storeErr("list bookings", err)
    }
    return out, nil
}

// ListAll returns every booking, newest first.
func (s *BookingService) ListAll(ctx context.Context) ([]model.Booking, error) {
    out, err := s.bookings.List(ctx)
    if err != nil {
        return nil, storeErr("list bookings", err)
    }
    return out, nil
}

// SendCheckInReminders notifies the owners of confirmed bookings whose
// check-in falls on the UTC calendar day after now.  It returns how many
// reminders were handed to the notifier.
func (s *BookingService) SendCheckInReminders(ctx context.Context, now time.Time) (int, error) {
    y, m, d := now.UTC().Date()
    from := time.Date(y, m, d+1, 0, 0, 0, 0, time.UTC)
    to := from.AddDate(0, 0, 1)

    due, err := s.bookings.ListCheckIns(ctx, from, to)
    if err != nil {
        return 0, storeErr("list check-ins", err)
    }
    sent := 0
    for _, b := range due {
        u, err := s.users.GetByID(ctx, b.UserID)
        if err != nil {
            log.Warnf("[reminder] booking %s: owner %s not loaded: %v", b.ID, b.UserID, err)
            continue
        }
        deliver(ctx, s.notifier, notify.CheckInReminder(*u, b))
        sent++
    }
    return sent, nil
}
