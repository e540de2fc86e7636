package repository

import (
    "context"
    "time"

    "github.com/iliyamo/property-booking/internal/model"
)

// UserRepository persists accounts.  Emails are stored normalized by
// the caller; Create returns ErrDuplicate when the email is taken.
type UserRepository interface {
    Create(ctx context.Context, u *model.User) error
    GetByID(ctx context.Context, id string) (*model.User, error)
    GetByEmail(ctx context.Context, email string) (*model.User, error)
    List(ctx context.Context) ([]model.User, error)
    UpdateRole(ctx context.Context, id, role string) error
}

// PropertyRepository persists listings.  Search must honour every
// predicate of the filter, including Available, and return results in
// the filter's normalized sort order.
type PropertyRepository interface {
    Create(ctx context.Context, p *model.Property) error
    GetByID(ctx context.Context, id string) (*model.Property, error)
    Update(ctx context.Context, id string, patch model.PropertyPatch) (*model.Property, error)
    Delete(ctx context.Context, id string) error
    Search(ctx context.Context, f model.PropertyFilter) ([]model.Property, error)
    SetRating(ctx context.Context, id string, rating float64, count int) error
}

// BookingRepository persists bookings.
//
// HasOverlap only considers confirmed bookings.  UpdateStatus is a
// compare-and-set: it returns ErrNotFound when the booking is missing
// and ErrConflict when its current status differs from `from`.
// ListCheckIns returns confirmed bookings whose check-in lies in
// [from, to).
type BookingRepository interface {
    Create(ctx context.Context, b *model.Booking) error
    GetByID(ctx context.Context, id string) (*model.Booking, error)
    ListByUser(ctx context.Context, userID string) ([]model.Booking, error)
    List(ctx context.Context) ([]model.Booking, error)
    HasOverlap(ctx context.Context, propertyID string, checkIn, checkOut time.Time) (bool, error)
    HasConfirmed(ctx context.Context, userID, propertyID string) (bool, error)
    UpdateStatus(ctx context.Context, id, from, to string) error
    SetPaymentStatus(ctx context.Context, id, status string) error
    ListCheckIns(ctx context.Context, from, to time.Time) ([]model.Booking, error)
}

// ReviewRepository persists reviews.  Create returns ErrDuplicate when
// the user already reviewed the property.  Stats returns the mean
// rating and the number of reviews of a property.
type ReviewRepository interface {
    Create(ctx context.Context, r *model.Review) error
    Exists(ctx context.Context, userID, propertyID string) (bool, error)
    ListByProperty(ctx context.Context, propertyID string) ([]model.Review, error)
    Stats(ctx context.Context, propertyID string) (avg float64, count int, err error)
}

// PaymentRepository persists mock payment records.
type PaymentRepository interface {
    Create(ctx context.Context, p *model.Payment) error
}

// Store bundles one implementation of every repository.  Close releases
// the underlying connection and may be nil for stores without one.
type Store struct {
    Users      UserRepository
    Properties PropertyRepository
    Bookings   BookingRepository
    Reviews    ReviewRepository
    Payments   PaymentRepository
    Close      func(ctx context.Context) error
}
