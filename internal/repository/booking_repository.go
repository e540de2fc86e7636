package repository

import (
    "context"
    "time"

    "github.com/jmoiron/sqlx"

    "github.com/iliyamo/property-booking/internal/model"
)

// BookingRepo stores bookings in the 'bookings' table.  Check-in and
// check-out are DATETIME columns stored in UTC; the property name is
// copied in at booking time so history survives a deleted listing.
type BookingRepo struct{ db *sqlx.DB }

func NewBookingRepo(db *sqlx.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingColumns = `id, user_id, property_id, property_name, check_in, check_out, nights,
    total_price, status, payment_status, created_at`

// Create inserts b.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
    _, err := r.db.NamedExecContext(ctx,
        `INSERT INTO bookings (id, user_id, property_id, property_name, check_in, check_out, nights,
            total_price, status, payment_status, created_at)
         VALUES (:id, :user_id, :property_id, :property_name, :check_in, :check_out, :nights,
            :total_price, :status, :payment_status, :created_at)`, b)
    return err
}

// GetByID fetches a booking by id.
func (r *BookingRepo) GetByID(ctx context.Context, id string) (*model.Booking, error) {
    var b model.Booking
    err := r.db.GetContext(ctx, &b, "SELECT "+bookingColumns+" FROM bookings WHERE id=? LIMIT 1", id)
    if err != nil {
        return nil, notFound(err)
    }
    return &b, nil
}

// ListByUser returns the bookings of one user, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID string) ([]model.Booking, error) {
    out := []model.Booking{}
    err := r.db.SelectContext(ctx, &out,
        "SELECT "+bookingColumns+" FROM bookings WHERE user_id=? ORDER BY created_at DESC", userID)
    return out, err
}

// List returns every booking, newest first.
func (r *BookingRepo) List(ctx context.Context) ([]model.Booking, error) {
    out := []model.Booking{}
    err := r.db.SelectContext(ctx, &out,
        "SELECT "+bookingColumns+" FROM bookings ORDER BY created_at DESC")
    return out, err
}

// HasOverlap reports whether a confirmed booking of the property
// intersects [checkIn, checkOut).  Back-to-back stays do not overlap.
func (r *BookingRepo) HasOverlap(ctx context.Context, propertyID string, checkIn, checkOut time.Time) (bool, error) {
    var n int
    err := r.db.GetContext(ctx, &n,
        `SELECT COUNT(*) FROM bookings
         WHERE property_id=? AND status=? AND check_in < ? AND check_out > ?`,
        propertyID, model.BookingConfirmed, checkOut, checkIn)
    return n > 0, err
}

// HasConfirmed reports whether the user holds a confirmed booking of
// the property.
func (r *BookingRepo) HasConfirmed(ctx context.Context, userID, propertyID string) (bool, error) {
    var n int
    err := r.db.GetContext(ctx, &n,
        "SELECT COUNT(*) FROM bookings WHERE user_id=? AND property_id=? AND status=?",
        userID, propertyID, model.BookingConfirmed)
    return n > 0, err
}

// UpdateStatus moves a booking from one status to another in a single
// conditional UPDATE so concurrent transitions cannot both succeed.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id, from, to string) error {
    res, err := r.db.ExecContext(ctx,
        "UPDATE bookings SET status=? WHERE id=? AND status=?", to, id, from)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    return ResolveUpdate(n, func() (bool, error) {
        var count int
        err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM bookings WHERE id=?", id)
        return count > 0, err
    })
}

// SetPaymentStatus records the payment state of a booking.
func (r *BookingRepo) SetPaymentStatus(ctx context.Context, id, status string) error {
    return affected(r.db.ExecContext(ctx, "UPDATE bookings SET payment_status=? WHERE id=?", status, id))
}

// ListCheckIns returns confirmed bookings whose check-in lies in [from, to).
func (r *BookingRepo) ListCheckIns(ctx context.Context, from, to time.Time) ([]model.Booking, error) {
    out := []model.Booking{}
    err := r.db.SelectContext(ctx, &out,
        "SELECT "+bookingColumns+` FROM bookings
         WHERE status=? AND check_in >= ? AND check_in < ? ORDER BY check_in ASC`,
        model.BookingConfirmed, from, to)
    return out, err
}
