package model

import "time"

// Booking status values.  A booking is created confirmed and can only
// move to cancelled.
const (
    BookingConfirmed = "confirmed"
    BookingCancelled = "cancelled"
)

// Payment status values tracked on a booking.
const (
    PaymentUnpaid = "unpaid"
    PaymentPaid   = "paid"
)

// Booking records a user's stay at a property.  PropertyName is a
// snapshot of the property's name at booking time and TotalPrice is
// computed once from the nightly price in effect when the booking was
// made; neither is recalculated later.
//
// Fields:
//  ID            – uuid primary key.
//  UserID        – guest who made the booking.
//  PropertyID    – booked property.
//  PropertyName  – denormalized property name.
//  CheckIn       – start of the stay (inclusive).
//  CheckOut      – end of the stay (exclusive, strictly after CheckIn).
//  Nights        – number of charged nights.
//  TotalPrice    – Nights × price per night.
//  Status        – BookingConfirmed or BookingCancelled.
//  PaymentStatus – PaymentUnpaid or PaymentPaid.
//  CreatedAt     – creation timestamp.
type Booking struct {
    ID            string    `json:"id" bson:"_id" db:"id"`
    UserID        string    `json:"user_id" bson:"user_id" db:"user_id"`
    PropertyID    string    `json:"property_id" bson:"property_id" db:"property_id"`
    PropertyName  string    `json:"property_name" bson:"property_name" db:"property_name"`
    CheckIn       time.Time `json:"check_in" bson:"check_in" db:"check_in"`
    CheckOut      time.Time `json:"check_out" bson:"check_out" db:"check_out"`
    Nights        int       `json:"nights" bson:"nights" db:"nights"`
    TotalPrice    float64   `json:"total_price" bson:"total_price" db:"total_price"`
    Status        string    `json:"status" bson:"status" db:"status"`
    PaymentStatus string    `json:"payment_status" bson:"payment_status" db:"payment_status"`
    CreatedAt     time.Time `json:"created_at" bson:"created_at" db:"created_at"`
}

// Overlaps reports whether the booking's [CheckIn, CheckOut) interval
// intersects [checkIn, checkOut).
func (b *Booking) Overlaps(checkIn, checkOut time.Time) bool {
    return checkIn.Before(b.CheckOut) && checkOut.After(b.CheckIn)
}
