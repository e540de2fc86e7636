package model

import "time"

// Payment is the record left by the mock payment endpoint.  No money
// moves; the ID doubles as the transaction id returned to the client
// and only the last four card digits are kept.
type Payment struct {
    ID        string    `json:"id" bson:"_id" db:"id"`
    BookingID string    `json:"booking_id" bson:"booking_id" db:"booking_id"`
    Amount    float64   `json:"amount" bson:"amount" db:"amount"`
    Currency  string    `json:"currency" bson:"currency" db:"currency"`
    CardLast4 string    `json:"card_last4" bson:"card_last4" db:"card_last4"`
    Status    string    `json:"status" bson:"status" db:"status"`
    CreatedAt time.Time `json:"created_at" bson:"created_at" db:"created_at"`
}
