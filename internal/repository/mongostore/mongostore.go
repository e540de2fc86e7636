// Package mongostore implements the repositories on MongoDB.  Documents
// are keyed by uuid strings in _id so identifiers look the same across
// every store.
package mongostore

import (
    "context"
    "errors"

    "go.mongodb.org/mongo-driver/bson"
    "go.mongodb.org/mongo-driver/mongo"
    "go.mongodb.org/mongo-driver/mongo/options"

    "github.com/iliyamo/property-booking/internal/repository"
)

const (
    colUsers      = "users"
    colProperties = "properties"
    colBookings   = "bookings"
    colReviews    = "reviews"
    colPayments   = "payment_transactions"
)

// New wires every repository to db.  Call EnsureIndexes once at
// startup; the uniqueness rules depend on it.
func New(db *mongo.Database) *repository.Store {
    return &repository.Store{
        Users:      &userRepo{c: db.Collection(colUsers)},
        Properties: &propertyRepo{c: db.Collection(colProperties), bookings: db.Collection(colBookings)},
        Bookings:   &bookingRepo{c: db.Collection(colBookings)},
        Reviews:    &reviewRepo{c: db.Collection(colReviews)},
        Payments:   &paymentRepo{c: db.Collection(colPayments)},
        Close:      db.Client().Disconnect,
    }
}

// EnsureIndexes creates the indexes the repositories rely on.  It is
// idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
    specs := map[string][]mongo.IndexModel{
        colUsers: {
            {Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
        },
        colProperties: {
            {Keys: bson.D{{Key: "created_at", Value: -1}}},
            {Keys: bson.D{{Key: "price_per_night", Value: 1}}},
        },
        colBookings: {
            {Keys: bson.D{{Key: "property_id", Value: 1}, {Key: "status", Value: 1}, {Key: "check_in", Value: 1}}},
            {Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
        },
        colReviews: {
            {Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "property_id", Value: 1}}, Options: options.Index().SetUnique(true)},
            {Keys: bson.D{{Key: "property_id", Value: 1}, {Key: "created_at", Value: -1}}},
        },
        colPayments: {
            {Keys: bson.D{{Key: "booking_id", Value: 1}}},
        },
    }
    for name, models := range specs {
        if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
            return err
        }
    }
    return nil
}

func mapErr(err error) error {
    switch {
    case err == nil:
        return nil
    case errors.Is(err, mongo.ErrNoDocuments):
        return repository.ErrNotFound
    case mongo.IsDuplicateKeyError(err):
        return repository.ErrDuplicate
    }
    return err
}

// exists reports whether at least one document matches filter.
func exists(ctx context.Context, c *mongo.Collection, filter bson.M) (bool, error) {
    n, err := c.CountDocuments(ctx, filter, options.Count().SetLimit(1))
    return n > 0, err
}

// matched returns ErrNotFound when an update matched nothing.
func matched(res *mongo.UpdateResult, err error) error {
    if err != nil {
        return err
    }
    if res.MatchedCount == 0 {
        return repository.ErrNotFound
    }
    return nil
}
