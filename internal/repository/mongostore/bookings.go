package mongostore

import (
    "context"
    "time"

    "go.mongodb.org/mongo-driver/bson"
    "go.mongodb.org/mongo-driver/mongo"
    "go.mongodb.org/mongo-driver/mongo/options"

    "github.com/iliyamo/property-booking/internal/model"
    "github.com/iliyamo/property-booking/internal/repository"
)

type bookingRepo struct{ c *mongo.Collection }

func (r *bookingRepo) Create(ctx context.Context, b *model.Booking) error {
    _, err := r.c.InsertOne(ctx, b)
    return mapErr(err)
}

func (r *bookingRepo) GetByID(ctx context.Context, id string) (*model.Booking, error) {
    var b model.Booking
    if err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
        return nil, mapErr(err)
    }
    return &b, nil
}

func (r *bookingRepo) find(ctx context.Context, filter bson.M, sort bson.D) ([]model.Booking, error) {
    cur, err := r.c.Find(ctx, filter, options.Find().SetSort(sort))
    if err != nil {
        return nil, err
    }
    out := []model.Booking{}
    if err := cur.All(ctx, &out); err != nil {
        return nil, err
    }
    return out, nil
}

var newestFirst = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}

func (r *bookingRepo) ListByUser(ctx context.Context, userID string) ([]model.Booking, error) {
    return r.find(ctx, bson.M{"user_id": userID}, newestFirst)
}

func (r *bookingRepo) List(ctx context.Context) ([]model.Booking, error) {
    return r.find(ctx, bson.M{}, newestFirst)
}

func (r *bookingRepo) HasOverlap(ctx context.Context, propertyID string, checkIn, checkOut time.Time) (bool, error) {
    return exists(ctx, r.c, bson.M{
        "property_id": propertyID,
        "status":      model.BookingConfirmed,
        "check_in":    bson.M{"$lt": checkOut},
        "check_out":   bson.M{"$gt": checkIn},
    })
}

func (r *bookingRepo) HasConfirmed(ctx context.Context, userID, propertyID string) (bool, error) {
    return exists(ctx, r.c, bson.M{
        "user_id":     userID,
        "property_id": propertyID,
        "status":      model.BookingConfirmed,
    })
}

// UpdateStatus matches on the current status so only one of several
// concurrent transitions wins.
func (r *bookingRepo) UpdateStatus(ctx context.Context, id, from, to string) error {
    res, err := r.c.UpdateOne(ctx, bson.M{"_id": id, "status": from}, bson.M{"$set": bson.M{"status": to}})
    if err != nil {
        return err
    }
    return repository.ResolveUpdate(res.MatchedCount, func() (bool, error) {
        return exists(ctx, r.c, bson.M{"_id": id})
    })
}

func (r *bookingRepo) SetPaymentStatus(ctx context.Context, id, status string) error {
    return matched(r.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"payment_status": status}}))
}

func (r *bookingRepo) ListCheckIns(ctx context.Context, from, to time.Time) ([]model.Booking, error) {
    return r.find(ctx, bson.M{
        "status":   model.BookingConfirmed,
        "check_in": bson.M{"$gte": from, "$lt": to},
    }, bson.D{{Key: "check_in", Value: 1}})
}
