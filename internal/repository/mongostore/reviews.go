package mongostore

import (
    "context"

    "go.mongodb.org/mongo-driver/bson"
    "go.mongodb.org/mongo-driver/mongo"
    "go.mongodb.org/mongo-driver/mongo/options"

    "github.com/iliyamo/property-booking/internal/model"
)

type reviewRepo struct{ c *mongo.Collection }

// Create relies on the unique (user_id, property_id) index.
func (r *reviewRepo) Create(ctx context.Context, rv *model.Review) error {
    _, err := r.c.InsertOne(ctx, rv)
    return mapErr(err)
}

func (r *reviewRepo) Exists(ctx context.Context, userID, propertyID string) (bool, error) {
    return exists(ctx, r.c, bson.M{"user_id": userID, "property_id": propertyID})
}

func (r *reviewRepo) ListByProperty(ctx context.Context, propertyID string) ([]model.Review, error) {
    cur, err := r.c.Find(ctx, bson.M{"property_id": propertyID},
        options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}))
    if err != nil {
        return nil, err
    }
    out := []model.Review{}
    if err := cur.All(ctx, &out); err != nil {
        return nil, err
    }
    return out, nil
}

func (r *reviewRepo) Stats(ctx context.Context, propertyID string) (float64, int, error) {
    cur, err := r.c.Aggregate(ctx, mongo.Pipeline{
        {{Key: "$match", Value: bson.M{"property_id": propertyID}}},
        {{Key: "$group", Value: bson.M{
            "_id":   nil,
            "avg":   bson.M{"$avg": "$rating"},
            "count": bson.M{"$sum": 1},
        }}},
    })
    if err != nil {
        return 0, 0, err
    }
    defer cur.Close(ctx)
    var row struct {
        Avg   float64 `bson:"avg"`
        Count int     `bson:"count"`
    }
    if !cur.Next(ctx) {
        return 0, 0, cur.Err()
    }
    if err := cur.Decode(&row); err != nil {
        return 0, 0, err
    }
    return row.Avg, row.Count, nil
}
