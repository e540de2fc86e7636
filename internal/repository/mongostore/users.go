package mongostore

import (
    "context"

    "go.mongodb.org/mongo-driver/bson"
    "go.mongodb.org/mongo-driver/mongo"
    "go.mongodb.org/mongo-driver/mongo/options"

    "github.com/iliyamo/property-booking/internal/model"
)

type userRepo struct{ c *mongo.Collection }

func (r *userRepo) Create(ctx context.Context, u *model.User) error {
    _, err := r.c.InsertOne(ctx, u)
    return mapErr(err)
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
    return r.findOne(ctx, bson.M{"_id": id})
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
    return r.findOne(ctx, bson.M{"email": email})
}

func (r *userRepo) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
    var u model.User
    if err := r.c.FindOne(ctx, filter).Decode(&u); err != nil {
        return nil, mapErr(err)
    }
    return &u, nil
}

func (r *userRepo) List(ctx context.Context) ([]model.User, error) {
    cur, err := r.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
    if err != nil {
        return nil, err
    }
    out := []model.User{}
    if err := cur.All(ctx, &out); err != nil {
        return nil, err
    }
    return out, nil
}

func (r *userRepo) UpdateRole(ctx context.Context, id, role string) error {
    return matched(r.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"role": role}}))
}
