package mongostore

import (
    "context"

    "go.mongodb.org/mongo-driver/mongo"

    "github.com/iliyamo/property-booking/internal/model"
)

type paymentRepo struct{ c *mongo.Collection }

func (r *paymentRepo) Create(ctx context.Context, p *model.Payment) error {
    _, err := r.c.InsertOne(ctx, p)
    return mapErr(err)
}
