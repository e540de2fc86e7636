package mongostore

import (
    "context"
    "regexp"

    "go.mongodb.org/mongo-driver/bson"
    "go.mongodb.org/mongo-driver/mongo"
    "go.mongodb.org/mongo-driver/mongo/options"

    "github.com/iliyamo/property-booking/internal/model"
    "github.com/iliyamo/property-booking/internal/repository"
)

type propertyRepo struct {
    c        *mongo.Collection
    bookings *mongo.Collection
}

func (r *propertyRepo) Create(ctx context.Context, p *model.Property) error {
    _, err := r.c.InsertOne(ctx, p)
    return mapErr(err)
}

func (r *propertyRepo) GetByID(ctx context.Context, id string) (*model.Property, error) {
    var p model.Property
    if err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
        return nil, mapErr(err)
    }
    return &p, nil
}

func (r *propertyRepo) Update(ctx context.Context, id string, patch model.PropertyPatch) (*model.Property, error) {
    set := bson.M{}
    if patch.Name != nil {
        set["name"] = *patch.Name
    }
    if patch.Description != nil {
        set["description"] = *patch.Description
    }
    if patch.Location != nil {
        set["location"] = *patch.Location
    }
    if patch.PricePerNight != nil {
        set["price_per_night"] = *patch.PricePerNight
    }
    if patch.Amenities != nil {
        set["amenities"] = *patch.Amenities
    }
    if patch.Images != nil {
        set["images"] = *patch.Images
    }
    if patch.MaxGuests != nil {
        set["max_guests"] = *patch.MaxGuests
    }
    if len(set) == 0 {
        return r.GetByID(ctx, id)
    }
    var p model.Property
    err := r.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
        options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&p)
    if err != nil {
        return nil, mapErr(err)
    }
    return &p, nil
}

func (r *propertyRepo) Delete(ctx context.Context, id string) error {
    res, err := r.c.DeleteOne(ctx, bson.M{"_id": id})
    if err != nil {
        return err
    }
    if res.DeletedCount == 0 {
        return repository.ErrNotFound
    }
    return nil
}

func (r *propertyRepo) SetRating(ctx context.Context, id string, rating float64, count int) error {
    return matched(r.c.UpdateOne(ctx, bson.M{"_id": id},
        bson.M{"$set": bson.M{"rating": rating, "review_count": count}}))
}

var propertySort = map[string]bson.D{
    model.SortNewest:    {{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}},
    model.SortPriceAsc:  {{Key: "price_per_night", Value: 1}, {Key: "created_at", Value: -1}},
    model.SortPriceDesc: {{Key: "price_per_night", Value: -1}, {Key: "created_at", Value: -1}},
    model.SortRating:    {{Key: "rating", Value: -1}, {Key: "created_at", Value: -1}},
}

// Search translates the filter into a single find.  The availability
// window is resolved first into the set of listings holding an
// overlapping confirmed booking, which are then excluded with $nin.
func (r *propertyRepo) Search(ctx context.Context, f model.PropertyFilter) ([]model.Property, error) {
    var booked []interface{}
    if f.Available != nil {
        var err error
        booked, err = r.bookings.Distinct(ctx, "property_id", bookedFilter(*f.Available))
        if err != nil {
            return nil, err
        }
    }

    cur, err := r.c.Find(ctx, searchFilter(f, booked), options.Find().SetSort(propertySort[f.NormalizedSort()]))
    if err != nil {
        return nil, err
    }
    out := []model.Property{}
    if err := cur.All(ctx, &out); err != nil {
        return nil, err
    }
    return out, nil
}

// searchFilter renders every predicate of f except the availability
// window, which arrives as the ids of the listings to exclude.
func searchFilter(f model.PropertyFilter, booked []interface{}) bson.M {
    filter := bson.M{}
    if f.Location != "" {
        filter["location"] = bson.M{"$regex": regexp.QuoteMeta(f.Location), "$options": "i"}
    }
    price := bson.M{}
    if f.MinPrice != nil {
        price["$gte"] = *f.MinPrice
    }
    if f.MaxPrice != nil {
        price["$lte"] = *f.MaxPrice
    }
    if len(price) > 0 {
        filter["price_per_night"] = price
    }
    if f.MinRating != nil {
        filter["rating"] = bson.M{"$gte": *f.MinRating}
    }
    if f.Guests != nil {
        filter["max_guests"] = bson.M{"$gte": *f.Guests}
    }
    if len(f.Amenities) > 0 {
        filter["amenities"] = bson.M{"$all": f.Amenities}
    }
    if len(booked) > 0 {
        filter["_id"] = bson.M{"$nin": booked}
    }
    return filter
}

// bookedFilter matches confirmed bookings overlapping r.
func bookedFilter(r model.DateRange) bson.M {
    return bson.M{
        "status":    model.BookingConfirmed,
        "check_in":  bson.M{"$lt": r.CheckOut},
        "check_out": bson.M{"$gt": r.CheckIn},
    }
}
