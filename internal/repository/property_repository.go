package repository

import (
    "context"
    "strings"

    "github.com/jmoiron/sqlx"

    "github.com/iliyamo/property-booking/internal/model"
)

// PropertyRepo stores listings in the 'properties' table.  Amenities
// and images are JSON columns so the search can use JSON_CONTAINS.
type PropertyRepo struct{ db *sqlx.DB }

func NewPropertyRepo(db *sqlx.DB) *PropertyRepo { return &PropertyRepo{db: db} }

const propertyColumns = `id, name, description, location, price_per_night, amenities, images,
    max_guests, owner_id, rating, review_count, created_at`

// Create inserts p.
func (r *PropertyRepo) Create(ctx context.Context, p *model.Property) error {
    _, err := r.db.NamedExecContext(ctx,
        `INSERT INTO properties (id, name, description, location, price_per_night, amenities, images,
            max_guests, owner_id, rating, review_count, created_at)
         VALUES (:id, :name, :description, :location, :price_per_night, :amenities, :images,
            :max_guests, :owner_id, :rating, :review_count, :created_at)`, p)
    return err
}

// GetByID fetches a listing by id.
func (r *PropertyRepo) GetByID(ctx context.Context, id string) (*model.Property, error) {
    var p model.Property
    err := r.db.GetContext(ctx, &p, "SELECT "+propertyColumns+" FROM properties WHERE id=? LIMIT 1", id)
    if err != nil {
        return nil, notFound(err)
    }
    return &p, nil
}

// Update applies the non-nil fields of patch and returns the stored row.
func (r *PropertyRepo) Update(ctx context.Context, id string, patch model.PropertyPatch) (*model.Property, error) {
    sets := []string{}
    args := []any{}
    add := func(col string, v any) {
        sets = append(sets, col+"=?")
        args = append(args, v)
    }
    if patch.Name != nil {
        add("name", *patch.Name)
    }
    if patch.Description != nil {
        add("description", *patch.Description)
    }
    if patch.Location != nil {
        add("location", *patch.Location)
    }
    if patch.PricePerNight != nil {
        add("price_per_night", *patch.PricePerNight)
    }
    if patch.Amenities != nil {
        add("amenities", model.StringList(*patch.Amenities))
    }
    if patch.Images != nil {
        add("images", model.StringList(*patch.Images))
    }
    if patch.MaxGuests != nil {
        add("max_guests", *patch.MaxGuests)
    }
    if len(sets) > 0 {
        args = append(args, id)
        q := "UPDATE properties SET " + strings.Join(sets, ", ") + " WHERE id=?"
        if err := affected(r.db.ExecContext(ctx, q, args...)); err != nil {
            return nil, err
        }
    }
    return r.GetByID(ctx, id)
}

// Delete removes a listing.  Bookings and reviews referencing it are
// kept for history.
func (r *PropertyRepo) Delete(ctx context.Context, id string) error {
    return affected(r.db.ExecContext(ctx, "DELETE FROM properties WHERE id=?", id))
}

// SetRating stores the derived rating fields.
func (r *PropertyRepo) SetRating(ctx context.Context, id string, rating float64, count int) error {
    return affected(r.db.ExecContext(ctx,
        "UPDATE properties SET rating=?, review_count=? WHERE id=?", rating, count, id))
}
