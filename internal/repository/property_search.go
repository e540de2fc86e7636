package repository

import (
    "context"
    "encoding/json"
    "strings"

    "github.com/iliyamo/property-booking/internal/model"
)

var propertyOrder = map[string]string{
    model.SortNewest:    "created_at DESC",
    model.SortPriceAsc:  "price_per_night ASC, created_at DESC",
    model.SortPriceDesc: "price_per_night DESC, created_at DESC",
    model.SortRating:    "rating DESC, created_at DESC",
}

// Search returns the listings matching every predicate of f.  An
// availability window excludes listings holding a confirmed booking
// that overlaps [check_in, check_out).
func (r *PropertyRepo) Search(ctx context.Context, f model.PropertyFilter) ([]model.Property, error) {
    q, args, err := searchQuery(f)
    if err != nil {
        return nil, err
    }
    out := []model.Property{}
    if err := r.db.SelectContext(ctx, &out, q, args...); err != nil {
        return nil, err
    }
    return out, nil
}

// searchQuery renders f as a single SELECT with positional arguments.
func searchQuery(f model.PropertyFilter) (string, []any, error) {
    where := []string{}
    args := []any{}

    if f.Location != "" {
        where = append(where, "LOWER(location) LIKE ?")
        args = append(args, "%"+escapeLike(strings.ToLower(f.Location))+"%")
    }
    if f.MinPrice != nil {
        where = append(where, "price_per_night >= ?")
        args = append(args, *f.MinPrice)
    }
    if f.MaxPrice != nil {
        where = append(where, "price_per_night <= ?")
        args = append(args, *f.MaxPrice)
    }
    if f.MinRating != nil {
        where = append(where, "rating >= ?")
        args = append(args, *f.MinRating)
    }
    if f.Guests != nil {
        where = append(where, "max_guests >= ?")
        args = append(args, *f.Guests)
    }
    for _, a := range f.Amenities {
        b, err := json.Marshal(a)
        if err != nil {
            return "", nil, err
        }
        where = append(where, "JSON_CONTAINS(amenities, ?)")
        args = append(args, string(b))
    }
    if f.Available != nil {
        where = append(where, bookedClause)
        args = append(args, model.BookingConfirmed, f.Available.CheckOut, f.Available.CheckIn)
    }

    cond := "1=1"
    if len(where) > 0 {
        cond = strings.Join(where, " AND ")
    }
    q := "SELECT " + propertyColumns + " FROM properties WHERE " + cond +
        " ORDER BY " + propertyOrder[f.NormalizedSort()]
    return q, args, nil
}

const bookedClause = `id NOT IN (
            SELECT b.property_id FROM bookings b
            WHERE b.status = ? AND b.check_in < ? AND b.check_out > ?)`

// escapeLike escapes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
    return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
