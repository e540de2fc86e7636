package model

import (
    "database/sql/driver"
    "encoding/json"
    "fmt"
    "strings"
    "time"
)

// Property is a bookable listing.  Rating and ReviewCount are derived
// from the property's reviews and are only written by the review flow.
//
// Fields:
//  ID            – uuid primary key.
//  Name          – listing title.
//  Description   – free text description.
//  Location      – free text location used by the location filter.
//  PricePerNight – nightly price charged at booking time.
//  Amenities     – amenity labels (e.g. "wifi", "pool").
//  Images        – image URLs.
//  MaxGuests     – guest capacity used by the guests filter.
//  OwnerID       – admin who created the listing.
//  Rating        – mean review rating rounded to one decimal.
//  ReviewCount   – number of reviews.
//  CreatedAt     – creation timestamp; default sort key.
type Property struct {
    ID            string     `json:"id" bson:"_id" db:"id"`
    Name          string     `json:"name" bson:"name" db:"name"`
    Description   string     `json:"description" bson:"description" db:"description"`
    Location      string     `json:"location" bson:"location" db:"location"`
    PricePerNight float64    `json:"price_per_night" bson:"price_per_night" db:"price_per_night"`
    Amenities     StringList `json:"amenities" bson:"amenities" db:"amenities"`
    Images        StringList `json:"images" bson:"images" db:"images"`
    MaxGuests     int        `json:"max_guests" bson:"max_guests" db:"max_guests"`
    OwnerID       string     `json:"owner_id" bson:"owner_id" db:"owner_id"`
    Rating        float64    `json:"rating" bson:"rating" db:"rating"`
    ReviewCount   int        `json:"review_count" bson:"review_count" db:"review_count"`
    CreatedAt     time.Time  `json:"created_at" bson:"created_at" db:"created_at"`
}

// PropertyPatch carries a partial update.  Nil fields are left
// untouched.
type PropertyPatch struct {
    Name          *string
    Description   *string
    Location      *string
    PricePerNight *float64
    Amenities     *[]string
    Images        *[]string
    MaxGuests     *int
}

// Empty reports whether the patch changes nothing.
func (p PropertyPatch) Empty() bool {
    return p.Name == nil && p.Description == nil && p.Location == nil &&
        p.PricePerNight == nil && p.Amenities == nil && p.Images == nil && p.MaxGuests == nil
}

// Apply writes the non-nil fields of the patch onto prop.
func (p PropertyPatch) Apply(prop *Property) {
    if p.Name != nil {
        prop.Name = *p.Name
    }
    if p.Description != nil {
        prop.Description = *p.Description
    }
    if p.Location != nil {
        prop.Location = *p.Location
    }
    if p.PricePerNight != nil {
        prop.PricePerNight = *p.PricePerNight
    }
    if p.Amenities != nil {
        prop.Amenities = StringList(*p.Amenities)
    }
    if p.Images != nil {
        prop.Images = StringList(*p.Images)
    }
    if p.MaxGuests != nil {
        prop.MaxGuests = *p.MaxGuests
    }
}

// Sort keys accepted by PropertyFilter.Sort.
const (
    SortNewest    = "created_at"
    SortPriceAsc  = "price_asc"
    SortPriceDesc = "price_desc"
    SortRating    = "rating"
)

// DateRange is a half-open [CheckIn, CheckOut) interval.
type DateRange struct {
    CheckIn  time.Time
    CheckOut time.Time
}

// PropertyFilter holds the optional search predicates.  A nil pointer
// or empty value imposes no constraint.
type PropertyFilter struct {
    Location  string
    MinPrice  *float64
    MaxPrice  *float64
    Amenities []string
    MinRating *float64
    Guests    *int
    Available *DateRange // exclude properties with an overlapping confirmed booking
    Sort      string
}

// Matches evaluates every predicate except Available, which needs
// booking data.  Stores that cannot push predicates down use it.
func (f PropertyFilter) Matches(p *Property) bool {
    if f.Location != "" && !containsFold(p.Location, f.Location) {
        return false
    }
    if f.MinPrice != nil && p.PricePerNight < *f.MinPrice {
        return false
    }
    if f.MaxPrice != nil && p.PricePerNight > *f.MaxPrice {
        return false
    }
    if f.MinRating != nil && p.Rating < *f.MinRating {
        return false
    }
    if f.Guests != nil && p.MaxGuests < *f.Guests {
        return false
    }
    for _, a := range f.Amenities {
        if !p.Amenities.Contains(a) {
            return false
        }
    }
    return true
}

// NormalizedSort maps unknown or empty sort keys to SortNewest.
func (f PropertyFilter) NormalizedSort() string {
    switch f.Sort {
    case SortPriceAsc, SortPriceDesc, SortRating:
        return f.Sort
    }
    return SortNewest
}

// StringList is a list of strings stored as a JSON array in SQL
// columns and as a native array in documents.
type StringList []string

// Contains reports whether s is in the list.
func (l StringList) Contains(s string) bool {
    for _, v := range l {
        if v == s {
            return true
        }
    }
    return false
}

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
    if l == nil {
        return "[]", nil
    }
    b, err := json.Marshal([]string(l))
    if err != nil {
        return nil, err
    }
    return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
    var raw []byte
    switch v := src.(type) {
    case nil:
        *l = StringList{}
        return nil
    case []byte:
        raw = v
    case string:
        raw = []byte(v)
    default:
        return fmt.Errorf("model: cannot scan %T into StringList", src)
    }
    out := []string{}
    if len(raw) > 0 {
        if err := json.Unmarshal(raw, &out); err != nil {
            return err
        }
    }
    *l = out
    return nil
}

func containsFold(s, substr string) bool {
    return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
