package service

import (
    "context"
    "errors"
    "strings"
    "time"

    "github.com/iliyamo/property-booking/internal/model"
    "github.com/iliyamo/property-booking/internal/repository"
)

const defaultMaxGuests = 2

type PropertyService struct {
    properties repository.PropertyRepository
    now        func() time.Time
}

func NewPropertyService(properties repository.PropertyRepository) *PropertyService {
    return &PropertyService{properties: properties, now: time.Now}
}

type PropertyInput struct {
    Name          string
    Description   string
    Location      string
    PricePerNight float64
    Amenities     []string
    Images        []string
    MaxGuests     int
}

// cleanList trims entries, drops empty ones and never returns nil.
func cleanList(in []string) model.StringList {
    out := model.StringList{}
    for _, s := range in {
        if s = strings.TrimSpace(s); s != "" {
            out = append(out, s)
        }
    }
    return out
}

// Create stores a new listing owned by ownerID.
func (s *PropertyService) Create(ctx context.Context, ownerID string, in PropertyInput) (*model.Property, error) {
    p := &model.Property{
        ID:            newID(),
        Name:          strings.TrimSpace(in.Name),
        Description:   strings.TrimSpace(in.Description),
        Location:      strings.TrimSpace(in.Location),
        PricePerNight: in.PricePerNight,
        Amenities:     cleanList(in.Amenities),
        Images:        cleanList(in.Images),
        MaxGuests:     in.MaxGuests,
        OwnerID:       ownerID,
        CreatedAt:     s.now().UTC(),
    }
    if p.MaxGuests == 0 {
        p.MaxGuests = defaultMaxGuests
    }
    if err := validateProperty(p); err != nil {
        return nil, err
    }
    if err := s.properties.Create(ctx, p); err != nil {
        return nil, storeErr("create property", err)
    }
    return p, nil
}

func validateProperty(p *model.Property) error {
    switch {
    case p.Name == "":
        return Validation("name is required")
    case p.Location == "":
        return Validation("location is required")
    case p.PricePerNight <= 0:
        return Validation("price_per_night must be greater than 0")
    case p.MaxGuests < 1:
        return Validation("max_guests must be at least 1")
    }
    return nil
}

func (s *PropertyService) Get(ctx context.Context, id string) (*model.Property, error) {
    p, err := s.properties.GetByID(ctx, id)
    if errors.Is(err, repository.ErrNotFound) {
        return nil, NotFound("property not found")
    }
    if err != nil {
        return nil, storeErr("get property", err)
    }
    return p, nil
}

// Update applies only the supplied fields.
func (s *PropertyService) Update(ctx context.Context, id string, patch model.PropertyPatch) (*model.Property, error) {
    if patch.Name != nil {
        v := strings.TrimSpace(*patch.Name)
        patch.Name = &v
    }
    if patch.Location != nil {
        v := strings.TrimSpace(*patch.Location)
        patch.Location = &v
    }
    if patch.Amenities != nil {
        v := []string(cleanList(*patch.Amenities))
        patch.Amenities = &v
    }
    if patch.Images != nil {
        v := []string(cleanList(*patch.Images))
        patch.Images = &v
    }

    current, err := s.Get(ctx, id)
    if err != nil {
        return nil, err
    }
    if patch.Empty() {
        return current, nil
    }
    preview := *current
    patch.Apply(&preview)
    if err := validateProperty(&preview); err != nil {
        return nil, err
    }

    p, err := s.properties.Update(ctx, id, patch)
    if errors.Is(err, repository.ErrNotFound) {
        return nil, NotFound("property not found")
    }
    if err != nil {
        return nil, storeErr("update property", err)
    }
    return p, nil
}

func (s *PropertyService) Delete(ctx context.Context, id string) error {
    err := s.properties.Delete(ctx, id)
    if errors.Is(err, repository.ErrNotFound) {
        return NotFound("property not found")
    }
    if err != nil {
        return storeErr("delete property", err)
    }
    return nil
}

// Search lists the properties matching f.  Contradictory bounds yield
// an empty list rather than an error.
func (s *PropertyService) Search(ctx context.Context, f model.PropertyFilter) ([]model.Property, error) {
    if f.Available != nil {
        if err := validStay(f.Available.CheckIn, f.Available.CheckOut); err != nil {
            return nil, err
        }
    }
    if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
        return []model.Property{}, nil
    }
    f.Location = strings.TrimSpace(f.Location)
    f.Amenities = cleanList(f.Amenities)
    f.Sort = f.NormalizedSort()

    out, err := s.properties.Search(ctx, f)
    if err != nil {
        return nil, storeErr("search properties", err)
    }
    return out, nil
}
