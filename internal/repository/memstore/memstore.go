// Package memstore keeps every repository in process memory.  It backs
// the test suites and STORE_DRIVER=memory for local development; data
// is lost on restart.
package memstore

import (
    "context"
    "sort"
    "sync"
    "time"

    "github.com/iliyamo/property-booking/internal/model"
    "github.com/iliyamo/property-booking/internal/repository"
)

// DB is the shared state behind the repositories of one store.
type DB struct {
    mu         sync.RWMutex
    users      map[string]model.User
    properties map[string]model.Property
    bookings   map[string]model.Booking
    reviews    map[string]model.Review
    payments   map[string]model.Payment
}

// New returns an empty store.
func New() *repository.Store {
    db := &DB{
        users:      map[string]model.User{},
        properties: map[string]model.Property{},
        bookings:   map[string]model.Booking{},
        reviews:    map[string]model.Review{},
        payments:   map[string]model.Payment{},
    }
    return &repository.Store{
        Users:      userRepo{db},
        Properties: propertyRepo{db},
        Bookings:   bookingRepo{db},
        Reviews:    reviewRepo{db},
        Payments:   paymentRepo{db},
    }
}

// users

type userRepo struct{ db *DB }

func (r userRepo) Create(_ context.Context, u *model.User) error {
    r.db.mu.Lock()
    defer r.db.mu.Unlock()
    for _, existing := range r.db.users {
        if existing.Email == u.Email {
            return repository.ErrDuplicate
        }
    }
    r.db.users[u.ID] = *u
    return nil
}

func (r userRepo) GetByID(_ context.Context, id string) (*model.User, error) {
    r.db.mu.RLock()
    defer r.db.mu.RUnlock()
    u, ok := r.db.users[id]
    if !ok {
        return nil, repository.ErrNotFound
    }
    return &u, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
    r.db.mu.RLock()
    defer r.db.mu.RUnlock()
    for _, u := range r.db.users {
        if u.Email == email {
            return &u, nil
        }
    }
    return nil, repository.ErrNotFound
}

func (r userRepo) List(_ context.Context) ([]model.User, error) {
    r.db.mu.RLock()
    defer r.db.mu.RUnlock()
    out := make([]model.User, 0, len(r.db.users))
    for _, u := range r.db.users {
        out = append(out, u)
    }
    sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
    return out, nil
}

func (r userRepo) UpdateRole(_ context.Context, id, role string) error {
    r.db.mu.Lock()
    defer r.db.mu.Unlock()
    u, ok := r.db.users[id]
    if !ok {
        return repository.ErrNotFound
    }
    u.Role = role
    r.db.users[id] = u
    return nil
}

// properties

type propertyRepo struct{ db *DB }

func (r propertyRepo) Create(_ context.Context, p *model.Property) error {
    r.db.mu.Lock()
    defer r.db.mu.Unlock()
    r.db.properties[p.ID] = cloneProperty(*p)
    return nil
}

func (r propertyRepo) GetByID(_ context.Context, id string) (*model.Property, error) {
    r.db.mu.RLock()
    defer r.db.mu.RUnlock()
    p, ok := r.db.properties[id]
    if !ok {
        return nil, repository.ErrNotFound
    }
    p = cloneProperty(p)
    return &p, nil
}

func (r propertyRepo) Update(_ context.Context, id string, patch model.PropertyPatch) (*model.Property, error) {
    r.db.mu.Lock()
    defer r.db.mu.Unlock()
    p, ok := r.db.properties[id]
    if !ok {
        return nil, repository.ErrNotFound
    }
    patch.Apply(&p)
    p = cloneProperty(p)
    r.db.properties[id] = p
    out := cloneProperty(p)
    return &out, nil
}

func (r propertyRepo) Delete(_ context.Context, id string) error {
    r.db.mu.Lock()
    defer r.db.mu.Unlock()
    if _, ok := r.db.properties[id]; !ok {
        return repository.ErrNotFound
    }
    delete(r.db.properties, id)
    return nil
}

func (r propertyRepo) Search(_ context.Context, f model.PropertyFilter) ([]model.Property, error) {
    r.db.mu.RLock()
    defer r.db.mu.RUnlock()
    out := []model.Property{}
    for _, p := range r.db.properties {
        if !f.Matches(&p) {
            continue
        }
        if f.Available != nil && r.db.overlaps(p.ID, f.Available.CheckIn, f.Available.CheckOut) {
            continue
        }
        out = append(out, cloneProperty(p))
    }
    sortProperties(out, f.NormalizedSort())
    return out, nil
}

func (r propertyRepo) SetRating(_ context.Context, id string, rating float64, count int) error {
    r.db.mu.Lock()
    defer r.db.mu.Unlock()
    p, ok := r.db.properties[id]
    if !ok {
        return repository.ErrNotFound
    }
    p.Rating, p.ReviewCount = rating, count
    r.db.properties[id] = p
    return nil
}

func sortProperties(ps []model.Property, key string) {
    sort.SliceStable(ps, func(i, j int) bool {
        a, b := ps[i], ps[j]
        switch key {
        case model.SortPriceAsc:
            if a.PricePerNight != b.PricePerNight {
                return a.PricePerNight < b.PricePerNight
            }
        case model.SortPriceDesc:
            if a.PricePerNight != b.PricePerNight {
                return a.PricePerNight > b.PricePerNight
            }
        case model.SortRating:
            if a.Rating != b.Rating {
                return a.Rating > b.Rating
            }
        }
        if !a.CreatedAt.Equal(b.CreatedAt) {
            return a.CreatedAt.After(b.CreatedAt)
        }
        return a.ID < b.ID
    })
}

func cloneProperty(p model.Property) model.Property {
    p.Amenities = append(model.StringList{}, p.Amenities...)
    p.Images = append(model.StringList{}, p.Images...)
    return p
}

// bookings

type bookingRepo struct{ db *DB }

// overlaps must be called with mu held.
func (db *DB) overlaps(propertyID string, checkIn, checkOut time.Time) bool {
    for _, b := range db.bookings {
        if b.PropertyID == propertyID && b.Status == model.BookingConfirmed && b.Overlaps(checkIn, checkOut) {
            return true
        }
    }
    return false
}

func (r bookingRepo) Create(_ context.Context, b *model.Booking) error {
    r.db.mu.Lock()
    defer r.db.mu.Unlock()
    r.db.bookings[b.ID] = *b
    return nil
}

func (r bookingRepo) GetByID(_ context.Context, id string) (*model.Booking, error) {
    r.db.mu.RLock()
    defer r.db.mu.RUnlock()
    b, ok := r.db.bookings[id]
    if !ok {
        return nil, repository.ErrNotFound
    }
    return &b, nil
}

func (r bookingRepo) filter(keep func(model.Booking) bool) []model.Booking {
    r.db.mu.RLock()
    defer r.db.mu.RUnlock()
    out := []model.Booking{}
    for _, b := range r.db.bookings {
        if keep(b) {
            out = append(out, b)
        }
    }
    sort.Slice(out, func(i, j int) bool {
        if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
            return out[i].CreatedAt.After(out[j].CreatedAt)
        }
        return out[i].ID < out[j].ID
    })
    return out
}

func (r bookingRepo) ListByUser(_ context.Context, userID string) ([]model.Booking, error) {
    return r.filter(func(b model.Booking) bool { return b.UserID == userID }), nil
}

func (r bookingRepo) List(_ context.Context) ([]model.Booking, error) {
    return r.filter(func(model.Booking) bool { return true }), nil
}

func (r bookingRepo) HasOverlap(_ context.Context, propertyID string, checkIn, checkOut time.Time) (bool, error) {
    r.db.mu.RLock()
    defer r.db.mu.RUnlock()
    return r.db.overlaps(propertyID, checkIn, checkOut), nil
}

func (r bookingRepo) HasConfirmed(_ context.Context, userID, propertyID string) (bool, error) {
    r.db.mu.RLock()
    defer r.db.mu.RUnlock()
    for _, b := range r.db.bookings {
        if b.UserID == userID && b.PropertyID == propertyID && b.Status == model.BookingConfirmed {
            return true, nil
        }
    }
    return false, nil
}

func (r bookingRepo) UpdateStatus(_ context.Context, id, from, to string) error {
    r.db.mu.Lock()
    defer r.db.mu.Unlock()
    b, ok := r.db.bookings[id]
    if !ok {
        return repository.ErrNotFound
    }
    if b.Status != from {
        return repository.ErrConflict
    }
    b.Status = to
    r.db.bookings[id] = b
    return nil
}

func (r bookingRepo) SetPaymentStatus(_ context.Context, id, status string) error {
    r.db.mu.Lock()
    defer r.db.mu.Unlock()
    b, ok := r.db.bookings[id]
    if !ok {
        return repository.ErrNotFound
    }
    b.PaymentStatus = status
    r.db.bookings[id] = b
    return nil
}

func (r bookingRepo) ListCheckIns(_ context.Context, from, to time.Time) ([]model.Booking, error) {
    out := r.filter(func(b model.Booking) bool {
        return b.Status == model.BookingConfirmed && !b.CheckIn.Before(from) && b.CheckIn.Before(to)
    })
    sort.SliceStable(out, func(i, j int) bool { return out[i].CheckIn.Before(out[j].CheckIn) })
    return out, nil
}

// reviews

type reviewRepo struct{ db *DB }

func (r reviewRepo) Create(_ context.Context, rv *model.Review) error {
    r.db.mu.Lock()
    defer r.db.mu.Unlock()
    for _, existing := range r.db.reviews {
        if existing.UserID == rv.UserID && existing.PropertyID == rv.PropertyID {
            return repository.ErrDuplicate
        }
    }
    r.db.reviews[rv.ID] = *rv
    return nil
}

func (r reviewRepo) Exists(_ context.Context, userID, propertyID string) (bool, error) {
    r.db.mu.RLock()
    defer r.db.mu.RUnlock()
    for _, rv := range r.db.reviews {
        if rv.UserID == userID && rv.PropertyID == propertyID {
            return true, nil
        }
    }
    return false, nil
}

func (r reviewRepo) ListByProperty(_ context.Context, propertyID string) ([]model.Review, error) {
    r.db.mu.RLock()
    defer r.db.mu.RUnlock()
    out := []model.Review{}
    for _, rv := range r.db.reviews {
        if rv.PropertyID == propertyID {
            out = append(out, rv)
        }
    }
    sort.Slice(out, func(i, j int) bool {
        if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
            return out[i].CreatedAt.After(out[j].CreatedAt)
        }
        return out[i].ID < out[j].ID
    })
    return out, nil
}

func (r reviewRepo) Stats(_ context.Context, propertyID string) (float64, int, error) {
    r.db.mu.RLock()
    defer r.db.mu.RUnlock()
    sum, n := 0, 0
    for _, rv := range r.db.reviews {
        if rv.PropertyID == propertyID {
            sum += rv.Rating
            n++
        }
    }
    if n == 0 {
        return 0, 0, nil
    }
    return float64(sum) / float64(n), n, nil
}

// payments

type paymentRepo struct{ db *DB }

func (r paymentRepo) Create(_ context.Context, p *model.Payment) error {
    r.db.mu.Lock()
    defer r.db.mu.Unlock()
    r.db.payments[p.ID] = *p
    return nil
}
