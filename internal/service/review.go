package service

import (
    "context"
    "errors"
    "math"
    "strings"
    "time"

    "github.com/iliyamo/property-booking/internal/model"
    "github.com/iliyamo/property-booking/internal/repository"
)

type ReviewService struct {
    reviews    repository.ReviewRepository
    bookings   repository.BookingRepository
    properties repository.PropertyRepository
    users      repository.UserRepository
    locks      *keyedMutex
    now        func() time.Time
}

func NewReviewService(store *repository.Store) *ReviewService {
    return &ReviewService{
        reviews:    store.Reviews,
        bookings:   store.Bookings,
        properties: store.Properties,
        users:      store.Users,
        locks:      newKeyedMutex(),
        now:        time.Now,
    }
}

type ReviewInput struct {
    PropertyID string
    Rating     int
    Comment    string
}

// roundRating rounds a mean rating to one decimal.
func roundRating(avg float64) float64 { return math.Round(avg*10) / 10 }

// Create stores a review by userID.  The caller needs a confirmed
// booking of the property and may review it only once.  The property's
// rating and review count are recomputed from all of its reviews.
func (s *ReviewService) Create(ctx context.Context, userID string, in ReviewInput) (*model.Review, error) {
    if in.Rating < 1 || in.Rating > 5 {
        return nil, Validation("rating must be between 1 and 5")
    }
    comment := strings.TrimSpace(in.Comment)
    if comment == "" {
        return nil, Validation("comment is required")
    }
    user, err := loadUser(ctx, s.users, userID)
    if err != nil {
        return nil, err
    }
    if _, err := s.properties.GetByID(ctx, in.PropertyID); err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return nil, NotFound("property not found")
        }
        return nil, storeErr("get property", err)
    }
    booked, err := s.bookings.HasConfirmed(ctx, user.ID, in.PropertyID)
    if err != nil {
        return nil, storeErr("check bookings", err)
    }
    if !booked {
        return nil, Forbidden("you must book this property before reviewing")
    }

    unlock := s.locks.Lock(in.PropertyID)
    defer unlock()

    exists, err := s.reviews.Exists(ctx, user.ID, in.PropertyID)
    if err != nil {
        return nil, storeErr("check reviews", err)
    }
    if exists {
        return nil, Conflict("you have already reviewed this property")
    }
    r := &model.Review{
        ID:         newID(),
        UserID:     user.ID,
        UserName:   user.Name,
        PropertyID: in.PropertyID,
        Rating:     in.Rating,
        Comment:    comment,
        CreatedAt:  s.now().UTC(),
    }
    if err := s.reviews.Create(ctx, r); err != nil {
        if errors.Is(err, repository.ErrDuplicate) {
            return nil, Conflict("you have already reviewed this property")
        }
        return nil, storeErr("create review", err)
    }

    avg, count, err := s.reviews.Stats(ctx, in.PropertyID)
    if err != nil {
        return nil, storeErr("review stats", err)
    }
    if err := s.properties.SetRating(ctx, in.PropertyID, roundRating(avg), count); err != nil &&
        !errors.Is(err, repository.ErrNotFound) {
        return nil, storeErr("update rating", err)
    }
    return r, nil
}

// ListByProperty returns a property's reviews, newest first.
func (s *ReviewService) ListByProperty(ctx context.Context, propertyID string) ([]model.Review, error) {
    out, err := s.reviews.ListByProperty(ctx, propertyID)
    if err != nil {
        return nil, storeErr("list reviews", err)
    }
    return out, nil
}
