package service

import (
    "context"
    "testing"

    "github.com/iliyamo/property-booking/internal/model"
)

func TestReviewRequiresConfirmedBooking(t *testing.T) {
    ctx := context.Background()
    f := newFixture(t)
    u := f.user(t, "guest", model.RoleUser)
    p := f.property(t, 100)

    _, err := f.reviews.Create(ctx, u.ID, ReviewInput{PropertyID: p.ID, Rating: 5, Comment: "lovely"})
    wantKind(t, err, KindPermission)

    b, _ := f.bookings.Create(ctx, u.ID, BookingInput{PropertyID: p.ID, CheckIn: jan(1), CheckOut: jan(2)})
    _, _ = f.bookings.Cancel(ctx, Identity{UserID: u.ID}, b.ID)
    _, err = f.reviews.Create(ctx, u.ID, ReviewInput{PropertyID: p.ID, Rating: 5, Comment: "lovely"})
    wantKind(t, err, KindPermission)
}

func TestReviewValidationAndDuplicates(t *testing.T) {
    ctx := context.Background()
    f := newFixture(t)
    u := f.user(t, "guest", model.RoleUser)
    p := f.property(t, 100)
    _, _ = f.bookings.Create(ctx, u.ID, BookingInput{PropertyID: p.ID, CheckIn: jan(1), CheckOut: jan(2)})

    for _, rating := range []int{0, 6} {
        _, err := f.reviews.Create(ctx, u.ID, ReviewInput{PropertyID: p.ID, Rating: rating, Comment: "x"})
        wantKind(t, err, KindValidation)
    }
    _, err := f.reviews.Create(ctx, u.ID, ReviewInput{PropertyID: "missing", Rating: 4, Comment: "x"})
    wantKind(t, err, KindNotFound)

    r, err := f.reviews.Create(ctx, u.ID, ReviewInput{PropertyID: p.ID, Rating: 4, Comment: " great "})
    if err != nil {
        t.Fatal(err)
    }
    if r.UserName != u.Name || r.Comment != "great" {
        t.Fatalf("review = %+v", r)
    }
    _, err = f.reviews.Create(ctx, u.ID, ReviewInput{PropertyID: p.ID, Rating: 5, Comment: "again"})
    wantKind(t, err, KindConflict)
}

func TestRatingIsRoundedMeanOfReviews(t *testing.T) {
    ctx := context.Background()
    f := newFixture(t)
    p := f.property(t, 100)

    for i, rating := range []int{4, 5, 5} {
        u := f.user(t, string(rune('a'+i)), model.RoleUser)
        if _, err := f.bookings.Create(ctx, u.ID, BookingInput{PropertyID: p.ID, CheckIn: jan(1 + 2*i), CheckOut: jan(2 + 2*i)}); err != nil {
            t.Fatal(err)
        }
        if _, err := f.reviews.Create(ctx, u.ID, ReviewInput{PropertyID: p.ID, Rating: rating, Comment: "ok"}); err != nil {
            t.Fatal(err)
        }
    }
    got, _ := f.props.Get(ctx, p.ID)
    if got.Rating != 4.7 || got.ReviewCount != 3 {
        t.Fatalf("rating=%v count=%d, want 4.7 and 3", got.Rating, got.ReviewCount)
    }
    list, _ := f.reviews.ListByProperty(ctx, p.ID)
    if len(list) != 3 {
        t.Fatalf("ListByProperty returned %d reviews", len(list))
    }
}

func TestRoundRating(t *testing.T) {
    cases := map[float64]float64{4.666: 4.7, 4.25: 4.3, 3: 3, 1.04: 1}
    for in, want := range cases {
        if got := roundRating(in); got != want {
            t.Errorf("roundRating(%v) = %v, want %v", in, got, want)
        }
    }
}
