package service

import (
    "context"
    "sync"
    "testing"
    "time"

    "github.com/iliyamo/property-booking/internal/model"
    "github.com/iliyamo/property-booking/internal/notify"
    "github.com/iliyamo/property-booking/internal/repository"
    "github.com/iliyamo/property-booking/internal/repository/memstore"
)

type outbox struct {
    mu   sync.Mutex
    sent []notify.Email
}

func (o *outbox) Notify(_ context.Context, e notify.Email) error {
    o.mu.Lock()
    defer o.mu.Unlock()
    o.sent = append(o.sent, e)
    return nil
}

func (o *outbox) kinds() []string {
    o.mu.Lock()
    defer o.mu.Unlock()
    out := make([]string, len(o.sent))
    for i, e := range o.sent {
        out[i] = e.Kind
    }
    return out
}

func jan(d int) time.Time { return time.Date(2030, 1, d, 0, 0, 0, 0, time.UTC) }

type fixture struct {
    store    *repository.Store
    outbox   *outbox
    bookings *BookingService
    reviews  *ReviewService
    payments *PaymentService
    props    *PropertyService
}

func newFixture(t *testing.T) *fixture {
    t.Helper()
    store := memstore.New()
    box := &outbox{}
    return &fixture{
        store:    store,
        outbox:   box,
        bookings: NewBookingService(store, box),
        reviews:  NewReviewService(store),
        payments: NewPaymentService(store, box),
        props:    NewPropertyService(store.Properties),
    }
}

func (f *fixture) user(t *testing.T, id, role string) *model.User {
    t.Helper()
    u := &model.User{ID: id, Name: "User " + id, Email: id + "@example.com", Role: role, CreatedAt: time.Now()}
    if err := f.store.Users.Create(context.Background(), u); err != nil {
        t.Fatal(err)
    }
    return u
}

func (f *fixture) property(t *testing.T, price float64) *model.Property {
    t.Helper()
    p, err := f.props.Create(context.Background(), "owner", PropertyInput{
        Name: "Sea View", Location: "Lisbon, Portugal", PricePerNight: price, Amenities: []string{"wifi"},
    })
    if err != nil {
        t.Fatal(err)
    }
    return p
}

func wantKind(t *testing.T, err error, k Kind) {
    t.Helper()
    if KindOf(err) != k {
        t.Fatalf("error kind = %v (%v), want %v", KindOf(err), err, k)
    }
}
