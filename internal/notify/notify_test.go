package notify

import (
    "context"
    "errors"
    "strings"
    "sync"
    "testing"
    "time"

    "github.com/iliyamo/property-booking/internal/model"
)

type recorder struct {
    mu   sync.Mutex
    sent []Email
    err  error
}

func (r *recorder) Notify(_ context.Context, e Email) error {
    r.mu.Lock()
    defer r.mu.Unlock()
    if r.err != nil {
        return r.err
    }
    r.sent = append(r.sent, e)
    return nil
}

func TestFallbackUsesSecondaryOnlyOnFailure(t *testing.T) {
    ctx := context.Background()
    primary, secondary := &recorder{}, &recorder{}
    f := Fallback{Primary: primary, Secondary: secondary}

    if err := f.Notify(ctx, Email{To: "a@x.io"}); err != nil {
        t.Fatal(err)
    }
    if len(primary.sent) != 1 || len(secondary.sent) != 0 {
        t.Fatalf("healthy primary: primary=%d secondary=%d", len(primary.sent), len(secondary.sent))
    }

    primary.err = errors.New("broker down")
    if err := f.Notify(ctx, Email{To: "b@x.io"}); err != nil {
        t.Fatal(err)
    }
    if len(secondary.sent) != 1 || secondary.sent[0].To != "b@x.io" {
        t.Fatalf("secondary got %+v", secondary.sent)
    }
}

func TestBookingConfirmedMessage(t *testing.T) {
    u := model.User{Name: "Ada", Email: "ada@x.io"}
    b := model.Booking{
        ID:           "bk-1",
        PropertyName: "Sea View",
        CheckIn:      time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
        CheckOut:     time.Date(2030, 1, 5, 0, 0, 0, 0, time.UTC),
        Nights:       4,
        TotalPrice:   400,
    }
    e := BookingConfirmed(u, b)
    if e.To != "ada@x.io" || e.Kind != KindBookingConfirmed {
        t.Fatalf("unexpected envelope %+v", e)
    }
    for _, want := range []string{"bk-1", "2030-01-01", "2030-01-05", "$400.00"} {
        if !strings.Contains(e.Body, want) {
            t.Errorf("body missing %q:\n%s", want, e.Body)
        }
    }
}
