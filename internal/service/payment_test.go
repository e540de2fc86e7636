package service

import (
    "context"
    "strings"
    "testing"

    "github.com/iliyamo/property-booking/internal/model"
    "github.com/iliyamo/property-booking/internal/notify"
)

func TestMockPayment(t *testing.T) {
    ctx := context.Background()
    f := newFixture(t)
    u := f.user(t, "guest", model.RoleUser)
    p := f.property(t, 100)
    b, _ := f.bookings.Create(ctx, u.ID, BookingInput{PropertyID: p.ID, CheckIn: jan(1), CheckOut: jan(3)})

    res, err := f.payments.Mock(ctx, MockPaymentInput{BookingID: b.ID, Amount: 200, CardNumber: "4242424242424242"})
    if err != nil {
        t.Fatal(err)
    }
    if !res.Success || res.TransactionID == "" {
        t.Fatalf("result = %+v", res)
    }
    stored, _ := f.store.Bookings.GetByID(ctx, b.ID)
    if stored.PaymentStatus != model.PaymentPaid {
        t.Fatalf("payment_status = %s", stored.PaymentStatus)
    }
    kinds := f.outbox.kinds()
    if kinds[len(kinds)-1] != notify.KindPaymentReceipt {
        t.Fatalf("notifications = %v", kinds)
    }
    f.outbox.mu.Lock()
    receipt := f.outbox.sent[len(f.outbox.sent)-1]
    f.outbox.mu.Unlock()
    if want := "**** 4242"; !strings.Contains(receipt.Body, want) {
        t.Fatalf("receipt body missing %q", want)
    }

    _, err = f.payments.Mock(ctx, MockPaymentInput{BookingID: b.ID, Amount: 200, CardNumber: "4242424242424242"})
    wantKind(t, err, KindConflict)
}

func TestMockPaymentRejections(t *testing.T) {
    ctx := context.Background()
    f := newFixture(t)
    u := f.user(t, "guest", model.RoleUser)
    p := f.property(t, 100)
    b, _ := f.bookings.Create(ctx, u.ID, BookingInput{PropertyID: p.ID, CheckIn: jan(1), CheckOut: jan(3)})

    cases := []MockPaymentInput{
        {BookingID: b.ID, Amount: 0, CardNumber: "4242424242424242"},
        {BookingID: b.ID, Amount: 10, CardNumber: "424"},
        {Amount: 10, CardNumber: "4242424242424242"},
    }
    for _, in := range cases {
        _, err := f.payments.Mock(ctx, in)
        wantKind(t, err, KindValidation)
    }

    _, err := f.payments.Mock(ctx, MockPaymentInput{BookingID: "missing", Amount: 10, CardNumber: "4242424242424242"})
    wantKind(t, err, KindNotFound)

    _, _ = f.bookings.Cancel(ctx, Identity{UserID: u.ID}, b.ID)
    _, err = f.payments.Mock(ctx, MockPaymentInput{BookingID: b.ID, Amount: 10, CardNumber: "4242424242424242"})
    wantKind(t, err, KindConflict)
}

