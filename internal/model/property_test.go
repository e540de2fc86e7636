package model

import (
    "testing"
    "time"
)

func TestStringListRoundTripThroughSQLValue(t *testing.T) {
    v, err := StringList{"wifi", "pool"}.Value()
    if err != nil {
        t.Fatalf("Value: %v", err)
    }
    var got StringList
    if err := got.Scan([]byte(v.(string))); err != nil {
        t.Fatalf("Scan: %v", err)
    }
    if len(got) != 2 || got[0] != "wifi" || got[1] != "pool" {
        t.Fatalf("unexpected list %v", got)
    }

    var empty StringList
    if err := empty.Scan(nil); err != nil || empty == nil || len(empty) != 0 {
        t.Fatalf("nil scan should give empty list, got %v (%v)", empty, err)
    }
    if err := empty.Scan(42); err == nil {
        t.Fatal("expected error scanning int")
    }
}

func TestPropertyFilterMatches(t *testing.T) {
    p := &Property{
        Location:      "Lisbon, Portugal",
        PricePerNight: 120,
        Amenities:     StringList{"wifi", "pool", "parking"},
        Rating:        4.2,
        MaxGuests:     4,
    }
    lo, hi := 100.0, 150.0
    rating := 4.0
    guests := 4
    f := PropertyFilter{
        Location:  "lisbon",
        MinPrice:  &lo,
        MaxPrice:  &hi,
        Amenities: []string{"wifi", "pool"},
        MinRating: &rating,
        Guests:    &guests,
    }
    if !f.Matches(p) {
        t.Fatal("expected property to match every predicate")
    }

    tooMany := 5
    if (PropertyFilter{Guests: &tooMany}).Matches(p) {
        t.Fatal("guests above capacity must not match")
    }
    if (PropertyFilter{Amenities: []string{"gym"}}).Matches(p) {
        t.Fatal("missing amenity must not match")
    }
    inverted := PropertyFilter{MinPrice: &hi, MaxPrice: &lo}
    if inverted.Matches(p) {
        t.Fatal("min_price above max_price can never match")
    }
}

func TestNormalizedSort(t *testing.T) {
    cases := map[string]string{
        "":           SortNewest,
        "bogus":      SortNewest,
        SortRating:   SortRating,
        SortPriceAsc: SortPriceAsc,
    }
    for in, want := range cases {
        if got := (PropertyFilter{Sort: in}).NormalizedSort(); got != want {
            t.Errorf("sort %q: got %q want %q", in, got, want)
        }
    }
}

func TestBookingOverlaps(t *testing.T) {
    day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
    b := &Booking{CheckIn: day(1), CheckOut: day(5)}
    if !b.Overlaps(day(4), day(6)) {
        t.Fatal("tail overlap not detected")
    }
    if b.Overlaps(day(5), day(7)) {
        t.Fatal("back-to-back stays must not overlap")
    }
    if b.Overlaps(day(0), day(1)) {
        t.Fatal("stay ending at check-in must not overlap")
    }
}
