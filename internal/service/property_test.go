package service

import (
    "context"
    "testing"

    "github.com/iliyamo/property-booking/internal/model"
)

func ptr[T any](v T) *T { return &v }

func TestCreatePropertyDefaultsAndValidation(t *testing.T) {
    ctx := context.Background()
    f := newFixture(t)

    p, err := f.props.Create(ctx, "admin-1", PropertyInput{
        Name: " Loft ", Location: "Berlin", PricePerNight: 120, Amenities: []string{"wifi", " ", "pool"},
    })
    if err != nil {
        t.Fatal(err)
    }
    if p.Name != "Loft" || p.MaxGuests != 2 || p.OwnerID != "admin-1" || len(p.Amenities) != 2 || p.Images == nil {
        t.Fatalf("property = %+v", p)
    }

    bad := []PropertyInput{
        {Location: "Berlin", PricePerNight: 10},
        {Name: "x", PricePerNight: 10},
        {Name: "x", Location: "Berlin", PricePerNight: 0},
        {Name: "x", Location: "Berlin", PricePerNight: 10, MaxGuests: -1},
    }
    for _, in := range bad {
        _, err := f.props.Create(ctx, "admin-1", in)
        wantKind(t, err, KindValidation)
    }
}

func TestUpdatePropertyOnlyTouchesSuppliedFields(t *testing.T) {
    ctx := context.Background()
    f := newFixture(t)
    p := f.property(t, 100)

    got, err := f.props.Update(ctx, p.ID, model.PropertyPatch{PricePerNight: ptr(150.0)})
    if err != nil {
        t.Fatal(err)
    }
    if got.PricePerNight != 150 || got.Name != p.Name || got.Location != p.Location {
        t.Fatalf("updated = %+v", got)
    }

    _, err = f.props.Update(ctx, p.ID, model.PropertyPatch{PricePerNight: ptr(-1.0)})
    wantKind(t, err, KindValidation)
    _, err = f.props.Update(ctx, "missing", model.PropertyPatch{Name: ptr("x")})
    wantKind(t, err, KindNotFound)

    same, err := f.props.Update(ctx, p.ID, model.PropertyPatch{})
    if err != nil || same.PricePerNight != 150 {
        t.Fatalf("empty patch: %+v %v", same, err)
    }
}

func TestDeleteProperty(t *testing.T) {
    ctx := context.Background()
    f := newFixture(t)
    p := f.property(t, 100)

    if err := f.props.Delete(ctx, p.ID); err != nil {
        t.Fatal(err)
    }
    wantKind(t, f.props.Delete(ctx, p.ID), KindNotFound)
    _, err := f.props.Get(ctx, p.ID)
    wantKind(t, err, KindNotFound)
}

func TestSearchProperties(t *testing.T) {
    ctx := context.Background()
    f := newFixture(t)
    mk := func(name, loc string, price float64, amenities ...string) *model.Property {
        p, err := f.props.Create(ctx, "admin", PropertyInput{Name: name, Location: loc, PricePerNight: price, Amenities: amenities})
        if err != nil {
            t.Fatal(err)
        }
        return p
    }
    mk("A", "Lisbon, Portugal", 80, "wifi", "pool")
    mk("B", "Porto, Portugal", 120, "wifi")
    mk("C", "Madrid, Spain", 200, "pool")

    got, err := f.props.Search(ctx, model.PropertyFilter{Location: "portugal", Amenities: []string{"wifi"}, Sort: model.SortPriceDesc})
    if err != nil {
        t.Fatal(err)
    }
    if len(got) != 2 || got[0].Name != "B" || got[1].Name != "A" {
        t.Fatalf("search = %+v", got)
    }

    got, err = f.props.Search(ctx, model.PropertyFilter{MinPrice: ptr(150.0), MaxPrice: ptr(100.0)})
    if err != nil || len(got) != 0 {
        t.Fatalf("min>max: %d results, err %v", len(got), err)
    }

    _, err = f.props.Search(ctx, model.PropertyFilter{Available: &model.DateRange{CheckIn: jan(5), CheckOut: jan(1)}})
    wantKind(t, err, KindValidation)
}
