package service

import (
    "context"
    "testing"
    "time"

    "golang.org/x/crypto/bcrypt"

    "github.com/iliyamo/property-booking/internal/model"
    "github.com/iliyamo/property-booking/internal/notify"
    "github.com/iliyamo/property-booking/internal/repository/memstore"
    "github.com/iliyamo/property-booking/internal/utils"
)

func newAuth(box *outbox) *AuthService {
    return NewAuthService(memstore.New().Users, box, AuthConfig{Secret: "test-secret", BcryptCost: bcrypt.MinCost})
}

func TestRegisterLoginMe(t *testing.T) {
    ctx := context.Background()
    box := &outbox{}
    s := newAuth(box)
    now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
    s.now = func() time.Time { return now }

    res, err := s.Register(ctx, RegisterInput{Name: "Ada", Email: "  Ada@Example.com ", Password: "secret1"})
    if err != nil {
        t.Fatal(err)
    }
    if res.User.Email != "ada@example.com" || res.User.Role != model.RoleUser || res.TokenType != "bearer" {
        t.Fatalf("register result = %+v", res)
    }
    if !res.ExpiresAt.Equal(now.Add(7 * 24 * time.Hour)) {
        t.Errorf("ExpiresAt = %v", res.ExpiresAt)
    }
    if got := box.kinds(); len(got) != 1 || got[0] != notify.KindWelcome {
        t.Errorf("notifications = %v", got)
    }

    s.now = time.Now
    login, err := s.Login(ctx, LoginInput{Email: "ADA@example.com", Password: "secret1"})
    if err != nil {
        t.Fatal(err)
    }
    claims, err := utils.ParseAccessToken("test-secret", login.AccessToken)
    if err != nil {
        t.Fatal(err)
    }
    me, err := s.Me(ctx, claims.Subject)
    if err != nil {
        t.Fatal(err)
    }
    if me.ID != res.User.ID || claims.Role != model.RoleUser {
        t.Fatalf("me = %+v, claims = %+v", me, claims)
    }
}

func TestRegisterAndLoginFailures(t *testing.T) {
    ctx := context.Background()
    s := newAuth(&outbox{})

    _, err := s.Register(ctx, RegisterInput{Name: "Ada", Email: "not-an-email", Password: "secret1"})
    wantKind(t, err, KindValidation)
    _, err = s.Register(ctx, RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "short"})
    wantKind(t, err, KindValidation)

    if _, err := s.Register(ctx, RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "secret1"}); err != nil {
        t.Fatal(err)
    }
    _, err = s.Register(ctx, RegisterInput{Name: "Other", Email: "ADA@example.com", Password: "secret2"})
    wantKind(t, err, KindConflict)

    _, err = s.Login(ctx, LoginInput{Email: "ada@example.com", Password: "wrong-pw"})
    wantKind(t, err, KindAuthentication)
    _, err = s.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "secret1"})
    wantKind(t, err, KindAuthentication)

    _, err = s.Me(ctx, "ghost")
    wantKind(t, err, KindAuthentication)
}

func TestEmailValidation(t *testing.T) {
    cases := map[string]bool{
        "ada@example.com":        true,
        "a.b+tag@sub.example.io": true,
        "":                       false,
        "not-an-email":           false,
        "ada@":                   false,
        "@example.com":           false,
        "Ada <ada@example.com>":  false,
    }
    for in, want := range cases {
        if got := validEmail(in); got != want {
            t.Errorf("validEmail(%q) = %v, want %v", in, got, want)
        }
    }

    _, _, err := newAuth(&outbox{}).EnsureAdmin(context.Background(), "", "admin", "admin123")
    wantKind(t, err, KindValidation)
}

func TestEnsureAdminCreatesThenPromotes(t *testing.T) {
    ctx := context.Background()
    s := newAuth(&outbox{})

    u, created, err := s.EnsureAdmin(ctx, "", "admin@hotel.com", "admin123")
    if err != nil || !created || u.Role != model.RoleAdmin {
        t.Fatalf("first EnsureAdmin: u=%+v created=%v err=%v", u, created, err)
    }
    _, created, err = s.EnsureAdmin(ctx, "", "admin@hotel.com", "ignored")
    if err != nil || created {
        t.Fatalf("second EnsureAdmin: created=%v err=%v", created, err)
    }

    reg, _ := s.Register(ctx, RegisterInput{Name: "Bob", Email: "bob@example.com", Password: "secret1"})
    promoted, err := s.Promote(ctx, "BOB@example.com")
    if err != nil || promoted.Role != model.RoleAdmin || promoted.ID != reg.User.ID {
        t.Fatalf("Promote: %+v %v", promoted, err)
    }
    _, err = s.Promote(ctx, "ghost@example.com")
    wantKind(t, err, KindNotFound)

    users, _ := s.ListUsers(ctx)
    if len(users) != 2 {
        t.Fatalf("ListUsers returned %d users", len(users))
    }
}
