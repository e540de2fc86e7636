package utils

import (
    "errors"
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
)

func TestAccessTokenRoundTrip(t *testing.T) {
    now := time.Now()
    tok, err := NewAccessToken("secret", "u-1", "admin", 7*24*time.Hour, now)
    if err != nil {
        t.Fatal(err)
    }
    if want := now.UTC().Add(7 * 24 * time.Hour).Truncate(time.Second); !tok.Exp.Equal(want) {
        t.Errorf("Exp = %v, want %v", tok.Exp, want)
    }
    claims, err := ParseAccessToken("secret", tok.Token)
    if err != nil {
        t.Fatal(err)
    }
    if claims.Subject != "u-1" || claims.Role != "admin" {
        t.Errorf("claims = %+v", claims)
    }
}

func TestParseAccessTokenRejects(t *testing.T) {
    good, _ := NewAccessToken("secret", "u-1", "user", time.Hour, time.Now())
    expired, _ := NewAccessToken("secret", "u-1", "user", time.Hour, time.Now().Add(-2*time.Hour))
    noSub, _ := NewAccessToken("secret", "", "user", time.Hour, time.Now())
    none, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "u-1"}).
        SignedString(jwt.UnsafeAllowNoneSignatureType)

    cases := []struct {
        name, secret, raw string
        want              error
    }{
        {"wrong secret", "other", good.Token, ErrTokenInvalid},
        {"expired", "secret", expired.Token, ErrTokenExpired},
        {"garbage", "secret", "not.a.jwt", ErrTokenInvalid},
        {"missing subject", "secret", noSub.Token, ErrTokenInvalid},
        {"alg none", "secret", none, ErrTokenInvalid},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            if _, err := ParseAccessToken(tc.secret, tc.raw); !errors.Is(err, tc.want) {
                t.Fatalf("err = %v, want %v", err, tc.want)
            }
        })
    }
}
