package utils // package utils provides helper functions for token creation and hashing

import (
    "errors"
    "time"

    "github.com/golang-jwt/jwt/v5"
)

// AccessToken is a signed JWT along with its expiry.  It is sent in the
// Authorization header when calling protected endpoints.
type AccessToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// Claims is the payload of an access token: the standard registered
// claims (sub = user id, exp, iat) plus the user's role.
type Claims struct {
    Role string `json:"role"`
    jwt.RegisteredClaims
}

// ErrTokenExpired is returned by ParseAccessToken for a well-formed
// token whose exp lies in the past.
var ErrTokenExpired = errors.New("token expired")

// ErrTokenInvalid covers every other parse or verification failure.
var ErrTokenInvalid = errors.New("invalid token")

// NewAccessToken builds and signs an HS256 JWT for a user.  now is the
// issue time; the token expires at now+ttl.
func NewAccessToken(secret, userID, role string, ttl time.Duration, now time.Time) (AccessToken, error) {
    now = now.UTC()
    exp := now.Add(ttl)
    claims := Claims{
        Role: role,
        RegisteredClaims: jwt.RegisteredClaims{
            Subject:   userID,
            IssuedAt:  jwt.NewNumericDate(now),
            ExpiresAt: jwt.NewNumericDate(exp),
        },
    }
    signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
    if err != nil {
        return AccessToken{}, err
    }
    // NumericDate has second precision; report what the client will see.
    return AccessToken{Token: signed, Exp: exp.Truncate(time.Second)}, nil
}

// ParseAccessToken verifies signature, algorithm and expiry and returns
// the claims.  Tokens without a subject are rejected.
func ParseAccessToken(secret, raw string) (*Claims, error) {
    claims := &Claims{}
    tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
        return []byte(secret), nil
    }, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
    if err != nil {
        if errors.Is(err, jwt.ErrTokenExpired) {
            return nil, ErrTokenExpired
        }
        return nil, ErrTokenInvalid
    }
    if !tok.Valid || claims.Subject == "" {
        return nil, ErrTokenInvalid
    }
    return claims, nil
}
