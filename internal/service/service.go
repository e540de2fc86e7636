// Package service holds the booking domain rules.  Services talk to the
// store through the repository interfaces, return *Error for failures a
// client can act on and plain wrapped errors for everything else.
package service

import (
    "context"
    "errors"
    "fmt"
    "strings"
    "sync"
    "time"

    "github.com/google/uuid"
    "github.com/labstack/gommon/log"

    "github.com/iliyamo/property-booking/internal/model"
    "github.com/iliyamo/property-booking/internal/notify"
    "github.com/iliyamo/property-booking/internal/repository"
)

// Identity is the authenticated caller as decoded from the access token.
type Identity struct {
    UserID string
    Role   string
}

func (i Identity) IsAdmin() bool { return i.Role == model.RoleAdmin }

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// ParseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
// Values without a zone are read as UTC; the result is always UTC.
func ParseDate(s string) (time.Time, error) {
    s = strings.TrimSpace(s)
    for _, layout := range dateLayouts {
        if t, err := time.Parse(layout, s); err == nil {
            return t.UTC(), nil
        }
    }
    return time.Time{}, Validation("invalid date %q", s)
}

// keyedMutex serialises work per key.  Entries are dropped once no
// goroutine holds or waits for them.
type keyedMutex struct {
    mu    sync.Mutex
    locks map[string]*keyedEntry
}

type keyedEntry struct {
    sync.Mutex
    refs int
}

func newKeyedMutex() *keyedMutex { return &keyedMutex{locks: map[string]*keyedEntry{}} }

// Lock blocks until key is free and returns the matching unlock.
func (k *keyedMutex) Lock(key string) (unlock func()) {
    k.mu.Lock()
    e, ok := k.locks[key]
    if !ok {
        e = &keyedEntry{}
        k.locks[key] = e
    }
    e.refs++
    k.mu.Unlock()

    e.Lock()
    return func() {
        e.Unlock()
        k.mu.Lock()
        e.refs--
        if e.refs == 0 {
            delete(k.locks, key)
        }
        k.mu.Unlock()
    }
}

func newID() string { return uuid.NewString() }

// storeErr wraps an unexpected store error with the operation name.
func storeErr(op string, err error) error { return fmt.Errorf("%s: %w", op, err) }

// deliver hands e to n and only logs a failure.
func deliver(ctx context.Context, n notify.Notifier, e notify.Email) {
    if n == nil {
        return
    }
    if err := n.Notify(ctx, e); err != nil {
        log.Warnf("[notify] %s to %s failed: %v", e.Kind, e.To, err)
    }
}

// loadUser fetches the caller's account.  A token for a user that no
// longer exists is treated as unauthenticated.
func loadUser(ctx context.Context, users repository.UserRepository, id string) (*model.User, error) {
    u, err := users.GetByID(ctx, id)
    if errors.Is(err, repository.ErrNotFound) {
        return nil, Unauthenticated("user not found")
    }
    if err != nil {
        return nil, storeErr("load user", err)
    }
    return u, nil
}
