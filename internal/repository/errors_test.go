package repository

import (
    "errors"
    "testing"
)

func TestResolveUpdate(t *testing.T) {
    boom := errors.New("boom")
    cases := []struct {
        name    string
        n       int64
        found   bool
        lookErr error
        want    error
        looked  bool
    }{
        {"applied", 1, false, nil, nil, false},
        {"missing record", 0, false, nil, ErrNotFound, true},
        {"record in another state", 0, true, nil, ErrConflict, true},
        {"lookup failure", 0, false, boom, boom, true},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            looked := false
            err := ResolveUpdate(tc.n, func() (bool, error) {
                looked = true
                return tc.found, tc.lookErr
            })
            if !errors.Is(err, tc.want) || (tc.want == nil && err != nil) {
                t.Fatalf("got %v, want %v", err, tc.want)
            }
            if looked != tc.looked {
                t.Fatalf("existence lookup ran=%v, want %v", looked, tc.looked)
            }
        })
    }
}
