package middleware

import "github.com/labstack/echo/v4"

// CurrentUser returns the caller stored by JWTAuth.  ok is false on
// routes that did not authenticate.
func CurrentUser(c echo.Context) (userID, role string, ok bool) {
    userID, _ = c.Get(CtxUserID).(string)
    role, _ = c.Get(CtxRole).(string)
    return userID, role, userID != ""
}

// rateSubject keys anonymous callers as "anon".
func rateSubject(c echo.Context) string {
    if id, _, ok := CurrentUser(c); ok {
        return id
    }
    return "anon"
}
