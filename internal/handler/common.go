package handler // package handler contains the HTTP handlers of the API

import (
    "context"
    "errors"
    "fmt"
    "net/http"
    "reflect"
    "strings"
    "time"

    "github.com/go-playground/validator/v10"
    "github.com/labstack/echo/v4"
    "github.com/labstack/gommon/log"

    "github.com/iliyamo/property-booking/internal/middleware"
    "github.com/iliyamo/property-booking/internal/service"
)

// requestTimeout bounds every store round trip made on behalf of a request.
const requestTimeout = 5 * time.Second

func requestContext(c echo.Context) (context.Context, context.CancelFunc) {
    return context.WithTimeout(c.Request().Context(), requestTimeout)
}

// Validator adapts go-playground/validator to echo.Validator.  Field
// names in error messages are the JSON names of the request fields.
type Validator struct {
    v *validator.Validate
}

func NewValidator() *Validator {
    v := validator.New(validator.WithRequiredStructEnabled())
    v.RegisterTagNameFunc(func(f reflect.StructField) string {
        name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
        if name == "-" {
            return ""
        }
        return name
    })
    return &Validator{v: v}
}

func (cv *Validator) Validate(i interface{}) error {
    if err := cv.v.Struct(i); err != nil {
        return service.Validation("%s", validationMessage(err))
    }
    return nil
}

func validationMessage(err error) string {
    var verrs validator.ValidationErrors
    if !errors.As(err, &verrs) {
        return "invalid body"
    }
    msgs := make([]string, 0, len(verrs))
    for _, fe := range verrs {
        field := fe.Field()
        switch fe.Tag() {
        case "required":
            msgs = append(msgs, field+" is required")
        case "email":
            msgs = append(msgs, field+" must be a valid email")
        case "gt":
            msgs = append(msgs, fmt.Sprintf("%s must be greater than %s", field, fe.Param()))
        case "min":
            if fe.Kind() == reflect.String {
                msgs = append(msgs, fmt.Sprintf("%s must be at least %s characters", field, fe.Param()))
            } else {
                msgs = append(msgs, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
            }
        case "max":
            if fe.Kind() == reflect.String {
                msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
            } else {
                msgs = append(msgs, fmt.Sprintf("%s must be at most %s", field, fe.Param()))
            }
        case "numeric":
            msgs = append(msgs, field+" must contain only digits")
        default:
            msgs = append(msgs, field+" is invalid")
        }
    }
    return strings.Join(msgs, "; ")
}

// bindAndValidate decodes the JSON body into req and runs its validate tags.
func bindAndValidate(c echo.Context, req interface{}) error {
    if err := c.Bind(req); err != nil {
        return service.Validation("invalid body")
    }
    return c.Validate(req)
}

var kindStatus = map[service.Kind]int{
    service.KindValidation:     http.StatusBadRequest,
    service.KindAuthentication: http.StatusUnauthorized,
    service.KindPermission:     http.StatusForbidden,
    service.KindNotFound:       http.StatusNotFound,
    service.KindConflict:       http.StatusConflict,
}

// respondError writes err as {"error": message}.  Errors that are not
// service errors are logged and reported as 500 without detail.
func respondError(c echo.Context, err error) error {
    var se *service.Error
    if errors.As(err, &se) {
        if status, ok := kindStatus[se.Kind]; ok {
            return c.JSON(status, echo.Map{"error": se.Message})
        }
    }
    log.Errorf("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
    return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

// ErrorHandler replaces echo's default so router errors (404, 405, bind
// failures) share the {"error": ...} body of the handlers.
func ErrorHandler(err error, c echo.Context) {
    if c.Response().Committed {
        return
    }
    var he *echo.HTTPError
    if errors.As(err, &he) {
        msg := http.StatusText(he.Code)
        if s, ok := he.Message.(string); ok && s != "" {
            msg = s
        }
        if c.Request().Method == http.MethodHead {
            err = c.NoContent(he.Code)
        } else {
            err = c.JSON(he.Code, echo.Map{"error": strings.ToLower(msg)})
        }
        if err != nil {
            log.Errorf("write error response: %v", err)
        }
        return
    }
    if err := respondError(c, err); err != nil {
        log.Errorf("write error response: %v", err)
    }
}

// identity returns the caller authenticated by middleware.JWTAuth.
func identity(c echo.Context) (service.Identity, bool) {
    id, role, ok := middleware.CurrentUser(c)
    return service.Identity{UserID: id, Role: role}, ok
}

func unauthorized(c echo.Context) error {
    return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
}
