package service

import (
    "context"
    "errors"
    "strings"
    "time"

    "github.com/go-playground/validator/v10"

    "github.com/iliyamo/property-booking/internal/model"
    "github.com/iliyamo/property-booking/internal/notify"
    "github.com/iliyamo/property-booking/internal/repository"
    "github.com/iliyamo/property-booking/internal/utils"
)

const minPasswordLen = 6

// AuthConfig holds the token and hashing parameters.
type AuthConfig struct {
    Secret     string
    TokenTTL   time.Duration
    BcryptCost int
}

type AuthService struct {
    users    repository.UserRepository
    notifier notify.Notifier
    cfg      AuthConfig
    now      func() time.Time
}

func NewAuthService(users repository.UserRepository, n notify.Notifier, cfg AuthConfig) *AuthService {
    if cfg.TokenTTL <= 0 {
        cfg.TokenTTL = 7 * 24 * time.Hour
    }
    return &AuthService{users: users, notifier: n, cfg: cfg, now: time.Now}
}

type RegisterInput struct {
    Name     string
    Email    string
    Password string
}

type LoginInput struct {
    Email    string
    Password string
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
    User        *model.User `json:"user"`
    AccessToken string      `json:"access_token"`
    TokenType   string      `json:"token_type"`
    ExpiresAt   time.Time   `json:"expires_at"`
}

func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

var validate = validator.New()

func validEmail(s string) bool {
    return validate.Var(s, "required,email") == nil
}

// Register creates an account with role user and signs it in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
    name := strings.TrimSpace(in.Name)
    email := normalizeEmail(in.Email)
    if name == "" {
        return nil, Validation("name is required")
    }
    if !validEmail(email) {
        return nil, Validation("invalid email")
    }
    if len(in.Password) < minPasswordLen {
        return nil, Validation("password must be at least %d characters", minPasswordLen)
    }

    hash, err := utils.HashPassword(in.Password, s.cfg.BcryptCost)
    if err != nil {
        return nil, storeErr("hash password", err)
    }
    u := &model.User{
        ID:           newID(),
        Name:         name,
        Email:        email,
        PasswordHash: hash,
        Role:         model.RoleUser,
        CreatedAt:    s.now().UTC(),
    }
    if err := s.users.Create(ctx, u); err != nil {
        if errors.Is(err, repository.ErrDuplicate) {
            return nil, Conflict("email already registered")
        }
        return nil, storeErr("create user", err)
    }
    deliver(ctx, s.notifier, notify.Welcome(*u))
    return s.issue(u)
}

// Login checks credentials.  Unknown email and wrong password fail the
// same way.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
    u, err := s.users.GetByEmail(ctx, normalizeEmail(in.Email))
    if errors.Is(err, repository.ErrNotFound) {
        return nil, Unauthenticated("invalid email or password")
    }
    if err != nil {
        return nil, storeErr("find user", err)
    }
    if !utils.VerifyPassword(u.PasswordHash, in.Password) {
        return nil, Unauthenticated("invalid email or password")
    }
    return s.issue(u)
}

// Me returns the account behind an access token.
func (s *AuthService) Me(ctx context.Context, userID string) (*model.User, error) {
    return loadUser(ctx, s.users, userID)
}

func (s *AuthService) issue(u *model.User) (*AuthResult, error) {
    tok, err := utils.NewAccessToken(s.cfg.Secret, u.ID, u.Role, s.cfg.TokenTTL, s.now())
    if err != nil {
        return nil, storeErr("sign token", err)
    }
    return &AuthResult{User: u, AccessToken: tok.Token, TokenType: "bearer", ExpiresAt: tok.Exp}, nil
}

// EnsureAdmin makes sure an admin account with this email exists.  An
// existing user is promoted and keeps its password; otherwise a new
// admin is created.  created reports which happened.
func (s *AuthService) EnsureAdmin(ctx context.Context, name, email, password string) (u *model.User, created bool, err error) {
    email = normalizeEmail(email)
    existing, err := s.users.GetByEmail(ctx, email)
    switch {
    case err == nil:
        if existing.Role != model.RoleAdmin {
            if err := s.users.UpdateRole(ctx, existing.ID, model.RoleAdmin); err != nil {
                return nil, false, storeErr("promote user", err)
            }
            existing.Role = model.RoleAdmin
        }
        return existing, false, nil
    case !errors.Is(err, repository.ErrNotFound):
        return nil, false, storeErr("find user", err)
    }

    if !validEmail(email) {
        return nil, false, Validation("invalid email")
    }
    if len(password) < minPasswordLen {
        return nil, false, Validation("password must be at least %d characters", minPasswordLen)
    }
    if strings.TrimSpace(name) == "" {
        name = "Administrator"
    }
    hash, err := utils.HashPassword(password, s.cfg.BcryptCost)
    if err != nil {
        return nil, false, storeErr("hash password", err)
    }
    u = &model.User{
        ID:           newID(),
        Name:         strings.TrimSpace(name),
        Email:        email,
        PasswordHash: hash,
        Role:         model.RoleAdmin,
        CreatedAt:    s.now().UTC(),
    }
    if err := s.users.Create(ctx, u); err != nil {
        if errors.Is(err, repository.ErrDuplicate) {
            return nil, false, Conflict("email already registered")
        }
        return nil, false, storeErr("create admin", err)
    }
    return u, true, nil
}

// Promote grants the admin role to an existing account.
func (s *AuthService) Promote(ctx context.Context, email string) (*model.User, error) {
    u, err := s.users.GetByEmail(ctx, normalizeEmail(email))
    if errors.Is(err, repository.ErrNotFound) {
        return nil, NotFound("user %s not found", normalizeEmail(email))
    }
    if err != nil {
        return nil, storeErr("find user", err)
    }
    if err := s.users.UpdateRole(ctx, u.ID, model.RoleAdmin); err != nil {
        return nil, storeErr("promote user", err)
    }
    u.Role = model.RoleAdmin
    return u, nil
}

// ListUsers returns every account, oldest first.
func (s *AuthService) ListUsers(ctx context.Context) ([]model.User, error) {
    users, err := s.users.List(ctx)
    if err != nil {
        return nil, storeErr("list users", err)
    }
    return users, nil
}
