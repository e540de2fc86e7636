package repository

import (
    "context"

    "github.com/jmoiron/sqlx"

    "github.com/iliyamo/property-booking/internal/model"
)

// UserRepo stores accounts in the 'users' table.
type UserRepo struct{ db *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

const userColumns = "id, name, email, password_hash, role, created_at"

// Create inserts u.  A taken email yields ErrDuplicate.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
    _, err := r.db.NamedExecContext(ctx,
        `INSERT INTO users (id, name, email, password_hash, role, created_at)
         VALUES (:id, :name, :email, :password_hash, :role, :created_at)`, u)
    if isDuplicate(err) {
        return ErrDuplicate
    }
    return err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
    var u model.User
    err := r.db.GetContext(ctx, &u, "SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id)
    if err != nil {
        return nil, notFound(err)
    }
    return &u, nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
    var u model.User
    err := r.db.GetContext(ctx, &u, "SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email)
    if err != nil {
        return nil, notFound(err)
    }
    return &u, nil
}

// List returns all users, oldest first.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
    out := []model.User{}
    err := r.db.SelectContext(ctx, &out, "SELECT "+userColumns+" FROM users ORDER BY created_at ASC")
    return out, err
}

// UpdateRole changes the role of a user.
func (r *UserRepo) UpdateRole(ctx context.Context, id, role string) error {
    return affected(r.db.ExecContext(ctx, "UPDATE users SET role=? WHERE id=?", role, id))
}
