package repository

import (
    "context"
    "database/sql"

    "github.com/jmoiron/sqlx"

    "github.com/iliyamo/property-booking/internal/model"
)

// ReviewRepo stores reviews in the 'reviews' table.  A unique key on
// (user_id, property_id) backs the one-review-per-stay rule.
type ReviewRepo struct{ db *sqlx.DB }

func NewReviewRepo(db *sqlx.DB) *ReviewRepo { return &ReviewRepo{db: db} }

// Create inserts rv.  A second review of the same property by the same
// user yields ErrDuplicate.
func (r *ReviewRepo) Create(ctx context.Context, rv *model.Review) error {
    _, err := r.db.NamedExecContext(ctx,
        `INSERT INTO reviews (id, user_id, user_name, property_id, rating, comment, created_at)
         VALUES (:id, :user_id, :user_name, :property_id, :rating, :comment, :created_at)`, rv)
    if isDuplicate(err) {
        return ErrDuplicate
    }
    return err
}

func (r *ReviewRepo) Exists(ctx context.Context, userID, propertyID string) (bool, error) {
    var n int
    err := r.db.GetContext(ctx, &n,
        "SELECT COUNT(*) FROM reviews WHERE user_id=? AND property_id=?", userID, propertyID)
    return n > 0, err
}

// ListByProperty returns the reviews of a listing, newest first.
func (r *ReviewRepo) ListByProperty(ctx context.Context, propertyID string) ([]model.Review, error) {
    out := []model.Review{}
    err := r.db.SelectContext(ctx, &out,
        `SELECT id, user_id, user_name, property_id, rating, comment, created_at
         FROM reviews WHERE property_id=? ORDER BY created_at DESC`, propertyID)
    return out, err
}

// Stats returns the mean rating and review count of a listing.  A
// listing without reviews yields (0, 0).
func (r *ReviewRepo) Stats(ctx context.Context, propertyID string) (float64, int, error) {
    var row struct {
        Avg   sql.NullFloat64 `db:"avg"`
        Count int             `db:"cnt"`
    }
    err := r.db.GetContext(ctx, &row,
        "SELECT AVG(rating) AS avg, COUNT(*) AS cnt FROM reviews WHERE property_id=?", propertyID)
    if err != nil {
        return 0, 0, err
    }
    return row.Avg.Float64, row.Count, nil
}
