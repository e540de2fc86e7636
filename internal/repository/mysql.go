package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/go-sql-driver/mysql"
    "github.com/jmoiron/sqlx"
)

// NewMySQLStore wires every repository to the same sqlx handle.  The
// schema is expected to be migrated already (see database.MigrateMySQL).
func NewMySQLStore(db *sqlx.DB) *Store {
    return &Store{
        Users:      NewUserRepo(db),
        Properties: NewPropertyRepo(db),
        Bookings:   NewBookingRepo(db),
        Reviews:    NewReviewRepo(db),
        Payments:   NewPaymentRepo(db),
        Close:      func(context.Context) error { return db.Close() },
    }
}

// isDuplicate reports whether err is a MySQL unique-key violation (1062).
func isDuplicate(err error) bool {
    var me *mysql.MySQLError
    return errors.As(err, &me) && me.Number == 1062
}

// notFound maps sql.ErrNoRows to ErrNotFound and passes everything
// else through.
func notFound(err error) error {
    if errors.Is(err, sql.ErrNoRows) {
        return ErrNotFound
    }
    return err
}

// affected returns ErrNotFound when an UPDATE/DELETE touched no rows.
func affected(res sql.Result, err error) error {
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrNotFound
    }
    return nil
}
