package model

import "time"

// Role values stored on User.Role.  A role is fixed when the account is
// created; only the operator admin tool can promote a user.
const (
    RoleUser  = "user"
    RoleAdmin = "admin"
)

// User represents an account record as stored in the `users`
// collection (or table, for the MySQL store).  The password hash is
// never serialized to JSON so handlers may return the struct as is.
//
// Fields:
//  ID           – uuid primary key.
//  Name         – display name, copied into reviews at write time.
//  Email        – unique, normalized (trimmed, lower-case) address.
//  PasswordHash – bcrypt hash of the password.
//  Role         – RoleUser or RoleAdmin.
//  CreatedAt    – creation timestamp (UTC).
type User struct {
    ID           string    `json:"id" bson:"_id" db:"id"`
    Name         string    `json:"name" bson:"name" db:"name"`
    Email        string    `json:"email" bson:"email" db:"email"`
    PasswordHash string    `json:"-" bson:"password_hash" db:"password_hash"`
    Role         string    `json:"role" bson:"role" db:"role"`
    CreatedAt    time.Time `json:"created_at" bson:"created_at" db:"created_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }
