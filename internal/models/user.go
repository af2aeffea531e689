package models

import (
	"database/sql"
	"time"
)

// User is the persistence model for the users table.
type User struct {
	UserID       string         `db:"user_id"`
	Username     string         `db:"username"`
	Email        string         `db:"email"`
	Fullname     string         `db:"fullname"`
	PasswordHash string         `db:"password_hash"`
	RefreshToken sql.NullString `db:"refresh_token"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}
