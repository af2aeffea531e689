package domain

import "time"

// User represents a registered library member in the domain.
// PasswordHash and RefreshToken are never serialized; sanitized responses
// are produced by the dto layer, which omits the fields entirely.
type User struct {
	UserID        string         `json:"userID"` // Primary key (UUID)
	Username      string         `json:"username"`
	Email         string         `json:"email"`
	Fullname      string         `json:"fullname"`
	PasswordHash  string         `json:"-"`
	RefreshToken  *string        `json:"-"` // Set on login, cleared on logout
	BorrowedBooks []BorrowedBook `json:"borrowedBooks"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// BorrowedBook is one entry in a user's borrowed-book list.
type BorrowedBook struct {
	BookID     string    `json:"bookId"`
	BorrowDate time.Time `json:"borrowDate"`
}

// TokenPair bundles the two credentials issued on login and refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
