package dto

import (
	"time"

	"github.com/openlibro/library_management_app/internal/core/domain"
)

// UserResponse is the sanitized user representation: the password hash and
// refresh token fields are not present at all, so they can never serialize.
type UserResponse struct {
	UserID        string                 `json:"userID"`
	Username      string                 `json:"username"`
	Email         string                 `json:"email"`
	Fullname      string                 `json:"fullname"`
	BorrowedBooks []BorrowedBookResponse `json:"borrowedBooks"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}

// BorrowedBookResponse is one borrowed-book entry on a user response.
type BorrowedBookResponse struct {
	BookID     string    `json:"bookId"`
	BorrowDate time.Time `json:"borrowDate"`
}

// ToUserResponse converts a domain.User to its sanitized response form.
func ToUserResponse(user *domain.User) UserResponse {
	borrowed := make([]BorrowedBookResponse, len(user.BorrowedBooks))
	for i, b := range user.BorrowedBooks {
		borrowed[i] = BorrowedBookResponse{
			BookID:     b.BookID,
			BorrowDate: b.BorrowDate,
		}
	}
	return UserResponse{
		UserID:        user.UserID,
		Username:      user.Username,
		Email:         user.Email,
		Fullname:      user.Fullname,
		BorrowedBooks: borrowed,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}
