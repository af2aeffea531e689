package dto

// RegisterRequest carries the fields required to create a new user.
// Trim/blank validation happens in the auth service so whitespace-only
// values are rejected the same way as missing ones.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Username string `json:"username" binding:"required"`
	Fullname string `json:"fullname" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest identifies the user by username or email; at least one of
// the two must be present.
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the sanitized user plus both tokens in the body so
// non-cookie clients (e.g. mobile) can store them locally. The same tokens
// are also delivered as httpOnly cookies.
type LoginResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

// RefreshRequest carries the refresh token for clients that do not use the
// cookie; the handler falls back to the refreshToken cookie when empty.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshResponse returns the rotated token pair.
type RefreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
