package dto

import (
	"time"

	"github.com/spec-kit/catalog-service/internal/service"
)

// SignupRequest payload for new users.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

// ToInput converts the request for the auth service.
func (r SignupRequest) ToInput() service.SignupInput {
	return service.SignupInput{Name: r.Name, Email: r.Email, Password: r.Password}
}

// ToInput converts the request for the auth service.
func (r LoginRequest) ToInput() service.LoginInput {
	return service.LoginInput{Email: r.Email, Password: r.Password}
}

// NewAuthResponse renders an auth result.
func NewAuthResponse(res *service.AuthResult) AuthResponse {
	return AuthResponse{
		User: UserResponse{
			ID:    res.User.ID,
			Name:  res.User.Name,
			Email: res.User.Email,
		},
		Token:     res.Session.Token,
		ExpiresAt: res.Session.ExpiresAt,
	}
}
