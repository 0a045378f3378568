package dto

import "time"

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	UserType string `json:"userType"`
}

type CredentialsQuery struct {
	Email    string `query:"email"`
	Password string `query:"password"`
	UserType string `query:"userType"`
}

type ResendRequest struct {
	Email    string `json:"email"`
	UserType string `json:"userType"`
}

// Identity is returned by /auth/validate and /auth/me. Token fields are only
// set on login.
type Identity struct {
	Authenticated bool       `json:"authenticated"`
	UserID        uint       `json:"userId"`
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	UserType      string     `json:"userType"`
	Token         string     `json:"token,omitempty"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
}

// AuthResponse holds the verified claims of a bearer token.
type AuthResponse struct {
	UserID   uint    `json:"user_id"`
	Email    string  `json:"email"`
	UserType string  `json:"user_type"`
	Iat      float64 `json:"iat"`
	Expiry   float64 `json:"expiry"`
}
