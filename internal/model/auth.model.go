package model

import "github.com/google/uuid"

// RegisterRequest is the register payload. The service trims and lowercases
// the email before any further checks.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterResponse struct {
	ID uuid.UUID `json:"id"`
}

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}

// IdentityResponse echoes the claims attached to the request by the bearer
// token middleware.
type IdentityResponse struct {
	Subject string `json:"subject"`
	Email   string `json:"email"`
}
