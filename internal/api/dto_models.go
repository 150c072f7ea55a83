package api

import "github.com/example/mistermo/internal/models"

// ErrorResponse is a generic structure for returning errors via API.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// OKResponse acknowledges writes that return no entity.
type OKResponse struct {
	OK bool `json:"ok"`
}

// AuthResponse is returned by POST /api/auth/telegram.
type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}
