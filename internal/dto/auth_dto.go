package dto

import (
	"github.com/google/uuid"
)

// GoogleAuthRequest is the request body for Google sign-in
type GoogleAuthRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// RefreshTokenRequest is the request body for refreshing tokens
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// UserDTO represents a user in responses
type UserDTO struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	AvatarURL   string    `json:"avatarUrl,omitempty"`
}

// AuthResponse is the response for successful authentication
type AuthResponse struct {
	AccessToken  string  `json:"accessToken"`
	RefreshToken string  `json:"refreshToken"`
	ExpiresIn    int64   `json:"expiresIn"`
	User         UserDTO `json:"user"`
}
