package dto

import "time"

// Request DTOs

type RegisterRequest struct {
	Username string `json:"username" validate:"required,notblank,max=64"`
	Password string `json:"password" validate:"required,notblank,max=72"`
	Role     string `json:"role" validate:"required,oneof=doctor patient"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=doctor patient"`
}

type UpdateLanguageRequest struct {
	Language string `json:"language" validate:"required,oneof=English Hindi"`
}

// Response DTOs

type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type SessionResponse struct {
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Language  string    `json:"language"`
	LoginAt   time.Time `json:"login_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Features  []string  `json:"features"`
}

type LoginResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresIn   int64           `json:"expires_in"`
	Session     SessionResponse `json:"session"`
}
