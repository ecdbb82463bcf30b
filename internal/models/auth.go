package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserRole is carried in session tokens.
type UserRole string

const RoleAdmin UserRole = "ADMIN"

// LoginRequest holds admin credentials forwarded to the store.
type LoginRequest struct {
	UserID   string `json:"userId" validate:"notblank"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the issued session token.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int64     `json:"expires_in"`
	IssuedAt    time.Time `json:"issued_at"`
	User        UserInfo  `json:"user"`
}

// UserInfo describes the authenticated admin.
type UserInfo struct {
	UserID string   `json:"user_id"`
	Role   UserRole `json:"role"`
}

// JWTClaims represents the session token payload.
type JWTClaims struct {
	UserID string   `json:"user_id"`
	Role   UserRole `json:"role"`
	jwt.RegisteredClaims
}
