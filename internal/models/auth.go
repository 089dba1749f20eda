package models

import "github.com/golang-jwt/jwt/v5"

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest self-registers a student account. The linked alumnos row
// is created in the same transaction as the usuarios row.
type RegisterRequest struct {
	Nombre   string `json:"nombre" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Telefono string `json:"telefono"`
	PaisID   int64  `json:"pais_id" validate:"required"`
}

// UserInfo describes the authenticated user in responses.
type UserInfo struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
	Email  string `json:"email"`
	Rol    Role   `json:"rol"`
}

// LoginResponse returns the issued token and user info.
type LoginResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

// RegisterResponse returns the token issued for the new account.
type RegisterResponse struct {
	Token string `json:"token"`
}

// ForgotPasswordRequest initiates the reset flow.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest consumes a reset token.
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// JWTClaims is the session token payload.
type JWTClaims struct {
	UserID int64  `json:"user_id"`
	Nombre string `json:"nombre"`
	Email  string `json:"email"`
	Rol    Role   `json:"rol"`
	jwt.RegisteredClaims
}

// ResetClaims is the short-lived reset token payload.
type ResetClaims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}
