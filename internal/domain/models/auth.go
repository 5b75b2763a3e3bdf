package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims are the JWT claims the auth provider issues. The core only
// cares about the subject (the owner id); role is checked to reject
// anonymous tokens.
type AccessClaims struct {
	jwt.RegisteredClaims
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
}
