package auth

import (
	"notetaker/internal/domain/models"
)

// JWTVerifier validates bearer tokens and extracts their claims
type JWTVerifier interface {
	// VerifyToken validates a JWT and returns its claims
	VerifyToken(tokenString string) (*models.AccessClaims, error)

	// Close releases resources held by the verifier
	Close() error
}
