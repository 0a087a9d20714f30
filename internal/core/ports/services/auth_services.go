package services

import (
	"context"
	"time"

	"github.com/transferpro/transferpro_backend/internal/core/domain"
)

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	// GenerateAccessToken signs a JWT for the authenticated user.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// ValidateAccessToken parses and validates a token string, returning
	// the user ID and role it was issued for.
	ValidateAccessToken(ctx context.Context, tokenString string) (userID string, role domain.UserRole, err error)
}
