package services

import (
	"context"
	"fmt"
	"time"

	"github.com/transferpro/transferpro_backend/internal/apperrors"
	"github.com/transferpro/transferpro_backend/internal/core/domain"
	portssvc "github.com/transferpro/transferpro_backend/internal/core/ports/services"
	"github.com/transferpro/transferpro_backend/internal/platform/config"
	"github.com/transferpro/transferpro_backend/internal/utils"
)

// tokenService implements the TokenSvcFacade for signed access tokens.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	token, expiresAt, err := utils.GenerateJWT(user.UserID, string(user.Role), s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, expiresAt, nil
}

// ValidateAccessToken parses and validates a token string.
func (s *tokenService) ValidateAccessToken(ctx context.Context, tokenString string) (string, domain.UserRole, error) {
	claims, err := utils.ParseAndValidateJWT(tokenString, s.cfg.JWTSecret)
	if err != nil {
		return "", "", fmt.Errorf("%w: %s", apperrors.ErrUnauthorized, err.Error())
	}
	if s.cfg.JWTIssuer != "" && claims.Issuer != s.cfg.JWTIssuer {
		return "", "", fmt.Errorf("%w: unexpected token issuer", apperrors.ErrUnauthorized)
	}
	return claims.Subject, domain.UserRole(claims.Role), nil
}
