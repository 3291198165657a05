package service

import (
	"context"
	"fmt"
	"time"

	"github.com/kianlavi/onlyfan/internal/config"
	"github.com/kianlavi/onlyfan/internal/logger"
	"github.com/kianlavi/onlyfan/internal/utils"
	"github.com/kianlavi/onlyfan/models"
)

// tokenService is the concrete implementation of TokenService. Tokens are
// HS256 JWTs whose subject is the repository they grant access to.
type tokenService struct {
	// tokenSignKey is the HMAC secret used to sign and verify tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued token.
	// Tokens whose issuer does not match are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued token remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewTokenService constructs a TokenService from the token settings in cfg.
func NewTokenService(cfg config.ServerApp, logger *logger.Logger) TokenService {
	return &tokenService{
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		logger:        logger,
	}
}

// CreateToken issues a signed token granting scope on repository.
func (t *tokenService) CreateToken(ctx context.Context, repository, scope string) (models.Token, error) {
	token, err := utils.GenerateJWTToken(t.tokenIssuer, repository, scope, t.tokenDuration, t.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	logger.FromContext(ctx).Info().
		Str("func", "tokenService.CreateToken").
		Str("repository", repository).
		Str("scope", scope).
		Time("expires_at", token.Claims.ExpiresAt.Time).
		Msg("token issued")
	return token, nil
}

// ParseToken validates a raw token. Any validation failure (expired, wrong
// issuer, bad signature) is normalised to ErrTokenIsExpiredOrInvalid.
func (t *tokenService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, t.tokenSignKey, t.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "tokenService.ParseToken").Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
