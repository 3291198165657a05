package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kianlavi/onlyfan/models"
)

// GenerateJWTToken creates a signed HMAC-SHA256 JWT granting scope on
// repository.
//
// The token includes the following claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the repository full name ("owner/name")
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//   - scope          : "pull" or "push"
//
// All parameters are required.
func GenerateJWTToken(issuer, repository, scope string, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || repository == "" || tokenDuration <= 0 || signKey == "" {
		return models.Token{}, errors.New("jwt: issuer, repository, duration and sign key are required")
	}
	if scope != models.ScopePull && scope != models.ScopePush {
		return models.Token{}, fmt.Errorf("jwt: unknown scope %q", scope)
	}

	now := time.Now()
	claims := models.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   repository,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Scope: scope,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("jwt: sign: %w", err)
	}

	return models.Token{Claims: claims, SignedString: tokenString}, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts
// its claims.
//
// Validation includes the HS256 signature, the issuer, the expiration and a
// non-empty subject.
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	var claims models.TokenClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("jwt: parse: %w", err)
	}

	if claims.Subject == "" {
		return models.Token{}, errors.New("jwt: token has no repository subject")
	}

	return models.Token{Claims: claims, SignedString: tokenString}, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <t>"
// header value. The legacy "token <t>" form is accepted too.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	if !strings.EqualFold(parts[0], "bearer") && !strings.EqualFold(parts[0], "token") {
		return "", errors.New("unsupported authorization scheme")
	}
	return parts[1], nil
}
