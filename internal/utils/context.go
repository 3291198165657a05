// Package utils provides general-purpose helper utilities used across
// different parts of the application: context keys, content hashing, JSON
// response writing, the outbound HTTP client, bearer token handling, id
// generation and terminal prompts.
package utils

import (
	"context"

	"github.com/kianlavi/onlyfan/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
func (c contextKey) String() string {
	return string(c)
}

// TokenCtxKey is the key the auth middleware stores the parsed bearer token
// under. Requests without a token carry no value.
var TokenCtxKey = contextKey("token")

// WithToken returns a copy of ctx carrying token.
func WithToken(ctx context.Context, token models.Token) context.Context {
	return context.WithValue(ctx, TokenCtxKey, token)
}

// GetTokenFromContext retrieves the bearer token stored by the auth
// middleware. ok is false for anonymous requests.
func GetTokenFromContext(ctx context.Context) (models.Token, bool) {
	token, ok := ctx.Value(TokenCtxKey).(models.Token)
	return token, ok
}
