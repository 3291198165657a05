package models

import "github.com/golang-jwt/jwt/v5"

// Token scopes understood by the self-hosted store.
const (
	ScopePull = "pull"
	ScopePush = "push"
)

// TokenClaims are the claims carried by bearer tokens issued for the
// self-hosted store. The registered "sub" claim holds the repository full
// name the token is scoped to.
type TokenClaims struct {
	jwt.RegisteredClaims
	Scope string `json:"scope"`
}

// Token wraps a signed token with its parsed claims.
type Token struct {
	// Claims are the claims the token was signed or parsed with.
	Claims TokenClaims
	// SignedString is the compact JWS form sent as the bearer credential.
	SignedString string `json:"-"`
}

// Repository returns the repository the token is scoped to.
func (t Token) Repository() string {
	return t.Claims.Subject
}

// CanPush reports whether the token allows writes.
func (t Token) CanPush() bool {
	return t.Claims.Scope == ScopePush
}

// String returns the compact JWS serialization of the token.
func (t Token) String() string {
	return t.SignedString
}
