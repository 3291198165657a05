package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kianlavi/onlyfan/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer  = "onlyfan-test"
	testSignKey = "secret"
)

func TestGenerateAndValidateJWTToken(t *testing.T) {
	token, err := GenerateJWTToken(testIssuer, "org/repo", models.ScopePush, time.Hour, testSignKey)
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := ValidateAndParseJWTToken(token.SignedString, testSignKey, testIssuer)
	require.NoError(t, err)
	assert.Equal(t, "org/repo", parsed.Repository())
	assert.True(t, parsed.CanPush())
	assert.Equal(t, token.SignedString, parsed.String())
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		repo     string
		scope    string
		duration time.Duration
		key      string
	}{
		{"empty issuer", "", "org/repo", models.ScopePush, time.Hour, testSignKey},
		{"empty repository", testIssuer, "", models.ScopePush, time.Hour, testSignKey},
		{"zero duration", testIssuer, "org/repo", models.ScopePush, 0, testSignKey},
		{"empty key", testIssuer, "org/repo", models.ScopePush, time.Hour, ""},
		{"unknown scope", testIssuer, "org/repo", "admin", time.Hour, testSignKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, tt.repo, tt.scope, tt.duration, tt.key)
			assert.Error(t, err)
		})
	}
}

func TestValidateAndParseJWTToken_Rejects(t *testing.T) {
	valid, err := GenerateJWTToken(testIssuer, "org/repo", models.ScopePull, time.Hour, testSignKey)
	require.NoError(t, err)

	expiredClaims := models.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   "org/repo",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
		Scope: models.ScopePush,
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expiredClaims).SignedString([]byte(testSignKey))
	require.NoError(t, err)

	t.Run("wrong key", func(t *testing.T) {
		_, err := ValidateAndParseJWTToken(valid.SignedString, "other", testIssuer)
		assert.Error(t, err)
	})
	t.Run("wrong issuer", func(t *testing.T) {
		_, err := ValidateAndParseJWTToken(valid.SignedString, testSignKey, "someone-else")
		assert.Error(t, err)
	})
	t.Run("expired", func(t *testing.T) {
		_, err := ValidateAndParseJWTToken(expired, testSignKey, testIssuer)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})
	t.Run("garbage", func(t *testing.T) {
		_, err := ValidateAndParseJWTToken("tok_abc", testSignKey, testIssuer)
		assert.Error(t, err)
	})
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{"Bearer abc", "abc", false},
		{"bearer   abc ", "abc", false},
		{"token abc", "abc", false},
		{"Basic abc", "", true},
		{"Bearer", "", true},
		{"", "", true},
		{"Bearer a b", "", true},
	}

	for _, tt := range tests {
		got, err := ParseBearerToken(tt.header)
		if tt.wantErr {
			assert.Error(t, err, tt.header)
			continue
		}
		require.NoError(t, err, tt.header)
		assert.Equal(t, tt.want, got)
	}
}
