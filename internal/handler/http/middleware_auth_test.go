package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kianlavi/onlyfan/internal/logger"
	"github.com/kianlavi/onlyfan/internal/mock"
	"github.com/kianlavi/onlyfan/internal/service"
	"github.com/kianlavi/onlyfan/internal/utils"
	"github.com/kianlavi/onlyfan/models"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func pushToken(repository string) models.Token {
	return models.Token{
		Claims: models.TokenClaims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: repository},
			Scope:            models.ScopePush,
		},
		SignedString: "signed",
	}
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		setupMock  func(m *mock.MockTokenService)
		wantStatus int
		wantNext   bool
		wantToken  bool
	}{
		{
			name:       "anonymous request passes through",
			setupMock:  func(m *mock.MockTokenService) {},
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:   "valid bearer token",
			header: "Bearer signed",
			setupMock: func(m *mock.MockTokenService) {
				m.EXPECT().ParseToken(gomock.Any(), "signed").Return(pushToken("org/site"), nil)
			},
			wantStatus: http.StatusOK,
			wantNext:   true,
			wantToken:  true,
		},
		{
			name:   "legacy token scheme",
			header: "token signed",
			setupMock: func(m *mock.MockTokenService) {
				m.EXPECT().ParseToken(gomock.Any(), "signed").Return(pushToken("org/site"), nil)
			},
			wantStatus: http.StatusOK,
			wantNext:   true,
			wantToken:  true,
		},
		{
			name:       "unsupported scheme",
			header:     "Basic dXNlcjpwYXNz",
			setupMock:  func(m *mock.MockTokenService) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing token value",
			header:     "Bearer",
			setupMock:  func(m *mock.MockTokenService) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "expired token",
			header: "Bearer expired",
			setupMock: func(m *mock.MockTokenService) {
				m.EXPECT().ParseToken(gomock.Any(), "expired").Return(models.Token{}, service.ErrTokenIsExpiredOrInvalid)
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			tokens := mock.NewMockTokenService(ctrl)
			tt.setupMock(tokens)

			h := &Handler{
				services: &service.Services{TokenService: tokens},
				logger:   logger.Nop(),
			}

			nextCalled := false
			var gotToken bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				_, gotToken = utils.GetTokenFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/repos/org/site", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.auth(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantNext, nextCalled)
			assert.Equal(t, tt.wantToken, gotToken)
			if !tt.wantNext {
				assert.Contains(t, rec.Body.String(), `"message"`)
			}
		})
	}
}
