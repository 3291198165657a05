package validators

import (
	"context"
	"testing"

	"github.com/kianlavi/onlyfan/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSetup() models.SetupRequest {
	return models.SetupRequest{
		Subject:         "org/repo",
		Credential:      "tok_abc",
		Password:        "pw123456",
		ConfirmPassword: "pw123456",
	}
}

func TestContentValidator_Setup(t *testing.T) {
	v := NewContentValidator(4)
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(r *models.SetupRequest)
		wantErr error
	}{
		{"valid", func(r *models.SetupRequest) {}, nil},
		{"missing subject", func(r *models.SetupRequest) { r.Subject = "" }, ErrMissingField},
		{"subject without owner", func(r *models.SetupRequest) { r.Subject = "repo" }, ErrInvalidSubject},
		{"subject traversal", func(r *models.SetupRequest) { r.Subject = "org/.." }, ErrInvalidSubject},
		{"missing credential", func(r *models.SetupRequest) { r.Credential = "" }, ErrMissingField},
		{"passwords differ", func(r *models.SetupRequest) { r.ConfirmPassword = "other" }, ErrPasswordMismatch},
		{"password too short", func(r *models.SetupRequest) { r.Password, r.ConfirmPassword = "abc", "abc" }, ErrPasswordTooShort},
		{"missing password", func(r *models.SetupRequest) { r.Password, r.ConfirmPassword = "", "" }, ErrMissingField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSetup()
			tt.mutate(&req)

			err := v.Validate(ctx, req)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)

			err = v.Validate(ctx, &req)
			assert.ErrorIs(t, err, tt.wantErr, "pointer form")
		})
	}
}

func TestContentValidator_PasswordLengthCountsRunes(t *testing.T) {
	v := NewContentValidator(4)
	req := validSetup()
	req.Password, req.ConfirmPassword = "пароль", "пароль"

	assert.NoError(t, v.Validate(context.Background(), req))
}

func TestContentValidator_PartialFields(t *testing.T) {
	v := NewContentValidator(4)
	ctx := context.Background()

	req := models.SetupRequest{Subject: "org/repo"}
	require.NoError(t, v.Validate(ctx, req, FieldSubject))

	req.Subject = "bad"
	assert.ErrorIs(t, v.Validate(ctx, req, FieldSubject), ErrInvalidSubject)

	req = models.SetupRequest{Password: "ab", ConfirmPassword: "ab"}
	assert.ErrorIs(t, v.Validate(ctx, req, FieldPassword, FieldConfirmPassword), ErrPasswordTooShort)
}

func TestContentValidator_Unlock(t *testing.T) {
	v := NewContentValidator(4)

	assert.NoError(t, v.Validate(context.Background(), models.UnlockRequest{Password: "x"}))
	assert.ErrorIs(t, v.Validate(context.Background(), models.UnlockRequest{}), ErrMissingField)
}

func TestContentValidator_PostDraft(t *testing.T) {
	v := NewContentValidator(4)
	ctx := context.Background()
	negative := -1.0
	price := 4.99

	assert.NoError(t, v.Validate(ctx, models.PostDraft{Text: "hello"}))
	assert.NoError(t, v.Validate(ctx, models.PostDraft{Image: "images/1.png"}))
	assert.NoError(t, v.Validate(ctx, &models.PostDraft{Text: "locked", Locked: true, Price: &price}))
	assert.ErrorIs(t, v.Validate(ctx, models.PostDraft{}), ErrEmptyPost)
	assert.ErrorIs(t, v.Validate(ctx, models.PostDraft{Text: "x", Tips: &negative}), ErrNegativeValue)
	assert.ErrorIs(t, v.Validate(ctx, models.PostDraft{Text: "x", Comments: -3}), ErrNegativeValue)
}

func TestContentValidator_Profile(t *testing.T) {
	v := NewContentValidator(4)
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.Profile{Name: "Jane", Handle: "@jane"}))
	assert.ErrorIs(t, v.Validate(ctx, models.Profile{Handle: "@jane"}), ErrMissingField)
	assert.ErrorIs(t, v.Validate(ctx, models.Profile{Name: "Jane", Handle: "@jane", Subscribers: -1}), ErrNegativeValue)
}

func TestContentValidator_UnsupportedType(t *testing.T) {
	v := NewContentValidator(4)

	assert.ErrorIs(t, v.Validate(context.Background(), "string"), ErrUnsupportedType)
	assert.ErrorIs(t, v.Validate(context.Background(), (*models.SetupRequest)(nil)), ErrUnsupportedType)
}
