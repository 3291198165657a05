package validators

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/kianlavi/onlyfan/models"
)

// Field names accepted by ContentValidator.Validate for scoped validation.
// They are the Go field names of the validated structs.
const (
	FieldSubject         = "Subject"
	FieldCredential      = "Credential"
	FieldPassword        = "Password"
	FieldConfirmPassword = "ConfirmPassword"
	FieldText            = "Text"
	FieldImage           = "Image"
	FieldName            = "Name"
	FieldHandle          = "Handle"
)

// tagRepository is the custom validation tag for "owner/name" strings.
const tagRepository = "repository"

var repositoryPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+$`)

// ContentValidator validates the access and content requests of the admin
// client with struct tags, plus the password length policy that depends on
// configuration.
type ContentValidator struct {
	validate          *validator.Validate
	minPasswordLength int
}

// NewContentValidator constructs a ContentValidator enforcing
// minPasswordLength on new vault passwords.
func NewContentValidator(minPasswordLength int) Validator {
	v := validator.New()
	// registration only fails for an empty tag or nil func
	_ = v.RegisterValidation(tagRepository, func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return repositoryPattern.MatchString(s) && !strings.Contains(s, "..")
	})

	return &ContentValidator{validate: v, minPasswordLength: minPasswordLength}
}

// Validate checks obj against its struct tags. When fields are given only
// those fields are checked.
//
// Supported types: models.SetupRequest, models.UnlockRequest,
// models.PostDraft, models.Profile and their pointers.
func (v *ContentValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SetupRequest:
		return v.validateSetup(value, fields...)
	case *models.SetupRequest:
		if value == nil {
			return ErrUnsupportedType
		}
		return v.validateSetup(*value, fields...)
	case models.UnlockRequest, *models.UnlockRequest,
		models.PostDraft, *models.PostDraft,
		models.Profile, *models.Profile:
		return v.structFields(value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *ContentValidator) validateSetup(req models.SetupRequest, fields ...string) error {
	if err := v.structFields(req, fields...); err != nil {
		return err
	}

	if len(fields) > 0 && !contains(fields, FieldPassword) {
		return nil
	}
	if utf8.RuneCountInString(req.Password) < v.minPasswordLength {
		return fmt.Errorf("%w: need at least %d characters", ErrPasswordTooShort, v.minPasswordLength)
	}
	return nil
}

func (v *ContentValidator) structFields(obj any, fields ...string) error {
	var err error
	if len(fields) > 0 {
		err = v.validate.StructPartial(obj, fields...)
	} else {
		err = v.validate.Struct(obj)
	}
	return translate(err)
}

// translate maps the first validator failure onto a package sentinel so
// callers can match with errors.Is.
func translate(err error) error {
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return ErrUnsupportedType
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	switch fe.Tag() {
	case tagRepository:
		return fmt.Errorf("%w: %q", ErrInvalidSubject, fe.Value())
	case "eqfield":
		return ErrPasswordMismatch
	case "required_without":
		return ErrEmptyPost
	case "gte":
		return fmt.Errorf("%w: %s", ErrNegativeValue, fe.Field())
	case "required":
		return fmt.Errorf("%w: %s", ErrMissingField, fe.Field())
	default:
		return fmt.Errorf("%w: %s failed %s", ErrUnknownField, fe.Field(), fe.Tag())
	}
}

func contains(fields []string, name string) bool {
	for _, f := range fields {
		if f == name {
			return true
		}
	}
	return false
}
