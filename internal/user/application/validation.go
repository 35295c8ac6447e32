package application

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	pkgApp "github.com/mateusmacedo/train-booking/pkg/application"
)

const minPasswordLength = 8

var (
	ErrNameRequired = pkgApp.NewError(pkgApp.KindMissingField, "Name is required")

	validate = validator.New()
)

type passwordRule struct {
	message string
	check   func(string) bool
}

// Evaluated in order; each failing rule adds one field error.
var passwordRules = []passwordRule{
	{"Password must be at least 8 characters long", func(p string) bool { return utf8.RuneCountInString(p) >= minPasswordLength }},
	{"Password must contain at least one number", containsRune(unicode.IsDigit)},
	{"Password must contain at least one uppercase letter", containsRune(unicode.IsUpper)},
	{"Password must contain at least one lowercase letter", containsRune(unicode.IsLower)},
}

func containsRune(pred func(rune) bool) func(string) bool {
	return func(s string) bool {
		return strings.IndexFunc(s, pred) >= 0
	}
}

func validateEmail(email string) []pkgApp.FieldError {
	if err := validate.Var(email, "required,email"); err != nil {
		return []pkgApp.FieldError{{Msg: "Please provide a valid email address", Path: "email"}}
	}
	return nil
}

func validatePassword(password string) []pkgApp.FieldError {
	var fields []pkgApp.FieldError
	for _, rule := range passwordRules {
		if !rule.check(password) {
			fields = append(fields, pkgApp.FieldError{Msg: rule.message, Path: "password"})
		}
	}
	return fields
}

// validateRegistration checks email and password before name, so a request
// with a bad password and no name reports the password problem.
func validateRegistration(data UserData) error {
	fields := validateEmail(value(data.Email))
	fields = append(fields, validatePassword(value(data.Password))...)
	if len(fields) > 0 {
		return pkgApp.NewValidationError(fields)
	}
	if strings.TrimSpace(value(data.Name)) == "" {
		return ErrNameRequired
	}
	return nil
}

func validateChanges(data UserData) error {
	var fields []pkgApp.FieldError
	if data.Email != nil {
		fields = append(fields, validateEmail(*data.Email)...)
	}
	if data.Password != nil {
		fields = append(fields, validatePassword(*data.Password)...)
	}
	if len(fields) > 0 {
		return pkgApp.NewValidationError(fields)
	}
	if data.Name != nil && strings.TrimSpace(*data.Name) == "" {
		return ErrNameRequired
	}
	return nil
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
