package validation

import (
	"regexp"
	"strings"

	"github.com/Daskott/rolodex/server/apperr"
	"github.com/go-playground/validator"
)

var emailShapeRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Field is a single named value to be checked against the rules for that name
type Field struct {
	Name  string
	Value string
}

type rule struct {
	tag     string
	message string
}

// Rules per field, in the order they're evaluated. Only the first failing
// rule of a field is reported.
var fieldRules = map[string][]rule{
	"name": {
		{tag: "required", message: "name is required"},
	},
	"email": {
		{tag: "required", message: "email is required"},
		{tag: "email,email_tld", message: "email must be a valid email address"},
	},
	"phone": {
		{tag: "omitempty,digits,len=10", message: "phone must be exactly 10 digits"},
	},
	"zipcode": {
		{tag: "omitempty,digits,len=6", message: "zipcode must be exactly 6 digits"},
	},
}

type Validator struct {
	validate *validator.Validate
}

func New() (*Validator, error) {
	validate := validator.New()

	err := RegisterValidators(validate)
	if err != nil {
		return nil, err
	}

	return &Validator{validate: validate}, nil
}

// Check runs every field through its rules & collects all failures.
// It returns an *apperr.ValidationError when at least one field is invalid.
func (v *Validator) Check(fields ...Field) error {
	errs := []string{}

	for _, field := range fields {
		for _, r := range fieldRules[field.Name] {
			if err := v.validate.Var(field.Value, r.tag); err != nil {
				errs = append(errs, r.message)
				break
			}
		}
	}

	if len(errs) > 0 {
		return apperr.NewValidationError(errs...)
	}

	return nil
}

func RegisterValidators(validate *validator.Validate) error {
	err := validate.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return false
		}

		for _, r := range value {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	})
	if err != nil {
		return err
	}

	// local@domain.tld, the built-in 'email' tag accepts addresses without a tld
	return validate.RegisterValidation("email_tld", func(fl validator.FieldLevel) bool {
		return emailShapeRegex.MatchString(fl.Field().String())
	})
}

// NormalizeEmail returns the canonical form an email is stored & compared in
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
