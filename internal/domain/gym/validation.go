package gym

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator"
)

// CreateAdminInput represents input for registering an admin
type CreateAdminInput struct {
	Name     string `validate:"required,excludesall=0x2C,singleline"`
	Email    string `validate:"required,email,excludesall=0x2C,singleline"`
	Password string `validate:"required"`
}

// CreateMemberInput represents input for registering a member.
// JoinDate is optional and defaults to today; Tier is free text (see ParseTier).
type CreateMemberInput struct {
	Name     string `validate:"required,excludesall=0x2C,singleline"`
	Email    string `validate:"required,email,excludesall=0x2C,singleline"`
	Password string `validate:"required"`
	JoinDate string
	Tier     string
}

// UpdateMemberInput represents input for changing a member's profile
type UpdateMemberInput struct {
	ID    int    `validate:"gt=0"`
	Name  string `validate:"required,excludesall=0x2C,singleline"`
	Email string `validate:"required,email,excludesall=0x2C,singleline"`
}

// CreateTrainerInput represents input for registering a trainer
type CreateTrainerInput struct {
	Name      string `validate:"required,excludesall=0x2C,singleline"`
	Email     string `validate:"required,email,excludesall=0x2C,singleline"`
	Password  string `validate:"required"`
	Specialty string `validate:"required,excludesall=0x2C,singleline"`
}

var validate = newValidator()

// singleline rejects values that would split a stored record across lines.
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("singleline", func(fl validator.FieldLevel) bool {
		return !strings.ContainsAny(fl.Field().String(), "\r\n")
	})
	return v
}

func (in *CreateAdminInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
}

func (in *CreateMemberInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.JoinDate = strings.TrimSpace(in.JoinDate)
}

func (in *UpdateMemberInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
}

func (in *CreateTrainerInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Specialty = strings.TrimSpace(in.Specialty)
}

func validateInput(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		problems = append(problems, describeFieldError(fieldErr))
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(problems, "; "))
}

func describeFieldError(fieldErr validator.FieldError) string {
	field := strings.ToLower(fieldErr.Field())
	switch fieldErr.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "excludesall":
		return field + " must not contain commas"
	case "singleline":
		return field + " must not contain line breaks"
	case "gt":
		return field + " must be positive"
	default:
		return field + " is invalid"
	}
}

func validateSpecialty(specialty string) error {
	switch {
	case specialty == "":
		return fmt.Errorf("%w: specialty is required", ErrValidation)
	case strings.Contains(specialty, ","):
		return fmt.Errorf("%w: specialty must not contain commas", ErrValidation)
	case strings.ContainsAny(specialty, "\r\n"):
		return fmt.Errorf("%w: specialty must not contain line breaks", ErrValidation)
	}
	return nil
}

func parseJoinDate(value string, now time.Time) (string, error) {
	if value == "" {
		return now.Format(DateLayout), nil
	}
	parsed, err := time.Parse(DateLayout, value)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidJoinDate, value)
	}
	return parsed.Format(DateLayout), nil
}
