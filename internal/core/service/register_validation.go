package service

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/go-playground/validator/v10"

	"github.com/99minutos/postboard/internal/core/domain"
	"github.com/99minutos/postboard/internal/core/ports"
)

var validate = newValidate()

// newValidate registers utf16min, a minimum length counted in UTF-16 code
// units, so characters outside the BMP count twice as browsers count them.
func newValidate() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("utf16min", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return utf16Len(fl.Field().String()) >= n
	})
	return v
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// registerForm carries the registration rules. Field order is the order in
// which problems are reported; only the first one is returned.
type registerForm struct {
	Username string `validate:"utf16min=3,excludes=@"`
	Email    string `validate:"contains=@"`
	Password string `validate:"utf16min=3"`
}

const minPasswordLength = "utf16min=3"

// validateRegister returns the first problem with in, or nil.
func validateRegister(in ports.RegisterInput) *domain.FieldError {
	err := validate.Struct(registerForm{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
	})
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		fe := domain.NewFieldError("username", err.Error())
		return &fe
	}

	fe := domain.NewFieldError(strings.ToLower(ve[0].Field()), ruleMessage(ve[0]))
	return &fe
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "utf16min":
		return "min length " + fe.Param()
	case "excludes":
		return "cannot include " + fe.Param()
	case "contains":
		return "invalid email"
	default:
		return "invalid value"
	}
}

// validPassword reports whether a new password satisfies the length rule.
func validPassword(pw string) bool {
	return validate.Var(pw, minPasswordLength) == nil
}
