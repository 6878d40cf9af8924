package validators

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/facuperezm/barberia-sub000/internal/httperr"
)

var validate = validator.New()

type Contact struct {
	Name  string `validate:"required,max=100"`
	Email string `validate:"required,email,max=100"`
	Phone string `validate:"required,min=6,max=30,phone_chars"`
}

func init() {
	_ = validate.RegisterValidation("phone_chars", func(fl validator.FieldLevel) bool {
		return strings.Trim(fl.Field().String(), "0123456789+-() ") == ""
	})
}

// Normalize trims surrounding whitespace and lowercases the email.
func (c Contact) Normalize() Contact {
	return Contact{
		Name:  strings.TrimSpace(c.Name),
		Email: strings.ToLower(strings.TrimSpace(c.Email)),
		Phone: strings.TrimSpace(c.Phone),
	}
}

var contactFields = map[string]string{
	"Name":  "customer_name",
	"Email": "customer_email",
	"Phone": "customer_phone",
}

var contactMessages = map[string]string{
	"required":    "es obligatorio",
	"email":       "formato de email inválido",
	"max":         "es demasiado largo",
	"min":         "es demasiado corto",
	"phone_chars": "solo números, espacios y + - ( )",
}

// ValidateContact returns one field error per invalid field. checkDomain
// also resolves the email domain over DNS.
func ValidateContact(c Contact, checkDomain bool) []httperr.FieldError {
	var out []httperr.FieldError

	if err := validate.Struct(c); err != nil {
		var ves validator.ValidationErrors
		if !errors.As(err, &ves) {
			return []httperr.FieldError{{Field: "customer", Message: err.Error()}}
		}
		for _, fe := range ves {
			msg, ok := contactMessages[fe.Tag()]
			if !ok {
				msg = "valor inválido"
			}
			out = append(out, httperr.FieldError{Field: contactFields[fe.Field()], Message: msg})
		}
		return out
	}

	if checkDomain && !IsEmailDomainValid(c.Email) {
		out = append(out, httperr.FieldError{Field: "customer_email", Message: "el dominio no recibe correo"})
	}
	return out
}

// IsEmail reports whether s is a syntactically valid address.
func IsEmail(s string) bool {
	return validate.Var(s, "email") == nil
}
