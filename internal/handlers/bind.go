package handlers

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/facuperezm/barberia-sub000/internal/httperr"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

var bindingMessages = map[string]string{
	"required": "es obligatorio",
	"min":      "es demasiado corto o chico",
	"max":      "es demasiado largo o grande",
	"gte":      "es demasiado chico",
	"email":    "formato de email inválido",
}

// bindJSON decodes the body and renders a 400 with per-field errors on
// failure.
func bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		httperr.Respond(c, httperr.ErrBusiness("invalid_input"))
		return false
	}

	fields := make([]httperr.FieldError, 0, len(ves))
	for _, fe := range ves {
		msg, ok := bindingMessages[fe.Tag()]
		if !ok {
			msg = "valor inválido"
		}
		fields = append(fields, httperr.FieldError{Field: fe.Field(), Message: msg})
	}
	httperr.Respond(c, httperr.ErrValidation("invalid_input", fields...))
	return false
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.Respond(c, httperr.ErrValidation("invalid_input",
			httperr.FieldError{Field: name, Message: "id inválido"}))
		return 0, false
	}
	return uint(id), true
}

// queryID parses a required positive id from the query string.
func queryID(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Query(name))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		msg := "id inválido"
		if raw == "" {
			msg = "es obligatorio"
		}
		httperr.Respond(c, httperr.ErrValidation("invalid_input",
			httperr.FieldError{Field: name, Message: msg}))
		return 0, false
	}
	return uint(id), true
}

func queryBool(c *gin.Context, name string, def bool) bool {
	v, err := strconv.ParseBool(c.Query(name))
	if err != nil {
		return def
	}
	return v
}
