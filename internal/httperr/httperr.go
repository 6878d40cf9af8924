package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string       `json:"error_code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// Write aborts the chain so middleware can use it too.
func Write(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func TooManyRequests(c *gin.Context, code, message string) {
	Write(c, http.StatusTooManyRequests, code, message)
}

// ======================================================
// Business error rendering
// ======================================================

var messages = map[string]string{
	"invalid_input":         "Datos inválidos.",
	"invalid_date":          "Fecha inválida.",
	"invalid_time":          "Horario inválido.",
	"invalid_status":        "Estado inválido.",
	"invalid_state":         "El turno no admite ese cambio de estado.",
	"invalid_schedule":      "Horarios inválidos.",
	"invalid_photo":         "La imagen no pudo procesarse.",
	"too_soon":              "El horario elegido está demasiado próximo.",
	"outside_working_hours": "El barbero no atiende en ese horario.",
	"barber_not_found":      "Barbero no encontrado.",
	"service_not_found":     "Servicio no encontrado.",
	"appointment_not_found": "Turno no encontrado.",
	"override_not_found":    "Excepción de horario no encontrada.",
	"time_conflict":         "El horario ya no está disponible. Elegí otro.",
	"store_unavailable":     "Servicio temporalmente no disponible. Intentá de nuevo.",
	"media_unavailable":     "El almacenamiento de imágenes no está configurado.",
	"payments_disabled":     "Los pagos en línea no están habilitados.",
	"payment_lookup_failed": "No se pudo consultar el pago. Reintentá más tarde.",
}

func MessageFor(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return "Error inesperado."
}

func statusFor(k Kind) int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindTransient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Respond renders err. Errors outside the business taxonomy become a 500
// without leaking their text.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	if !errors.As(err, &be) {
		_ = c.Error(err)
		Internal(c, "internal_error", MessageFor("internal_error"))
		return
	}

	if be.Kind == KindTransient {
		_ = c.Error(err)
		c.Header("Retry-After", "1")
	}

	c.AbortWithStatusJSON(statusFor(be.Kind), HTTPError{
		Code:    be.Code,
		Message: MessageFor(be.Code),
		Errors:  be.Fields,
	})
}
