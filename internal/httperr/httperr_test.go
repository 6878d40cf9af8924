package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, err error) (*httptest.ResponseRecorder, HTTPError) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Respond(c, err)

	var body HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestRespondMapsKinds(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", ErrNotFound("barber_not_found"), http.StatusNotFound, "barber_not_found"},
		{"conflict", ErrConflict("time_conflict"), http.StatusConflict, "time_conflict"},
		{"validation", ErrBusiness("invalid_state"), http.StatusBadRequest, "invalid_state"},
		{"transient", ErrTransient("store_unavailable", errors.New("dial tcp")), http.StatusServiceUnavailable, "store_unavailable"},
		{"wrapped", fmt.Errorf("booking: %w", ErrConflict("time_conflict")), http.StatusConflict, "time_conflict"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := render(t, tt.err)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestRespondIncludesFieldErrors(t *testing.T) {
	err := ErrValidation("invalid_input",
		FieldError{Field: "customer_email", Message: "formato inválido"},
		FieldError{Field: "time", Message: "usar HH:mm"},
	)

	w, body := render(t, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.Len(t, body.Errors, 2)
	assert.Equal(t, "customer_email", body.Errors[0].Field)
}

func TestTransientSetsRetryAfter(t *testing.T) {
	w, _ := render(t, ErrTransient("store_unavailable", nil))
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}

func TestKindOf(t *testing.T) {
	k, ok := KindOf(fmt.Errorf("x: %w", ErrNotFound("service_not_found")))
	assert.True(t, ok)
	assert.Equal(t, KindNotFound, k)

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)

	assert.True(t, IsBusiness(ErrConflict("time_conflict"), "time_conflict"))
}
