package httperr

import (
	"errors"
	"fmt"
)

// Kind is the failure class a caller can act on.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindConflict
	KindTransient
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindTransient:
		return "transient"
	default:
		return "unknown"
	}
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type BusinessError struct {
	Kind   Kind
	Code   string
	Fields []FieldError
	Cause  error
}

func (e BusinessError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Cause)
	}
	return e.Code
}

func (e BusinessError) Unwrap() error {
	return e.Cause
}

// ErrBusiness is a plain rule violation reported to the caller as bad input.
func ErrBusiness(code string) error {
	return BusinessError{Kind: KindValidation, Code: code}
}

func ErrValidation(code string, fields ...FieldError) error {
	return BusinessError{Kind: KindValidation, Code: code, Fields: fields}
}

func ErrNotFound(code string) error {
	return BusinessError{Kind: KindNotFound, Code: code}
}

func ErrConflict(code string) error {
	return BusinessError{Kind: KindConflict, Code: code}
}

func ErrTransient(code string, cause error) error {
	return BusinessError{Kind: KindTransient, Code: code, Cause: cause}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// KindOf reports the kind of the first BusinessError in err's chain.
func KindOf(err error) (Kind, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind, true
	}
	return 0, false
}
