package errs

import (
	cr "github.com/cockroachdb/errors"
)

// Storage-level sentinels. Repositories mark driver errors with these so the
// use cases can classify failures without importing gorm or pgx.
var (
	ErrNotFound  = cr.New("record not found")
	ErrConflict  = cr.New("unique constraint violated")
	ErrTransient = cr.New("transient storage failure")
)

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return cr.Wrapf(err, format, args...)
}

func New(msg string) error {
	return cr.New(msg)
}

func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

func Is(err, reference error) bool {
	return cr.Is(err, reference)
}

func As(err error, target any) bool {
	return cr.As(err, target)
}
