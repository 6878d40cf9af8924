package appointment

import (
	"context"

	"github.com/facuperezm/barberia-sub000/internal/models"
)

// Repository is the store used by the appointment use cases. Lookups return
// errors marked with errs.ErrNotFound when the row is missing.
type Repository interface {
	// -------- Catalog --------
	GetBarber(
		ctx context.Context,
		id uint,
	) (*models.Barber, error)

	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	// -------- Availability --------
	ListLiveAppointments(
		ctx context.Context,
		barberID uint,
		date string,
	) ([]models.Appointment, error)

	// -------- Appointment (state change) --------

	// ChangeAppointment loads the appointment under a row lock and calls apply
	// on it. When apply reports a change, the status columns are written in
	// the same transaction. Other columns are never overwritten.
	ChangeAppointment(
		ctx context.Context,
		id uint,
		apply func(ap *models.Appointment) (bool, error),
	) (*models.Appointment, bool, error)

	SetPaymentPreference(
		ctx context.Context,
		appointmentID uint,
		preferenceID string,
	) error

	// -------- Listing --------
	ListAppointmentsForPeriod(
		ctx context.Context,
		barberID uint,
		from string,
		to string,
	) ([]models.Appointment, error)

	// -------- Booking --------

	// WithinTx runs fn in one transaction. fn may be invoked again when the
	// store reports a retryable serialization failure.
	WithinTx(
		ctx context.Context,
		fn func(tx TxRepository) error,
	) error
}

// TxRepository is the view of the store inside a booking transaction.
type TxRepository interface {
	// LockBarber loads the barber and holds a write lock on it until the
	// transaction ends, serializing bookings for that barber.
	LockBarber(
		ctx context.Context,
		id uint,
	) (*models.Barber, error)

	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	ListOverridesForDate(
		ctx context.Context,
		barberID uint,
		date string,
	) ([]models.ScheduleOverride, error)

	ListLiveAppointments(
		ctx context.Context,
		barberID uint,
		date string,
	) ([]models.Appointment, error)

	// CreateAppointment returns an error marked with errs.ErrConflict when a
	// storage constraint rejects the row.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error
}
