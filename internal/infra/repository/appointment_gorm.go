package repository

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/facuperezm/barberia-sub000/internal/domain/appointment"
	"github.com/facuperezm/barberia-sub000/internal/errs"
	"github.com/facuperezm/barberia-sub000/internal/models"
	ucschedule "github.com/facuperezm/barberia-sub000/internal/usecase/schedule"
)

const maxTxRetries = 3

type AppointmentGormRepository struct {
	queries
	log *zap.Logger
}

func NewAppointmentGormRepository(db *gorm.DB, log *zap.Logger) *AppointmentGormRepository {
	return &AppointmentGormRepository{queries: queries{db: db}, log: log}
}

// queries are shared by the repository and its transaction view.
type queries struct {
	db *gorm.DB
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (q queries) GetBarber(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var b models.Barber
	if err := q.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, classify(err, "get barber")
	}
	return &b, nil
}

func (q queries) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var s models.Service
	if err := q.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, classify(err, "get service")
	}
	return &s, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (q queries) ListOverridesForDate(
	ctx context.Context,
	barberID uint,
	date string,
) ([]models.ScheduleOverride, error) {

	var rows []models.ScheduleOverride
	if err := q.db.WithContext(ctx).
		Where("barber_id = ? AND date = ?", barberID, date).
		Order("id DESC").
		Find(&rows).Error; err != nil {
		return nil, classify(err, "list overrides")
	}
	return rows, nil
}

func (q queries) ListLiveAppointments(
	ctx context.Context,
	barberID uint,
	date string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := q.db.WithContext(ctx).
		Select("id", "barber_id", "date", "time", "duration_minutes", "status").
		Where(
			"barber_id = ? AND date = ? AND status IN ?",
			barberID, date, domain.LiveStatuses,
		).
		Order("time ASC").
		Find(&apps).Error; err != nil {
		return nil, classify(err, "list live appointments")
	}
	return apps, nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) ChangeAppointment(
	ctx context.Context,
	id uint,
	apply func(ap *models.Appointment) (bool, error),
) (*models.Appointment, bool, error) {

	var (
		ap      models.Appointment
		changed bool
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&ap, id).Error; err != nil {
			return classify(err, "lock appointment")
		}

		var err error
		changed, err = apply(&ap)
		if err != nil || !changed {
			return err
		}

		return classify(
			tx.Model(&ap).
				Select("status", "cancelled_at", "completed_at", "updated_at").
				Updates(&ap).Error,
			"update appointment status",
		)
	})
	if err != nil {
		return nil, false, err
	}

	return &ap, changed, nil
}

func (r *AppointmentGormRepository) SetPaymentPreference(
	ctx context.Context,
	appointmentID uint,
	preferenceID string,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", appointmentID).
		Update("payment_preference_id", preferenceID)
	if res.Error != nil {
		return classify(res.Error, "set payment preference")
	}
	if res.RowsAffected == 0 {
		return errs.Mark(errs.New("appointment not found"), errs.ErrNotFound)
	}
	return nil
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	barberID uint,
	from string,
	to string,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Service").
		Where(
			"barber_id = ? AND date >= ? AND date <= ?",
			barberID,
			from,
			to,
		).
		Order("date ASC, time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, classify(err, "list appointments")
	}

	return apps, nil
}

// --------------------------------------------------
// Booking transaction
// --------------------------------------------------

// WithinTx runs fn in a transaction and retries serialization failures and
// deadlocks with a linear backoff.
func (r *AppointmentGormRepository) WithinTx(
	ctx context.Context,
	fn func(tx domain.TxRepository) error,
) error {

	var err error
	for attempt := 0; attempt <= maxTxRetries; attempt++ {
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(appointmentTx{queries: queries{db: tx}})
		})
		if err == nil || !isRetryable(err) {
			return err
		}

		if attempt == maxTxRetries {
			break
		}

		wait := time.Duration(attempt+1) * 50 * time.Millisecond
		r.log.Warn("retrying booking transaction",
			zap.Int("attempt", attempt+1),
			zap.Duration("wait", wait),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return errs.Mark(ctx.Err(), errs.ErrTransient)
		case <-time.After(wait):
		}
	}

	r.log.Error("booking transaction failed after retries", zap.Error(err))
	return errs.Mark(err, errs.ErrTransient)
}

type appointmentTx struct {
	queries
}

func (t appointmentTx) LockBarber(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var b models.Barber
	if err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&b, id).Error; err != nil {
		return nil, classify(err, "lock barber")
	}
	return &b, nil
}

func (t appointmentTx) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return classify(t.db.WithContext(ctx).Create(ap).Error, "create appointment")
}

// Compile-time check
var (
	_ domain.Repository   = (*AppointmentGormRepository)(nil)
	_ domain.TxRepository = appointmentTx{}
	_ ucschedule.Reader   = (*AppointmentGormRepository)(nil)
)
