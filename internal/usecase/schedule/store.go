package schedule

import (
	"context"

	domain "github.com/facuperezm/barberia-sub000/internal/domain/schedule"
	"github.com/facuperezm/barberia-sub000/internal/errs"
	"github.com/facuperezm/barberia-sub000/internal/httperr"
	"github.com/facuperezm/barberia-sub000/internal/models"
)

// Reader is the part of the store the resolver needs.
type Reader interface {
	GetBarber(ctx context.Context, id uint) (*models.Barber, error)
	ListOverridesForDate(ctx context.Context, barberID uint, date string) ([]models.ScheduleOverride, error)
}

type Store interface {
	Reader

	// SaveOverride inserts o, or replaces the existing override for the same
	// barber and date, and fills in o.ID.
	SaveOverride(ctx context.Context, o *models.ScheduleOverride) error
	GetOverride(ctx context.Context, id uint) (*models.ScheduleOverride, error)
	ListOverrides(ctx context.Context, barberID uint, from, to string) ([]models.ScheduleOverride, error)
	DeleteOverride(ctx context.Context, id uint) error

	UpdateWeeklySchedule(ctx context.Context, barberID uint, week domain.WeeklySchedule) error
}

// storeErr turns a store failure into the caller-facing taxonomy.
func storeErr(err error, notFoundCode string) error {
	if errs.Is(err, errs.ErrNotFound) {
		return httperr.ErrNotFound(notFoundCode)
	}
	return httperr.ErrTransient("store_unavailable", err)
}

func activeBarber(ctx context.Context, r Reader, id uint) (*models.Barber, error) {
	b, err := r.GetBarber(ctx, id)
	if err != nil {
		return nil, storeErr(err, "barber_not_found")
	}
	if !b.Active {
		return nil, httperr.ErrNotFound("barber_not_found")
	}
	return b, nil
}
