package appointment

import (
	"context"
	"time"

	domain "github.com/facuperezm/barberia-sub000/internal/domain/appointment"
	"github.com/facuperezm/barberia-sub000/internal/domain/schedule"
	"github.com/facuperezm/barberia-sub000/internal/errs"
	"github.com/facuperezm/barberia-sub000/internal/httperr"
	"github.com/facuperezm/barberia-sub000/internal/models"
	"github.com/facuperezm/barberia-sub000/internal/notify"
)

// Policy holds the shop-wide booking rules.
type Policy struct {
	Location   *time.Location
	MinAdvance time.Duration
	// CheckEmailDomain resolves the customer's email domain before booking.
	CheckEmailDomain bool
	// Fallback is used for working-day overrides stored without slots.
	Fallback schedule.Interval
}

// earliest is the first instant a slot may start at.
func (p Policy) earliest(now time.Time) time.Time {
	return now.In(p.Location).Add(p.MinAdvance)
}

type ScheduleResolver interface {
	Execute(ctx context.Context, barberID uint, date schedule.Date) (schedule.Resolution, error)
}

type Notifier interface {
	Notify(ev notify.Event)
}

// PaymentGateway creates checkout preferences and reports payment outcomes.
type PaymentGateway interface {
	CreatePreference(ctx context.Context, in domain.PreferenceInput) (domain.Preference, error)
	PaymentOutcome(ctx context.Context, paymentID string) (domain.PaymentOutcome, error)
}

func storeErr(err error, notFoundCode string) error {
	if _, ok := httperr.KindOf(err); ok {
		return err
	}
	if errs.Is(err, errs.ErrNotFound) {
		return httperr.ErrNotFound(notFoundCode)
	}
	return httperr.ErrTransient("store_unavailable", err)
}

func activeService(svc *models.Service) error {
	if !svc.Active || svc.DurationMinutes <= 0 {
		return httperr.ErrNotFound("service_not_found")
	}
	return nil
}

func event(kind notify.Kind, ap *models.Appointment) notify.Event {
	return notify.Event{
		Kind:          kind,
		AppointmentID: ap.ID,
		BarberID:      ap.BarberID,
		CustomerName:  ap.CustomerName,
		CustomerEmail: ap.CustomerEmail,
		Date:          ap.Date,
		Time:          ap.Time,
		Status:        ap.Status,
	}
}
