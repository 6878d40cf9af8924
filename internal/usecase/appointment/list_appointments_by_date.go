package appointment

import (
	"context"

	domain "github.com/facuperezm/barberia-sub000/internal/domain/appointment"
	"github.com/facuperezm/barberia-sub000/internal/domain/schedule"
	"github.com/facuperezm/barberia-sub000/internal/dto"
	"github.com/facuperezm/barberia-sub000/internal/httperr"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	barberID uint,
	date string,
) ([]dto.AppointmentListDTO, error) {

	d, err := schedule.ParseDate(date)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date", httperr.FieldError{Field: "date", Message: "usar YYYY-MM-DD"})
	}

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		barberID,
		d.String(),
		d.String(),
	)
	if err != nil {
		return nil, storeErr(err, "barber_not_found")
	}

	return dto.AppointmentList(appointments), nil
}
