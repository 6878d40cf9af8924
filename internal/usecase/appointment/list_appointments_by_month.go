package appointment

import (
	"context"
	"time"

	domain "github.com/facuperezm/barberia-sub000/internal/domain/appointment"
	"github.com/facuperezm/barberia-sub000/internal/domain/schedule"
	"github.com/facuperezm/barberia-sub000/internal/dto"
	"github.com/facuperezm/barberia-sub000/internal/httperr"
)

type ListAppointmentsByMonth struct {
	repo domain.Repository
}

func NewListAppointmentsByMonth(
	repo domain.Repository,
) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{
		repo: repo,
	}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	barberID uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	if year < 2000 || year > 2100 || month < 1 || month > 12 {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	first := schedule.Date{Year: year, Month: time.Month(month), Day: 1}
	last := schedule.DateOf(time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC))

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		barberID,
		first.String(),
		last.String(),
	)
	if err != nil {
		return nil, storeErr(err, "barber_not_found")
	}

	return dto.AppointmentList(appointments), nil
}
