package handlers

import (
	"context"
	"io"

	"github.com/facuperezm/barberia-sub000/internal/audit"
	"github.com/facuperezm/barberia-sub000/internal/domain/schedule"
	"github.com/facuperezm/barberia-sub000/internal/dto"
	"github.com/facuperezm/barberia-sub000/internal/models"
	ucappointment "github.com/facuperezm/barberia-sub000/internal/usecase/appointment"
	uccatalog "github.com/facuperezm/barberia-sub000/internal/usecase/catalog"
	ucschedule "github.com/facuperezm/barberia-sub000/internal/usecase/schedule"
)

// The handlers depend on these narrow views of the use cases.

type AvailabilityQuery interface {
	Execute(ctx context.Context, in ucappointment.AvailabilityInput) (*ucappointment.Availability, error)
}

type BookingCreator interface {
	Execute(ctx context.Context, in ucappointment.CreateBookingInput) (*ucappointment.Booking, error)
}

type StatusUpdater interface {
	Execute(ctx context.Context, in ucappointment.UpdateStatusInput) (*models.Appointment, error)
}

type PaymentApplier interface {
	Execute(ctx context.Context, paymentID string) (*models.Appointment, error)
}

type AppointmentsByDate interface {
	Execute(ctx context.Context, barberID uint, date string) ([]dto.AppointmentListDTO, error)
}

type AppointmentsByMonth interface {
	Execute(ctx context.Context, barberID uint, year, month int) ([]dto.AppointmentListDTO, error)
}

type BarberLister interface {
	Execute(ctx context.Context, onlyActive bool) ([]models.Barber, error)
}

type BarberCreator interface {
	Execute(ctx context.Context, in uccatalog.CreateBarberInput) (*models.Barber, error)
}

type PhotoUploader interface {
	Execute(ctx context.Context, barberID uint, photo io.Reader, actor string) (string, error)
}

type ServiceLister interface {
	Execute(ctx context.Context, onlyActive bool) ([]models.Service, error)
}

type ServiceCreator interface {
	Execute(ctx context.Context, in uccatalog.CreateServiceInput) (*models.Service, error)
}

type ServiceUpdater interface {
	Execute(ctx context.Context, in uccatalog.UpdateServiceInput) (*models.Service, error)
}

type OverrideCreator interface {
	Execute(ctx context.Context, in ucschedule.CreateOverrideInput) (*models.ScheduleOverride, error)
}

type OverrideLister interface {
	Execute(ctx context.Context, barberID uint, from, to string) ([]models.ScheduleOverride, error)
}

type OverrideDeleter interface {
	Execute(ctx context.Context, id uint, actor string) error
}

type WeeklyScheduleUpdater interface {
	Execute(ctx context.Context, barberID uint, week schedule.WeeklySchedule, actor string) (schedule.WeeklySchedule, error)
}

type AuditLister interface {
	List(ctx context.Context, q audit.Query) ([]models.AuditLog, int64, error)
}

var (
	_ AvailabilityQuery     = (*ucappointment.GetAvailability)(nil)
	_ BookingCreator        = (*ucappointment.CreateBooking)(nil)
	_ StatusUpdater         = (*ucappointment.UpdateStatus)(nil)
	_ PaymentApplier        = (*ucappointment.ApplyPayment)(nil)
	_ AppointmentsByDate    = (*ucappointment.ListAppointmentsByDate)(nil)
	_ AppointmentsByMonth   = (*ucappointment.ListAppointmentsByMonth)(nil)
	_ BarberLister          = (*uccatalog.ListBarbers)(nil)
	_ BarberCreator         = (*uccatalog.CreateBarber)(nil)
	_ PhotoUploader         = (*uccatalog.UploadBarberPhoto)(nil)
	_ ServiceLister         = (*uccatalog.ListServices)(nil)
	_ ServiceCreator        = (*uccatalog.CreateService)(nil)
	_ ServiceUpdater        = (*uccatalog.UpdateService)(nil)
	_ OverrideCreator       = (*ucschedule.CreateOverride)(nil)
	_ OverrideLister        = (*ucschedule.ListOverrides)(nil)
	_ OverrideDeleter       = (*ucschedule.DeleteOverride)(nil)
	_ WeeklyScheduleUpdater = (*ucschedule.UpdateWeeklySchedule)(nil)
	_ AuditLister           = (*audit.Logger)(nil)
)
