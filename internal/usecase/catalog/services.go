package catalog

import (
	"context"
	"strings"

	"github.com/facuperezm/barberia-sub000/internal/audit"
	"github.com/facuperezm/barberia-sub000/internal/httperr"
	"github.com/facuperezm/barberia-sub000/internal/models"
)

// MinServiceMinutes is the shortest bookable service.
const MinServiceMinutes = 5

func checkService(name string, duration int, price int64) []httperr.FieldError {
	var fields []httperr.FieldError
	if name == "" {
		fields = append(fields, httperr.FieldError{Field: "name", Message: "requerido"})
	}
	if duration < MinServiceMinutes {
		fields = append(fields, httperr.FieldError{Field: "duration_minutes", Message: "mínimo 5 minutos"})
	}
	if price < 0 {
		fields = append(fields, httperr.FieldError{Field: "price_cents", Message: "no puede ser negativo"})
	}
	return fields
}

// ======================================================
// LIST
// ======================================================

type ListServices struct {
	store Store
}

func NewListServices(store Store) *ListServices {
	return &ListServices{store: store}
}

func (uc *ListServices) Execute(ctx context.Context, onlyActive bool) ([]models.Service, error) {
	out, err := uc.store.ListServices(ctx, onlyActive)
	if err != nil {
		return nil, storeErr(err, "service_not_found")
	}
	return out, nil
}

// ======================================================
// CREATE
// ======================================================

type CreateServiceInput struct {
	Name            string
	Description     string
	DurationMinutes int
	PriceCents      int64
	Actor           string
}

type CreateService struct {
	store Store
	audit audit.Auditor
}

func NewCreateService(store Store, audit audit.Auditor) *CreateService {
	return &CreateService{store: store, audit: audit}
}

func (uc *CreateService) Execute(ctx context.Context, in CreateServiceInput) (*models.Service, error) {
	name := strings.TrimSpace(in.Name)
	if fields := checkService(name, in.DurationMinutes, in.PriceCents); len(fields) > 0 {
		return nil, httperr.ErrValidation("invalid_input", fields...)
	}

	s := &models.Service{
		Name:            name,
		Description:     strings.TrimSpace(in.Description),
		DurationMinutes: in.DurationMinutes,
		PriceCents:      in.PriceCents,
		Active:          true,
	}
	if err := uc.store.CreateService(ctx, s); err != nil {
		return nil, storeErr(err, "service_not_found")
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    in.Actor,
		Action:   "service_created",
		Entity:   "service",
		EntityID: &s.ID,
	})
	return s, nil
}

// ======================================================
// UPDATE
// ======================================================

// UpdateServiceInput carries only the fields to change.
type UpdateServiceInput struct {
	ID              uint
	Name            *string
	Description     *string
	DurationMinutes *int
	PriceCents      *int64
	Active          *bool
	Actor           string
}

type UpdateService struct {
	store Store
	audit audit.Auditor
}

func NewUpdateService(store Store, audit audit.Auditor) *UpdateService {
	return &UpdateService{store: store, audit: audit}
}

// Execute changes catalog data only. Existing appointments keep the duration
// and price they were booked with.
func (uc *UpdateService) Execute(ctx context.Context, in UpdateServiceInput) (*models.Service, error) {
	s, err := uc.store.GetService(ctx, in.ID)
	if err != nil {
		return nil, storeErr(err, "service_not_found")
	}

	if in.Name != nil {
		s.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		s.Description = strings.TrimSpace(*in.Description)
	}
	if in.DurationMinutes != nil {
		s.DurationMinutes = *in.DurationMinutes
	}
	if in.PriceCents != nil {
		s.PriceCents = *in.PriceCents
	}
	if in.Active != nil {
		s.Active = *in.Active
	}

	if fields := checkService(s.Name, s.DurationMinutes, s.PriceCents); len(fields) > 0 {
		return nil, httperr.ErrValidation("invalid_input", fields...)
	}

	if err := uc.store.SaveService(ctx, s); err != nil {
		return nil, storeErr(err, "service_not_found")
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    in.Actor,
		Action:   "service_updated",
		Entity:   "service",
		EntityID: &s.ID,
	})
	return s, nil
}
