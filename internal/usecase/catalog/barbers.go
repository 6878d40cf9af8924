package catalog

import (
	"context"
	"strings"

	"gorm.io/datatypes"

	"github.com/facuperezm/barberia-sub000/internal/audit"
	"github.com/facuperezm/barberia-sub000/internal/domain/schedule"
	"github.com/facuperezm/barberia-sub000/internal/httperr"
	"github.com/facuperezm/barberia-sub000/internal/models"
	"github.com/facuperezm/barberia-sub000/internal/validators"
)

// ======================================================
// LIST
// ======================================================

type ListBarbers struct {
	store Store
}

func NewListBarbers(store Store) *ListBarbers {
	return &ListBarbers{store: store}
}

func (uc *ListBarbers) Execute(ctx context.Context, onlyActive bool) ([]models.Barber, error) {
	out, err := uc.store.ListBarbers(ctx, onlyActive)
	if err != nil {
		return nil, storeErr(err, "barber_not_found")
	}
	return out, nil
}

// ======================================================
// CREATE
// ======================================================

type CreateBarberInput struct {
	Name  string
	Email string
	Phone string
	Week  *schedule.WeeklySchedule
	Actor string
}

type CreateBarber struct {
	store Store
	audit audit.Auditor
}

func NewCreateBarber(store Store, audit audit.Auditor) *CreateBarber {
	return &CreateBarber{store: store, audit: audit}
}

func (uc *CreateBarber) Execute(ctx context.Context, in CreateBarberInput) (*models.Barber, error) {
	var fields []httperr.FieldError

	name := strings.TrimSpace(in.Name)
	if name == "" {
		fields = append(fields, httperr.FieldError{Field: "name", Message: "requerido"})
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email != "" && !validators.IsEmail(email) {
		fields = append(fields, httperr.FieldError{Field: "email", Message: "email inválido"})
	}
	if len(fields) > 0 {
		return nil, httperr.ErrValidation("invalid_input", fields...)
	}

	var week schedule.WeeklySchedule
	if in.Week != nil {
		if err := in.Week.Validate(); err != nil {
			return nil, err
		}
		week = *in.Week
	}

	b := &models.Barber{
		Name:           name,
		Email:          email,
		Phone:          strings.TrimSpace(in.Phone),
		Active:         true,
		WeeklySchedule: datatypes.NewJSONType(week),
	}
	if err := uc.store.CreateBarber(ctx, b); err != nil {
		return nil, storeErr(err, "barber_not_found")
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    in.Actor,
		Action:   "barber_created",
		Entity:   "barber",
		EntityID: &b.ID,
	})
	return b, nil
}
