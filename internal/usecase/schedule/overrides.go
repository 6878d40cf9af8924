package schedule

import (
	"context"
	"strings"

	"gorm.io/datatypes"

	"github.com/facuperezm/barberia-sub000/internal/audit"
	domain "github.com/facuperezm/barberia-sub000/internal/domain/schedule"
	"github.com/facuperezm/barberia-sub000/internal/httperr"
	"github.com/facuperezm/barberia-sub000/internal/models"
)

// ======================================================
// CREATE
// ======================================================

type CreateOverrideInput struct {
	BarberID       uint
	Date           string
	IsWorkingDay   bool
	AvailableSlots []domain.TimeRange
	Reason         string
	Actor          string
}

type CreateOverride struct {
	store Store
	audit audit.Auditor
}

func NewCreateOverride(
	store Store,
	audit audit.Auditor,
) *CreateOverride {
	return &CreateOverride{
		store: store,
		audit: audit,
	}
}

// Execute stores the override for the barber and date. A second call for the
// same date replaces the first one.
func (uc *CreateOverride) Execute(
	ctx context.Context,
	in CreateOverrideInput,
) (*models.ScheduleOverride, error) {

	var fields []httperr.FieldError

	date, err := domain.ParseDate(in.Date)
	if err != nil {
		fields = append(fields, httperr.FieldError{Field: "date", Message: "usar YYYY-MM-DD"})
	}

	slots := []domain.TimeRange{}
	if in.IsWorkingDay {
		if len(in.AvailableSlots) == 0 {
			fields = append(fields, httperr.FieldError{
				Field:   "available_slots",
				Message: "un día laborable necesita al menos un rango",
			})
		} else {
			ivs, fe := domain.ValidateRanges("available_slots", in.AvailableSlots)
			fields = append(fields, fe...)
			for _, iv := range ivs {
				slots = append(slots, iv.Range())
			}
		}
	}

	if len(fields) > 0 {
		return nil, httperr.ErrValidation("invalid_input", fields...)
	}

	if _, err := activeBarber(ctx, uc.store, in.BarberID); err != nil {
		return nil, err
	}

	o := &models.ScheduleOverride{
		BarberID:       in.BarberID,
		Date:           date.String(),
		IsWorkingDay:   in.IsWorkingDay,
		AvailableSlots: datatypes.NewJSONType(slots),
		Reason:         strings.TrimSpace(in.Reason),
		CreatedBy:      in.Actor,
	}

	if err := uc.store.SaveOverride(ctx, o); err != nil {
		return nil, storeErr(err, "barber_not_found")
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    in.Actor,
		Action:   "override_created",
		Entity:   "schedule_override",
		EntityID: &o.ID,
		Metadata: map[string]any{
			"barber_id":      o.BarberID,
			"date":           o.Date,
			"is_working_day": o.IsWorkingDay,
		},
	})

	return o, nil
}

// ======================================================
// LIST
// ======================================================

type ListOverrides struct {
	store Store
}

func NewListOverrides(store Store) *ListOverrides {
	return &ListOverrides{store: store}
}

// Execute lists a barber's overrides between from and to inclusive. Either
// bound may be empty.
func (uc *ListOverrides) Execute(
	ctx context.Context,
	barberID uint,
	from string,
	to string,
) ([]models.ScheduleOverride, error) {

	var fields []httperr.FieldError
	norm := func(field, v string) string {
		if v == "" {
			return ""
		}
		d, err := domain.ParseDate(v)
		if err != nil {
			fields = append(fields, httperr.FieldError{Field: field, Message: "usar YYYY-MM-DD"})
			return ""
		}
		return d.String()
	}
	from, to = norm("from", from), norm("to", to)
	if len(fields) > 0 {
		return nil, httperr.ErrValidation("invalid_input", fields...)
	}

	if _, err := activeBarber(ctx, uc.store, barberID); err != nil {
		return nil, err
	}

	rows, err := uc.store.ListOverrides(ctx, barberID, from, to)
	if err != nil {
		return nil, storeErr(err, "barber_not_found")
	}
	return rows, nil
}

// ======================================================
// DELETE
// ======================================================

type DeleteOverride struct {
	store Store
	audit audit.Auditor
}

func NewDeleteOverride(
	store Store,
	audit audit.Auditor,
) *DeleteOverride {
	return &DeleteOverride{
		store: store,
		audit: audit,
	}
}

func (uc *DeleteOverride) Execute(
	ctx context.Context,
	id uint,
	actor string,
) error {

	o, err := uc.store.GetOverride(ctx, id)
	if err != nil {
		return storeErr(err, "override_not_found")
	}

	if err := uc.store.DeleteOverride(ctx, o.ID); err != nil {
		return storeErr(err, "override_not_found")
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    actor,
		Action:   "override_deleted",
		Entity:   "schedule_override",
		EntityID: &o.ID,
		Metadata: map[string]any{
			"barber_id": o.BarberID,
			"date":      o.Date,
		},
	})
	return nil
}
