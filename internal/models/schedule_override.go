package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/facuperezm/barberia-sub000/internal/domain/schedule"
)

// ScheduleOverride is a per-date exception to a barber's weekly schedule.
// There is at most one per barber and date.
type ScheduleOverride struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint   `gorm:"not null;uniqueIndex:ux_override_barber_date" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Date     string `gorm:"size:10;not null;uniqueIndex:ux_override_barber_date" json:"date"`

	IsWorkingDay   bool                                      `gorm:"not null" json:"is_working_day"`
	AvailableSlots datatypes.JSONType[[]schedule.TimeRange] `gorm:"type:jsonb;not null;default:'[]'" json:"available_slots"`
	Reason         string                                    `gorm:"size:255" json:"reason"`

	CreatedBy string    `gorm:"size:100" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func (o ScheduleOverride) Domain() schedule.Override {
	return schedule.Override{
		ID:           o.ID,
		IsWorkingDay: o.IsWorkingDay,
		Slots:        o.AvailableSlots.Data(),
	}
}
