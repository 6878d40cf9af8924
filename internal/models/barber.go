package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/facuperezm/barberia-sub000/internal/domain/schedule"
)

type Barber struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name     string `gorm:"size:100;not null" json:"name"`
	Email    string `gorm:"size:100" json:"email"`
	Phone    string `gorm:"size:20" json:"phone"`
	PhotoURL string `gorm:"size:500" json:"photo_url"`
	Active   bool   `gorm:"default:true" json:"active"`

	// Default weekly schedule, indexed 0 = Sunday.
	WeeklySchedule datatypes.JSONType[schedule.WeeklySchedule] `gorm:"type:jsonb;not null;default:'[]'" json:"weekly_schedule"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Barber) Week() *schedule.WeeklySchedule {
	w := b.WeeklySchedule.Data()
	return &w
}
