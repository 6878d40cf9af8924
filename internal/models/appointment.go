package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint   `gorm:"not null;index:idx_appointments_barber_date" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	ServiceID uint    `gorm:"not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	CustomerName  string `gorm:"size:100;not null" json:"customer_name"`
	CustomerEmail string `gorm:"size:100;not null" json:"customer_email"`
	CustomerPhone string `gorm:"size:30;not null" json:"customer_phone"`

	// Calendar date "YYYY-MM-DD" and local time "HH:mm:ss" in the shop zone.
	Date string `gorm:"size:10;not null;index:idx_appointments_barber_date" json:"date"`
	Time string `gorm:"size:8;not null" json:"time"`

	// Copied from the service at booking time.
	DurationMinutes int   `gorm:"not null" json:"duration_minutes"`
	PriceCents      int64 `gorm:"not null;default:0" json:"price_cents"`

	Status string `gorm:"size:20;not null;default:'pending'" json:"status"`

	PaymentPreferenceID string `gorm:"size:100" json:"payment_preference_id,omitempty"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
