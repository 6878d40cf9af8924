package dto

import "github.com/facuperezm/barberia-sub000/internal/models"

// AppointmentDTO is what a customer sees after booking.
type AppointmentDTO struct {
	ID            uint   `json:"id"`
	BarberID      uint   `json:"barber_id"`
	ServiceID     uint   `json:"service_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Status        string `json:"status"`
	PaymentURL    string `json:"payment_url,omitempty"`
}

func Appointment(ap *models.Appointment, paymentURL string) AppointmentDTO {
	return AppointmentDTO{
		ID:            ap.ID,
		BarberID:      ap.BarberID,
		ServiceID:     ap.ServiceID,
		CustomerName:  ap.CustomerName,
		CustomerEmail: ap.CustomerEmail,
		CustomerPhone: ap.CustomerPhone,
		Date:          ap.Date,
		Time:          ap.Time,
		Status:        ap.Status,
		PaymentURL:    paymentURL,
	}
}
