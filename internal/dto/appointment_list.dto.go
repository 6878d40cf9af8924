package dto

import "github.com/facuperezm/barberia-sub000/internal/models"

type AppointmentListDTO struct {
	ID              uint   `json:"id"`
	BarberID        uint   `json:"barber_id"`
	ServiceID       uint   `json:"service_id"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	DurationMinutes int    `json:"duration_minutes"`
	Status          string `json:"status"`
	CustomerName    string `json:"customer_name"`
	CustomerPhone   string `json:"customer_phone"`
	ServiceName     string `json:"service_name"`
}

func AppointmentList(appointments []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, AppointmentListDTO{
			ID:              ap.ID,
			BarberID:        ap.BarberID,
			ServiceID:       ap.ServiceID,
			Date:            ap.Date,
			Time:            ap.Time,
			DurationMinutes: ap.DurationMinutes,
			Status:          ap.Status,
			CustomerName:    ap.CustomerName,
			CustomerPhone:   ap.CustomerPhone,
			ServiceName:     ap.Service.Name,
		})
	}
	return out
}
