package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/facuperezm/barberia-sub000/internal/dto"
	"github.com/facuperezm/barberia-sub000/internal/httperr"
	"github.com/facuperezm/barberia-sub000/internal/httpresp"
	ucappointment "github.com/facuperezm/barberia-sub000/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler serves the customer booking site. No authentication.
type PublicHandler struct {
	availability AvailabilityQuery
	booking      BookingCreator
	barbers      BarberLister
	services     ServiceLister
}

func NewPublicHandler(
	availability AvailabilityQuery,
	booking BookingCreator,
	barbers BarberLister,
	services ServiceLister,
) *PublicHandler {
	return &PublicHandler{
		availability: availability,
		booking:      booking,
		barbers:      barbers,
		services:     services,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	BarberID      uint   `json:"barber_id" binding:"required"`
	ServiceID     uint   `json:"service_id" binding:"required"`
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerEmail string `json:"customer_email" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	Date          string `json:"date" binding:"required"` // YYYY-MM-DD
	Time          string `json:"time" binding:"required"` // HH:mm
}

type publicBarber struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	PhotoURL string `json:"photo_url,omitempty"`
}

type publicService struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	DurationMinutes int    `json:"duration_minutes"`
	PriceCents      int64  `json:"price_cents"`
}

////////////////////////////////////////////////////////
// CATALOG
////////////////////////////////////////////////////////

func (h *PublicHandler) ListBarbers(c *gin.Context) {
	barbers, err := h.barbers.Execute(c.Request.Context(), true)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	out := make([]publicBarber, 0, len(barbers))
	for _, b := range barbers {
		out = append(out, publicBarber{ID: b.ID, Name: b.Name, PhotoURL: b.PhotoURL})
	}
	httpresp.List(c, out)
}

func (h *PublicHandler) ListServices(c *gin.Context) {
	services, err := h.services.Execute(c.Request.Context(), true)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	out := make([]publicService, 0, len(services))
	for _, s := range services {
		out = append(out, publicService{
			ID:              s.ID,
			Name:            s.Name,
			Description:     s.Description,
			DurationMinutes: s.DurationMinutes,
			PriceCents:      s.PriceCents,
		})
	}
	httpresp.List(c, out)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		httperr.Respond(c, httperr.ErrValidation("invalid_date",
			httperr.FieldError{Field: "date", Message: "es obligatorio"}))
		return
	}

	barberID, ok := queryID(c, "barber_id")
	if !ok {
		return
	}
	serviceID, ok := queryID(c, "service_id")
	if !ok {
		return
	}

	res, err := h.availability.Execute(c.Request.Context(), ucappointment.AvailabilityInput{
		BarberID:  barberID,
		ServiceID: serviceID,
		Date:      date,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, res)
}

////////////////////////////////////////////////////////
// BOOKING
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	var req PublicCreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.booking.Execute(c.Request.Context(), ucappointment.CreateBookingInput{
		BarberID:      req.BarberID,
		ServiceID:     req.ServiceID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Date:          req.Date,
		Time:          req.Time,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Appointment(res.Appointment, res.PaymentURL))
}
