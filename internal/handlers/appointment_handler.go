package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/facuperezm/barberia-sub000/internal/dto"
	"github.com/facuperezm/barberia-sub000/internal/httperr"
	"github.com/facuperezm/barberia-sub000/internal/httpresp"
	"github.com/facuperezm/barberia-sub000/internal/middleware"
	ucappointment "github.com/facuperezm/barberia-sub000/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	updateStatus StatusUpdater
	byDate       AppointmentsByDate
	byMonth      AppointmentsByMonth
}

func NewAppointmentHandler(
	updateStatus StatusUpdater,
	byDate AppointmentsByDate,
	byMonth AppointmentsByMonth,
) *AppointmentHandler {
	return &AppointmentHandler{
		updateStatus: updateStatus,
		byDate:       byDate,
		byMonth:      byMonth,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.updateStatus.Execute(c.Request.Context(), ucappointment.UpdateStatusInput{
		AppointmentID: id,
		Status:        req.Status,
		Actor:         middleware.Actor(c),
		Source:        ucappointment.SourceStaff,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.Appointment(ap, ""))
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	barberID, ok := queryID(c, "barber_id")
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "invalid_date", "Fecha obligatoria.")
		return
	}

	aps, err := h.byDate.Execute(c.Request.Context(), barberID, date)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, aps)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	barberID, ok := queryID(c, "barber_id")
	if !ok {
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Año inválido.")
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Mes inválido.")
		return
	}

	aps, err := h.byMonth.Execute(c.Request.Context(), barberID, year, month)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"year":         year,
		"month":        month,
		"appointments": aps,
	})
}
