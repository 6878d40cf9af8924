package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/facuperezm/barberia-sub000/internal/domain/schedule"
	"github.com/facuperezm/barberia-sub000/internal/httperr"
	"github.com/facuperezm/barberia-sub000/internal/httpresp"
	"github.com/facuperezm/barberia-sub000/internal/middleware"
	ucschedule "github.com/facuperezm/barberia-sub000/internal/usecase/schedule"
)

// ScheduleHandler manages a barber's default week and the per-date
// overrides layered on top of it.
type ScheduleHandler struct {
	createOverride OverrideCreator
	listOverrides  OverrideLister
	deleteOverride OverrideDeleter
	updateWeekly   WeeklyScheduleUpdater
}

func NewScheduleHandler(
	createOverride OverrideCreator,
	listOverrides OverrideLister,
	deleteOverride OverrideDeleter,
	updateWeekly WeeklyScheduleUpdater,
) *ScheduleHandler {
	return &ScheduleHandler{
		createOverride: createOverride,
		listOverrides:  listOverrides,
		deleteOverride: deleteOverride,
		updateWeekly:   updateWeekly,
	}
}

type CreateOverrideRequest struct {
	BarberID       uint                 `json:"barber_id" binding:"required"`
	Date           string               `json:"date" binding:"required"`
	IsWorkingDay   bool                 `json:"is_working_day"`
	AvailableSlots []schedule.TimeRange `json:"available_slots"`
	Reason         string               `json:"reason" binding:"max=255"`
}

type WeeklyScheduleRequest struct {
	Days schedule.WeeklySchedule `json:"days"`
}

func (h *ScheduleHandler) CreateOverride(c *gin.Context) {
	var req CreateOverrideRequest
	if !bindJSON(c, &req) {
		return
	}

	o, err := h.createOverride.Execute(c.Request.Context(), ucschedule.CreateOverrideInput{
		BarberID:       req.BarberID,
		Date:           req.Date,
		IsWorkingDay:   req.IsWorkingDay,
		AvailableSlots: req.AvailableSlots,
		Reason:         req.Reason,
		Actor:          middleware.Actor(c),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, o)
}

func (h *ScheduleHandler) ListOverrides(c *gin.Context) {
	barberID, ok := queryID(c, "barber_id")
	if !ok {
		return
	}

	rows, err := h.listOverrides.Execute(c.Request.Context(), barberID, c.Query("from"), c.Query("to"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, rows)
}

func (h *ScheduleHandler) DeleteOverride(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.deleteOverride.Execute(c.Request.Context(), id, middleware.Actor(c)); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ScheduleHandler) UpdateWeekly(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req WeeklyScheduleRequest
	if !bindJSON(c, &req) {
		return
	}

	week, err := h.updateWeekly.Execute(c.Request.Context(), id, req.Days, middleware.Actor(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"days": week})
}
