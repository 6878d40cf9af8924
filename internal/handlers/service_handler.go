package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/facuperezm/barberia-sub000/internal/httperr"
	"github.com/facuperezm/barberia-sub000/internal/httpresp"
	"github.com/facuperezm/barberia-sub000/internal/middleware"
	uccatalog "github.com/facuperezm/barberia-sub000/internal/usecase/catalog"
)

type ServiceHandler struct {
	list   ServiceLister
	create ServiceCreator
	update ServiceUpdater
}

func NewServiceHandler(list ServiceLister, create ServiceCreator, update ServiceUpdater) *ServiceHandler {
	return &ServiceHandler{list: list, create: create, update: update}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name            string `json:"name" binding:"required,max=100"`
	Description     string `json:"description" binding:"max=255"`
	DurationMinutes int    `json:"duration_minutes" binding:"required"`
	PriceCents      int64  `json:"price_cents" binding:"gte=0"`
}

type UpdateServiceRequest struct {
	Name            *string `json:"name,omitempty"`
	Description     *string `json:"description,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
	PriceCents      *int64  `json:"price_cents,omitempty"`
	Active          *bool   `json:"active,omitempty"`
}

// --------- Handlers ---------

// List shows inactive services too unless ?active=true.
func (h *ServiceHandler) List(c *gin.Context) {
	services, err := h.list.Execute(c.Request.Context(), queryBool(c, "active", false))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.create.Execute(c.Request.Context(), uccatalog.CreateServiceInput{
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		PriceCents:      req.PriceCents,
		Actor:           middleware.Actor(c),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, s)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.update.Execute(c.Request.Context(), uccatalog.UpdateServiceInput{
		ID:              id,
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		PriceCents:      req.PriceCents,
		Active:          req.Active,
		Actor:           middleware.Actor(c),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, s)
}
