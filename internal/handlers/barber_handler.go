package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/facuperezm/barberia-sub000/internal/domain/schedule"
	"github.com/facuperezm/barberia-sub000/internal/httperr"
	"github.com/facuperezm/barberia-sub000/internal/httpresp"
	"github.com/facuperezm/barberia-sub000/internal/media"
	"github.com/facuperezm/barberia-sub000/internal/middleware"
	uccatalog "github.com/facuperezm/barberia-sub000/internal/usecase/catalog"
)

type BarberHandler struct {
	list   BarberLister
	create BarberCreator
	photo  PhotoUploader
}

func NewBarberHandler(list BarberLister, create BarberCreator, photo PhotoUploader) *BarberHandler {
	return &BarberHandler{list: list, create: create, photo: photo}
}

type CreateBarberRequest struct {
	Name           string                   `json:"name" binding:"required,max=100"`
	Email          string                   `json:"email" binding:"max=100"`
	Phone          string                   `json:"phone" binding:"max=20"`
	WeeklySchedule *schedule.WeeklySchedule `json:"weekly_schedule"`
}

func (h *BarberHandler) List(c *gin.Context) {
	barbers, err := h.list.Execute(c.Request.Context(), queryBool(c, "active", false))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, barbers)
}

func (h *BarberHandler) Create(c *gin.Context) {
	var req CreateBarberRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.create.Execute(c.Request.Context(), uccatalog.CreateBarberInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Week:  req.WeeklySchedule,
		Actor: middleware.Actor(c),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, b)
}

// UploadPhoto takes a multipart "photo" field.
func (h *BarberHandler) UploadPhoto(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, media.MaxUploadBytes+1<<20)

	fh, err := c.FormFile("photo")
	if err != nil {
		httperr.Respond(c, httperr.ErrValidation("invalid_photo",
			httperr.FieldError{Field: "photo", Message: "es obligatorio"}))
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.Respond(c, httperr.ErrBusiness("invalid_photo"))
		return
	}
	defer f.Close()

	url, err := h.photo.Execute(c.Request.Context(), id, f, middleware.Actor(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"photo_url": url})
}
