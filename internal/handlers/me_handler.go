package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/facuperezm/barberia-sub000/internal/config"
	"github.com/facuperezm/barberia-sub000/internal/middleware"
)

// MeHandler tells the dashboard who is signed in and which shop rules apply.
type MeHandler struct {
	cfg *config.Config
}

func NewMeHandler(cfg *config.Config) *MeHandler {
	return &MeHandler{cfg: cfg}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":   middleware.Actor(c),
			"role": c.GetString(middleware.ContextUserRole),
		},
		"shop": gin.H{
			"timezone":            h.cfg.ShopTimezone,
			"min_advance_minutes": h.cfg.MinAdvanceMinutes,
			"payments_enabled":    h.cfg.MercadoPago.Enabled(),
		},
	})
}
