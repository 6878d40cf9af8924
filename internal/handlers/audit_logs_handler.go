package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/facuperezm/barberia-sub000/internal/audit"
	"github.com/facuperezm/barberia-sub000/internal/httperr"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs AuditLister
}

func NewAuditLogsHandler(logs AuditLister) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	q := audit.Query{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
	}

	q.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	q.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))

	if from, err := time.Parse("2006-01-02", c.Query("from")); err == nil {
		q.From = from
	}
	// "to" is inclusive of the whole day
	if to, err := time.Parse("2006-01-02", c.Query("to")); err == nil {
		q.To = to.Add(24 * time.Hour)
	}

	logs, total, err := h.logs.List(c.Request.Context(), q)
	if err != nil {
		httperr.Respond(c, httperr.ErrTransient("store_unavailable", err))
		return
	}

	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > 200 {
		q.Limit = 50
	}

	c.JSON(200, gin.H{
		"page":  q.Page,
		"limit": q.Limit,
		"total": total,
		"logs":  logs,
	})
}
