package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/facuperezm/barberia-sub000/internal/httperr"
)

// PaymentWebhookHandler receives Mercado Pago notifications. The payload is
// only a pointer; the payment itself is fetched from the gateway.
type PaymentWebhookHandler struct {
	apply PaymentApplier
	log   *zap.Logger
}

func NewPaymentWebhookHandler(apply PaymentApplier, log *zap.Logger) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{apply: apply, log: log}
}

type paymentNotification struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

func (h *PaymentWebhookHandler) Handle(c *gin.Context) {
	var n paymentNotification
	if err := c.ShouldBindJSON(&n); err != nil {
		httperr.BadRequest(c, "invalid_input", httperr.MessageFor("invalid_input"))
		return
	}

	// other topics (merchant_order, plan, ...) are acknowledged and ignored
	if n.Type != "payment" || n.Data.ID == "" {
		c.Status(http.StatusOK)
		return
	}

	ap, err := h.apply.Execute(c.Request.Context(), n.Data.ID)
	if err != nil {
		h.log.Warn("payment notification failed", zap.String("payment_id", n.Data.ID), zap.Error(err))
		httperr.Respond(c, err)
		return
	}

	if ap != nil {
		h.log.Info("payment applied",
			zap.String("payment_id", n.Data.ID),
			zap.Uint("appointment_id", ap.ID),
			zap.String("status", ap.Status),
		)
	}
	c.Status(http.StatusOK)
}
