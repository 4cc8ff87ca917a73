package controllers

import (
	"errors"
	"io"
	"net/http"

	"foodhub/pkg/payment"
	"foodhub/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// processor payloads are small; anything bigger is not ours
const maxWebhookBody = 64 << 10

type WebhookController struct {
	Gateway  payment.Gateway
	Checkout *services.CheckoutService
	log      *logrus.Entry
}

func NewWebhookController(gw payment.Gateway, checkout *services.CheckoutService, log *logrus.Logger) *WebhookController {
	return &WebhookController{Gateway: gw, Checkout: checkout, log: log.WithField("controller", "webhook")}
}

// POST /webhooks/stripe
// ไม่มี JWT; ยืนยันด้วย signature ของ body ดิบแทน
// status ที่ไม่ใช่ 2xx ทำให้ processor retry เอง
func (h *WebhookController) Stripe(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "cannot read body"})
		return
	}

	ev, err := h.Gateway.ParseWebhook(body, c.GetHeader("Stripe-Signature"))
	if err != nil {
		if errors.Is(err, payment.ErrNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": err.Error()})
			return
		}
		h.log.WithError(err).Warn("rejected webhook")
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid payload"})
		return
	}

	log := h.log.WithFields(logrus.Fields{"event_id": ev.ID, "type": ev.Type})
	if _, err := h.Checkout.HandleEvent(c.Request.Context(), ev); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "order not found"})
			return
		}
		log.WithError(err).Error("webhook handling failed")
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "processing failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "received": true})
}
