package controllers

import (
	"net/http"
	"strconv"

	"foodhub/pkg/resp"
	"foodhub/services"
	"foodhub/utils"

	"github.com/gin-gonic/gin"
)

type CheckoutController struct{ Svc *services.CheckoutService }

func NewCheckoutController(s *services.CheckoutService) *CheckoutController {
	return &CheckoutController{Svc: s}
}

// POST /checkout
// FE redirect ไปที่ redirectUrl ของ payment processor
func (h *CheckoutController) Initiate(c *gin.Context) {
	out, err := h.Svc.Initiate(c.Request.Context(), utils.CurrentIdentity(c))
	if err != nil {
		fail(c, err)
		return
	}
	resp.Message(c, http.StatusOK, "Redirecting to payment", out)
}

// GET /checkout/success?session_id=
func (h *CheckoutController) Success(c *gin.Context) {
	landing, err := h.Svc.SuccessLanding(c.Request.Context(), utils.CurrentIdentity(c), c.Query("session_id"))
	if err != nil {
		fail(c, err)
		return
	}
	msg := "Payment received, thank you!"
	if landing.Next == services.NextReview {
		msg = "Payment received! How was your meal?"
	}
	resp.Message(c, http.StatusOK, msg, landing)
}

// GET /checkout/cancel?order_id=
func (h *CheckoutController) Cancel(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Query("order_id"), 10, 64)
	if err != nil || orderID == 0 {
		badID(c, "order_id")
		return
	}
	landing, err := h.Svc.CancelLanding(c.Request.Context(), utils.CurrentIdentity(c), uint(orderID))
	if err != nil {
		fail(c, err)
		return
	}
	resp.Message(c, http.StatusOK, "Payment cancelled, your cart is still here.", landing)
}
