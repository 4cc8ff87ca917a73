package controllers

import (
	"foodhub/pkg/resp"
	"foodhub/services"
	"foodhub/utils"

	"github.com/gin-gonic/gin"
)

type OrderController struct{ Svc *services.OrderService }

func NewOrderController(s *services.OrderService) *OrderController { return &OrderController{Svc: s} }

// GET /orders?limit=
func (h *OrderController) List(c *gin.Context) {
	out, err := h.Svc.ListMine(c.Request.Context(), utils.CurrentIdentity(c), utils.QueryInt(c, "limit", 50))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /orders/:id
func (h *OrderController) Get(c *gin.Context) {
	id, ok := utils.ParamUint(c, "id")
	if !ok {
		badID(c, "order id")
		return
	}
	o, err := h.Svc.GetMine(c.Request.Context(), utils.CurrentIdentity(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, o)
}
