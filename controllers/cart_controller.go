package controllers

import (
	"net/http"

	"foodhub/pkg/resp"
	"foodhub/services"
	"foodhub/utils"

	"github.com/gin-gonic/gin"
)

type CartController struct{ Svc *services.CartService }

func NewCartController(s *services.CartService) *CartController { return &CartController{Svc: s} }

// GET /cart
func (h *CartController) Get(c *gin.Context) {
	view, err := h.Svc.View(c.Request.Context(), utils.CurrentIdentity(c))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, view)
}

// POST /cart/dishes/:dishId
func (h *CartController) Add(c *gin.Context) {
	dishID, ok := utils.ParamUint(c, "dishId")
	if !ok {
		badID(c, "dish id")
		return
	}
	item, err := h.Svc.AddDish(c.Request.Context(), utils.CurrentIdentity(c), dishID)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Message(c, http.StatusOK, item.Dish.Name+" added to cart", gin.H{"itemId": item.ID, "quantity": item.Quantity})
}

// POST /cart/items/:itemId/increment
func (h *CartController) Increment(c *gin.Context) {
	itemID, ok := utils.ParamUint(c, "itemId")
	if !ok {
		badID(c, "item id")
		return
	}
	item, err := h.Svc.Increment(c.Request.Context(), utils.CurrentIdentity(c), itemID)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"itemId": item.ID, "quantity": item.Quantity})
}

// POST /cart/items/:itemId/decrement
func (h *CartController) Decrement(c *gin.Context) {
	itemID, ok := utils.ParamUint(c, "itemId")
	if !ok {
		badID(c, "item id")
		return
	}
	item, err := h.Svc.Decrement(c.Request.Context(), utils.CurrentIdentity(c), itemID)
	if err != nil {
		fail(c, err)
		return
	}
	// quantity 0 = ถูกลบออกจากตะกร้าแล้ว
	if item == nil {
		resp.OK(c, gin.H{"itemId": itemID, "quantity": 0, "removed": true})
		return
	}
	resp.OK(c, gin.H{"itemId": item.ID, "quantity": item.Quantity})
}
