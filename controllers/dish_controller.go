package controllers

import (
	"net/http"

	"foodhub/pkg/resp"
	"foodhub/services"
	"foodhub/utils"

	"github.com/gin-gonic/gin"
)

type DishController struct{ Svc *services.DishService }

func NewDishController(s *services.DishService) *DishController { return &DishController{Svc: s} }

// POST /restaurants/:id/dishes
func (h *DishController) Create(c *gin.Context) {
	rid, ok := utils.ParamUint(c, "id")
	if !ok {
		badID(c, "restaurant id")
		return
	}
	var in services.DishIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	d, err := h.Svc.Create(c.Request.Context(), utils.CurrentIdentity(c), rid, in)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Message(c, http.StatusCreated, "Dish created", d)
}

// GET /dishes/:id
func (h *DishController) Get(c *gin.Context) {
	id, ok := utils.ParamUint(c, "id")
	if !ok {
		badID(c, "dish id")
		return
	}
	d, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, d)
}

// PATCH /dishes/:id
func (h *DishController) Update(c *gin.Context) {
	id, ok := utils.ParamUint(c, "id")
	if !ok {
		badID(c, "dish id")
		return
	}
	var in services.DishIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	d, err := h.Svc.Update(c.Request.Context(), utils.CurrentIdentity(c), id, in)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Message(c, http.StatusOK, "Dish updated", d)
}

// DELETE /dishes/:id
func (h *DishController) Delete(c *gin.Context) {
	id, ok := utils.ParamUint(c, "id")
	if !ok {
		badID(c, "dish id")
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), utils.CurrentIdentity(c), id); err != nil {
		fail(c, err)
		return
	}
	resp.Message(c, http.StatusOK, "Dish deleted", nil)
}
