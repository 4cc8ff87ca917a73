// controllers/restaurant_controller.go
package controllers

import (
	"strconv"

	"foodhub/pkg/resp"
	"foodhub/repository"
	"foodhub/services"
	"foodhub/utils"

	"github.com/gin-gonic/gin"
)

type RestaurantController struct {
	Service *services.RestaurantService
}

func NewRestaurantController(s *services.RestaurantService) *RestaurantController {
	return &RestaurantController{Service: s}
}

// ====== Public: explore ร้าน ======
// GET /restaurants?q=&cuisine=&featured=
func (ctl *RestaurantController) List(c *gin.Context) {
	f := repository.RestaurantFilter{Query: c.Query("q")}
	if v := c.Query("cuisine"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			badID(c, "cuisine")
			return
		}
		f.CuisineID = uint(id)
	}
	if v := c.Query("featured"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			resp.BadRequest(c, "invalid featured")
			return
		}
		f.Featured = &b
	}

	rests, err := ctl.Service.Explore(c.Request.Context(), f)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, rests)
}

// GET /restaurants/:id (พร้อมเมนู)
func (ctl *RestaurantController) Get(c *gin.Context) {
	id, ok := utils.ParamUint(c, "id")
	if !ok {
		badID(c, "restaurant id")
		return
	}
	rest, err := ctl.Service.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, rest)
}

// ====== Staff ======

// GET /staff/dashboard
func (ctl *RestaurantController) Dashboard(c *gin.Context) {
	rests, err := ctl.Service.Dashboard(c.Request.Context(), utils.CurrentIdentity(c))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, rests)
}

// POST /restaurants
func (ctl *RestaurantController) Create(c *gin.Context) {
	var in services.RestaurantIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	rest, err := ctl.Service.Create(c.Request.Context(), utils.CurrentIdentity(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Message(c, 201, "Restaurant created", rest)
}

// PATCH /restaurants/:id
func (ctl *RestaurantController) Update(c *gin.Context) {
	id, ok := utils.ParamUint(c, "id")
	if !ok {
		badID(c, "restaurant id")
		return
	}
	var in services.RestaurantIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	rest, err := ctl.Service.Update(c.Request.Context(), utils.CurrentIdentity(c), id, in)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Message(c, 200, "Restaurant updated", rest)
}

// DELETE /restaurants/:id
func (ctl *RestaurantController) Delete(c *gin.Context) {
	id, ok := utils.ParamUint(c, "id")
	if !ok {
		badID(c, "restaurant id")
		return
	}
	if err := ctl.Service.Delete(c.Request.Context(), utils.CurrentIdentity(c), id); err != nil {
		fail(c, err)
		return
	}
	resp.Message(c, 200, "Restaurant deleted", nil)
}

// ====== Cuisines ======

// GET /cuisines
func (ctl *RestaurantController) Cuisines(c *gin.Context) {
	out, err := ctl.Service.Cuisines(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, out)
}

// POST /cuisines
func (ctl *RestaurantController) CreateCuisine(c *gin.Context) {
	var body struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	cu, err := ctl.Service.CreateCuisine(c.Request.Context(), utils.CurrentIdentity(c), body.Name)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, cu)
}
