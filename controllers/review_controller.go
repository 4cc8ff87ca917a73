package controllers

import (
	"encoding/json"
	"net/http"

	"foodhub/pkg/resp"
	"foodhub/services"
	"foodhub/utils"

	"github.com/gin-gonic/gin"
)

type reviewRequest struct {
	Rating  json.RawMessage `json:"rating"`
	Comment string          `json:"comment"`
}

type ReviewController struct{ Svc *services.ReviewService }

func NewReviewController(s *services.ReviewService) *ReviewController {
	return &ReviewController{Svc: s}
}

// POST /restaurants/:id/reviews
// ส่งซ้ำ = แก้รีวิวเดิม
func (h *ReviewController) Submit(c *gin.Context) {
	rid, ok := utils.ParamUint(c, "id")
	if !ok {
		badID(c, "restaurant id")
		return
	}
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	rating, err := services.ParseRating(req.Rating)
	if err != nil {
		fail(c, err)
		return
	}
	in := services.ReviewIn{Rating: rating, Comment: req.Comment}
	rev, created, err := h.Svc.Upsert(c.Request.Context(), utils.CurrentIdentity(c), rid, in)
	if err != nil {
		fail(c, err)
		return
	}
	if created {
		resp.Message(c, http.StatusCreated, "Thanks for your review!", rev)
		return
	}
	resp.Message(c, http.StatusOK, "Your review has been updated.", rev)
}

// GET /restaurants/:id/reviews?limit=&offset=
func (h *ReviewController) ListForRestaurant(c *gin.Context) {
	rid, ok := utils.ParamUint(c, "id")
	if !ok {
		badID(c, "restaurant id")
		return
	}
	page, err := h.Svc.ListForRestaurant(c.Request.Context(), rid, utils.QueryInt(c, "limit", 20), utils.QueryInt(c, "offset", 0))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, page)
}

// GET /profile/reviews
func (h *ReviewController) Mine(c *gin.Context) {
	page, err := h.Svc.ListForUser(c.Request.Context(), utils.CurrentIdentity(c), utils.QueryInt(c, "limit", 20), utils.QueryInt(c, "offset", 0))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, page)
}
