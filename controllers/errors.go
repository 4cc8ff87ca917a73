package controllers

import (
	"errors"
	"net/http"

	"foodhub/pkg/resp"
	"foodhub/services"

	"github.com/gin-gonic/gin"
)

// fail แปลง error จาก service เป็น status code
func fail(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		resp.Unprocessable(c, "validation failed", verr.Fields)
	case errors.Is(err, services.ErrUnauthorized), errors.Is(err, services.ErrInvalidCredentials):
		resp.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		resp.Forbidden(c, "forbidden")
	case errors.Is(err, services.ErrNotFound):
		resp.NotFound(c, err.Error())
	case errors.Is(err, services.ErrConflict):
		resp.Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrCartEmpty):
		resp.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrPaymentNotConfigured):
		resp.Error(c, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, services.ErrPaymentSession):
		resp.Error(c, http.StatusBadGateway, services.ErrPaymentSession.Error())
	default:
		// รายละเอียดไปอยู่ใน log ไม่ส่งให้ client
		_ = c.Error(err)
		resp.Error(c, http.StatusInternalServerError, "internal server error")
	}
}

func badID(c *gin.Context, name string) {
	resp.BadRequest(c, "invalid "+name)
}
