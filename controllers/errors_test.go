package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"foodhub/services"

	"github.com/gin-gonic/gin"
)

func TestFail_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		err  error
		want int
	}{
		{&services.ValidationError{Fields: map[string]string{"rating": "bad"}}, http.StatusUnprocessableEntity},
		{services.ErrUnauthorized, http.StatusUnauthorized},
		{services.ErrInvalidCredentials, http.StatusUnauthorized},
		{services.ErrForbidden, http.StatusForbidden},
		{fmt.Errorf("dish: %w", services.ErrNotFound), http.StatusNotFound},
		{services.ErrConflict, http.StatusConflict},
		{services.ErrCartEmpty, http.StatusBadRequest},
		{services.ErrPaymentNotConfigured, http.StatusServiceUnavailable},
		{fmt.Errorf("%w: timeout", services.ErrPaymentSession), http.StatusBadGateway},
		{errors.New("db gone"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		fail(c, tc.err)
		if w.Code != tc.want {
			t.Errorf("fail(%v) = %d, want %d", tc.err, w.Code, tc.want)
		}
	}
}
