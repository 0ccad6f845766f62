package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/storex/internal/apperr"
	"github.com/MikeMC777/storex/internal/auth"
	"github.com/MikeMC777/storex/internal/payment"
)

// createPaymentHandler godoc
// @Summary  Pay an order
// @Tags     payments
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body payment.CreatePaymentRequest true "payment"
// @Success  201 {object} payment.Payment
// @Failure  400 {object} httpx.HTTPError
// @Failure  403 {object} httpx.HTTPError
// @Failure  404 {object} httpx.HTTPError
// @Failure  409 {object} httpx.HTTPError
// @Router   /payments [post]
func createPaymentHandler(svc *payment.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req payment.CreatePaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			_ = c.Error(apperr.Wrap(apperr.KindValidation, "Invalid payment data", err))
			return
		}
		p, _ := auth.PrincipalFrom(c)
		pay, err := svc.Pay(c.Request.Context(), p.UserID, req)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusCreated, pay)
	}
}

// @Summary  Get a payment
// @Tags     payments
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "payment id"
// @Success  200 {object} payment.Payment
// @Failure  403 {object} httpx.HTTPError
// @Failure  404 {object} httpx.HTTPError
// @Router   /payments/{id} [get]
func getPaymentHandler(svc *payment.Service, adminRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		pay, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			_ = c.Error(err)
			return
		}
		p, _ := auth.PrincipalFrom(c)
		if pay.UserID != p.UserID && !auth.IsAdmin(c, adminRole) {
			_ = c.Error(apperr.Forbidden("Forbidden"))
			return
		}
		c.JSON(http.StatusOK, pay)
	}
}
