package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/storex/internal/apperr"
	"github.com/MikeMC777/storex/internal/auth"
	"github.com/MikeMC777/storex/internal/order"
)

type pageQuery struct {
	Limit  int `form:"limit"  binding:"omitempty,min=1,max=100"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

// createOrderHandler godoc
// @Summary  Place an order
// @Description Checks and reserves stock for every line, stores the shipping address and creates the order.
// @Tags     orders
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body order.CreateOrderRequest true "order"
// @Success  201 {object} order.Order
// @Failure  400 {object} httpx.HTTPError
// @Failure  401 {object} httpx.HTTPError
// @Router   /orders [post]
func createOrderHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			_ = c.Error(apperr.Wrap(apperr.KindValidation, "Invalid order data", err))
			return
		}
		p, _ := auth.PrincipalFrom(c)
		o, err := svc.Create(c.Request.Context(), p.UserID, req)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusCreated, o)
	}
}

// getOrderHandler godoc
// @Summary  Get an order
// @Description Returns the order with its shipping address and the current product documents.
// @Tags     orders
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "order id"
// @Success  200 {object} order.Detail
// @Failure  403 {object} httpx.HTTPError
// @Failure  404 {object} httpx.HTTPError
// @Router   /orders/{id} [get]
func getOrderHandler(svc *order.Service, adminRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := svc.Lookup(c.Request.Context(), c.Param("id"))
		if err != nil {
			_ = c.Error(err)
			return
		}
		p, _ := auth.PrincipalFrom(c)
		if o.UserID != p.UserID && !auth.IsAdmin(c, adminRole) {
			_ = c.Error(apperr.Forbidden("Forbidden"))
			return
		}
		d, err := svc.Expand(c.Request.Context(), o)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, d)
	}
}

// listOrdersHandler godoc
// @Summary  List the caller's orders
// @Tags     orders
// @Produce  json
// @Security BearerAuth
// @Param    limit  query int false "page size (max 100)"
// @Param    offset query int false "items to skip"
// @Success  200 {object} order.ListResponse
// @Router   /orders [get]
func listOrdersHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in pageQuery
		if err := c.ShouldBindQuery(&in); err != nil {
			_ = c.Error(apperr.Wrap(apperr.KindValidation, "Invalid query parameters", err))
			return
		}
		p, _ := auth.PrincipalFrom(c)
		page, err := svc.List(c.Request.Context(), p.UserID, in.Limit, in.Offset)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, page)
	}
}
