package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MikeMC777/storex/internal/apperr"
	"github.com/MikeMC777/storex/internal/category"
	"github.com/MikeMC777/storex/internal/product"
)

type listProductsQuery struct {
	Q          string `form:"q"          binding:"max=100"`
	CategoryID string `form:"categoryId" binding:"omitempty,uuid"`
	Limit      int    `form:"limit"      binding:"omitempty,min=1,max=100"`
	Offset     int    `form:"offset"     binding:"omitempty,min=0"`
}

// listProductsHandler godoc
// @Summary  List products
// @Tags     products
// @Produce  json
// @Param    q          query string false "name/description substring"
// @Param    categoryId query string false "category id"
// @Param    limit      query int    false "page size (max 100)"
// @Param    offset     query int    false "items to skip"
// @Success  200 {object} product.ListResponse
// @Failure  400 {object} httpx.HTTPError
// @Router   /products [get]
func listProductsHandler(repo product.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in listProductsQuery
		if err := c.ShouldBindQuery(&in); err != nil {
			_ = c.Error(apperr.Wrap(apperr.KindValidation, "Invalid query parameters", err))
			return
		}
		q := product.Query{
			Q:          strings.TrimSpace(in.Q),
			CategoryID: in.CategoryID,
			Limit:      in.Limit,
			Offset:     in.Offset,
		}.Normalize()

		items, err := repo.List(c.Request.Context(), q)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, product.ListResponse{
			Q:          q.Q,
			CategoryID: q.CategoryID,
			Limit:      q.Limit,
			Offset:     q.Offset,
			Items:      items,
		})
	}
}

// getProductHandler godoc
// @Summary  Get a product
// @Tags     products
// @Produce  json
// @Param    id path string true "product id"
// @Success  200 {object} product.Product
// @Failure  404 {object} httpx.HTTPError
// @Router   /products/{id} [get]
func getProductHandler(repo product.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			_ = c.Error(productErr(err))
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// createProductHandler godoc
// @Summary  Create a product
// @Tags     products
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body product.CreateProductRequest true "product"
// @Success  201 {object} product.Product
// @Failure  400 {object} httpx.HTTPError
// @Failure  401 {object} httpx.HTTPError
// @Failure  403 {object} httpx.HTTPError
// @Router   /products [post]
func createProductHandler(repo product.Repository, categories category.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req product.CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			_ = c.Error(apperr.Wrap(apperr.KindValidation, "Invalid product data", err))
			return
		}
		if err := checkCategory(c, categories, req.CategoryID); err != nil {
			_ = c.Error(err)
			return
		}

		now := time.Now().UTC()
		p := &product.Product{
			ID:          uuid.NewString(),
			Name:        strings.TrimSpace(req.Name),
			Description: req.Description,
			Price:       *req.Price,
			Image:       req.Image,
			CategoryID:  req.CategoryID,
			Stock:       req.Stock,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := repo.Create(c.Request.Context(), p); err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

// updateProductHandler godoc
// @Summary  Partially update a product
// @Tags     products
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id   path string                       true "product id"
// @Param    body body product.UpdateProductRequest true "fields to change"
// @Success  200 {object} product.Product
// @Failure  400 {object} httpx.HTTPError
// @Failure  404 {object} httpx.HTTPError
// @Router   /products/{id} [patch]
func updateProductHandler(repo product.Repository, categories category.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req product.UpdateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			_ = c.Error(apperr.Wrap(apperr.KindValidation, "Invalid product data", err))
			return
		}
		patch := req.Patch()
		if patch.Empty() {
			_ = c.Error(apperr.Validation("No fields to update"))
			return
		}
		if patch.CategoryID != nil {
			if err := checkCategory(c, categories, *patch.CategoryID); err != nil {
				_ = c.Error(err)
				return
			}
		}
		if patch.Name != nil {
			name := strings.TrimSpace(*patch.Name)
			patch.Name = &name
		}

		p, err := repo.Update(c.Request.Context(), c.Param("id"), patch)
		if err != nil {
			_ = c.Error(productErr(err))
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// deleteProductHandler godoc
// @Summary  Delete a product
// @Tags     products
// @Security BearerAuth
// @Param    id path string true "product id"
// @Success  204
// @Failure  404 {object} httpx.HTTPError
// @Router   /products/{id} [delete]
func deleteProductHandler(repo product.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := repo.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			_ = c.Error(err)
			return
		}
		if !ok {
			_ = c.Error(apperr.NotFound("Product not found"))
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// updateInventoryHandler godoc
// @Summary  Set product stock
// @Tags     products
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id   path string                         true "product id"
// @Param    body body product.UpdateInventoryRequest true "new stock"
// @Success  200 {object} product.Product
// @Failure  400 {object} httpx.HTTPError
// @Failure  404 {object} httpx.HTTPError
// @Router   /products/{id}/inventory [patch]
func updateInventoryHandler(repo product.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req product.UpdateInventoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			_ = c.Error(apperr.Wrap(apperr.KindValidation, "Invalid inventory data", err))
			return
		}
		p, err := repo.SetStock(c.Request.Context(), c.Param("id"), *req.Stock)
		if err != nil {
			_ = c.Error(productErr(err))
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func checkCategory(c *gin.Context, categories category.Repository, id string) error {
	if id == "" {
		return nil
	}
	_, err := categories.GetByID(c.Request.Context(), id)
	if errors.Is(err, category.ErrNotFound) {
		return apperr.Validation("Unknown category %s", id)
	}
	return err
}

func productErr(err error) error {
	if errors.Is(err, product.ErrNotFound) {
		return apperr.NotFound("Product not found")
	}
	return err
}
