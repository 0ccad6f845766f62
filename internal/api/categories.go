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

// listCategoriesHandler godoc
// @Summary  List categories
// @Tags     categories
// @Produce  json
// @Success  200 {array} category.Category
// @Router   /categories [get]
func listCategoriesHandler(repo category.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := repo.List(c.Request.Context())
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// @Summary  Get a category
// @Tags     categories
// @Produce  json
// @Param    id path string true "category id"
// @Success  200 {object} category.Category
// @Failure  404 {object} httpx.HTTPError
// @Router   /categories/{id} [get]
func getCategoryHandler(repo category.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		cat, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			_ = c.Error(categoryErr(err))
			return
		}
		c.JSON(http.StatusOK, cat)
	}
}

// @Summary  Create a category
// @Tags     categories
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body category.CategoryRequest true "category"
// @Success  201 {object} category.Category
// @Failure  400 {object} httpx.HTTPError
// @Failure  409 {object} httpx.HTTPError
// @Router   /categories [post]
func createCategoryHandler(repo category.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req category.CategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			_ = c.Error(apperr.Wrap(apperr.KindValidation, "Invalid category data", err))
			return
		}
		now := time.Now().UTC()
		cat := &category.Category{
			ID:        uuid.NewString(),
			Name:      strings.TrimSpace(req.Name),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := repo.Create(c.Request.Context(), cat); err != nil {
			_ = c.Error(categoryErr(err))
			return
		}
		c.JSON(http.StatusCreated, cat)
	}
}

// @Summary  Rename a category
// @Tags     categories
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id   path string                   true "category id"
// @Param    body body category.CategoryRequest true "new name"
// @Success  200 {object} category.Category
// @Failure  404 {object} httpx.HTTPError
// @Failure  409 {object} httpx.HTTPError
// @Router   /categories/{id} [patch]
func updateCategoryHandler(repo category.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req category.CategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			_ = c.Error(apperr.Wrap(apperr.KindValidation, "Invalid category data", err))
			return
		}
		cat, err := repo.Rename(c.Request.Context(), c.Param("id"), strings.TrimSpace(req.Name))
		if err != nil {
			_ = c.Error(categoryErr(err))
			return
		}
		c.JSON(http.StatusOK, cat)
	}
}

// @Summary  Delete a category
// @Description Fails with 409 while products still reference the category.
// @Tags     categories
// @Security BearerAuth
// @Param    id path string true "category id"
// @Success  204
// @Failure  404 {object} httpx.HTTPError
// @Failure  409 {object} httpx.HTTPError
// @Router   /categories/{id} [delete]
func deleteCategoryHandler(repo category.Repository, products product.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		n, err := products.CountByCategory(c.Request.Context(), id)
		if err != nil {
			_ = c.Error(err)
			return
		}
		if n > 0 {
			_ = c.Error(apperr.Conflict("Category is in use"))
			return
		}
		ok, err := repo.Delete(c.Request.Context(), id)
		if err != nil {
			_ = c.Error(err)
			return
		}
		if !ok {
			_ = c.Error(apperr.NotFound("Category not found"))
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func categoryErr(err error) error {
	switch {
	case errors.Is(err, category.ErrNotFound):
		return apperr.NotFound("Category not found")
	case errors.Is(err, category.ErrDuplicate):
		return apperr.Conflict("Category already exists")
	}
	return err
}
