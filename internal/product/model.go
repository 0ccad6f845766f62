package product

import (
	"time"

	"github.com/MikeMC777/storex/internal/money"
)

type Product struct {
	ID          string       `json:"id"                   bson:"_id"`
	Name        string       `json:"name"                 bson:"name"`
	Description string       `json:"description,omitempty" bson:"description"`
	Price       money.Amount `json:"price"                bson:"price"`
	Image       string       `json:"image,omitempty"      bson:"image"`
	CategoryID  string       `json:"categoryId,omitempty" bson:"categoryId"`
	Stock       int          `json:"stock"                bson:"stock"`
	CreatedAt   time.Time    `json:"createdAt"            bson:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"            bson:"updatedAt"`
}

// ListResponse represents the paginated response of products.
// swagger:model
type ListResponse struct {
	Q          string    `json:"q,omitempty"`
	CategoryID string    `json:"categoryId,omitempty"`
	Limit      int       `json:"limit"`
	Offset     int       `json:"offset"`
	Items      []Product `json:"items"`
}

// CreateProductRequest payload of creation.
// swagger:model CreateProductRequest
type CreateProductRequest struct {
	Name        string        `json:"name"        binding:"required,notblank,max=200" example:"Mechanical Keyboard"`
	Description string        `json:"description" binding:"max=2000"                  example:"RGB 60%"`
	Price       *money.Amount `json:"price"       binding:"required,money"            example:"199.90" swaggertype:"string"`
	Image       string        `json:"image"       binding:"omitempty,url"             example:"https://cdn.example.com/kb.png"`
	CategoryID  string        `json:"categoryId"  binding:"omitempty,uuid"`
	Stock       int           `json:"stock"       binding:"min=0,max=1000000"         example:"10"`
}

// UpdateProductRequest payload of partial update. Absent fields are left untouched.
// swagger:model UpdateProductRequest
type UpdateProductRequest struct {
	Name        *string       `json:"name"        binding:"omitempty,notblank,max=200"`
	Description *string       `json:"description" binding:"omitempty,max=2000"`
	Price       *money.Amount `json:"price"       binding:"omitempty,money" swaggertype:"string"`
	Image       *string       `json:"image"       binding:"omitempty,url"`
	CategoryID  *string       `json:"categoryId"  binding:"omitempty,uuid"`
	Stock       *int          `json:"stock"       binding:"omitempty,min=0,max=1000000"`
}

// UpdateInventoryRequest sets the absolute stock count.
// swagger:model UpdateInventoryRequest
type UpdateInventoryRequest struct {
	Stock *int `json:"stock" binding:"required,min=0,max=1000000" example:"25"`
}

func (r UpdateProductRequest) Patch() Patch {
	return Patch{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Image:       r.Image,
		CategoryID:  r.CategoryID,
		Stock:       r.Stock,
	}
}

// Patch carries the fields to change; nil means unchanged.
type Patch struct {
	Name        *string
	Description *string
	Price       *money.Amount
	Image       *string
	CategoryID  *string
	Stock       *int
}

func (p Patch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil &&
		p.Image == nil && p.CategoryID == nil && p.Stock == nil
}

// Apply mutates prod in place; used by the in-memory store.
func (p Patch) Apply(prod *Product) {
	if p.Name != nil {
		prod.Name = *p.Name
	}
	if p.Description != nil {
		prod.Description = *p.Description
	}
	if p.Price != nil {
		prod.Price = *p.Price
	}
	if p.Image != nil {
		prod.Image = *p.Image
	}
	if p.CategoryID != nil {
		prod.CategoryID = *p.CategoryID
	}
	if p.Stock != nil {
		prod.Stock = *p.Stock
	}
}
