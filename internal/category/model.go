package category

import "time"

type Category struct {
	ID        string    `json:"id"        bson:"_id"`
	Name      string    `json:"name"      bson:"name"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// CategoryRequest is the create/update payload.
// swagger:model CategoryRequest
type CategoryRequest struct {
	Name string `json:"name" binding:"required,notblank,max=100" example:"Headphones"`
}
