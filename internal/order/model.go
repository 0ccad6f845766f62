package order

import (
	"encoding/json"
	"time"

	"github.com/MikeMC777/storex/internal/money"
	"github.com/MikeMC777/storex/internal/product"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusShipped   Status = "SHIPPED"
	StatusFulfilled Status = "FULFILLED"
	StatusCancelled Status = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
)

// ProductSnapshot freezes the product as it was sold.
type ProductSnapshot struct {
	ID          string       `json:"id"                    bson:"_id"`
	Name        string       `json:"name"                  bson:"name"`
	Price       money.Amount `json:"price"                 bson:"price"`
	Image       string       `json:"image,omitempty"       bson:"image"`
	Description string       `json:"description,omitempty" bson:"description"`
}

func snapshotOf(p *product.Product) ProductSnapshot {
	return ProductSnapshot{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Image:       p.Image,
		Description: p.Description,
	}
}

type Item struct {
	Product  ProductSnapshot `json:"product"  bson:"product"`
	Quantity int             `json:"quantity" bson:"quantity"`
}

type Order struct {
	ID            string        `json:"id"            bson:"_id"`
	UserID        string        `json:"userId"        bson:"userId"`
	Items         []Item        `json:"items"         bson:"items"`
	AddressID     string        `json:"addressId"     bson:"addressId"`
	OrderStatus   Status        `json:"orderStatus"   bson:"orderStatus"`
	PaymentStatus PaymentStatus `json:"paymentStatus" bson:"paymentStatus"`
	Total         money.Amount  `json:"total"         bson:"total"`
	CreatedAt     time.Time     `json:"createdAt"     bson:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"     bson:"updatedAt"`
}

// MarshalJSON repeats the id as "_id", the key storefront clients read.
func (o Order) MarshalJSON() ([]byte, error) {
	type plain Order
	return json.Marshal(struct {
		MongoID string `json:"_id"`
		plain
	}{o.ID, plain(o)})
}

type Address struct {
	ID        string    `json:"id"               bson:"_id"`
	Line1     string    `json:"line_1"           bson:"line1"`
	Line2     string    `json:"line_2,omitempty" bson:"line2"`
	City      string    `json:"city"             bson:"city"`
	State     string    `json:"state"            bson:"state"`
	ZipCode   string    `json:"zip_code"         bson:"zipCode"`
	Phone     string    `json:"phone"            bson:"phone"`
	CreatedAt time.Time `json:"createdAt"        bson:"createdAt"`
}

// ItemDetail is an order line with the live product document, when it still exists.
type ItemDetail struct {
	Item
	Current *product.Product `json:"currentProduct,omitempty"`
}

// Detail is the expanded order returned by GET /orders/:id.
type Detail struct {
	ID            string        `json:"id"`
	UserID        string        `json:"userId"`
	Items         []ItemDetail  `json:"items"`
	AddressID     string        `json:"addressId"`
	Address       *Address      `json:"address,omitempty"`
	OrderStatus   Status        `json:"orderStatus"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	Total         money.Amount  `json:"total"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

func (d Detail) MarshalJSON() ([]byte, error) {
	type plain Detail
	return json.Marshal(struct {
		MongoID string `json:"_id"`
		plain
	}{d.ID, plain(d)})
}
