// Package payment records payments against orders.
package payment

import (
	"time"

	"github.com/MikeMC777/storex/internal/money"
)

type Status string

const StatusSucceeded Status = "SUCCEEDED"

const DefaultCurrency = "USD"

type Payment struct {
	ID        string       `json:"id"        bson:"_id"`
	OrderID   string       `json:"orderId"   bson:"orderId"`
	UserID    string       `json:"userId"    bson:"userId"`
	Amount    money.Amount `json:"amount"    bson:"amount"`
	Currency  string       `json:"currency"  bson:"currency"`
	Method    string       `json:"method"    bson:"method"`
	Status    Status       `json:"status"    bson:"status"`
	CreatedAt time.Time    `json:"createdAt" bson:"createdAt"`
}

// CreatePaymentRequest payload to pay an order.
// swagger:model CreatePaymentRequest
type CreatePaymentRequest struct {
	OrderID string `json:"orderId" binding:"required,notblank"`
	Method  string `json:"method"  binding:"required,oneof=card cash transfer" example:"card"`
}
