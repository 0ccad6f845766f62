package order

// ProductRef identifies the ordered product. Clients send either "_id" or "id".
type ProductRef struct {
	ObjectID string `json:"_id" binding:"required_without=ID"`
	ID       string `json:"id"  binding:"required_without=ObjectID"`
}

func (r ProductRef) Key() string {
	if r.ObjectID != "" {
		return r.ObjectID
	}
	return r.ID
}

// CreateOrderItem is one requested line.
// swagger:model CreateOrderItem
type CreateOrderItem struct {
	Product  ProductRef `json:"product"`
	Quantity int        `json:"quantity" binding:"required,min=1,max=10000" example:"2"`
}

// ShippingAddress is persisted as a new Address per order.
// swagger:model ShippingAddress
type ShippingAddress struct {
	Line1   string `json:"line_1"   binding:"required,notblank,max=200" example:"221B Baker Street"`
	Line2   string `json:"line_2"   binding:"max=200"`
	City    string `json:"city"     binding:"required,notblank,max=100" example:"London"`
	State   string `json:"state"    binding:"required,notblank,max=100" example:"Greater London"`
	ZipCode string `json:"zip_code" binding:"required,notblank,max=20"  example:"NW1 6XE"`
	Phone   string `json:"phone"    binding:"required,notblank,max=30"  example:"+44 20 7224 3688"`
}

// CreateOrderRequest is the checkout payload.
// swagger:model CreateOrderRequest
type CreateOrderRequest struct {
	Items           []CreateOrderItem `json:"items"           binding:"required,min=1,dive"`
	ShippingAddress ShippingAddress   `json:"shippingAddress"`
}

// ListResponse is a page of the caller's orders.
type ListResponse struct {
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
	Items  []Order `json:"items"`
}
