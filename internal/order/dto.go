package order

// PlaceOrderItem payload of one line item.
// swagger:model PlaceOrderItem
type PlaceOrderItem struct {
	ID       int64   `json:"id"       example:"3"`
	Quantity int     `json:"quantity" example:"2"`
	Price    float64 `json:"price"    example:"25"`
}

// PlaceOrderRequest payload of order submission.
// swagger:model PlaceOrderRequest
type PlaceOrderRequest struct {
	CustomerName string           `json:"customerName" example:"Nguyen Van A"`
	Address      string           `json:"address"      example:"12 Le Loi, Da Nang"`
	PhoneNumber  string           `json:"phoneNumber"  example:"0905123456"`
	Email        string           `json:"email"        example:"a@example.com"`
	TotalAmount  float64          `json:"totalAmount"  example:"50"`
	Items        []PlaceOrderItem `json:"items"`
}
