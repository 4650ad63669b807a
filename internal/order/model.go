package order

import "time"

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
)

type Order struct {
	ID           int64     `json:"id"`
	CustomerName string    `json:"customer_name"`
	Address      string    `json:"address"`
	PhoneNumber  string    `json:"phone_number"`
	Email        string    `json:"email"`
	// NUMERIC -> string
	TotalAmount string    `json:"total_amount"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// Item is one order line. Price is a snapshot of the catalog price at order
// time; later catalog edits must not touch it.
type Item struct {
	OrderID   int64  `json:"order_id"`
	ProductID int64  `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
}

// Row is one line of the flattened orders listing: orders LEFT JOIN
// order_items LEFT JOIN items, so the item-side columns are nullable.
type Row struct {
	ID           int64     `json:"id"`
	CustomerName string    `json:"customer_name"`
	Address      string    `json:"address"`
	PhoneNumber  string    `json:"phone_number"`
	Email        string    `json:"email"`
	TotalAmount  string    `json:"total_amount"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	ProductID    *int64    `json:"product_id"`
	Quantity     *int      `json:"quantity"`
	ItemName     *string   `json:"item_name"`
}
