package model

import "time"

// Order statuses as stored in orders.status.  New orders start Active;
// Cancelled and Delivered are terminal.
const (
    OrderActive    = "Active"
    OrderCancelled = "Cancelled"
    OrderDelivered = "Delivered"
)

// ValidOrderStatus reports whether s is one of the known order statuses.
func ValidOrderStatus(s string) bool {
    switch s {
    case OrderActive, OrderCancelled, OrderDelivered:
        return true
    }
    return false
}

// Order is a row in the `orders` table.  Amount is the unit price with two
// decimal places; the order total is Amount*Quantity and is computed where
// needed rather than stored.
type Order struct {
    ID         uint64    `json:"id"`          // orders.id
    CustomerID uint64    `json:"customer_id"` // orders.customer_id
    Item       string    `json:"item"`        // orders.item
    Amount     float64   `json:"amount"`      // orders.amount (unit price)
    Quantity   uint32    `json:"quantity"`    // orders.quantity
    Status     string    `json:"status"`      // orders.status
    CreatedAt  time.Time `json:"created_at"`  // orders.created_at
    UpdatedAt  time.Time `json:"updated_at"`  // orders.updated_at
}
