// Package queue defines message payloads exchanged over the message broker.
package queue

import "fmt"

// OrderPlacedEvent is published when an order is successfully created.  It
// carries enough information for the SMS consumer to notify the customer
// without querying the primary database.
type OrderPlacedEvent struct {
    OrderID       uint64  `json:"order_id"`
    CustomerID    uint64  `json:"customer_id"`
    CustomerName  string  `json:"customer_name"`
    CustomerPhone string  `json:"customer_phone"`
    Item          string  `json:"item"`
    Quantity      uint32  `json:"quantity"`
    Amount        float64 `json:"amount"`
    PlacedAt      string  `json:"placed_at"`
}

// SMSText renders the notification sent to the customer.  Amount is the
// unit price; the total is amount times quantity.
func (e OrderPlacedEvent) SMSText() string {
    return fmt.Sprintf("Hi %s! Your order of %d x %s has been placed. Total: $%.2f",
        e.CustomerName, e.Quantity, e.Item, e.Amount*float64(e.Quantity))
}
