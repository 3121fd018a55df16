package model

import "time"

// Customer is a row in the `customers` table.  A customer profile belongs
// to exactly one user (customers.user_id is unique) and owns the orders
// placed under it.  The code is generated server-side on creation and is
// unique across all customers.
type Customer struct {
    ID        uint64    `json:"id"`         // customers.id
    UserID    uint64    `json:"-"`          // customers.user_id (not exposed)
    Name      string    `json:"name"`       // customers.name
    Code      string    `json:"code"`       // customers.code
    Phone     string    `json:"phone"`      // customers.phone
    CreatedAt time.Time `json:"created_at"` // customers.created_at
    UpdatedAt time.Time `json:"updated_at"` // customers.updated_at
}
