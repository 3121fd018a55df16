package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/customer-order-api/internal/model"
)

// ErrOrderNotFound is returned when an order cannot be found.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepo encapsulates all database queries related to orders.
type OrderRepo struct {
    db *sql.DB
}

// NewOrderRepo constructs an OrderRepo with the provided DB handle.
func NewOrderRepo(db *sql.DB) *OrderRepo {
    return &OrderRepo{db: db}
}

// Create inserts a new order.  Status defaults to Active when unset.  On
// success the ID and timestamp fields are populated.
func (r *OrderRepo) Create(ctx context.Context, o *model.Order) error {
    if o.Status == "" {
        o.Status = model.OrderActive
    }
    const qInsert = "INSERT INTO orders (customer_id, item, amount, quantity, status) VALUES (?, ?, ?, ?, ?)"
    res, err := r.db.ExecContext(ctx, qInsert, o.CustomerID, o.Item, o.Amount, o.Quantity, o.Status)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    o.ID = uint64(id)

    const qSelect = "SELECT customer_id, item, amount, quantity, status, created_at, updated_at FROM orders WHERE id = ?"
    return r.db.QueryRowContext(ctx, qSelect, o.ID).
        Scan(&o.CustomerID, &o.Item, &o.Amount, &o.Quantity, &o.Status, &o.CreatedAt, &o.UpdatedAt)
}

// GetByID fetches an order by its ID.  It returns ErrOrderNotFound if no
// row exists.
func (r *OrderRepo) GetByID(ctx context.Context, id uint64) (*model.Order, error) {
    const q = "SELECT id, customer_id, item, amount, quantity, status, created_at, updated_at FROM orders WHERE id = ?"
    var o model.Order
    if err := r.db.QueryRowContext(ctx, q, id).
        Scan(&o.ID, &o.CustomerID, &o.Item, &o.Amount, &o.Quantity, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrOrderNotFound
        }
        return nil, err
    }
    return &o, nil
}

// List returns orders ordered by id with skip/limit pagination.
func (r *OrderRepo) List(ctx context.Context, skip, limit int) ([]*model.Order, error) {
    const q = `SELECT id, customer_id, item, amount, quantity, status, created_at, updated_at
               FROM orders ORDER BY id LIMIT ? OFFSET ?`
    return r.scanList(ctx, q, limit, skip)
}

// ListByCustomer returns the orders of one customer with skip/limit pagination.
func (r *OrderRepo) ListByCustomer(ctx context.Context, customerID uint64, skip, limit int) ([]*model.Order, error) {
    const q = `SELECT id, customer_id, item, amount, quantity, status, created_at, updated_at
               FROM orders WHERE customer_id = ? ORDER BY id LIMIT ? OFFSET ?`
    return r.scanList(ctx, q, customerID, limit, skip)
}

func (r *OrderRepo) scanList(ctx context.Context, q string, args ...any) ([]*model.Order, error) {
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    var out []*model.Order
    for rows.Next() {
        o := new(model.Order)
        if err := rows.Scan(&o.ID, &o.CustomerID, &o.Item, &o.Amount, &o.Quantity, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
            return nil, err
        }
        out = append(out, o)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// UpdateStatus moves an order out of Active into the given status.  Orders
// already Cancelled or Delivered are terminal: the update matches zero rows
// and ErrConflict is returned if the order exists, ErrOrderNotFound if not.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
    const q = `UPDATE orders SET status = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ? AND status = ?`
    res, err := r.db.ExecContext(ctx, q, status, id, model.OrderActive)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        if _, err := r.GetByID(ctx, id); err != nil {
            return err
        }
        return ErrConflict
    }
    return nil
}

// Delete removes an order.  sql.ErrNoRows is returned when it does not exist.
func (r *OrderRepo) Delete(ctx context.Context, id uint64) error {
    res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return sql.ErrNoRows
    }
    return nil
}
