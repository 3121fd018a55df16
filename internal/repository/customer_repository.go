// This file defines repository methods for the customers table.  A customer
// profile belongs to exactly one user and owns the orders placed under it.
// The generated code and the owning user id are both unique.
package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/customer-order-api/internal/model"
)

// ErrCustomerNotFound is returned when a customer cannot be found.
var ErrCustomerNotFound = errors.New("customer not found")

// ErrCustomerExists is returned when the owning user already has a customer
// profile or the generated code collides.
var ErrCustomerExists = errors.New("customer already exists")

// CustomerRepo encapsulates all database queries related to customers.
type CustomerRepo struct {
    db *sql.DB
}

// NewCustomerRepo constructs a CustomerRepo with the provided DB handle.
func NewCustomerRepo(db *sql.DB) *CustomerRepo {
    return &CustomerRepo{db: db}
}

// Create inserts a new customer.  On success the ID field is populated with
// the auto-generated value and a follow-up SELECT fills the timestamp
// columns so callers receive a fully populated record.
func (r *CustomerRepo) Create(ctx context.Context, c *model.Customer) error {
    const qInsert = "INSERT INTO customers (user_id, name, code, phone) VALUES (?, ?, ?, ?)"
    res, err := r.db.ExecContext(ctx, qInsert, c.UserID, c.Name, c.Code, c.Phone)
    if err != nil {
        if isDuplicate(err) {
            return ErrCustomerExists
        }
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    c.ID = uint64(id)

    const qSelect = "SELECT user_id, name, code, phone, created_at, updated_at FROM customers WHERE id = ?"
    return r.db.QueryRowContext(ctx, qSelect, c.ID).
        Scan(&c.UserID, &c.Name, &c.Code, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
}

// GetByID fetches a customer by its ID.  It returns ErrCustomerNotFound if
// no row exists.
func (r *CustomerRepo) GetByID(ctx context.Context, id uint64) (*model.Customer, error) {
    const q = "SELECT id, user_id, name, code, phone, created_at, updated_at FROM customers WHERE id = ?"
    var c model.Customer
    if err := r.db.QueryRowContext(ctx, q, id).
        Scan(&c.ID, &c.UserID, &c.Name, &c.Code, &c.Phone, &c.CreatedAt, &c.UpdatedAt); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrCustomerNotFound
        }
        return nil, err
    }
    return &c, nil
}

// GetByUserID fetches the customer profile owned by a user.
func (r *CustomerRepo) GetByUserID(ctx context.Context, userID uint64) (*model.Customer, error) {
    const q = "SELECT id, user_id, name, code, phone, created_at, updated_at FROM customers WHERE user_id = ?"
    var c model.Customer
    if err := r.db.QueryRowContext(ctx, q, userID).
        Scan(&c.ID, &c.UserID, &c.Name, &c.Code, &c.Phone, &c.CreatedAt, &c.UpdatedAt); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrCustomerNotFound
        }
        return nil, err
    }
    return &c, nil
}

// List returns customers ordered by id with skip/limit pagination.
func (r *CustomerRepo) List(ctx context.Context, skip, limit int) ([]*model.Customer, error) {
    const q = `SELECT id, user_id, name, code, phone, created_at, updated_at
               FROM customers ORDER BY id LIMIT ? OFFSET ?`
    rows, err := r.db.QueryContext(ctx, q, limit, skip)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    var out []*model.Customer
    for rows.Next() {
        c := new(model.Customer)
        if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Code, &c.Phone, &c.CreatedAt, &c.UpdatedAt); err != nil {
            return nil, err
        }
        out = append(out, c)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// UpdateProfile applies a partial update of name and/or phone.  Nil fields
// are left untouched.  It returns sql.ErrNoRows when no row is affected.
func (r *CustomerRepo) UpdateProfile(ctx context.Context, id uint64, name, phone *string) error {
    if name == nil && phone == nil {
        return nil
    }
    q := "UPDATE customers SET updated_at = CURRENT_TIMESTAMP"
    args := []any{}
    if name != nil {
        q += ", name = ?"
        args = append(args, *name)
    }
    if phone != nil {
        q += ", phone = ?"
        args = append(args, *phone)
    }
    q += " WHERE id = ?"
    args = append(args, id)

    res, err := r.db.ExecContext(ctx, q, args...)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return sql.ErrNoRows
    }
    return nil
}

// DeleteByID removes a customer and all of its orders within a transaction.
// sql.ErrNoRows is returned when the customer does not exist.
func (r *CustomerRepo) DeleteByID(ctx context.Context, id uint64) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    defer func() {
        if err != nil {
            _ = tx.Rollback()
        } else {
            _ = tx.Commit()
        }
    }()
    var exists uint64
    if err = tx.QueryRowContext(ctx, `SELECT id FROM customers WHERE id = ?`, id).Scan(&exists); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return sql.ErrNoRows
        }
        return err
    }
    if _, err = tx.ExecContext(ctx, `DELETE FROM orders WHERE customer_id = ?`, id); err != nil {
        return err
    }
    if _, err = tx.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id); err != nil {
        return err
    }
    return nil
}
