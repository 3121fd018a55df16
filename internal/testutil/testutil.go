// Package testutil provides shared helpers for the test suite.  Tests run
// against an in-memory SQLite database carrying the same schema as the
// MySQL deployment; repository SQL sticks to the portable subset both
// engines accept.
package testutil

import (
    "database/sql"
    "testing"

    _ "github.com/mattn/go-sqlite3"

    "github.com/iliyamo/customer-order-api/internal/utils"
)

const schema = `
CREATE TABLE users (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL DEFAULT 'CUSTOMER',
    is_active     BOOLEAN NOT NULL DEFAULT 1,
    created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE refresh_tokens (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id    INTEGER NOT NULL REFERENCES users(id),
    token_hash TEXT NOT NULL UNIQUE,
    expires_at TIMESTAMP NOT NULL,
    revoked_at TIMESTAMP,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE customers (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id    INTEGER NOT NULL UNIQUE REFERENCES users(id),
    name       TEXT NOT NULL,
    code       TEXT NOT NULL UNIQUE,
    phone      TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE orders (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    customer_id INTEGER NOT NULL REFERENCES customers(id),
    item        TEXT NOT NULL,
    amount      REAL NOT NULL DEFAULT 0,
    quantity    INTEGER NOT NULL DEFAULT 1,
    status      TEXT NOT NULL DEFAULT 'Active',
    created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// OpenTestDB opens a named in-memory SQLite database with the application
// schema applied.  The shared cache keeps the database alive across pooled
// connections; a unique name per test isolates databases from each other.
// The handle is closed via t.Cleanup.
func OpenTestDB(t *testing.T, name string) *sql.DB {
    t.Helper()
    db, err := sql.Open("sqlite3", "file:"+name+"?mode=memory&cache=shared")
    if err != nil {
        t.Fatalf("open test db: %v", err)
    }
    db.SetMaxOpenConns(1)
    db.SetMaxIdleConns(1)
    if err := db.Ping(); err != nil {
        t.Fatalf("ping test db: %v", err)
    }
    if _, err := db.Exec(schema); err != nil {
        t.Fatalf("apply schema: %v", err)
    }
    t.Cleanup(func() { _ = db.Close() })
    return db
}

// SeedUser inserts a user row directly and returns its id.  The password
// is hashed with the minimum bcrypt cost to keep tests fast.
func SeedUser(t *testing.T, db *sql.DB, email, password, role string) uint64 {
    t.Helper()
    hash, err := utils.HashPassword(password, 4)
    if err != nil {
        t.Fatalf("hash password: %v", err)
    }
    res, err := db.Exec("INSERT INTO users (email, password_hash, role) VALUES (?,?,?)", email, hash, role)
    if err != nil {
        t.Fatalf("seed user: %v", err)
    }
    id, _ := res.LastInsertId()
    return uint64(id)
}

// SeedCustomer inserts a customer row directly and returns its id.
func SeedCustomer(t *testing.T, db *sql.DB, userID uint64, name, code, phone string) uint64 {
    t.Helper()
    res, err := db.Exec("INSERT INTO customers (user_id, name, code, phone) VALUES (?,?,?,?)",
        userID, name, code, phone)
    if err != nil {
        t.Fatalf("seed customer: %v", err)
    }
    id, _ := res.LastInsertId()
    return uint64(id)
}
