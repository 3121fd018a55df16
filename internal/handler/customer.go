package handler // handler contains customer endpoints

import (
    "database/sql"
    "errors"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/customer-order-api/internal/model"
    "github.com/iliyamo/customer-order-api/internal/repository"
    "github.com/iliyamo/customer-order-api/internal/utils"
)

// CustomerHandler bundles the repositories behind the /v1/customers routes.
type CustomerHandler struct {
    Users     *repository.UserRepo
    Customers *repository.CustomerRepo
    Orders    *repository.OrderRepo
}

// NewCustomerHandler constructs a CustomerHandler and panics if any
// dependency is nil.
func NewCustomerHandler(users *repository.UserRepo, customers *repository.CustomerRepo, orders *repository.OrderRepo) *CustomerHandler {
    if users == nil || customers == nil || orders == nil {
        panic("nil repository passed to NewCustomerHandler")
    }
    return &CustomerHandler{Users: users, Customers: customers, Orders: orders}
}

type createCustomerReq struct {
    Name  string `json:"name"`
    Phone string `json:"phone"`
}

type updateCustomerReq struct {
    Name  *string `json:"name"`
    Phone *string `json:"phone"`
}

// Create handles POST /v1/customers and creates the customer profile owned
// by the authenticated user.  The unique customer code is generated here,
// seeded from the user's email.
func (h *CustomerHandler) Create(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var body createCustomerReq
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    name := strings.TrimSpace(body.Name)
    phone := strings.TrimSpace(body.Phone)
    if name == "" || phone == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and phone are required"})
    }

    ctx := c.Request().Context()
    u, err := h.Users.GetByID(ctx, uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
    }

    cust := &model.Customer{
        UserID: uid,
        Name:   name,
        Code:   utils.NewCustomerCode(u.Email),
        Phone:  phone,
    }
    if err := h.Customers.Create(ctx, cust); err != nil {
        if errors.Is(err, repository.ErrCustomerExists) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "customer profile already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create customer"})
    }
    return c.JSON(http.StatusCreated, cust)
}

// List handles GET /v1/customers (ADMIN) and returns customers with
// skip/limit pagination.
func (h *CustomerHandler) List(c echo.Context) error {
    if !isAdmin(c) {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    }
    skip, limit := pagination(c)
    items, err := h.Customers.List(c.Request().Context(), skip, limit)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/customers/:id.  Customers may read only their own
// profile; admins may read any.
func (h *CustomerHandler) Get(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    cust, err := h.Customers.GetByID(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, repository.ErrCustomerNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    if !ownsCustomer(c, uid, cust) {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    }
    return c.JSON(http.StatusOK, cust)
}

// ListOrders handles GET /v1/customers/:id/orders with skip/limit
// pagination, subject to the same ownership rule as Get.
func (h *CustomerHandler) ListOrders(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    ctx := c.Request().Context()
    cust, err := h.Customers.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrCustomerNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    if !ownsCustomer(c, uid, cust) {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    }
    skip, limit := pagination(c)
    items, err := h.Orders.ListByCustomer(ctx, id, skip, limit)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Update handles PATCH /v1/customers/:id and applies a partial update of
// name and/or phone.
func (h *CustomerHandler) Update(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var body updateCustomerReq
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if body.Name != nil {
        n := strings.TrimSpace(*body.Name)
        if n == "" {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "name cannot be empty"})
        }
        body.Name = &n
    }
    if body.Phone != nil {
        p := strings.TrimSpace(*body.Phone)
        if p == "" {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "phone cannot be empty"})
        }
        body.Phone = &p
    }

    ctx := c.Request().Context()
    cust, err := h.Customers.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrCustomerNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    if !ownsCustomer(c, uid, cust) {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    }

    if err := h.Customers.UpdateProfile(ctx, id, body.Name, body.Phone); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
    }
    updated, err := h.Customers.GetByID(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /v1/customers/:id (ADMIN).  Orders belonging to the
// customer are removed in the same transaction.
func (h *CustomerHandler) Delete(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    if err := h.Customers.DeleteByID(c.Request().Context(), id); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
    }
    return c.NoContent(http.StatusNoContent)
}
