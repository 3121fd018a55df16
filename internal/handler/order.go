package handler // handler contains order endpoints

import (
    "context"
    "database/sql"
    "errors"
    "log"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/customer-order-api/internal/model"
    "github.com/iliyamo/customer-order-api/internal/queue"
    "github.com/iliyamo/customer-order-api/internal/repository"
)

// PublishFunc publishes an order event to the broker.  It is a function
// field so tests can capture events without a running RabbitMQ.
type PublishFunc func(ctx context.Context, ev queue.OrderPlacedEvent) error

// OrderHandler bundles the repositories and the event publisher behind the
// /v1/orders routes.
type OrderHandler struct {
    Customers *repository.CustomerRepo
    Orders    *repository.OrderRepo
    Publish   PublishFunc // nil disables event publishing
}

// NewOrderHandler constructs an OrderHandler and panics if a repository is
// nil.  publish may be nil.
func NewOrderHandler(customers *repository.CustomerRepo, orders *repository.OrderRepo, publish PublishFunc) *OrderHandler {
    if customers == nil || orders == nil {
        panic("nil repository passed to NewOrderHandler")
    }
    return &OrderHandler{Customers: customers, Orders: orders, Publish: publish}
}

type createOrderReq struct {
    CustomerID uint64  `json:"customer_id"`
    Item       string  `json:"item"`
    Amount     float64 `json:"amount"`
    Quantity   uint32  `json:"quantity"`
}

type updateOrderReq struct {
    Status string `json:"status"`
}

// Create handles POST /v1/orders.  Customers may order only for their own
// profile; admins for any customer.  On success an order.placed event is
// published so the SMS consumer can notify the customer; publish failures
// are logged and never fail the request.
func (h *OrderHandler) Create(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var body createOrderReq
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    item := strings.TrimSpace(body.Item)
    if body.CustomerID == 0 || item == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "customer_id and item are required"})
    }
    if body.Amount < 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount must be non-negative"})
    }
    if body.Quantity == 0 {
        body.Quantity = 1
    }

    ctx := c.Request().Context()
    cust, err := h.Customers.GetByID(ctx, body.CustomerID)
    if err != nil {
        if errors.Is(err, repository.ErrCustomerNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    if !ownsCustomer(c, uid, cust) {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    }

    o := &model.Order{
        CustomerID: cust.ID,
        Item:       item,
        Amount:     body.Amount,
        Quantity:   body.Quantity,
        Status:     model.OrderActive,
    }
    if err := h.Orders.Create(ctx, o); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create order"})
    }

    if h.Publish != nil {
        ev := queue.OrderPlacedEvent{
            OrderID:       o.ID,
            CustomerID:    cust.ID,
            CustomerName:  cust.Name,
            CustomerPhone: cust.Phone,
            Item:          o.Item,
            Quantity:      o.Quantity,
            Amount:        o.Amount,
            PlacedAt:      o.CreatedAt.UTC().Format(time.RFC3339),
        }
        if err := h.Publish(ctx, ev); err != nil {
            log.Printf("order: publish order.placed failed for order %d: %v", o.ID, err)
        }
    }

    return c.JSON(http.StatusCreated, o)
}

// List handles GET /v1/orders (ADMIN) with skip/limit pagination.
func (h *OrderHandler) List(c echo.Context) error {
    if !isAdmin(c) {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    }
    skip, limit := pagination(c)
    items, err := h.Orders.List(c.Request().Context(), skip, limit)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/orders/:id subject to the customer ownership rule.
func (h *OrderHandler) Get(c echo.Context) error {
    o, errResp := h.loadOwned(c)
    if errResp != nil {
        return errResp(c)
    }
    return c.JSON(http.StatusOK, o)
}

// UpdateStatus handles PUT /v1/orders/:id and moves an Active order to a
// new status.  Cancelled and Delivered orders are terminal (409).
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
    o, errResp := h.loadOwned(c)
    if errResp != nil {
        return errResp(c)
    }
    var body updateOrderReq
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if !model.ValidOrderStatus(body.Status) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
    }

    ctx := c.Request().Context()
    if err := h.Orders.UpdateStatus(ctx, o.ID, body.Status); err != nil {
        if errors.Is(err, repository.ErrConflict) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "order status is final"})
        }
        if errors.Is(err, repository.ErrOrderNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
    }
    updated, err := h.Orders.GetByID(ctx, o.ID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /v1/orders/:id subject to the ownership rule.
func (h *OrderHandler) Delete(c echo.Context) error {
    o, errResp := h.loadOwned(c)
    if errResp != nil {
        return errResp(c)
    }
    if err := h.Orders.Delete(c.Request().Context(), o.ID); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
    }
    return c.NoContent(http.StatusNoContent)
}

// loadOwned parses :id, loads the order and verifies that the caller owns
// the customer the order belongs to (or is an admin).  On failure it
// returns a function that writes the error response; on success errResp is
// nil and the order is returned.
func (h *OrderHandler) loadOwned(c echo.Context) (*model.Order, echo.HandlerFunc) {
    uid, err := getUserID(c)
    if err != nil {
        return nil, func(c echo.Context) error {
            return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
        }
    }
    id, err := pathID(c)
    if err != nil {
        return nil, func(c echo.Context) error {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
        }
    }
    ctx := c.Request().Context()
    o, err := h.Orders.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrOrderNotFound) {
            return nil, func(c echo.Context) error {
                return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
            }
        }
        return nil, func(c echo.Context) error {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
        }
    }
    cust, err := h.Customers.GetByID(ctx, o.CustomerID)
    if err != nil {
        return nil, func(c echo.Context) error {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
        }
    }
    if !ownsCustomer(c, uid, cust) {
        return nil, func(c echo.Context) error {
            return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
        }
    }
    return o, nil
}
