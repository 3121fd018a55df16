package router

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/customer-order-api/internal/handler"
    "github.com/iliyamo/customer-order-api/internal/middleware"
    "github.com/iliyamo/customer-order-api/internal/model"
)

// RegisterCustomers registers the customer endpoints under /v1.  All routes
// require a valid JWT.  Ownership rules (own profile vs. any profile) are
// enforced in the handlers; listing and deletion are limited to admins at
// the route level.  listMW (response cache, rate limit) is applied only to
// the admin list route, where every caller sees the same data.
func RegisterCustomers(e *echo.Echo, h *handler.CustomerHandler, jwtSecret string, listMW ...echo.MiddlewareFunc) {
    g := e.Group(
        "/v1",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole(model.RoleAdmin, model.RoleCustomer),
    )
    g.POST("/customers", h.Create)
    g.GET("/customers/:id", h.Get)
    g.GET("/customers/:id/orders", h.ListOrders)
    g.PATCH("/customers/:id", h.Update)

    admin := e.Group(
        "/v1",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole(model.RoleAdmin),
    )
    admin.GET("/customers", h.List, listMW...)
    // Deleting a customer cascades to its orders.
    admin.DELETE("/customers/:id", h.Delete)
}
