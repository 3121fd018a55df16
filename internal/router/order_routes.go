package router

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/customer-order-api/internal/handler"
    "github.com/iliyamo/customer-order-api/internal/middleware"
    "github.com/iliyamo/customer-order-api/internal/model"
)

// RegisterOrders registers the order endpoints under /v1.  All routes
// require a valid JWT; customers act on orders of their own profile,
// admins on any.  listMW is applied only to the admin-wide list route.
func RegisterOrders(e *echo.Echo, h *handler.OrderHandler, jwtSecret string, listMW ...echo.MiddlewareFunc) {
    g := e.Group(
        "/v1",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole(model.RoleAdmin, model.RoleCustomer),
    )
    g.POST("/orders", h.Create)
    g.GET("/orders/:id", h.Get)
    g.PUT("/orders/:id", h.UpdateStatus)
    g.PATCH("/orders/:id", h.UpdateStatus) // alias for clients that use PATCH
    g.DELETE("/orders/:id", h.Delete)

    admin := e.Group(
        "/v1",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole(model.RoleAdmin),
    )
    admin.GET("/orders", h.List, listMW...)
}
