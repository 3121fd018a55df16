package handler // handler defines http handlers

import (
    "errors"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/customer-order-api/internal/model"
)

// getUserID extracts the user_id from echo.Context and converts it to uint64.
// JWTAuth stores it as uint64, but tests and future middleware may store
// other numeric types, so a type switch keeps this tolerant.
func getUserID(c echo.Context) (uint64, error) {
    v := c.Get("user_id")
    switch t := v.(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid user_id in context")
}

// isAdmin reports whether the request carries the ADMIN role claim.
func isAdmin(c echo.Context) bool {
    role, _ := c.Get("role").(string)
    return role == model.RoleAdmin
}

// ownsCustomer reports whether the authenticated user may act on the given
// customer: admins always, everyone else only on their own profile.
func ownsCustomer(c echo.Context, uid uint64, cust *model.Customer) bool {
    return isAdmin(c) || cust.UserID == uid
}

// pagination reads skip/limit query parameters.  Defaults: skip 0, limit 10.
// Limit is capped at 100; negative values fall back to the defaults.
func pagination(c echo.Context) (skip, limit int) {
    skip, limit = 0, 10
    if v := c.QueryParam("skip"); v != "" {
        if n, err := strconv.Atoi(v); err == nil && n >= 0 {
            skip = n
        }
    }
    if v := c.QueryParam("limit"); v != "" {
        if n, err := strconv.Atoi(v); err == nil && n > 0 {
            limit = n
        }
    }
    if limit > 100 {
        limit = 100
    }
    return skip, limit
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (uint64, error) {
    return strconv.ParseUint(c.Param("id"), 10, 64)
}
