package handler

import (
    "database/sql"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/customer-order-api/internal/config"
    "github.com/iliyamo/customer-order-api/internal/repository"
    "github.com/iliyamo/customer-order-api/internal/testutil"
    "github.com/iliyamo/customer-order-api/internal/utils"
)

func testAuthConfig() config.Config {
    return config.Config{
        Env:            "test",
        JWTSecret:      "test-secret",
        AccessTTLMin:   15,
        RefreshTTLDays: 7,
        BcryptCost:     4,
    }
}

func newAuthHandler(t *testing.T, dbName string) (*AuthHandler, *sql.DB) {
    t.Helper()
    db := testutil.OpenTestDB(t, dbName)
    return NewAuthHandler(testAuthConfig(), repository.NewUserRepo(db), repository.NewTokenRepo(db)), db
}

// jsonContext builds an echo context carrying a JSON body.
func jsonContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
    req := httptest.NewRequest(method, target, strings.NewReader(body))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    return e.NewContext(req, rec), rec
}

func decodeAuthResp(t *testing.T, rec *httptest.ResponseRecorder) authResp {
    t.Helper()
    var out authResp
    if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
        t.Fatalf("decode auth response: %v (%s)", err, rec.Body.String())
    }
    return out
}

func TestRegister(t *testing.T) {
    h, _ := newAuthHandler(t, "auth_register")
    e := echo.New()

    c, rec := jsonContext(e, http.MethodPost, "/v1/auth/register",
        `{"email":"Alice@Example.com","password":"pw123456"}`)
    if err := h.Register(c); err != nil {
        t.Fatalf("register: %v", err)
    }
    if rec.Code != http.StatusCreated {
        t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
    }
    resp := decodeAuthResp(t, rec)
    if resp.User.Email != "alice@example.com" {
        t.Errorf("email = %q, want normalized lowercase", resp.User.Email)
    }
    if resp.User.Role != "CUSTOMER" {
        t.Errorf("role = %q, want default CUSTOMER", resp.User.Role)
    }
    uid, role, err := utils.ParseAccessToken("test-secret", resp.Access.Token)
    if err != nil {
        t.Fatalf("issued access token should parse: %v", err)
    }
    if uid != resp.User.ID || role != resp.User.Role {
        t.Errorf("token claims uid=%d role=%q, want uid=%d role=%q", uid, role, resp.User.ID, resp.User.Role)
    }
    if resp.Refresh.Token == "" {
        t.Error("refresh token should be returned raw")
    }

    // Same email again conflicts.
    c, rec = jsonContext(e, http.MethodPost, "/v1/auth/register",
        `{"email":"alice@example.com","password":"other"}`)
    _ = h.Register(c)
    if rec.Code != http.StatusConflict {
        t.Errorf("duplicate register status = %d, want 409", rec.Code)
    }
}

func TestRegisterValidation(t *testing.T) {
    h, _ := newAuthHandler(t, "auth_register_bad")
    e := echo.New()

    c, rec := jsonContext(e, http.MethodPost, "/v1/auth/register", `{"email":"","password":""}`)
    _ = h.Register(c)
    if rec.Code != http.StatusBadRequest {
        t.Errorf("status = %d, want 400", rec.Code)
    }
}

func TestLogin(t *testing.T) {
    h, _ := newAuthHandler(t, "auth_login")
    e := echo.New()

    c, rec := jsonContext(e, http.MethodPost, "/v1/auth/register",
        `{"email":"bob@example.com","password":"pw123456","role":"ADMIN"}`)
    _ = h.Register(c)
    if rec.Code != http.StatusCreated {
        t.Fatalf("register status = %d", rec.Code)
    }

    c, rec = jsonContext(e, http.MethodPost, "/v1/auth/login",
        `{"email":"bob@example.com","password":"pw123456"}`)
    _ = h.Login(c)
    if rec.Code != http.StatusOK {
        t.Fatalf("login status = %d, want 200: %s", rec.Code, rec.Body.String())
    }
    resp := decodeAuthResp(t, rec)
    if resp.User.Role != "ADMIN" {
        t.Errorf("role = %q, want ADMIN", resp.User.Role)
    }

    c, rec = jsonContext(e, http.MethodPost, "/v1/auth/login",
        `{"email":"bob@example.com","password":"wrong"}`)
    _ = h.Login(c)
    if rec.Code != http.StatusUnauthorized {
        t.Errorf("wrong password status = %d, want 401", rec.Code)
    }

    c, rec = jsonContext(e, http.MethodPost, "/v1/auth/login",
        `{"email":"ghost@example.com","password":"pw"}`)
    _ = h.Login(c)
    if rec.Code != http.StatusUnauthorized {
        t.Errorf("unknown email status = %d, want 401", rec.Code)
    }
}

func TestRefreshRotation(t *testing.T) {
    h, _ := newAuthHandler(t, "auth_refresh")
    e := echo.New()

    c, rec := jsonContext(e, http.MethodPost, "/v1/auth/register",
        `{"email":"carol@example.com","password":"pw123456"}`)
    _ = h.Register(c)
    first := decodeAuthResp(t, rec)

    c, rec = jsonContext(e, http.MethodPost, "/v1/auth/refresh",
        `{"refresh_token":"`+first.Refresh.Token+`"}`)
    _ = h.Refresh(c)
    if rec.Code != http.StatusOK {
        t.Fatalf("refresh status = %d, want 200: %s", rec.Code, rec.Body.String())
    }
    second := decodeAuthResp(t, rec)
    if second.Refresh.Token == first.Refresh.Token {
        t.Error("refresh should rotate the token")
    }

    // The old token was revoked by the rotation.
    c, rec = jsonContext(e, http.MethodPost, "/v1/auth/refresh",
        `{"refresh_token":"`+first.Refresh.Token+`"}`)
    _ = h.Refresh(c)
    if rec.Code != http.StatusUnauthorized {
        t.Errorf("reused refresh status = %d, want 401", rec.Code)
    }
}

func TestRefreshAccessDoesNotRotate(t *testing.T) {
    h, _ := newAuthHandler(t, "auth_refresh_access")
    e := echo.New()

    c, rec := jsonContext(e, http.MethodPost, "/v1/auth/register",
        `{"email":"dave@example.com","password":"pw123456"}`)
    _ = h.Register(c)
    resp := decodeAuthResp(t, rec)

    for i := 0; i < 2; i++ {
        c, rec = jsonContext(e, http.MethodPost, "/v1/auth/refresh-access",
            `{"refresh_token":"`+resp.Refresh.Token+`"}`)
        _ = h.RefreshAccess(c)
        if rec.Code != http.StatusOK {
            t.Fatalf("refresh-access call %d status = %d, want 200", i+1, rec.Code)
        }
    }
}

func TestLogoutSingleSession(t *testing.T) {
    h, _ := newAuthHandler(t, "auth_logout_one")
    e := echo.New()

    c, rec := jsonContext(e, http.MethodPost, "/v1/auth/register",
        `{"email":"erin@example.com","password":"pw123456"}`)
    _ = h.Register(c)
    resp := decodeAuthResp(t, rec)

    c, rec = jsonContext(e, http.MethodPost, "/v1/auth/logout",
        `{"refresh_token":"`+resp.Refresh.Token+`"}`)
    _ = h.Logout(c)
    if rec.Code != http.StatusNoContent {
        t.Fatalf("logout status = %d, want 204: %s", rec.Code, rec.Body.String())
    }

    c, rec = jsonContext(e, http.MethodPost, "/v1/auth/refresh",
        `{"refresh_token":"`+resp.Refresh.Token+`"}`)
    _ = h.Refresh(c)
    if rec.Code != http.StatusUnauthorized {
        t.Errorf("refresh after logout status = %d, want 401", rec.Code)
    }
}

func TestLogoutAllSessions(t *testing.T) {
    h, _ := newAuthHandler(t, "auth_logout_all")
    e := echo.New()

    c, rec := jsonContext(e, http.MethodPost, "/v1/auth/register",
        `{"email":"frank@example.com","password":"pw123456"}`)
    _ = h.Register(c)
    first := decodeAuthResp(t, rec)

    c, rec = jsonContext(e, http.MethodPost, "/v1/auth/login",
        `{"email":"frank@example.com","password":"pw123456"}`)
    _ = h.Login(c)
    second := decodeAuthResp(t, rec)

    // Bearer with no refresh token in the body revokes every session.
    c, rec = jsonContext(e, http.MethodPost, "/v1/auth/logout", ``)
    c.Request().Header.Set("Authorization", "Bearer "+second.Access.Token)
    _ = h.Logout(c)
    if rec.Code != http.StatusNoContent {
        t.Fatalf("logout-all status = %d, want 204: %s", rec.Code, rec.Body.String())
    }

    for _, raw := range []string{first.Refresh.Token, second.Refresh.Token} {
        c, rec = jsonContext(e, http.MethodPost, "/v1/auth/refresh",
            `{"refresh_token":"`+raw+`"}`)
        _ = h.Refresh(c)
        if rec.Code != http.StatusUnauthorized {
            t.Errorf("refresh after logout-all status = %d, want 401", rec.Code)
        }
    }
}

func TestLogoutWithoutCredentials(t *testing.T) {
    h, _ := newAuthHandler(t, "auth_logout_none")
    e := echo.New()

    c, rec := jsonContext(e, http.MethodPost, "/v1/auth/logout", `{}`)
    _ = h.Logout(c)
    if rec.Code != http.StatusBadRequest {
        t.Errorf("status = %d, want 400", rec.Code)
    }
}
