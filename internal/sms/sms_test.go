package sms

import (
    "context"
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/iliyamo/customer-order-api/internal/config"
)

func TestNewSenderFallsBackToConsole(t *testing.T) {
    s := NewSender(config.SMSConfig{APIKey: ""})
    if _, ok := s.(ConsoleSender); !ok {
        t.Fatalf("expected ConsoleSender without an API key, got %T", s)
    }
    if err := s.Send(context.Background(), "+1", "hello"); err != nil {
        t.Errorf("console send: %v", err)
    }
}

func TestClientSendAccepted(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if r.URL.Path != "/version1/messaging" {
            t.Errorf("path = %q, want /version1/messaging", r.URL.Path)
        }
        if r.Method != http.MethodPost {
            t.Errorf("method = %q, want POST", r.Method)
        }
        if got := r.Header.Get("apiKey"); got != "test-key" {
            t.Errorf("apiKey header = %q, want test-key", got)
        }
        if err := r.ParseForm(); err != nil {
            t.Fatalf("parse form: %v", err)
        }
        if got := r.PostFormValue("username"); got != "sandbox" {
            t.Errorf("username = %q, want sandbox", got)
        }
        if got := r.PostFormValue("to"); got != "+15551234567" {
            t.Errorf("to = %q", got)
        }
        if got := r.PostFormValue("message"); got != "hello there" {
            t.Errorf("message = %q", got)
        }
        if got := r.PostFormValue("from"); got != "SHOP" {
            t.Errorf("from = %q, want SHOP", got)
        }
        w.Header().Set("Content-Type", "application/json")
        _, _ = w.Write([]byte(`{"SMSMessageData":{"Message":"Sent to 1/1","Recipients":[{"number":"+15551234567","status":"Success","statusCode":101}]}}`))
    }))
    defer srv.Close()

    s := NewSender(config.SMSConfig{
        BaseURL:  srv.URL,
        Username: "sandbox",
        APIKey:   "test-key",
        SenderID: "SHOP",
    })
    if _, ok := s.(*Client); !ok {
        t.Fatalf("expected *Client with an API key, got %T", s)
    }
    if err := s.Send(context.Background(), "+15551234567", "hello there"); err != nil {
        t.Fatalf("send: %v", err)
    }
}

func TestClientSendRejectedRecipient(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
        w.Header().Set("Content-Type", "application/json")
        _, _ = w.Write([]byte(`{"SMSMessageData":{"Message":"Sent to 0/1","Recipients":[{"number":"+1","status":"InvalidPhoneNumber","statusCode":403}]}}`))
    }))
    defer srv.Close()

    s := NewSender(config.SMSConfig{BaseURL: srv.URL, Username: "sandbox", APIKey: "k"})
    if err := s.Send(context.Background(), "+1", "msg"); err == nil {
        t.Error("expected error for rejected recipient")
    }
}

func TestClientSendGatewayError(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
        http.Error(w, "bad credentials", http.StatusUnauthorized)
    }))
    defer srv.Close()

    s := NewSender(config.SMSConfig{BaseURL: srv.URL, Username: "sandbox", APIKey: "k"})
    if err := s.Send(context.Background(), "+1", "msg"); err == nil {
        t.Error("expected error for non-2xx gateway status")
    }
}

func TestClientSendNoRecipients(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
        w.Header().Set("Content-Type", "application/json")
        _, _ = w.Write([]byte(`{"SMSMessageData":{"Message":"InvalidSenderId","Recipients":[]}}`))
    }))
    defer srv.Close()

    s := NewSender(config.SMSConfig{BaseURL: srv.URL, Username: "sandbox", APIKey: "k"})
    if err := s.Send(context.Background(), "+1", "msg"); err == nil {
        t.Error("expected error when the gateway accepts no recipients")
    }
}
