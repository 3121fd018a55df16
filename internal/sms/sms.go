// Package sms sends outbound text messages through the Africa's Talking
// messaging API.  A Sender interface keeps the transport swappable: the
// Client speaks the real gateway, ConsoleSender logs messages locally when
// no API key is configured.
package sms

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "io"
    "log"
    "net/http"
    "net/url"
    "strings"
    "time"

    "github.com/iliyamo/customer-order-api/internal/config"
)

// Sender delivers one message to one recipient phone number.
type Sender interface {
    Send(ctx context.Context, to, message string) error
}

// NewSender picks the gateway client when an API key is configured and the
// console fallback otherwise.
func NewSender(cfg config.SMSConfig) Sender {
    if cfg.APIKey == "" {
        return ConsoleSender{}
    }
    return &Client{
        baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
        username: cfg.Username,
        apiKey:   cfg.APIKey,
        senderID: cfg.SenderID,
        http:     &http.Client{Timeout: 10 * time.Second},
    }
}

// ConsoleSender logs messages instead of delivering them.
type ConsoleSender struct{}

func (ConsoleSender) Send(_ context.Context, to, message string) error {
    log.Printf("[sms] to=%s :: %s", to, message)
    return nil
}

// Client calls POST /version1/messaging with form-encoded parameters and an
// apiKey header, the scheme the gateway documents.
type Client struct {
    baseURL  string
    username string
    apiKey   string
    senderID string
    http     *http.Client
}

// response mirrors the subset of the gateway reply we care about.  Recipient
// statusCode 101 means the message was accepted for delivery.
type response struct {
    SMSMessageData struct {
        Message    string `json:"Message"`
        Recipients []struct {
            Number     string `json:"number"`
            Status     string `json:"status"`
            StatusCode int    `json:"statusCode"`
        } `json:"Recipients"`
    } `json:"SMSMessageData"`
}

func (c *Client) Send(ctx context.Context, to, message string) error {
    form := url.Values{}
    form.Set("username", c.username)
    form.Set("to", to)
    form.Set("message", message)
    if c.senderID != "" {
        form.Set("from", c.senderID)
    }

    req, err := http.NewRequestWithContext(ctx, http.MethodPost,
        c.baseURL+"/version1/messaging", strings.NewReader(form.Encode()))
    if err != nil {
        return err
    }
    req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
    req.Header.Set("Accept", "application/json")
    req.Header.Set("apiKey", c.apiKey)

    resp, err := c.http.Do(req)
    if err != nil {
        return fmt.Errorf("sms: gateway request: %w", err)
    }
    defer resp.Body.Close()

    body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
    if err != nil {
        return fmt.Errorf("sms: read response: %w", err)
    }
    if resp.StatusCode < 200 || resp.StatusCode >= 300 {
        return fmt.Errorf("sms: gateway status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
    }

    var r response
    if err := json.Unmarshal(body, &r); err != nil {
        return fmt.Errorf("sms: decode response: %w", err)
    }
    if len(r.SMSMessageData.Recipients) == 0 {
        return errors.New("sms: gateway accepted no recipients")
    }
    for _, rec := range r.SMSMessageData.Recipients {
        if rec.StatusCode != 101 {
            return fmt.Errorf("sms: delivery to %s failed: %s", rec.Number, rec.Status)
        }
    }
    log.Printf("sms: sent to %s: %s", to, r.SMSMessageData.Message)
    return nil
}
