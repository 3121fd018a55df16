package config

import (
    "github.com/kelseyhightower/envconfig"
)

// SMSConfig holds settings for the outbound SMS gateway.  The gateway speaks
// the Africa's Talking messaging API; when APIKey is empty the service falls
// back to a console sender so local development does not need credentials.
type SMSConfig struct {
    Enabled  bool   `envconfig:"SMS_ENABLED" default:"true"`
    BaseURL  string `envconfig:"SMS_BASE_URL" default:"https://api.africastalking.com"`
    Username string `envconfig:"SMS_USERNAME" default:"sandbox"`
    APIKey   string `envconfig:"SMS_API_KEY"`
    SenderID string `envconfig:"SMS_SENDER_ID"`
}

// LoadSMS reads SMS gateway settings from the environment.
func LoadSMS() (SMSConfig, error) {
    var c SMSConfig
    err := envconfig.Process("", &c)
    return c, err
}
