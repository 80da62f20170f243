package platform

import (
	"errors"
	"strings"
	"time"
)

// SaboritteConfig holds the credentials for the target platform gateway
type SaboritteConfig struct {
	BaseURL  string
	Secret   string // Sent as the x-Secret header
	Email    string
	Password string
	Timeout  time.Duration

	// TestMode logs the outbound payload instead of sending it
	TestMode bool
}

// Validate checks that the required fields are present
func (c *SaboritteConfig) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return errors.New("saboritte: base URL is required")
	}
	if strings.TrimSpace(c.Secret) == "" {
		return errors.New("saboritte: secret is required")
	}
	if strings.TrimSpace(c.Email) == "" || strings.TrimSpace(c.Password) == "" {
		return errors.New("saboritte: email and password are required")
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	return nil
}
