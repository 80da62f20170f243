package platform

import (
	"errors"
	"strings"
	"time"
)

// PlusConfig holds the credentials for the source platform gateway
type PlusConfig struct {
	BaseURL  string
	Secret   string // Sent as the x-Secret header
	Email    string
	Password string
	Timeout  time.Duration
}

// Validate checks that the required fields are present
func (c *PlusConfig) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return errors.New("plus: base URL is required")
	}
	if strings.TrimSpace(c.Secret) == "" {
		return errors.New("plus: secret is required")
	}
	if strings.TrimSpace(c.Email) == "" || strings.TrimSpace(c.Password) == "" {
		return errors.New("plus: email and password are required")
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	return nil
}
