package partner

import (
	"strings"

	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/shared"
)

// Client represents a contact already registered on the target platform.
// Orders whose phone matches a client are sent with the registered name so
// the platform links the order to the existing contact instead of creating
// a duplicate.
type Client struct {
	shared.BaseEntity
	Name            string `gorm:"type:varchar(200);not null"`
	Phone           string `gorm:"type:varchar(50);not null;index"`
	NormalizedPhone string `gorm:"type:varchar(50);not null;index"`
	Address         string `gorm:"type:text"`
	Neighborhood    string `gorm:"type:varchar(100)"`
	City            string `gorm:"type:varchar(100)"`
	State           string `gorm:"type:varchar(10)"`
	Blocked         bool   `gorm:"not null;default:false"`
	AllowBot        bool   `gorm:"not null"`
	AllowCampaigns  bool   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Client) TableName() string {
	return "clients"
}

// NewClient creates a client with the normalized phone precomputed
func NewClient(name, phone string) (*Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Client name cannot be empty")
	}
	normalized := NormalizePhone(phone)
	if normalized == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Client phone must contain at least one digit")
	}

	return &Client{
		BaseEntity:      shared.NewBaseEntity(),
		Name:            name,
		Phone:           phone,
		NormalizedPhone: normalized,
		AllowBot:        true,
		AllowCampaigns:  true,
	}, nil
}

// Block stops the client from receiving automated contact
func (c *Client) Block() {
	c.Blocked = true
	c.Touch()
}

// Unblock re-enables automated contact
func (c *Client) Unblock() {
	c.Blocked = false
	c.Touch()
}

// SetAddress sets the client's address information
func (c *Client) SetAddress(address, neighborhood, city, state string) {
	c.Address = address
	c.Neighborhood = neighborhood
	c.City = city
	c.State = state
	c.Touch()
}

// UpdatePhone replaces the phone and recomputes the normalized form
func (c *Client) UpdatePhone(phone string) error {
	normalized := NormalizePhone(phone)
	if normalized == "" {
		return shared.NewDomainError("INVALID_PHONE", "Client phone must contain at least one digit")
	}
	c.Phone = phone
	c.NormalizedPhone = normalized
	c.Touch()
	return nil
}
