package integration

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/order"
)

// Platform errors
var (
	// ErrPlatformUnavailable indicates the platform API cannot be reached
	// or returned a transport-level failure
	ErrPlatformUnavailable = errors.New("integration: platform unavailable")

	// ErrInvalidCredentials indicates authentication with the platform failed
	ErrInvalidCredentials = errors.New("integration: invalid platform credentials")

	// ErrOrderRejected indicates the target platform refused the order payload
	ErrOrderRejected = errors.New("integration: order rejected by platform")

	// ErrInvalidResponse indicates the platform returned a payload that
	// could not be decoded
	ErrInvalidResponse = errors.New("integration: invalid platform response")
)

// PlatformCode identifies a delivery platform
type PlatformCode string

const (
	PlatformPlus      PlatformCode = "plus"      // Source of orders
	PlatformSaboritte PlatformCode = "saboritte" // Target for forwarding
)

// IsValid checks if the platform code is supported
func (p PlatformCode) IsValid() bool {
	return p == PlatformPlus || p == PlatformSaboritte
}

// String returns the string representation
func (p PlatformCode) String() string {
	return string(p)
}

// ParseWarning records a field the order detail parser could not extract.
// Parsing never fails the import; missing fields degrade to defaults and
// surface here for observability.
type ParseWarning struct {
	OrderSourceID string `json:"order_source_id"`
	Field         string `json:"field"`
	Detail        string `json:"detail"`
}

// SourceProduct is a product as listed on the source platform
type SourceProduct struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Price      decimal.Decimal `json:"price"`
	PromoPrice decimal.Decimal `json:"promo_price"`
	Enabled    bool            `json:"enabled"`
}

// ProductVariation is a priced variation of a target platform product
type ProductVariation struct {
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// TargetProduct is a product as listed on the target platform
type TargetProduct struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Category   string             `json:"category"`
	Price      decimal.Decimal    `json:"price"`
	Enabled    bool               `json:"enabled"`
	Image      string             `json:"image,omitempty"`
	Variations []ProductVariation `json:"variations,omitempty"`
}

// OutboundOrder is the payload forwarded to the target platform. ProductIDs
// repeats each linked product ID once per unit ordered since the platform
// has no quantity field. ContactExists and ClientID describe the client
// lookup result so the platform reuses the registered contact.
type OutboundOrder struct {
	SourceID      string
	Name          string
	Phone         string
	Street        string
	Number        string
	Neighborhood  string
	Complement    string
	City          string
	State         string
	ProductIDs    []string
	PaymentLabel  string
	ContactExists bool
	ClientID      string
}

// SendResult is the target platform's acknowledgement of a forwarded order
type SendResult struct {
	Accepted bool
	Message  string
}

// RemoteClient is a contact registered on the target platform
type RemoteClient struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// ClientDirectory lists the contacts registered on a platform
type ClientDirectory interface {
	// FetchClients retrieves the registered contacts
	FetchClients(ctx context.Context) ([]RemoteClient, error)
}

// SourcePlatform is the port for the platform orders are imported from
type SourcePlatform interface {
	// Code returns the platform identifier
	Code() PlatformCode

	// FetchOrders retrieves and parses the current orders. Parse
	// degradations are reported as warnings, never as errors.
	FetchOrders(ctx context.Context) ([]*order.Order, []ParseWarning, error)

	// FetchProducts retrieves the platform's product catalog
	FetchProducts(ctx context.Context) ([]SourceProduct, error)
}

// TargetPlatform is the port for the platform orders are forwarded to
type TargetPlatform interface {
	// Code returns the platform identifier
	Code() PlatformCode

	// SendOrder forwards one order. A nil error with Accepted=false means
	// the platform processed the request but refused the order.
	SendOrder(ctx context.Context, o OutboundOrder) (*SendResult, error)

	// FetchProducts retrieves the platform's product catalog
	FetchProducts(ctx context.Context) ([]TargetProduct, error)
}
